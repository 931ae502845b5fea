// Package app wires configuration, logging, storage and the services into a
// runnable DiaryKeeper instance.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/diarykeeper/internal/cli"
	"github.com/dmitrijs2005/diarykeeper/internal/config"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/services"
	"github.com/dmitrijs2005/diarykeeper/internal/storage"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	gateway      *storage.Gateway
	keyring      *services.Keyring
	userService  *services.UserService
	diaryService *services.DiaryService
}

// NewApp opens storage and builds the services. Log output goes to logOut.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(logOut, logging.Options{
		Backend: c.LogBackend,
		Format:  c.LogFormat,
		Level:   c.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dialect, err := storage.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	gw, err := storage.Open(ctx, storage.Options{
		Dialect:         dialect,
		DSN:             c.DatabaseDSN,
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.New(dialect)
	if err != nil {
		_ = gw.Close()
		return nil, err
	}

	kr := services.NewKeyring()
	us := services.NewUserService(gw, rm, cryptox.NewPasswordHasher(c.BcryptCost), kr, logger)
	ds := services.NewDiaryService(gw, rm, kr, logger)

	return &App{config: c, logger: logger, gateway: gw, keyring: kr, userService: us, diaryService: ds}, nil
}

// Users exposes the account service for one-shot tools such as the seeder.
func (app *App) Users() *services.UserService {
	return app.userService
}

// Close wipes every held entry key and releases the storage handle.
func (app *App) Close() error {
	app.keyring.Clear()
	return app.gateway.Close()
}

// initSignalHandler cancels the run on SIGINT, SIGTERM or SIGQUIT. The
// returned function stops the subscription.
func (app *App) initSignalHandler(cancelFunc context.CancelFunc) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		if _, ok := <-sigs; ok {
			cancelFunc()
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(sigs)
	}
}

// Run drives the terminal front end on in/out until the user exits, input
// ends or the process is signalled.
func (app *App) Run(ctx context.Context, in io.Reader, out io.Writer) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting diarykeeper", "driver", app.gateway.Dialect())
	stop := app.initSignalHandler(cancelFunc)
	defer stop()

	ui := cli.NewApp(app.userService, app.diaryService, cli.Options{
		ExportDir:   app.config.ExportDir,
		RecentLimit: app.config.RecentLimit,
	}, in, out, app.logger)

	done := make(chan struct{})
	go func() {
		defer close(done)
		ui.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Info(ctx, "shutting down")
	}
}
