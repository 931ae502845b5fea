// Command seed creates an administrator account, or promotes an existing
// one, using the same configuration as the diary application.
//
//	seed -admin-user root -admin-email root@example.com [-d dsn] [-driver sqlite]
//
// The password is read from DIARY_ADMIN_PASSWORD or -admin-password.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/diarykeeper/internal/app"
	"github.com/dmitrijs2005/diarykeeper/internal/config"
	"github.com/dmitrijs2005/diarykeeper/internal/flagx"
)

var seedFlags = []string{
	"-admin-user", "--admin-user",
	"-admin-email", "--admin-email",
	"-admin-password", "--admin-password",
}

type seedOptions struct {
	username string
	email    string
	password string
}

func parseSeedFlags(args []string) (seedOptions, error) {
	var o seedOptions
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&o.username, "admin-user", "admin", "administrator username")
	fs.StringVar(&o.email, "admin-email", "admin@localhost.localdomain", "administrator email")
	fs.StringVar(&o.password, "admin-password", os.Getenv("DIARY_ADMIN_PASSWORD"), "administrator password")

	if err := fs.Parse(flagx.FilterArgs(args, seedFlags)); err != nil {
		return o, err
	}
	if o.password == "" {
		return o, fmt.Errorf("admin password is required (-admin-password or DIARY_ADMIN_PASSWORD)")
	}
	return o, nil
}

func main() {
	ctx := context.Background()
	args := os.Args[1:]

	opts, err := parseSeedFlags(args)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	cfg, err := config.Load(args)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	a, err := app.NewApp(ctx, cfg, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = a.Close() }()

	u, created, err := a.Users().EnsureAdmin(ctx, opts.username, opts.password, opts.email)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	if created {
		fmt.Printf("seeded admin: id=%d username=%s email=%s\n", u.ID, u.Username, u.Email)
	} else {
		fmt.Printf("ensured admin role: id=%d username=%s\n", u.ID, u.Username)
	}
}
