package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
)

// getSimpleText, getPassword, getMultiline and getYesNo are indirections to
// the interactive helpers so tests can script the answers.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getYesNo      = GetYesNo
)

// Register prompts for username, email and password and creates an account.
// It does not sign the new user in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.accounts.Register(ctx, username, string(password), email)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Account %q created, you can login now\n", u.Username)
	return nil
}

// Login prompts for credentials and opens a session. A previous session is
// closed first.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.endSession(ctx)

	u, err := a.accounts.Authenticate(ctx, username, string(password))
	if err != nil {
		return err
	}

	a.startSession(u)
	a.log.Info(ctx, "session opened")
	fmt.Fprintf(a.out, "Welcome, %s!\n", u.Username)
	return nil
}

// Logout closes the session and drops the entry key.
func (a *App) Logout(ctx context.Context) error {
	a.endSession(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
