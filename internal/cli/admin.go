package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/diarykeeper/internal/models"
)

// Users lists every account. The service rejects non-administrators.
func (a *App) Users(ctx context.Context) error {
	list, err := a.accounts.ListUsers(ctx, a.user)
	if err != nil {
		return err
	}
	for _, u := range list {
		fmt.Fprintf(a.out, "#%-4d %-20s %-30s %s\n", u.ID, u.Username, u.Email, u.Role)
	}
	return nil
}

// All lists the entries of every user.
func (a *App) All(ctx context.Context) error {
	list, err := a.diary.AllEntries(ctx, a.user)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No entries")
		return nil
	}
	for _, e := range list {
		fmt.Fprintf(a.out, "%s  (user #%d)\n", formatEntryLine(e), e.UserID)
	}
	return nil
}

// Promote grants the administrator role to the given user id.
func (a *App) Promote(ctx context.Context, args []string) error {
	id, err := parseID(args, "promote <userID>")
	if err != nil {
		return err
	}
	u, err := a.accounts.SetRole(ctx, a.user, id, models.RoleAdmin)
	if err != nil {
		return err
	}
	if u.ID == a.user.ID {
		a.user.Role = u.Role
	}
	fmt.Fprintf(a.out, "%s is now %s\n", u.Username, u.Role)
	return nil
}
