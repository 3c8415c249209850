package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and starts a session on success.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.logger.Info(ctx, "login unsuccessful", "email", email, "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", u.FullName())
	return nil
}

// Register prompts for the sign-up form and creates the account. The
// current session stays as it is.
func (a *App) Register(ctx context.Context) error {
	var form services.Registration

	prompts := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{"Enter name", &form.Name, false},
		{"Enter last name", &form.LastName, false},
		{"Enter email", &form.Email, false},
		{"Enter password", &form.Password, true},
		{"Repeat password", &form.PasswordConfirmation, true},
	}

	for _, p := range prompts {
		var (
			v   string
			err error
		)
		if p.secret {
			v, err = getPassword(a.reader, p.prompt, a.out)
		} else {
			v, err = getSimpleText(a.reader, p.prompt, a.out)
		}
		if err != nil {
			return err
		}
		*p.dst = v
	}

	u, err := a.auth.Register(ctx, form)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (id %d).\n", u.Email, u.ID)
	return nil
}

// Restore asks the backend to send a new password to the given email.
func (a *App) Restore(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.RestorePassword(ctx, email); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "A new password was sent to %s.\n", email)
	return nil
}

// Logout closes the local session. The session watcher prints the notice.
func (a *App) Logout(ctx context.Context) error {
	return a.auth.Logout(ctx)
}

// WhoAmI prints the current user and the expiry of the session token.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>, id %d", u.FullName(), u.Email, u.ID)
	if u.Role != "" {
		fmt.Fprintf(a.out, ", role %s", u.Role)
	}
	fmt.Fprintln(a.out)

	claims, err := a.session.Claims(ctx)
	if err != nil {
		return err
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "Token expires at %s\n", claims.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}
