package cli

import (
	"context"

	"github.com/pasteflow/pasteflow/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in through the session manager.
// On success the authenticated session arrives via the provider's push
// channel, so nothing is assigned here; on rejection the session is left
// untouched and the provider's message is surfaced as a notification.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignIn(ctx, email, string(password)); err != nil {
		a.log.Warn(ctx, "login failed", "error", err)
		a.notify.Error(err.Error())
		return err
	}

	a.notify.Success("Logged in successfully")
	return nil
}

// Register prompts for an email and password and creates a new account.
// Depending on provider policy the session may only become authenticated
// after out-of-band confirmation.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.sessions.SignUp(ctx, email, string(password)); err != nil {
		a.log.Warn(ctx, "registration failed", "error", err)
		a.notify.Error(err.Error())
		return err
	}

	a.notify.Success("Registered! Check your email.")
	return nil
}

// Logout signs out through the session manager; the anonymous session
// arrives via the push channel.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		a.log.Warn(ctx, "logout failed", "error", err)
		a.notify.Error(err.Error())
		return err
	}

	a.notify.Success("Logged out")
	return nil
}
