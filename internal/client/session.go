package client

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"
)

// LoadSession asks the identity collaborator who is signed in. Absence
// and failure are both treated as signed out; nothing is retried.
func (a *App) LoadSession(ctx context.Context) {
	user, err := a.identity.Session(ctx)
	if err != nil || user == nil {
		if err != nil {
			log.Warnf("session load failed, treating as signed out: %s", err)
		}
		a.state.ClearUser()
		return
	}

	admin := a.adminEmail != "" && strings.EqualFold(user.Email, a.adminEmail)
	a.state.SetUser(user, admin)
}

func (a *App) SignIn(ctx context.Context, email, password string) error {
	if _, err := a.identity.SignIn(ctx, email, password); err != nil {
		return err
	}

	a.LoadSession(ctx)
	a.Refresh()
	return nil
}

func (a *App) SignUp(ctx context.Context, email, password, name string) error {
	if _, err := a.identity.SignUp(ctx, email, password, name); err != nil {
		return err
	}

	a.LoadSession(ctx)
	a.Refresh()
	return nil
}

// SignOut always leaves the viewer signed out locally, even when the
// collaborator call fails; the error is returned for the notification.
func (a *App) SignOut(ctx context.Context) error {
	err := a.identity.SignOut(ctx)

	a.state.ClearUser()
	a.Refresh()
	return err
}
