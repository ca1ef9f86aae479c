package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthrecords/internal/client/identity"
	"github.com/dmitrijs2005/healthrecords/internal/client/models"
)

// Login signs in. With an identity secret configured the user proves who
// they are with a session token (argument or hidden prompt); without one
// the user id is taken as given.
func (a *App) Login(ctx context.Context, args []string) error {
	userID, err := a.resolveUser(args)
	if err != nil {
		return err
	}
	if userID == "" {
		return errors.New("user id is empty")
	}
	return a.signIn(ctx, userID)
}

func (a *App) resolveUser(args []string) (string, error) {
	if a.verifier != nil {
		var token string
		if len(args) > 0 {
			token = args[0]
		} else {
			t, err := GetToken(a.lines, a.out)
			if err != nil {
				return "", err
			}
			token = t
		}
		return a.verifier.Verify(token)
	}

	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.lines, "Enter user id", a.out)
}

func (a *App) signIn(ctx context.Context, userID string) error {
	if !a.session.SignIn(userID) && a.catalog.Ready() {
		printlnFn("Already logged in as", userID)
		return nil
	}

	a.search, a.typeFilter = "", models.CategoryAll
	if err := a.catalog.Initialize(ctx, userID); err != nil {
		if !a.catalog.Ready() {
			a.session.SignOut()
			return fmt.Errorf("load records: %w", err)
		}
		// seeds are shown but were not saved
		a.log.Warn(ctx, "demo records not saved", "user", userID, "error", err)
	}

	a.log.Info(ctx, "signed in", "user", userID, "records", a.catalog.Len())
	printlnFn(fmt.Sprintf("Logged in as %s (%d records)", userID, a.catalog.Len()))
	return nil
}

// Token issues a session token for a user, signed with the configured
// identity secret and valid for the configured session TTL.
func (a *App) Token(ctx context.Context, args []string) error {
	var userID string
	if len(args) > 0 {
		userID = args[0]
	} else {
		id, err := GetSimpleText(a.lines, "Enter user id", a.out)
		if err != nil {
			return err
		}
		userID = id
	}

	tok, err := identity.IssueToken(userID, []byte(a.config.IdentitySecret), a.config.SessionTTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	a.log.Info(ctx, "session token issued", "user", userID, "ttl", a.config.SessionTTL)
	printlnFn(fmt.Sprintf("Token for %s (valid %s):", userID, a.config.SessionTTL))
	printlnFn(tok)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	id := a.session.Current()
	a.session.SignOut()
	a.catalog.Reset()
	a.search, a.typeFilter = "", models.CategoryAll

	a.log.Info(ctx, "signed out", "user", id.UserID)
	printlnFn("Logged out")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	id := a.session.Current()
	if !id.SignedIn() {
		printlnFn(fmt.Sprintf("Not logged in (storage %s, host %s)", a.config.Storage, a.host))
		return nil
	}

	hostState := "configured"
	if err := a.uploads.CheckConfig(); err != nil {
		hostState = err.Error()
	}
	printlnFn(fmt.Sprintf("Logged in as %s: %d records (storage %s, host %s: %s)",
		id.UserID, a.catalog.Len(), a.config.Storage, a.host, hostState))
	return nil
}
