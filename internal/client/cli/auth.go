package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/kbclip/internal/common"
)

const loginHint = "Log in to your knowledge base account to get a one-time token, then type 'login'."

// getToken is an indirection used to facilitate testing.
var getToken = GetToken

// Login authenticates with the token given inline ("login <token>") or, when
// none is given, with one read from a hidden prompt. The outcome is printed
// as the controller's status line.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in. Type 'logout' first.")
		return nil
	}

	if len(args) > 0 {
		a.controller.SetTokenInput(strings.Join(args, " "))
	} else {
		tok, err := getToken(a.out)
		if err != nil {
			a.logger.Error(ctx, "could not read token", "error", err)
			return err
		}
		a.controller.SetTokenInput(string(tok))
		common.WipeByteArray(tok)
	}

	a.rejected(a.controller.SubmitLogin(ctx))
	return nil
}

// Logout removes the stored session.
func (a *App) Logout(ctx context.Context) error {
	a.rejected(a.controller.Logout(ctx))
	return nil
}
