package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	id := a.session.Current()
	if !id.SignedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", id.UserID)
}

// Root runs the REPL on standard input until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Health Records CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.lines)
}
