// Package cli implements the interactive terminal front end for the
// onboarding flow: it collects input, drives the state machine, and renders
// the per-field or global errors that come back.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/universeproject/client-go/internal/config"
	"github.com/universeproject/client-go/internal/logging"
	"github.com/universeproject/client-go/internal/onboarding"
	"github.com/universeproject/client-go/internal/session"
	"github.com/universeproject/client-go/internal/users"
)

type App struct {
	config  *config.Config
	machine *onboarding.Machine
	users   *users.Client
	session *session.Store
	log     logging.Logger

	// user is the profile of whoever is logged in, refreshed after
	// profile updates.
	user *users.User

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the CLI to an already-composed client stack. The session
// store is shared with the HTTP layer, which is why it is passed in rather
// than constructed here.
func NewApp(cfg *config.Config, machine *onboarding.Machine, usersClient *users.Client, store *session.Store, log logging.Logger) *App {
	if log == nil {
		log = logging.Nop()
	}
	return &App{
		config:  cfg,
		machine: machine,
		users:   usersClient,
		session: store,
		log:     log.With("component", "cli"),
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}
