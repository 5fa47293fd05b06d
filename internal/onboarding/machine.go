// Package onboarding implements the finite-state controller for the
// username-check → register-or-authenticate flow.
//
// The machine starts in StateInitial. CheckUsername moves it to
// StateAuthenticating (username exists) or StateRegistering (unknown
// username); there is no direct transition between those two states —
// switching intent requires going back through Initial and re-checking.
// ResetLogin and CancelLogin return to Initial from anywhere.
package onboarding

import (
	"context"
	"errors"

	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/logging"
	"github.com/universeproject/client-go/internal/users"
)

// State identifies where in the onboarding flow the machine is.
type State string

const (
	// StateInitial: no username has been checked yet.
	StateInitial State = "initial"
	// StateRegistering: the username is unknown; registration details are
	// being collected.
	StateRegistering State = "registering"
	// StateAuthenticating: the username exists; a password is being
	// collected.
	StateAuthenticating State = "authenticating"
)

// usersAPI is the slice of the users client the machine needs.
type usersAPI interface {
	CheckUsername(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, details users.RegistrationDetails) (*users.User, error)
	Authenticate(ctx context.Context, creds users.Credentials) (*users.User, error)
}

// Machine coordinates the onboarding flow. It is driven by a single
// goroutine. Two rules keep overlapping calls from racing:
//   - an operation invoked while another is in flight is refused (Busy);
//   - a reset or cancel during an in-flight operation bumps a generation
//     counter, and the stale operation discards its state mutations when it
//     resolves.
type Machine struct {
	users usersAPI
	log   logging.Logger

	state    State
	username string
	loading  bool
	err      string
	gen      uint64
}

func NewMachine(usersClient usersAPI, log logging.Logger) *Machine {
	if log == nil {
		log = logging.Nop()
	}
	return &Machine{
		users: usersClient,
		log:   log.With("component", "onboarding"),
		state: StateInitial,
	}
}

// State returns the current flow state.
func (m *Machine) State() State { return m.state }

// Username returns the username under consideration; empty in StateInitial.
func (m *Machine) Username() string { return m.username }

// Loading reports whether a network operation is in flight.
func (m *Machine) Loading() bool { return m.loading }

// Err returns the display string of the last unexpected failure, or "" when
// there is none. Validation and credential failures never land here.
func (m *Machine) Err() string { return m.err }

// CheckUsername looks the username up and moves the machine to
// Authenticating (registered) or Registering (unknown). Any other failure
// returns the machine to Initial with the global error set. Invoked while
// another operation is in flight it does nothing.
func (m *Machine) CheckUsername(ctx context.Context, username string) {
	if m.loading {
		m.log.Warn(ctx, "operation already in flight, ignoring", "op", "check_username")
		return
	}

	gen := m.gen
	m.loading = true
	m.err = ""
	m.username = ""

	exists, err := m.users.CheckUsername(ctx, username)

	if m.gen != gen {
		// The flow was reset while the call was in flight; the response
		// is stale and must not clobber the fresh state.
		m.log.Debug(ctx, "discarding stale username check", "username", username)
		return
	}
	m.loading = false

	if err != nil {
		m.state = StateInitial
		m.err = err.Error()
		m.log.Warn(ctx, "username check failed", "username", username, "error", err)
		return
	}

	m.username = username
	if exists {
		m.state = StateAuthenticating
	} else {
		m.state = StateRegistering
	}
	m.log.Debug(ctx, "username checked", "username", username, "state", m.state)
}

// Register submits the registration details. On Success the session store
// holds the new user's token and the machine resets to Initial. Per-field
// validation failures are handed back without touching the global error.
func (m *Machine) Register(ctx context.Context, details users.RegistrationDetails) Result {
	if m.loading {
		m.log.Warn(ctx, "operation already in flight, ignoring", "op", "register")
		return Busy{}
	}

	gen := m.gen
	m.loading = true
	m.err = ""

	user, err := m.users.Register(ctx, details)

	stale := m.gen != gen
	if !stale {
		m.loading = false
	}

	if err != nil {
		var ve *api.ValidationErrors
		if errors.As(err, &ve) {
			return ValidationFailure{Errors: ve}
		}
		m.log.Warn(ctx, "registration failed", "username", details.Username, "error", err)
		if !stale {
			m.err = err.Error()
		}
		return Failure{Message: err.Error()}
	}

	if !stale {
		m.reset()
	}
	return Success{User: user}
}

// Authenticate submits the credentials. On Success the session store holds
// the token and the machine resets to Initial. Wrong credentials come back
// as AuthFailure without touching the global error.
func (m *Machine) Authenticate(ctx context.Context, creds users.Credentials) Result {
	if m.loading {
		m.log.Warn(ctx, "operation already in flight, ignoring", "op", "authenticate")
		return Busy{}
	}

	gen := m.gen
	m.loading = true
	m.err = ""

	user, err := m.users.Authenticate(ctx, creds)

	stale := m.gen != gen
	if !stale {
		m.loading = false
	}

	if err != nil {
		if errors.Is(err, users.ErrLoginFailure) {
			return AuthFailure{}
		}
		m.log.Warn(ctx, "authentication failed", "username", creds.Username, "error", err)
		if !stale {
			m.err = err.Error()
		}
		return Failure{Message: err.Error()}
	}

	if !stale {
		m.reset()
	}
	return Success{User: user}
}

// ResetLogin unconditionally returns the machine to Initial, clearing the
// username, error, and loading flag. This is the one transition permitted
// from any state.
func (m *Machine) ResetLogin() {
	m.reset()
}

// CancelLogin is identical in effect to ResetLogin. It exists as a separate
// operation so call sites record intent: a user-initiated cancel rather than
// a programmatic reset.
func (m *Machine) CancelLogin() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = StateInitial
	m.username = ""
	m.err = ""
	m.loading = false
	m.gen++
}
