package onboarding

import (
	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/users"
)

// Result is the outcome of a Register or Authenticate call. It is a closed
// union: callers switch on the concrete type instead of catching errors.
type Result interface {
	onboardingResult()
}

// Success carries the user that was registered or authenticated. The session
// store already holds their access token.
type Success struct {
	User *users.User
}

// ValidationFailure carries the per-field failures from the service. Mapping
// fields to messages is the caller's responsibility; the machine's global
// error is not touched.
type ValidationFailure struct {
	Errors *api.ValidationErrors
}

// AuthFailure indicates the credentials were wrong. No payload.
type AuthFailure struct{}

// Failure is any other failure, already reduced to a display string. The
// same string is stored as the machine's global error.
type Failure struct {
	Message string
}

// Busy indicates the call was refused because another operation was still in
// flight. The machine's state is untouched.
type Busy struct{}

func (Success) onboardingResult()           {}
func (ValidationFailure) onboardingResult() {}
func (AuthFailure) onboardingResult()       {}
func (Failure) onboardingResult()           {}
func (Busy) onboardingResult()              {}
