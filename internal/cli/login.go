package cli

import (
	"context"
	"fmt"

	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/onboarding"
	"github.com/universeproject/client-go/internal/users"
)

// Login drives the onboarding flow: check the username, then either register
// a new account or authenticate an existing one depending on where the
// machine lands.
func (a *App) Login(ctx context.Context) {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in")
		return
	}

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if username == "" {
		fmt.Fprintln(a.out, "A username is required")
		return
	}

	a.machine.CheckUsername(ctx, username)

	switch a.machine.State() {
	case onboarding.StateRegistering:
		fmt.Fprintf(a.out, "Username %q is available, let's register\n", username)
		a.register(ctx, username)
	case onboarding.StateAuthenticating:
		a.authenticate(ctx, username)
	default:
		fmt.Fprintf(a.out, "Could not check the username: %s\n", a.machine.Err())
	}
}

func (a *App) register(ctx context.Context, username string) {
	email, err := GetSimpleText(a.reader, "Enter email address", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	displayName, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	result := a.machine.Register(ctx, users.RegistrationDetails{
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Password:    password,
	})
	a.renderResult(ctx, result)
}

func (a *App) authenticate(ctx context.Context, username string) {
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	result := a.machine.Authenticate(ctx, users.Credentials{
		Username: username,
		Password: password,
	})
	a.renderResult(ctx, result)
}

func (a *App) renderResult(ctx context.Context, result onboarding.Result) {
	switch r := result.(type) {
	case onboarding.Success:
		a.user = r.User
		fmt.Fprintf(a.out, "Welcome, %s!\n", r.User.DisplayName)
	case onboarding.ValidationFailure:
		a.renderValidationErrors(r.Errors)
	case onboarding.AuthFailure:
		fmt.Fprintln(a.out, "Incorrect password")
	case onboarding.Failure:
		fmt.Fprintf(a.out, "Something went wrong: %s\n", r.Message)
	case onboarding.Busy:
		fmt.Fprintln(a.out, "Another operation is still in progress")
	}
}

func (a *App) renderValidationErrors(errs *api.ValidationErrors) {
	fmt.Fprintln(a.out, "Some details were not accepted:")
	for _, e := range errs.Errors {
		fmt.Fprintf(a.out, "  %s: %s\n", e.Field, e.Type)
	}
}
