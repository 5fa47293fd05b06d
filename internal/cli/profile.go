package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/universeproject/client-go/internal/api"
)

func (a *App) whoami(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	user, err := a.users.GetUserByID(ctx, a.session.UserID(), false)
	if err != nil {
		fmt.Fprintf(a.out, "Could not load your profile: %v\n", err)
		return
	}
	a.user = user

	fmt.Fprintf(a.out, "Username:     %s\n", user.Username)
	fmt.Fprintf(a.out, "Display name: %s\n", user.DisplayName)
	fmt.Fprintf(a.out, "Email:        %s\n", user.Email)
	if expiry := a.session.ExpiresAt(); !expiry.IsZero() {
		fmt.Fprintf(a.out, "Session expires: %s\n", expiry)
	}
}

func (a *App) updateProfile(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	email, err := GetSimpleText(a.reader, "New email address", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	displayName, err := GetSimpleText(a.reader, "New display name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	user, err := a.users.UpdateProfile(ctx, a.session.UserID(), email, displayName)
	if err != nil {
		var ve *api.ValidationErrors
		if errors.As(err, &ve) {
			a.renderValidationErrors(ve)
			return
		}
		fmt.Fprintf(a.out, "Could not update your profile: %v\n", err)
		return
	}

	a.user = user
	fmt.Fprintln(a.out, "Profile updated")
}

func (a *App) changePassword(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	password, err := GetPassword("New password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	confirm, err := GetPassword("Repeat new password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if password != confirm {
		fmt.Fprintln(a.out, "Passwords do not match")
		return
	}

	if _, err := a.users.ChangePassword(ctx, a.session.UserID(), password); err != nil {
		var ve *api.ValidationErrors
		if errors.As(err, &ve) {
			a.renderValidationErrors(ve)
			return
		}
		fmt.Fprintf(a.out, "Could not change your password: %v\n", err)
		return
	}

	fmt.Fprintln(a.out, "Password changed")
}
