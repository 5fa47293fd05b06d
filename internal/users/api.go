// Package users contains the domain API wrappers for the Universe user
// service: username existence checks, registration, authentication, and
// profile maintenance. Each wrapper classifies the problem types it
// understands into domain results and passes every other failure through
// unchanged.
package users

import (
	"context"
	"net/http"
	"time"

	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/logging"
)

// Requester executes a described HTTP exchange. Implemented by *api.Client.
type Requester interface {
	Execute(ctx context.Context, req api.Request) (*api.Response, error)
}

// SessionWriter receives the credential extracted from a successful
// registration or authentication. Implemented by *session.Store.
type SessionWriter interface {
	Login(userID, token string, expiry time.Time)
}

// Client exposes the user service operations.
type Client struct {
	api     Requester
	session SessionWriter
	log     logging.Logger
}

func NewClient(apiClient Requester, session SessionWriter, log logging.Logger) *Client {
	if log == nil {
		log = logging.Nop()
	}
	return &Client{api: apiClient, session: session, log: log.With("component", "users")}
}

// CheckUsername reports whether the given username is already registered.
// The unknown-user problem is absorbed into false; every other failure is
// returned unchanged.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	c.log.Debug(ctx, "checking username", "username", username)

	_, err := c.api.Execute(ctx, api.Request{
		URL:       "/usernames/{username}",
		URLParams: map[string]string{"username": username},
		Method:    http.MethodGet,
	})
	if err != nil {
		if _, ok := isProblemOfType(err, ProblemUnknownUser); ok {
			c.log.Debug(ctx, "username not registered", "username", username)
			return false, nil
		}
		c.log.Error(ctx, "checking username failed", "username", username, "error", err)
		return false, err
	}

	c.log.Debug(ctx, "username registered", "username", username)
	return true, nil
}

// Register creates a new user. On success the issued token is committed to
// the session store and the plain user details are returned. A
// validation-error problem is returned as *api.ValidationErrors.
func (c *Client) Register(ctx context.Context, details RegistrationDetails) (*User, error) {
	c.log.Debug(ctx, "registering user", "username", details.Username)

	resp, err := c.api.Execute(ctx, api.Request{
		URL:    "/users",
		Method: http.MethodPost,
		Body:   details,
	})
	if err != nil {
		c.log.Debug(ctx, "registration failed", "username", details.Username, "error", err)
		return nil, classifyValidation(err)
	}

	return c.startSession(ctx, resp)
}

// Authenticate attempts to log in with the given credentials. On success the
// issued token is committed to the session store. A login_failure problem is
// returned as ErrLoginFailure.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*User, error) {
	c.log.Debug(ctx, "authenticating", "username", creds.Username)

	resp, err := c.api.Execute(ctx, api.Request{
		URL:    "/login",
		Method: http.MethodPost,
		Body:   creds,
	})
	if err != nil {
		if _, ok := isProblemOfType(err, ProblemLoginFailure); ok {
			c.log.Debug(ctx, "login failure", "username", creds.Username)
			return nil, ErrLoginFailure
		}
		c.log.Error(ctx, "authentication failed", "username", creds.Username, "error", err)
		return nil, err
	}

	return c.startSession(ctx, resp)
}

// GetUserByID loads the user record with the given ID. forceReload bypasses
// any intermediary caches.
func (c *Client) GetUserByID(ctx context.Context, userID string, forceReload bool) (*User, error) {
	c.log.Debug(ctx, "loading user", "user_id", userID)

	resp, err := c.api.Execute(ctx, api.Request{
		URL:         "/users/{userId}",
		URLParams:   map[string]string{"userId": userID},
		Method:      http.MethodGet,
		ForceReload: forceReload,
	})
	if err != nil {
		return nil, err
	}

	var user User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// userPatch describes the fields that can be changed on a user record.
// Pointers distinguish "leave unchanged" from "set to empty" in the
// merge-patch document.
type userPatch struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (c *Client) patchUser(ctx context.Context, userID string, patch userPatch) (*User, error) {
	resp, err := c.api.Execute(ctx, api.Request{
		URL:       "/users/{userId}",
		URLParams: map[string]string{"userId": userID},
		Method:    http.MethodPatch,
		Headers:   map[string]string{"Content-Type": "application/merge-patch+json"},
		Body:      patch,
	})
	if err != nil {
		c.log.Debug(ctx, "updating user failed", "user_id", userID, "error", err)
		return nil, classifyValidation(err)
	}

	var user User
	if err := resp.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the email address and display name of the given
// user. A validation-error problem is returned as *api.ValidationErrors.
func (c *Client) UpdateProfile(ctx context.Context, userID, email, displayName string) (*User, error) {
	c.log.Debug(ctx, "updating profile", "user_id", userID)
	return c.patchUser(ctx, userID, userPatch{Email: &email, DisplayName: &displayName})
}

// ChangePassword changes the password of the given user.
func (c *Client) ChangePassword(ctx context.Context, userID, password string) (*User, error) {
	c.log.Debug(ctx, "changing password", "user_id", userID)
	return c.patchUser(ctx, userID, userPatch{Password: &password})
}

// startSession decodes an AuthenticatedUser response, commits the token to
// the session store, and returns the user with the token stripped.
func (c *Client) startSession(ctx context.Context, resp *api.Response) (*User, error) {
	var authenticated AuthenticatedUser
	if err := resp.Decode(&authenticated); err != nil {
		return nil, err
	}

	if c.session != nil {
		c.session.Login(authenticated.ID, authenticated.AccessToken.Token, authenticated.AccessToken.Expiry)
	}

	c.log.Info(ctx, "authenticated", "user_id", authenticated.ID, "username", authenticated.Username)

	user := authenticated.User
	return &user, nil
}
