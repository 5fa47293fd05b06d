// Package session holds the authenticated user's identity and access token
// for the lifetime of the client process. Nothing here is ever written to
// durable storage.
package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/universeproject/client-go/internal/logging"
)

// Store is the in-memory session. It is constructed once by the composition
// root and shared by the HTTP layer (as its token source) and the domain
// layer (which commits successful logins into it).
//
// The store performs no locking: the client is driven by a single goroutine,
// and a second Login or Logout simply overwrites the previous state.
type Store struct {
	userID string
	token  string
	expiry time.Time
	log    logging.Logger
}

func New(log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{log: log.With("component", "session")}
}

// Login records the authenticated user and their access token. From this
// point the HTTP layer attaches the token as a bearer credential. When the
// server response carried no expiry, the token's own exp claim is used as a
// display hint instead.
func (s *Store) Login(userID, token string, expiry time.Time) {
	if expiry.IsZero() {
		expiry = expiryFromToken(token)
	}
	s.userID = userID
	s.token = token
	s.expiry = expiry
	s.log.Info(context.Background(), "session started", "user_id", userID, "expiry", expiry)
}

// Logout clears the session; the HTTP layer stops attaching a bearer header.
func (s *Store) Logout() {
	s.userID = ""
	s.token = ""
	s.expiry = time.Time{}
	s.log.Info(context.Background(), "session ended")
}

func (s *Store) IsLoggedIn() bool {
	return s.userID != ""
}

func (s *Store) UserID() string {
	return s.userID
}

// Token implements api.TokenSource. Empty when no session is held.
func (s *Store) Token() string {
	return s.token
}

// ExpiresAt reports when the held token expires; zero when unknown or when
// no session is held.
func (s *Store) ExpiresAt() time.Time {
	return s.expiry
}

// expiryFromToken recovers the expiry from the token's JWT exp claim. The
// token is parsed without signature verification: the client holds no signing
// key, and the value is only a hint for display, never a security decision.
func expiryFromToken(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
