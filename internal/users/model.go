package users

import "time"

// User is the representation of a user as held by the client.
type User struct {
	// ID is the user's unique identifier.
	ID string `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// DisplayName is the name shown to other users.
	DisplayName string `json:"displayName"`
	// Email is the user's email address.
	Email string `json:"email"`
}

// AccessToken is the credential issued on successful registration or
// authentication. Expiry is an ISO-8601 timestamp on the wire.
type AccessToken struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}

// AuthenticatedUser is the wire format of a user that has just registered or
// authenticated. It only exists at the API boundary: the token is committed
// to the session store and the rest is returned as a plain User.
type AuthenticatedUser struct {
	User
	AccessToken AccessToken `json:"accessToken"`
}

// Credentials are the inputs to an authentication attempt. The password is
// sent on the single request and never retained.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegistrationDetails are the inputs to a registration attempt.
type RegistrationDetails struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}
