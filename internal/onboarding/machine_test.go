package onboarding

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/universeproject/client-go/internal/api"
	"github.com/universeproject/client-go/internal/users"
)

// fakeUsers implements usersAPI with canned results. The During* hooks run
// while the "network call" is in flight, to exercise reentrant behavior.
type fakeUsers struct {
	CheckExists bool
	CheckErr    error
	DuringCheck func()

	RegisterUser *users.User
	RegisterErr  error

	AuthUser   *users.User
	AuthErr    error
	DuringAuth func()

	LastChecked string
}

func (f *fakeUsers) CheckUsername(ctx context.Context, username string) (bool, error) {
	f.LastChecked = username
	if f.DuringCheck != nil {
		f.DuringCheck()
	}
	return f.CheckExists, f.CheckErr
}

func (f *fakeUsers) Register(ctx context.Context, details users.RegistrationDetails) (*users.User, error) {
	return f.RegisterUser, f.RegisterErr
}

func (f *fakeUsers) Authenticate(ctx context.Context, creds users.Credentials) (*users.User, error) {
	if f.DuringAuth != nil {
		f.DuringAuth()
	}
	return f.AuthUser, f.AuthErr
}

func validationFailure() error {
	return api.NewValidationErrors([]api.ValidationError{
		{Field: "email", Type: "tag:universe,2020:users/validation-errors/email/duplicate"},
	})
}

func TestMachine_StartsInitial(t *testing.T) {
	m := NewMachine(&fakeUsers{}, nil)

	assert.Equal(t, StateInitial, m.State())
	assert.Empty(t, m.Username())
	assert.Empty(t, m.Err())
	assert.False(t, m.Loading())
}

func TestMachine_CheckUsername(t *testing.T) {
	tests := []struct {
		name      string
		exists    bool
		err       error
		wantState State
		wantUser  string
		wantErr   bool
	}{
		{
			name:      "existing username moves to authenticating",
			exists:    true,
			wantState: StateAuthenticating,
			wantUser:  "testuser",
		},
		{
			name:      "unknown username moves to registering",
			exists:    false,
			wantState: StateRegistering,
			wantUser:  "testuser",
		},
		{
			name:      "unexpected failure returns to initial with error",
			err:       &api.UnexpectedHTTPError{Status: http.StatusInternalServerError},
			wantState: StateInitial,
			wantErr:   true,
		},
		{
			name:      "transport failure returns to initial with error",
			err:       &api.TransportError{Err: errors.New("connection refused")},
			wantState: StateInitial,
			wantErr:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine(&fakeUsers{CheckExists: tc.exists, CheckErr: tc.err}, nil)

			m.CheckUsername(context.Background(), "testuser")

			assert.Equal(t, tc.wantState, m.State())
			assert.Equal(t, tc.wantUser, m.Username())
			assert.False(t, m.Loading())
			if tc.wantErr {
				assert.NotEmpty(t, m.Err())
			} else {
				assert.Empty(t, m.Err())
			}
		})
	}
}

func TestMachine_CheckUsername_ClearsPreviousError(t *testing.T) {
	fake := &fakeUsers{CheckErr: errors.New("boom")}
	m := NewMachine(fake, nil)

	m.CheckUsername(context.Background(), "testuser")
	require.NotEmpty(t, m.Err())

	fake.CheckErr = nil
	fake.CheckExists = true
	m.CheckUsername(context.Background(), "testuser")

	assert.Empty(t, m.Err())
	assert.Equal(t, StateAuthenticating, m.State())
}

func TestMachine_Register(t *testing.T) {
	user := &users.User{ID: "u1", Username: "testuser"}

	t.Run("success resets the flow", func(t *testing.T) {
		fake := &fakeUsers{CheckExists: false, RegisterUser: user}
		m := NewMachine(fake, nil)
		m.CheckUsername(context.Background(), "testuser")
		require.Equal(t, StateRegistering, m.State())

		result := m.Register(context.Background(), users.RegistrationDetails{Username: "testuser"})

		success, ok := result.(Success)
		require.True(t, ok, "expected Success, got %T", result)
		assert.Equal(t, user, success.User)
		assert.Equal(t, StateInitial, m.State())
		assert.Empty(t, m.Err())
		assert.False(t, m.Loading())
	})

	t.Run("validation failure is returned, global error untouched", func(t *testing.T) {
		fake := &fakeUsers{RegisterErr: validationFailure()}
		m := NewMachine(fake, nil)

		result := m.Register(context.Background(), users.RegistrationDetails{})

		vf, ok := result.(ValidationFailure)
		require.True(t, ok, "expected ValidationFailure, got %T", result)
		assert.Len(t, vf.Errors.ErrorsForField("email"), 1)
		assert.Empty(t, m.Err())
		assert.False(t, m.Loading())
	})

	t.Run("other failure sets global error", func(t *testing.T) {
		fake := &fakeUsers{RegisterErr: &api.UnexpectedHTTPError{Status: http.StatusBadGateway}}
		m := NewMachine(fake, nil)

		result := m.Register(context.Background(), users.RegistrationDetails{})

		failure, ok := result.(Failure)
		require.True(t, ok, "expected Failure, got %T", result)
		assert.Equal(t, failure.Message, m.Err())
		assert.False(t, m.Loading())
	})
}

func TestMachine_Authenticate(t *testing.T) {
	user := &users.User{ID: "u1", Username: "testuser"}

	t.Run("success resets the flow", func(t *testing.T) {
		fake := &fakeUsers{CheckExists: true, AuthUser: user}
		m := NewMachine(fake, nil)
		m.CheckUsername(context.Background(), "testuser")
		require.Equal(t, StateAuthenticating, m.State())

		result := m.Authenticate(context.Background(), users.Credentials{Username: "testuser", Password: "Pa55word"})

		success, ok := result.(Success)
		require.True(t, ok, "expected Success, got %T", result)
		assert.Equal(t, user, success.User)
		assert.Equal(t, StateInitial, m.State())
	})

	t.Run("wrong credentials return AuthFailure, global error untouched", func(t *testing.T) {
		fake := &fakeUsers{CheckExists: true, AuthErr: users.ErrLoginFailure}
		m := NewMachine(fake, nil)
		m.CheckUsername(context.Background(), "testuser")

		result := m.Authenticate(context.Background(), users.Credentials{Username: "testuser", Password: "wrong"})

		_, ok := result.(AuthFailure)
		require.True(t, ok, "expected AuthFailure, got %T", result)
		assert.Empty(t, m.Err())
		assert.Equal(t, StateAuthenticating, m.State(), "a failed attempt keeps the flow where it was")
	})

	t.Run("other failure sets global error", func(t *testing.T) {
		fake := &fakeUsers{AuthErr: &api.TransportError{Err: errors.New("timeout")}}
		m := NewMachine(fake, nil)

		result := m.Authenticate(context.Background(), users.Credentials{})

		failure, ok := result.(Failure)
		require.True(t, ok, "expected Failure, got %T", result)
		assert.Equal(t, failure.Message, m.Err())
	})
}

func TestMachine_ResetAndCancel(t *testing.T) {
	setups := map[string]func(m *Machine, fake *fakeUsers){
		"from registering": func(m *Machine, fake *fakeUsers) {
			fake.CheckExists = false
			m.CheckUsername(context.Background(), "testuser")
		},
		"from authenticating": func(m *Machine, fake *fakeUsers) {
			fake.CheckExists = true
			m.CheckUsername(context.Background(), "testuser")
		},
		"with error set": func(m *Machine, fake *fakeUsers) {
			fake.CheckErr = errors.New("boom")
			m.CheckUsername(context.Background(), "testuser")
		},
	}

	resets := map[string]func(m *Machine){
		"ResetLogin":  func(m *Machine) { m.ResetLogin() },
		"CancelLogin": func(m *Machine) { m.CancelLogin() },
	}

	for setupName, setup := range setups {
		for resetName, reset := range resets {
			t.Run(setupName+"/"+resetName, func(t *testing.T) {
				fake := &fakeUsers{}
				m := NewMachine(fake, nil)
				setup(m, fake)

				reset(m)

				assert.Equal(t, StateInitial, m.State())
				assert.Empty(t, m.Username())
				assert.Empty(t, m.Err())
				assert.False(t, m.Loading())
			})
		}
	}
}

func TestMachine_BusyGuard(t *testing.T) {
	// A second operation started while one is in flight must be refused and
	// must not disturb the machine. The fake triggers the reentrant call
	// while the first check is "on the wire".
	fake := &fakeUsers{CheckExists: true}
	m := NewMachine(fake, nil)

	var reentrant Result
	fake.DuringCheck = func() {
		fake.DuringCheck = nil
		reentrant = m.Register(context.Background(), users.RegistrationDetails{Username: "other"})
	}

	m.CheckUsername(context.Background(), "testuser")

	_, ok := reentrant.(Busy)
	require.True(t, ok, "expected Busy, got %T", reentrant)
	assert.Equal(t, StateAuthenticating, m.State())
	assert.Equal(t, "testuser", m.Username())
}

func TestMachine_ResetDuringFlightDiscardsStaleResponse(t *testing.T) {
	// Cancelling mid-flight must win over the late response.
	fake := &fakeUsers{CheckExists: true}
	m := NewMachine(fake, nil)

	fake.DuringCheck = func() {
		fake.DuringCheck = nil
		m.CancelLogin()
	}

	m.CheckUsername(context.Background(), "testuser")

	assert.Equal(t, StateInitial, m.State())
	assert.Empty(t, m.Username())
	assert.Empty(t, m.Err())
	assert.False(t, m.Loading())
}
