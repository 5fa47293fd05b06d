package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_expandURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]string
		want     string
	}{
		{
			name:     "no placeholders",
			template: "/login",
			params:   nil,
			want:     "/login",
		},
		{
			name:     "path placeholder",
			template: "/usernames/{username}",
			params:   map[string]string{"username": "testuser"},
			want:     "/usernames/testuser",
		},
		{
			name:     "path placeholder escapes reserved characters",
			template: "/usernames/{username}",
			params:   map[string]string{"username": "user name"},
			want:     "/usernames/user%20name",
		},
		{
			name:     "query placeholder with value",
			template: "/users{?page}",
			params:   map[string]string{"page": "2"},
			want:     "/users?page=2",
		},
		{
			name:     "query placeholder without value is omitted",
			template: "/users{?page}",
			params:   nil,
			want:     "/users",
		},
		{
			name:     "mixed path and query",
			template: "/users/{userId}{?expand}",
			params:   map[string]string{"userId": "u1"},
			want:     "/users/u1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := expandURL(tc.template, tc.params)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_expandURL_MissingPathParam(t *testing.T) {
	_, err := expandURL("/usernames/{username}", nil)
	require.ErrorIs(t, err, ErrMissingURLParam)

	_, err = expandURL("/users/{userId}{?page}", map[string]string{"page": "1"})
	require.ErrorIs(t, err, ErrMissingURLParam)
}

func Test_simpleVars(t *testing.T) {
	assert.Equal(t, []string{"userId"}, simpleVars("/users/{userId}{?page,size}"))
	assert.Equal(t, []string{"a", "b"}, simpleVars("/x/{a}/y/{b}"))
	assert.Nil(t, simpleVars("/users{?page}"))
}
