package users

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/universeproject/client-go/internal/api"
)

// Problem type URIs the service uses for the failures this client
// understands. Anything else stays an opaque *api.ProblemResponse.
const (
	ProblemUnknownUser     = "tag:universe,2020:users/problems/unknown-user"
	ProblemValidationError = "tag:universe,2020:problems/validation-error"
	ProblemLoginFailure    = "tag:universe,2020:users/problems/login_failure"
)

// ErrLoginFailure indicates the credentials were wrong. It carries no
// payload; matched with errors.Is.
var ErrLoginFailure = errors.New("login failure")

// isProblemOfType reports whether err is a problem response with the given
// type URI, returning the problem when it is.
func isProblemOfType(err error, problemType string) (*api.ProblemResponse, bool) {
	var pr *api.ProblemResponse
	if errors.As(err, &pr) && pr.Problem.Type == problemType {
		return pr, true
	}
	return nil, false
}

// validationErrors decodes the errors member of a validation-error problem.
func validationErrors(pr *api.ProblemResponse) (*api.ValidationErrors, error) {
	raw, ok := pr.Problem.Extensions["errors"]
	if !ok {
		return nil, fmt.Errorf("validation-error problem has no errors member")
	}
	var errs []api.ValidationError
	if err := json.Unmarshal(raw, &errs); err != nil {
		return nil, fmt.Errorf("decoding validation errors: %w", err)
	}
	return api.NewValidationErrors(errs), nil
}

// classifyValidation maps a validation-error problem to *api.ValidationErrors
// and leaves every other error untouched. Registration and profile updates
// share this mapping.
func classifyValidation(err error) error {
	pr, ok := isProblemOfType(err, ProblemValidationError)
	if !ok {
		return err
	}
	ve, verr := validationErrors(pr)
	if verr != nil {
		// A malformed validation problem is not actionable per field;
		// surface the original problem instead.
		return err
	}
	return ve
}
