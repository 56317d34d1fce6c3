package commonerrors

import (
	"errors"
	"strings"
)

// ValidationErrors carries the full set of human-readable messages for a
// rejected payload. Messages are collected and returned wholesale, never
// partially applied.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, ", ")
}

func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
