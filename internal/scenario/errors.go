package scenario

import (
	"errors"
	"fmt"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidAction    = errors.New("invalid action")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidParameter = errors.New("invalid parameter value")
	// ErrInvalidTimeDelta rejects a wait step that does not move time forward
	ErrInvalidTimeDelta = errors.New("invalid time delta")
)

// ParameterError names the step parameter that failed validation
type ParameterError struct {
	Parameter string
	Message   string
	Err       error
}

func (e *ParameterError) Error() string {
	msg := fmt.Sprintf("step parameter %q: %s", e.Parameter, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParameterError) Unwrap() error { return e.Err }
