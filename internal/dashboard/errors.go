package dashboard

import (
	"errors"
	"fmt"
)

// Error codes for rejected control input. E201 (inverted range) is carried
// by chart.RangeError.
const (
	ErrCodeUnknownSite    = "E202" // Site not in dataset and not ALL
	ErrCodeOutOfBounds    = "E203" // Range outside dataset payload bounds
	ErrCodeUnknownControl = "E204" // No such control id
	ErrCodeBadValue       = "E205" // Control value has the wrong shape
)

// StateError reports control input that cannot become a ControlState.
type StateError struct {
	Code    string
	Control string
	Message string
}

func (e *StateError) Error() string {
	if e.Control != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Control, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsStateError returns true if err is or wraps a *StateError.
func IsStateError(err error) bool {
	var se *StateError
	return errors.As(err, &se)
}

// ErrSessionNotFound is returned when a session id is unknown or evicted.
var ErrSessionNotFound = errors.New("session not found")
