package willingbox

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhase   = errors.New("operation not allowed in current phase")
	ErrLocked         = errors.New("willing box is locked")
	ErrConflict       = errors.New("pairing already has an active willing box")
	ErrBoxNotFound    = errors.New("willing box not found")
	ErrScoreNotFound  = errors.New("weekly score not found")
	ErrNotParticipant = errors.New("user is not a partner in this pairing")
)

// ValidationError reports a malformed submission. It carries a reason
// the caller can surface to the user for re-prompting.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
