package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel conditions reported by the workflow.  ErrNothingChanged is
// not a fault: an edit with zero changed fields must surface as a
// notice, never as an error alert, and must not reach the network.
var (
	ErrNothingChanged       = errors.New("nothing changed")
	ErrConfirmationRequired = errors.New("deletion requires explicit confirmation")
	ErrSubmissionInFlight   = errors.New("a submission is already in flight")
	ErrStaleResponse        = errors.New("stale response discarded")
	ErrTableNotAvailable    = errors.New("table is not part of the loaded set")
	ErrWrongState           = errors.New("operation not allowed in current state")
)

// ValidationError reports which draft fields are missing or invalid.
// It is resolved locally; a draft that fails validation never produces
// a network call.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reservation draft: %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
