package geoshift

import (
	"errors"
	"fmt"
)

// InputError is the validation error kind shared by every operation in this
// package. Rejected inputs (non-finite or out-of-range coordinates, malformed
// tuples, unsupported system tags, bad distance or bearing arguments, empty
// point sets) all surface as an *InputError carrying a descriptive reason.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "geoshift: " + e.Reason
}

func inputErrorf(format string, args ...any) *InputError {
	return &InputError{Reason: fmt.Sprintf(format, args...)}
}

// ErrNoConvergence reports that the iterative GCJ02 to WGS84 inverse did not
// reach its tolerance within the iteration cap. Inputs that pass validation
// are not expected to trigger it.
var ErrNoConvergence = errors.New("geoshift: inverse transform did not converge")
