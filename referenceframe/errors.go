package referenceframe

import (
	"fmt"
	"time"
)

// A LookupError indicates that one of the frames in a transform request is
// not known to the gateway.
type LookupError struct {
	Frame string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("no transform available: frame %q is not in the frame system", e.Frame)
}

// A ConnectivityError indicates that two frames exist but no chain of
// transforms connects them.
type ConnectivityError struct {
	Target, Source string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("frames %q and %q are not connected", e.Target, e.Source)
}

// An ExtrapolationError indicates that a transform was requested for a time
// outside the gateway's recorded history.
type ExtrapolationError struct {
	Frame string
	At    time.Time
}

func (e *ExtrapolationError) Error() string {
	return fmt.Sprintf("transform for frame %q at %v would require extrapolation beyond recorded history", e.Frame, e.At)
}

// IsTransformError reports whether the given error is one of the typed
// transform failures a gateway can return.
func IsTransformError(err error) bool {
	switch err.(type) {
	case *LookupError, *ConnectivityError, *ExtrapolationError:
		return true
	default:
		return false
	}
}
