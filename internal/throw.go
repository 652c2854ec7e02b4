package internal

import (
	"fmt"

	"github.com/pkg/errors"
)

// Threading errors through every recursive step of segment insertion and
// polygon retriangulation would add a ton of noise to the code. Instead, the
// kernel panics with a *MeshError, and the public API recovers and converts it
// into an ordinary error.

type ErrorKind int

const (
	// Bad input: too few points, collinear input, invalid indices, parallel
	// segments presented as crossing.
	ConfigurationError ErrorKind = iota
	// The mesh reached a state that should be impossible for a valid PSLG. This
	// means either a malformed input slipped through, or a library defect.
	TopologyError
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration error"
	case TopologyError:
		return "topology error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

type MeshError struct {
	Kind  ErrorKind
	cause error
}

func (e *MeshError) Error() string {
	return e.cause.Error()
}

func (e *MeshError) Cause() error {
	return e.cause
}

func (e *MeshError) Unwrap() error {
	return e.cause
}

// Format keeps the stack trace of the wrapped pkg/errors value available
// through %+v.
func (e *MeshError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.Kind, e.cause)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Panic with a configuration error.
func fatalf(format string, args ...interface{}) {
	panic(&MeshError{ConfigurationError, errors.Errorf(format, args...)})
}

// Panic with a topology error.
func topologyf(format string, args ...interface{}) {
	panic(&MeshError{TopologyError, errors.Errorf(format, args...)})
}

func HandlePanicRecover(r interface{}) error {
	if r != nil {
		if meshError, ok := r.(*MeshError); ok {
			return meshError
		}
		panic(r)
	}
	return nil
}

func IsConfigurationError(err error) bool {
	return kindOf(err) == ConfigurationError
}

func IsTopologyError(err error) bool {
	return kindOf(err) == TopologyError
}

func kindOf(err error) ErrorKind {
	var meshError *MeshError
	if errors.As(err, &meshError) {
		return meshError.Kind
	}
	return -1
}
