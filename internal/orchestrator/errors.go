package orchestrator

import "errors"

// PreconditionError is returned synchronously at submission time, before a
// job record is created. NotFound distinguishes a missing target entity
// from an entity in the wrong state.
type PreconditionError struct {
	message  string
	notFound bool
}

func (e *PreconditionError) Error() string {
	return e.message
}

// NotFound reports whether the precondition failed because the target
// entity does not exist.
func (e *PreconditionError) NotFound() bool {
	return e.notFound
}

func notFound(message string) *PreconditionError {
	return &PreconditionError{message: message, notFound: true}
}

func rejected(message string) *PreconditionError {
	return &PreconditionError{message: message}
}

// AsPrecondition unwraps a PreconditionError if err carries one.
func AsPrecondition(err error) (*PreconditionError, bool) {
	var perr *PreconditionError
	if errors.As(err, &perr) {
		return perr, true
	}
	return nil, false
}
