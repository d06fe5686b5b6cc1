package uifind

import "errors"

// NotFoundError means that no element matched a lookup.
type NotFoundError struct {
	// Description names the selector or collection that was searched.
	Description string
}

func (e *NotFoundError) Error() string {
	return "no matching element: " + e.Description
}

// IsNotFound returns true if err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
