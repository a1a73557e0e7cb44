package graph

import (
	"errors"
	"fmt"
)

// ErrNoFunctions is returned when not a single function could be extracted from a unit
var ErrNoFunctions = errors.New("no functions found")

// NotFoundError reports a missing function or unit
type NotFoundError struct {
	Kind string // "function", "unit" or "node"
	Name string
	In   string
}

func (e *NotFoundError) Error() string {
	if e.In == "" {
		return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s '%s' not found in %s", e.Kind, e.Name, e.In)
}

// IsNotFound returns true if err wraps NotFoundError
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
