package ddi

import (
	"fmt"
	"strings"
)

// ResultError is a non-success Result returned by a driver entry point.
type ResultError struct {
	Code Result
	Call string
	File string
	Line int
}

func (e *ResultError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s returned %s", e.File, e.Line, e.Call, e.Code)
	}
	return fmt.Sprintf("%s returned %s", e.Call, e.Code)
}

func (e *ResultError) Unwrap() error { return e.Code }

// IncompleteError lists the entries left null in a mandatory group.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIncomplete, strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// BuildError names the first mandatory group that failed to populate.
type BuildError struct {
	API   string
	Group string
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: group %s.%s: %s", ErrBuildFailed, e.API, e.Group, e.Err)
}

func (e *BuildError) Unwrap() []error { return []error{ErrBuildFailed, e.Err} }
