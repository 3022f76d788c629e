package sat

import (
	"fmt"
	"strings"
)

// OutOfRangeError reports an operation referencing a literal whose
// variable was never registered with the solver. The instance
// remains usable after the failed operation.
type OutOfRangeError Lit

func (e OutOfRangeError) Error() string {
	return fmt.Sprintf("literal %s references an unregistered variable", Lit(e))
}

// ConfigError reports an unusable solver configuration, surfaced at
// construction and fatal to the instance.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

// InternalErrors aggregates invariant violations detected during a
// solver's lifetime. A non-empty value means the instance should not
// be reused; it is surfaced through Sane rather than by panicking.
type InternalErrors []error

func (e InternalErrors) Error() string {
	if len(e) == 0 {
		return "internal solver failure"
	}
	s := make([]string, len(e))
	for i, err := range e {
		s[i] = err.Error()
	}
	return fmt.Sprintf("%d internal errors: %s", len(s), strings.Join(s, ", "))
}
