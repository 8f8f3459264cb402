package grizzly

import "fmt"

// ValueError is raised for a value that is structurally fine but
// semantically wrong in context: a containment tuple whose arity doesn't
// match the current projection, or a loc/at lookup against a dataframe with
// no index column set.
type ValueError struct {
	Msg string
}

func (e *ValueError) Error() string { return e.Msg }

func newValueError(format string, args ...any) *ValueError {
	return &ValueError{Msg: fmt.Sprintf(format, args...)}
}

// TypeError is raised when a containment literal's Go type conflicts with
// the target column's ColType (e.g. a string literal against a NUMERIC
// column).
type TypeError struct {
	Msg string
}

func (e *TypeError) Error() string { return e.Msg }

func newTypeError(format string, args ...any) *TypeError {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

// ExecutorError wraps an error returned by the registered Executor during a
// sink operation. The underlying error is surfaced unchanged via Unwrap.
type ExecutorError struct {
	Err error
}

func (e *ExecutorError) Error() string { return "grizzly: executor: " + e.Err.Error() }
func (e *ExecutorError) Unwrap() error { return e.Err }
