package repository

import "fmt"

// NotFoundError reports a symbol absent from the catalog. It carries the
// valid symbol list so callers can surface alternatives. Recoverable.
type NotFoundError struct {
	Symbol string
	Valid  []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("symbol %q not found in catalog", e.Symbol)
}

// InvalidArgumentError reports a rejected parameter. The operation consumed
// no random state before returning it.
type InvalidArgumentError struct {
	Param  string
	Value  int
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", e.Param, e.Value, e.Reason)
}
