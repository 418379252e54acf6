package internal

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// GraphError marks a programming error against the graph. The runtime never
// recovers these; they unwind the tick that triggered them.
type GraphError struct {
	Kind string
	Code int64
	Msg  string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newGraphError(kind, msg string) *GraphError {
	return &GraphError{
		Kind: kind,
		Code: int64(xxhash.Sum64String(kind) & 0x7fffffffffffffff),
		Msg:  msg,
	}
}

var (
	// ErrPlaceholder is raised when a placeholder is sampled before ReplaceWith.
	ErrPlaceholder = newGraphError("placeholder", "placeholder sampled before it was replaced")
	// ErrReplacedTwice is raised on a second ReplaceWith.
	ErrReplacedTwice = newGraphError("placeholder", "placeholder replaced twice")
	// ErrMissingLast is raised when a push-state behavior is sampled before it
	// ever produced a value.
	ErrMissingLast = newGraphError("state invariant violation", "push behavior sampled before its first value")
	// ErrNotPushing is raised when Subscribe is used on a behavior that must
	// be pulled; use Observe with pull hooks instead.
	ErrNotPushing = newGraphError("state invariant violation", "subscribe requires a push behavior; use Observe")
)
