// Package frpparty is a push/pull functional reactive programming runtime:
// behaviors are values that vary over time, streams are discrete occurrences,
// futures are occurrences that happen at most once. Nodes activate themselves
// when the first observer arrives, release their upstream subscriptions when
// the last one leaves, and negotiate per-edge whether values are pushed down
// or pulled on demand.
//
// Propagation is single-threaded and cooperative. Each externally-initiated
// push is stamped with a fresh tick and fans out depth-first before control
// returns to the initiator.
package frpparty

import "github.com/delaneyj/frpparty/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// GraphError marks a programming error against the graph: sampling an
// unreplaced placeholder, replacing one twice, or sampling a push behavior
// that never produced a value. These panic and are never recovered by the
// runtime.
type GraphError = internal.GraphError

var (
	ErrPlaceholder   = internal.ErrPlaceholder
	ErrReplacedTwice = internal.ErrReplacedTwice
	ErrMissingLast   = internal.ErrMissingLast
	ErrNotPushing    = internal.ErrNotPushing
)

// Timer is the platform clock used by delay, throttle, debounce and
// integrate. Tests install a manual implementation via SetTimer.
type Timer = internal.Timer

// SetTimer swaps the platform clock of the calling goroutine's runtime.
func SetTimer(t Timer) {
	internal.GetRuntime().SetTimer(t)
}

// Subscription is the handle held by an external observer.
type Subscription struct {
	sub *internal.Subscription
}

// Deactivate removes the observer. Dropping the last observer of a reactive
// deactivates it and releases its upstream resources.
func (s *Subscription) Deactivate() { s.sub.Deactivate() }

type streamKinded interface{ streamKind() }
type behaviorKinded interface{ behaviorKind() }
type futureKinded interface{ futureKind() }

// IsStream reports whether v is a stream of any element type.
func IsStream(v any) bool {
	_, ok := v.(streamKinded)
	return ok
}

// IsBehavior reports whether v is a behavior of any element type.
func IsBehavior(v any) bool {
	_, ok := v.(behaviorKinded)
	return ok
}

// IsFuture reports whether v is a future of any element type.
func IsFuture(v any) bool {
	_, ok := v.(futureKinded)
	return ok
}
