package frpparty

import (
	"time"

	"github.com/delaneyj/frpparty/internal"
)

// Stream is a typed handle on a discrete-event reactive.
type Stream[A any] struct {
	c *internal.Stream
}

func (s *Stream[A]) core() *internal.Stream { return s.c }

func (s *Stream[A]) streamKind() {}

// StreamLike is anything usable where a stream is expected; placeholders
// qualify before they are replaced.
type StreamLike[A any] interface {
	core() *internal.Stream
}

func wrapS[A any](c *internal.Stream) *Stream[A] {
	return &Stream[A]{c}
}

// Subscribe registers cb for every occurrence and activates the stream.
func (s *Stream[A]) Subscribe(cb func(A)) *Subscription {
	rt := internal.GetRuntime()
	obs := internal.NewStreamObserver(func(v any) { cb(as[A](v)) })
	n := internal.NewNode(obs)
	s.c.AddListener(n, rt.Now())
	return &Subscription{internal.NewSubscription(s.c, n)}
}

// SinkStream is a stream with an external push operation.
type SinkStream[A any] struct {
	*Stream[A]
	sink *internal.SinkStream
}

// SinkS creates a sink stream.
func SinkS[A any]() *SinkStream[A] {
	c := internal.NewSinkStream()
	return &SinkStream[A]{wrapS[A](&c.Stream), c}
}

// Push feeds one occurrence into the graph as a fresh tick.
func (s *SinkStream[A]) Push(v A) { s.sink.Push(v) }

// Empty is the stream with no occurrences.
func Empty[A any]() *Stream[A] {
	c := internal.NewEmptyStream()
	return wrapS[A](&c.Stream)
}

// ProducerS wraps an external occurrence source. activate runs when the first
// listener arrives and must return the deactivator invoked when the last one
// leaves.
func ProducerS[A any](activate func(push func(A)) (deactivate func())) *Stream[A] {
	c := internal.NewProducerStream(func(push func(any)) func() {
		return activate(func(v A) { push(v) })
	})
	return wrapS[A](&c.Stream)
}

// MapS transforms every occurrence with f.
func MapS[A, B any](f func(A) B, s StreamLike[A]) *Stream[B] {
	c := internal.NewMapStream(func(v any) any { return f(as[A](v)) }, s.core())
	return wrapS[B](&c.Stream)
}

// MapToS replaces every occurrence with v.
func MapToS[A, B any](v B, s StreamLike[A]) *Stream[B] {
	c := internal.NewMapStream(func(any) any { return v }, s.core())
	return wrapS[B](&c.Stream)
}

// Filter keeps occurrences matching p.
func Filter[A any](p func(A) bool, s StreamLike[A]) *Stream[A] {
	c := internal.NewFilterStream(func(v any) bool { return p(as[A](v)) }, s.core())
	return wrapS[A](&c.Stream)
}

// FilterApply keeps occurrences matching the predicate behavior sampled at
// the occurrence tick.
func FilterApply[A any](p BehaviorLike[func(A) bool], s StreamLike[A]) *Stream[A] {
	c := internal.NewFilterApplyStream(p.core(), func(pred, v any) bool {
		return as[func(A) bool](pred)(as[A](v))
	}, s.core())
	return wrapS[A](&c.Stream)
}

// KeepWhen keeps occurrences while the boolean behavior is true.
func KeepWhen[A any](b BehaviorLike[bool], s StreamLike[A]) *Stream[A] {
	c := internal.NewFilterApplyStream(b.core(), func(pred, _ any) bool {
		return as[bool](pred)
	}, s.core())
	return wrapS[A](&c.Stream)
}

// ScanS folds occurrences into a running accumulator stream.
func ScanS[A, B any](f func(A, B) B, initial B, s StreamLike[A]) *Stream[B] {
	c := internal.NewScanSStream(func(v, acc any) any {
		return f(as[A](v), as[B](acc))
	}, initial, s.core())
	return wrapS[B](&c.Stream)
}

// Merge interleaves two streams.
func Merge[A any](a, b StreamLike[A]) *Stream[A] {
	return Combine[A](a, b)
}

// Combine interleaves any number of streams.
func Combine[A any](ss ...StreamLike[A]) *Stream[A] {
	parents := make([]internal.Parent, len(ss))
	for i, s := range ss {
		parents[i] = s.core()
	}
	c := internal.NewCombineStream(parents...)
	return wrapS[A](&c.Stream)
}

// Split partitions a stream by p: the first result carries matching
// occurrences, the second the rest.
func Split[A any](p func(A) bool, s StreamLike[A]) (*Stream[A], *Stream[A]) {
	return Filter(p, s), Filter(func(v A) bool { return !p(v) }, s)
}

// Snapshot samples b at each occurrence of s and emits the sampled value.
func Snapshot[A, B any](b BehaviorLike[B], s StreamLike[A]) *Stream[B] {
	c := internal.NewSnapshotStream(func(_, bv any) any { return bv }, b.core(), s.core())
	return wrapS[B](&c.Stream)
}

// SnapshotWith samples b at each occurrence of s and emits f(occurrence,
// sample).
func SnapshotWith[A, B, C any](f func(A, B) C, b BehaviorLike[B], s StreamLike[A]) *Stream[C] {
	c := internal.NewSnapshotStream(func(v, bv any) any {
		return f(as[A](v), as[B](bv))
	}, b.core(), s.core())
	return wrapS[C](&c.Stream)
}

// Delay re-emits every occurrence after d.
func Delay[A any](d time.Duration, s StreamLike[A]) *Stream[A] {
	c := internal.NewDelayStream(d, s.core())
	return wrapS[A](&c.Stream)
}

// Throttle emits an occurrence and then silences the stream for d.
func Throttle[A any](d time.Duration, s StreamLike[A]) *Stream[A] {
	c := internal.NewThrottleStream(d, s.core())
	return wrapS[A](&c.Stream)
}

// Debounce emits the most recent occurrence once the stream has been quiet
// for d.
func Debounce[A any](d time.Duration, s StreamLike[A]) *Stream[A] {
	c := internal.NewDebounceStream(d, s.core())
	return wrapS[A](&c.Stream)
}

// SwitchStream follows the stream currently held by b, re-wiring itself on
// every change.
func SwitchStream[A any](b BehaviorLike[*Stream[A]]) *Stream[A] {
	c := internal.NewSwitchStream(b.core(), func(v any) *internal.Stream {
		return v.(*Stream[A]).c
	})
	return wrapS[A](&c.Stream)
}
