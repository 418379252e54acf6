package frpparty

import "github.com/delaneyj/frpparty/internal"

// Future is a typed handle on an at-most-once reactive.
type Future[A any] struct {
	c *internal.Future
}

func (f *Future[A]) core() *internal.Future { return f.c }

func (f *Future[A]) futureKind() {}

// FutureLike is anything usable where a future is expected.
type FutureLike[A any] interface {
	core() *internal.Future
}

func wrapF[A any](c *internal.Future) *Future[A] {
	return &Future[A]{c}
}

// Subscribe registers cb for the resolution value. Subscribing after
// resolution fires immediately.
func (f *Future[A]) Subscribe(cb func(A)) *Subscription {
	rt := internal.GetRuntime()
	obs := internal.NewStreamObserver(func(v any) { cb(as[A](v)) })
	n := internal.NewNode(obs)
	f.c.AddListener(n, rt.Now())
	return &Subscription{internal.NewSubscription(f.c, n)}
}

// SinkFuture is resolved externally, once.
type SinkFuture[A any] struct {
	*Future[A]
	sink *internal.SinkFuture
}

// SinkF creates an unresolved future.
func SinkF[A any]() *SinkFuture[A] {
	c := internal.NewSinkFuture()
	return &SinkFuture[A]{wrapF[A](&c.Future), c}
}

// Resolve settles the future as a fresh tick. Further resolves are silently
// ignored.
func (f *SinkFuture[A]) Resolve(v A) { f.sink.ResolveWith(v) }

// FutureOf is already resolved with v.
func FutureOf[A any](v A) *Future[A] {
	return wrapF[A](internal.NewResolvedFuture(v))
}

// Never is settled without ever producing a value.
func Never[A any]() *Future[A] {
	return wrapF[A](internal.NewNeverFuture())
}

// MapF transforms the resolution value with f.
func MapF[A, B any](f func(A) B, fu FutureLike[A]) *Future[B] {
	c := internal.NewMapFuture(func(v any) any { return f(as[A](v)) }, fu.core())
	return wrapF[B](&c.Future)
}

// MapToF replaces the resolution value with v.
func MapToF[A, B any](v B, fu FutureLike[A]) *Future[B] {
	c := internal.NewMapFuture(func(any) any { return v }, fu.core())
	return wrapF[B](&c.Future)
}

// CombineF resolves with whichever future resolves first.
func CombineF[A any](a, b FutureLike[A]) *Future[A] {
	c := internal.NewCombineFuture(a.core(), b.core())
	return wrapF[A](&c.Future)
}

// Lift2F resolves with f over both values once both futures resolved.
func Lift2F[A, B, C any](f func(A, B) C, a FutureLike[A], b FutureLike[B]) *Future[C] {
	c := internal.NewLiftFuture(func(vs []any) any {
		return f(as[A](vs[0]), as[B](vs[1]))
	}, a.core(), b.core())
	return wrapF[C](&c.Future)
}

// Lift3F resolves with f over all three values once all futures resolved.
func Lift3F[A, B, C, D any](f func(A, B, C) D, a FutureLike[A], b FutureLike[B], c FutureLike[C]) *Future[D] {
	l := internal.NewLiftFuture(func(vs []any) any {
		return f(as[A](vs[0]), as[B](vs[1]), as[C](vs[2]))
	}, a.core(), b.core(), c.core())
	return wrapF[D](&l.Future)
}

// FlatMapF selects an inner future from the resolution value and resolves
// when it does.
func FlatMapF[A, B any](f func(A) *Future[B], fu FutureLike[A]) *Future[B] {
	c := internal.NewFlatMapFuture(func(v any) *internal.Future {
		return f(as[A](v)).c
	}, fu.core())
	return wrapF[B](&c.Future)
}

// FromChan bridges a channel: the first received value resolves the future,
// re-entering the graph through the runtime dispatch. A channel closed
// without a value never resolves.
func FromChan[A any](ch <-chan A) *Future[A] {
	rt := internal.GetRuntime()
	f := internal.NewSinkFuture()
	go func() {
		v, ok := <-ch
		if !ok {
			return
		}
		rt.Dispatch(func() {
			f.Resolve(rt.Tick(), v)
		})
	}()
	return wrapF[A](&f.Future)
}

// NextOccurrence yields, per sample point, a future resolving on the first
// occurrence of s strictly after that sample.
func NextOccurrence[A any](s StreamLike[A]) *Behavior[*Future[A]] {
	src := s.core()
	c := internal.NewFunctionBehavior(func(t internal.Tick) any {
		f := internal.NewNextOccurrenceFuture(src, t)
		return wrapF[A](&f.Future)
	})
	return wrapB[*Future[A]](&c.Behavior)
}
