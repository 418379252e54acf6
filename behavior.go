package frpparty

import "github.com/delaneyj/frpparty/internal"

// Behavior is a typed handle on a time-varying value.
type Behavior[A any] struct {
	c *internal.Behavior
}

func (b *Behavior[A]) core() *internal.Behavior { return b.c }

func (b *Behavior[A]) behaviorKind() {}

// BehaviorLike is anything usable where a behavior is expected; placeholders
// qualify before they are replaced.
type BehaviorLike[A any] interface {
	core() *internal.Behavior
}

func wrapB[A any](c *internal.Behavior) *Behavior[A] {
	return &Behavior[A]{c}
}

// At samples the behavior's current value. Push behaviors answer from their
// stored value; pulled ones recompute. Inside a Moment body this also records
// the behavior as a dependency.
func At[A any](b BehaviorLike[A]) A {
	return as[A](internal.SampleNow(b.core()))
}

// Current samples a behavior of behaviors, yielding the inner behavior that
// is live right now. Scan, Switcher and Integrate return their instances
// through here.
func Current[A any](bb BehaviorLike[*Behavior[A]]) *Behavior[A] {
	return At[*Behavior[A]](bb)
}

// Subscribe registers cb for every pushed value, starting with the current
// one. The behavior must be push-state; subscribing to a pulled behavior
// panics — use Observe for those.
func (b *Behavior[A]) Subscribe(cb func(A)) *Subscription {
	return b.Observe(cb,
		func() { panic(internal.ErrNotPushing) },
		func() {},
	)
}

// Observe registers an observer on the push/pull boundary: push fires with
// each value while the behavior pushes, beginPull is invoked when the
// behavior degrades to pulling (sample it with At), and endPull when it
// recovers.
func (b *Behavior[A]) Observe(push func(A), beginPull, endPull func()) *Subscription {
	rt := internal.GetRuntime()
	obs := internal.NewBehaviorObserver(b.c, func(v any) { push(as[A](v)) }, beginPull, endPull)
	n := internal.NewNode(obs)
	t := rt.Now()
	switch b.c.AddListener(n, t) {
	case internal.Push:
		if b.c.HasValue() {
			push(as[A](b.c.Sample(t)))
		}
	case internal.Pull, internal.OnlyPull:
		obs.Sync(t)
	}
	return &Subscription{internal.NewSubscription(b.c, n)}
}

// Constant never changes and is sampled on demand.
func Constant[A any](v A) *Behavior[A] {
	c := internal.NewConstantBehavior(v)
	return wrapB[A](&c.Behavior)
}

// FromFunction samples fn on demand, at most once per tick.
func FromFunction[A any](fn func() A) *Behavior[A] {
	c := internal.NewFunctionBehavior(func(internal.Tick) any { return fn() })
	return wrapB[A](&c.Behavior)
}

// SinkBehavior is a behavior with an external write operation.
type SinkBehavior[A any] struct {
	*Behavior[A]
	sink *internal.SinkBehavior
}

// SinkB creates a sink behavior holding initial.
func SinkB[A any](initial A) *SinkBehavior[A] {
	c := internal.NewSinkBehavior(initial)
	return &SinkBehavior[A]{wrapB[A](&c.Behavior), c}
}

// Publish writes a new value as a fresh tick.
func (b *SinkBehavior[A]) Publish(v A) { b.sink.Publish(v) }

// Producer wraps an external value source. activate receives the push
// callback and returns the deactivator; both run on the 0<->1 observer edges
// only.
func Producer[A any](activate func(push func(A)) (deactivate func())) *Behavior[A] {
	c := internal.NewProducerBehavior(func(push func(any)) func() {
		return activate(func(v A) { push(v) })
	})
	return wrapB[A](&c.Behavior)
}

// MapB transforms the behavior's value with f.
func MapB[A, B any](f func(A) B, b BehaviorLike[A]) *Behavior[B] {
	c := internal.NewMapBehavior(func(v any) any { return f(as[A](v)) }, b.core())
	return wrapB[B](&c.Behavior)
}

// Ap applies a behavior of functions to a behavior of arguments.
func Ap[A, B any](f BehaviorLike[func(A) B], x BehaviorLike[A]) *Behavior[B] {
	return Lift2(func(fn func(A) B, v A) B { return fn(v) }, f, x)
}

// Lift2 recomputes f over both behaviors whenever either changes.
func Lift2[A, B, C any](f func(A, B) C, a BehaviorLike[A], b BehaviorLike[B]) *Behavior[C] {
	c := internal.NewLiftBehavior(func(vs []any) any {
		return f(as[A](vs[0]), as[B](vs[1]))
	}, a.core(), b.core())
	return wrapB[C](&c.Behavior)
}

// Lift3 recomputes f over three behaviors whenever any of them changes.
func Lift3[A, B, C, D any](f func(A, B, C) D, a BehaviorLike[A], b BehaviorLike[B], c BehaviorLike[C]) *Behavior[D] {
	l := internal.NewLiftBehavior(func(vs []any) any {
		return f(as[A](vs[0]), as[B](vs[1]), as[C](vs[2]))
	}, a.core(), b.core(), c.core())
	return wrapB[D](&l.Behavior)
}

// Chain selects an inner behavior from the outer value and mirrors it,
// re-wiring on every outer change.
func Chain[A, B any](f func(A) *Behavior[B], b BehaviorLike[A]) *Behavior[B] {
	c := internal.NewChainBehavior(func(v any) *internal.Behavior {
		return f(as[A](v)).c
	}, b.core())
	return wrapB[B](&c.Behavior)
}

// Moment evaluates body with dynamic dependency tracking: every behavior
// sampled with At during the body becomes a dependency, and the set is
// re-diffed on each evaluation.
func Moment[A any](body func() A) *Behavior[A] {
	c := internal.NewMomentBehavior(func(internal.Tick) any { return body() })
	return wrapB[A](&c.Behavior)
}

// Stepper starts at initial and adopts each stream occurrence, one tick late:
// a sample at the occurrence tick still yields the previous value.
func Stepper[A any](initial A, s StreamLike[A]) *Behavior[A] {
	c := internal.NewStepperBehavior(initial, s.core())
	return wrapB[A](&c.Behavior)
}

// Scan folds stream occurrences from initial. Each sample of the result
// yields a fresh accumulator starting at that sample point; older instances
// keep accumulating independently.
func Scan[A, B any](f func(A, B) B, initial B, s StreamLike[A]) *Behavior[*Behavior[B]] {
	src := s.core()
	fold := func(v, acc any) any { return f(as[A](v), as[B](acc)) }
	c := internal.NewFunctionBehavior(func(t internal.Tick) any {
		acc := internal.NewAccumBehavior(fold, initial, src, t)
		return wrapB[B](&acc.Behavior)
	})
	return wrapB[*Behavior[B]](&c.Behavior)
}

// Switcher yields, per sample point, a behavior that starts as init and hops
// to each behavior the stream carries.
func Switcher[A any](init BehaviorLike[A], s StreamLike[*Behavior[A]]) *Behavior[*Behavior[A]] {
	ic, sc := init.core(), s.core()
	c := internal.NewFunctionBehavior(func(t internal.Tick) any {
		sw := internal.NewSwitcherBehavior(ic, sc, extractBehavior[A], t)
		return wrapB[A](&sw.Behavior)
	})
	return wrapB[*Behavior[A]](&c.Behavior)
}

// SwitchTo starts as init and switches to the future's behavior when it
// resolves.
func SwitchTo[A any](init BehaviorLike[A], f FutureLike[*Behavior[A]]) *Behavior[A] {
	t := internal.GetRuntime().Now()
	sw := internal.NewSwitcherBehavior(init.core(), f.core(), extractBehavior[A], t)
	return wrapB[A](&sw.Behavior)
}

func extractBehavior[A any](v any) *internal.Behavior {
	return v.(*Behavior[A]).c
}

// Integrate approximates the running integral of b over platform-clock time
// with trapezoidal sums. Like Scan, each sample yields a fresh instance
// integrating from zero at its sample point.
func Integrate(b BehaviorLike[float64]) *Behavior[*Behavior[float64]] {
	src := b.core()
	c := internal.NewFunctionBehavior(func(t internal.Tick) any {
		ib := internal.NewIntegrateBehavior(src, t)
		return wrapB[float64](&ib.Behavior)
	})
	return wrapB[*Behavior[float64]](&c.Behavior)
}
