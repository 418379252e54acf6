package internal

// behaviorImpl recomputes a behavior's value at t. Every concrete behavior
// provides it; the base calls it through self.
type behaviorImpl interface {
	Update(t Tick) any
}

// pushSampler lets a push-state behavior intercept sampling; the delayed
// stepper promotes its pending value here.
type pushSampler interface {
	SamplePush(t Tick) any
}

// Behavior is the core of a time-varying value. While pushing it carries the
// most recent value in Last; while pulling it recomputes on demand, at most
// once per tick.
type Behavior struct {
	Reactive

	Last      any
	hasLast   bool
	changedAt Tick
	pulledAt  Tick
}

func (b *Behavior) HasValue() bool { return b.hasLast }

// Activate subscribes upstream and, when the join lands on push, seeds the
// stored value at once so the first sample finds it.
func (b *Behavior) Activate(t Tick) {
	if b.state != Inactive {
		return
	}
	b.Reactive.Activate(t)
	if b.state == Push && !b.hasLast {
		b.refresh(t)
	}
}

// Deactivate drops the stored value along with the parent subscriptions; a
// later reactivation reseeds instead of serving a stale value.
func (b *Behavior) Deactivate() {
	b.Reactive.Deactivate()
	b.hasLast = false
	b.pulledAt = 0
	b.changedAt = 0
}

// PushB is the parent notification: recompute, and if the value changed at
// this tick fan the change out to push-mode children.
func (b *Behavior) PushB(t Tick) {
	if b.state == Inactive || b.pulledAt == t {
		return
	}
	b.refresh(t)
	if b.changedAt == t && b.state == Push {
		b.PushToChildren(t)
	}
}

func (b *Behavior) refresh(t Tick) {
	b.pulledAt = t
	v := b.self.(behaviorImpl).Update(t)
	if b.hasLast && sameVal(b.Last, v) {
		return
	}
	b.Last = v
	b.hasLast = true
	b.changedAt = t
}

// PushToChildren notifies push-mode listeners that the value changed at t.
// Listeners added during this very tick are skipped.
func (b *Behavior) PushToChildren(t Tick) {
	for n := b.listeners.Head(); n != nil; {
		next := n.next
		if n.addedAt != t {
			if bl, ok := n.Sub.(BListener); ok {
				bl.PushB(t)
			}
		}
		n = next
	}
}

// Sample returns the behavior's value at t. In push state this reads the
// stored value; otherwise it pulls, reusing the value already computed for
// this tick. Sampling registers the behavior as a dependency of the moment
// body currently running, if any.
func (b *Behavior) Sample(t Tick) any {
	if m := GetRuntime().activeMoment; m != nil {
		m.record(b)
	}
	switch b.state {
	case Push, Done:
		if ps, ok := b.self.(pushSampler); ok {
			return ps.SamplePush(t)
		}
		if !b.hasLast {
			panic(ErrMissingLast)
		}
		return b.Last
	default:
		if b.pulledAt < t || !b.hasLast {
			b.refresh(t)
		}
		return b.Last
	}
}

// SampleNow samples b at a fresh instant, or at the in-flight instant when a
// moment body is running so the whole body observes one consistent time.
func SampleNow(b *Behavior) any {
	rt := GetRuntime()
	if rt.activeMoment != nil {
		return b.Sample(rt.momentTick)
	}
	return b.Sample(rt.Tick())
}

// publish overwrites the current value and fans it out, bypassing the change
// check. Sinks, producers and the switching engine use it.
func (b *Behavior) publish(t Tick, v any) {
	b.Last = v
	b.hasLast = true
	b.changedAt = t
	b.pulledAt = t
	b.PushToChildren(t)
}

// ConstantBehavior never changes and never needs activation.
type ConstantBehavior struct {
	Behavior
}

func NewConstantBehavior(v any) *ConstantBehavior {
	b := &ConstantBehavior{}
	b.init(b)
	b.alwaysActive = true
	b.state = OnlyPull
	b.Last = v
	b.hasLast = true
	return b
}

func (b *ConstantBehavior) Update(Tick) any { return b.Last }

// FunctionBehavior samples an arbitrary function. Always pull.
type FunctionBehavior struct {
	Behavior
	fn func(t Tick) any
}

func NewFunctionBehavior(fn func(t Tick) any) *FunctionBehavior {
	b := &FunctionBehavior{fn: fn}
	b.init(b)
	b.alwaysActive = true
	b.state = Pull
	return b
}

func (b *FunctionBehavior) Update(t Tick) any { return b.fn(t) }

// SinkBehavior is a root behavior with an external write operation.
type SinkBehavior struct {
	Behavior
}

func NewSinkBehavior(initial any) *SinkBehavior {
	b := &SinkBehavior{}
	b.init(b)
	b.alwaysActive = true
	b.state = Push
	b.Last = initial
	b.hasLast = true
	return b
}

func (b *SinkBehavior) Update(Tick) any { return b.Last }

// Publish writes a new value, starting a fresh tick.
func (b *SinkBehavior) Publish(v any) {
	b.publish(GetRuntime().Tick(), v)
}

// ProducerBehavior wraps an external value source. The activation closure
// receives the push callback and returns a deactivator; both fire on the
// 0<->1 listener edges only.
type ProducerBehavior struct {
	Behavior
	activate   func(push func(v any)) (deactivate func())
	deactivate func()
}

func NewProducerBehavior(activate func(push func(v any)) func()) *ProducerBehavior {
	b := &ProducerBehavior{activate: activate}
	b.init(b)
	return b
}

func (b *ProducerBehavior) Update(Tick) any {
	if !b.hasLast {
		panic(ErrMissingLast)
	}
	return b.Last
}

func (b *ProducerBehavior) Activate(Tick) {
	if b.state != Inactive {
		return
	}
	b.state = Push
	b.deactivate = b.activate(func(v any) {
		b.publish(GetRuntime().Tick(), v)
	})
}

func (b *ProducerBehavior) Deactivate() {
	if b.deactivate != nil {
		b.deactivate()
		b.deactivate = nil
	}
	b.state = Inactive
}

// MapBehavior applies f to the parent's value.
type MapBehavior struct {
	Behavior
	parent *Behavior
	f      func(any) any
}

func NewMapBehavior(f func(any) any, parent *Behavior) *MapBehavior {
	b := &MapBehavior{parent: parent, f: f}
	b.init(b, parent)
	return b
}

func (b *MapBehavior) Update(t Tick) any { return b.f(b.parent.Sample(t)) }

// LiftBehavior recomputes f over all parents whenever any of them pushes.
type LiftBehavior struct {
	Behavior
	f  func([]any) any
	bs []*Behavior
}

func NewLiftBehavior(f func([]any) any, bs ...*Behavior) *LiftBehavior {
	b := &LiftBehavior{f: f, bs: bs}
	parents := make([]Parent, len(bs))
	for i, p := range bs {
		parents[i] = p
	}
	b.init(b, parents...)
	return b
}

func (b *LiftBehavior) Update(t Tick) any {
	vs := make([]any, len(b.bs))
	for i, p := range b.bs {
		vs[i] = p.Sample(t)
	}
	return b.f(vs)
}

// ChainBehavior is the monadic bind: the outer value selects an inner
// behavior whose value this one mirrors. Selecting a new inner detaches the
// old one; pushes at a no-longer-selected inner go nowhere.
type ChainBehavior struct {
	Behavior
	outer     *Behavior
	fn        func(any) *Behavior
	inner     *Behavior
	innerNode *Node
}

func NewChainBehavior(fn func(any) *Behavior, outer *Behavior) *ChainBehavior {
	b := &ChainBehavior{outer: outer, fn: fn}
	b.init(b, outer)
	return b
}

func (b *ChainBehavior) Update(t Tick) any {
	next := b.fn(b.outer.Sample(t))
	if next != b.inner {
		if b.inner != nil && b.innerNode != nil {
			b.inner.RemoveListener(b.innerNode)
		}
		b.inner = next
		b.innerNode = nil
		if b.state != Inactive {
			b.innerNode, _ = attachTo(b, next, t)
			if ns := b.chainJoin(); ns != b.state {
				b.state = ns
				b.notifyStateToChildren(t)
			}
		}
	}
	return b.inner.Sample(t)
}

func (b *ChainBehavior) Activate(t Tick) {
	if b.state != Inactive {
		return
	}
	b.Reactive.Activate(t)
	b.refresh(t) // resolves and attaches the inner behavior
	b.state = b.chainJoin()
}

func (b *ChainBehavior) Deactivate() {
	if b.inner != nil && b.innerNode != nil {
		b.inner.RemoveListener(b.innerNode)
		b.innerNode = nil
	}
	b.Behavior.Deactivate()
}

func (b *ChainBehavior) chainJoin() State {
	s := b.outer.CurrentState()
	if b.inner != nil {
		if is := b.inner.CurrentState(); is < s {
			s = is
		}
	}
	return s
}

func (b *ChainBehavior) ChangeStateDown(t Tick) {
	ns := b.chainJoin()
	if ns == b.state {
		return
	}
	b.state = ns
	b.notifyStateToChildren(t)
}
