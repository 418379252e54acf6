package internal

// Future is an at-most-once reactive. Done is terminal: parents are dropped
// at resolution and any listener arriving afterwards is fired immediately.
type Future struct {
	Reactive

	Value    any
	occurred bool
}

func (f *Future) initFuture(self any, parents ...Parent) {
	f.init(self, parents...)
}

// AddListener fires immediately when the future already resolved; otherwise
// it links the node as usual.
func (f *Future) AddListener(n *Node, t Tick) State {
	if f.state == Done {
		if f.occurred {
			n.Sub.(SListener).PushS(t, f.Value)
		}
		return Done
	}
	st := f.Reactive.AddListener(n, t)
	if st == Done && f.occurred && n.linked {
		// subscribing activated this future and resolution fired reentrantly,
		// skipping the node that was just linked; fire it by hand
		f.listeners.Remove(n)
		n.Sub.(SListener).PushS(t, f.Value)
	}
	return st
}

// Resolve settles the future. A second resolve is silently ignored.
func (f *Future) Resolve(t Tick, v any) {
	if f.state == Done {
		return
	}
	f.Value = v
	f.occurred = true
	f.unlinkParents()
	f.state = Done
	for n := f.listeners.Head(); n != nil; {
		next := n.next
		if n.addedAt != t {
			n.Sub.(SListener).PushS(t, v)
		}
		n = next
	}
}

// SinkFuture is resolved externally.
type SinkFuture struct {
	Future
}

func NewSinkFuture() *SinkFuture {
	f := &SinkFuture{}
	f.initFuture(f)
	f.alwaysActive = true
	f.state = Push
	return f
}

// ResolveWith settles the future from the outside, starting a fresh tick.
func (f *SinkFuture) ResolveWith(v any) {
	f.Resolve(GetRuntime().Tick(), v)
}

// NewResolvedFuture is already settled at creation.
func NewResolvedFuture(v any) *Future {
	f := &Future{}
	f.initFuture(f)
	f.alwaysActive = true
	f.Value = v
	f.occurred = true
	f.state = Done
	return f
}

// NewNeverFuture is terminal without ever producing a value.
func NewNeverFuture() *Future {
	f := &Future{}
	f.initFuture(f)
	f.alwaysActive = true
	f.state = Done
	return f
}

// MapFuture resolves with f applied to the parent's value.
type MapFuture struct {
	Future
	f func(any) any
}

func NewMapFuture(f func(any) any, parent Parent) *MapFuture {
	m := &MapFuture{f: f}
	m.initFuture(m, parent)
	return m
}

func (m *MapFuture) PushS(t Tick, v any) {
	m.Resolve(t, m.f(v))
}

// CombineFuture resolves with whichever parent resolves first. Both parents
// are unsubscribed at resolution.
type CombineFuture struct {
	Future
}

func NewCombineFuture(a, b Parent) *CombineFuture {
	f := &CombineFuture{}
	f.initFuture(f, a, b)
	return f
}

func (f *CombineFuture) PushS(t Tick, v any) {
	f.Resolve(t, v)
}

// LiftFuture resolves once every parent resolved, applying f to all values.
type LiftFuture struct {
	Future
	f       func([]any) any
	fs      []*Future
	missing int
}

func NewLiftFuture(f func([]any) any, fs ...*Future) *LiftFuture {
	l := &LiftFuture{f: f, fs: fs}
	parents := make([]Parent, len(fs))
	for i, p := range fs {
		parents[i] = p
	}
	l.initFuture(l, parents...)
	return l
}

func (l *LiftFuture) Activate(t Tick) {
	if l.state != Inactive {
		return
	}
	// already resolved parents fire reentrantly while subscribing, so the
	// tally starts at full strength
	l.missing = len(l.fs)
	l.Reactive.Activate(t)
}

func (l *LiftFuture) PushS(t Tick, _ any) {
	l.missing--
	if l.missing == 0 {
		l.resolveAll(t)
	}
}

func (l *LiftFuture) resolveAll(t Tick) {
	vs := make([]any, len(l.fs))
	for i, p := range l.fs {
		vs[i] = p.Value
	}
	l.Resolve(t, l.f(vs))
}

// FlatMapFuture is two-stage: the parent's value selects an inner future, and
// the result resolves when the inner one does.
type FlatMapFuture struct {
	Future
	fn        func(any) *Future
	outerDone bool
	inner     *Future
	innerNode *Node
}

func NewFlatMapFuture(fn func(any) *Future, parent Parent) *FlatMapFuture {
	f := &FlatMapFuture{fn: fn}
	f.initFuture(f, parent)
	return f
}

func (f *FlatMapFuture) PushS(t Tick, v any) {
	if !f.outerDone {
		f.outerDone = true
		f.inner = f.fn(v)
		f.innerNode = NewNode(f)
		f.inner.AddListener(f.innerNode, t)
		return
	}
	f.Resolve(t, v)
}

func (f *FlatMapFuture) Deactivate() {
	if f.inner != nil && f.innerNode != nil {
		f.inner.RemoveListener(f.innerNode)
		f.inner = nil
		f.innerNode = nil
	}
	f.Reactive.Deactivate()
}

// NextOccurrenceFuture resolves on the first stream occurrence strictly after
// its creation tick. It subscribes immediately so the occurrence is not lost
// while nobody listens to the future yet.
type NextOccurrenceFuture struct {
	Future
}

func NewNextOccurrenceFuture(source Parent, t Tick) *NextOccurrenceFuture {
	f := &NextOccurrenceFuture{}
	f.initFuture(f, source)
	f.alwaysActive = true
	f.Reactive.Activate(t)
	f.state = Push
	return f
}

func (f *NextOccurrenceFuture) PushS(t Tick, v any) {
	f.Resolve(t, v)
}
