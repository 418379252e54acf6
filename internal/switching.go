package internal

// attachTo links sub as a fresh listener of p and returns the node handle
// together with p's state, so the caller can renegotiate its own.
func attachTo(sub StateListener, p Parent, t Tick) (*Node, State) {
	n := NewNode(sub)
	s := p.AddListener(n, t)
	return n, s
}

// SwitcherBehavior mirrors a current inner behavior and hops to a new one on
// each occurrence of the trigger (a stream or future of behaviors). Instances
// subscribe at construction; they are created per sample point by the
// switcher combinator, or directly by switchTo.
type SwitcherBehavior struct {
	Behavior
	current *Behavior
	node    *Node
	extract func(v any) *Behavior
}

func NewSwitcherBehavior(init *Behavior, trigger Parent, extract func(v any) *Behavior, t Tick) *SwitcherBehavior {
	b := &SwitcherBehavior{extract: extract}
	b.init(b, init, trigger)
	b.alwaysActive = true
	b.state = Push
	b.current = init
	b.node, _ = attachTo(b, init, t)
	b.parentNodes = append(b.parentNodes, b.node)
	b.Last = init.Sample(t)
	b.hasLast = true
	// an already resolved future trigger fires reentrantly right here and
	// swaps before construction finishes; current and node are wired above
	// so that is safe
	trigNode, _ := attachTo(b, trigger, t)
	b.parentNodes = append(b.parentNodes, trigNode)
	if ns := b.joinParents(); ns != b.state {
		b.state = ns
	}
	return b
}

// PushS is the trigger firing with the next behavior.
func (b *SwitcherBehavior) PushS(t Tick, v any) {
	next := b.extract(v)
	if next == b.current {
		return
	}
	b.current.RemoveListener(b.node)
	b.current = next
	b.node, _ = attachTo(b, next, t)
	b.parents[0] = next
	b.parentNodes[0] = b.node
	// the moment of the switch is published unconditionally, even when the
	// new behavior currently equals the old value
	b.publish(t, next.Sample(t))
	if ns := b.joinParents(); ns != b.state {
		b.state = ns
		b.notifyStateToChildren(t)
	}
}

func (b *SwitcherBehavior) Update(t Tick) any { return b.current.Sample(t) }

// SwitchStream delegates to the stream currently held by a behavior of
// streams, re-wiring itself whenever that behavior changes.
type SwitchStream struct {
	Stream
	source  *Behavior
	extract func(v any) *Stream
	inner   *Stream
	node    *Node
}

func NewSwitchStream(source *Behavior, extract func(v any) *Stream) *SwitchStream {
	s := &SwitchStream{source: source, extract: extract}
	s.init(s, source)
	return s
}

// PushS is an occurrence of the current inner stream.
func (s *SwitchStream) PushS(t Tick, v any) {
	s.PushSToChildren(t, v)
}

// PushB is the source behavior switching to another stream.
func (s *SwitchStream) PushB(t Tick) {
	next := s.extract(s.source.Sample(t))
	if next == s.inner {
		return
	}
	if s.inner != nil && s.node != nil {
		s.inner.RemoveListener(s.node)
	}
	s.inner = next
	s.node, _ = attachTo(s, next, t)
}

func (s *SwitchStream) Activate(t Tick) {
	if s.state != Inactive {
		return
	}
	s.Reactive.Activate(t)
	s.inner = s.extract(s.source.Sample(t))
	s.node, _ = attachTo(s, s.inner, t)
	s.state = Push
}

func (s *SwitchStream) Deactivate() {
	if s.inner != nil && s.node != nil {
		s.inner.RemoveListener(s.node)
		s.inner = nil
		s.node = nil
	}
	s.Reactive.Deactivate()
}
