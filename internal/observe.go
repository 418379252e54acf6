package internal

// StreamObserver is the external boundary for streams and futures: a push
// callback invoked with each occurrence.
type StreamObserver struct {
	push func(v any)
}

func NewStreamObserver(push func(v any)) *StreamObserver {
	return &StreamObserver{push: push}
}

func (o *StreamObserver) PushS(_ Tick, v any) { o.push(v) }

func (o *StreamObserver) ChangeStateDown(Tick) {}

// BehaviorObserver is the external boundary for behaviors. While the source
// pushes, the push callback fires with each fresh value; when the source
// degrades to pulling, beginPull is invoked, and endPull when it recovers.
type BehaviorObserver struct {
	source    *Behavior
	push      func(v any)
	beginPull func()
	endPull   func()
	pulling   bool
}

func NewBehaviorObserver(source *Behavior, push func(v any), beginPull, endPull func()) *BehaviorObserver {
	return &BehaviorObserver{source: source, push: push, beginPull: beginPull, endPull: endPull}
}

func (o *BehaviorObserver) PushB(t Tick) {
	o.push(o.source.Sample(t))
}

func (o *BehaviorObserver) ChangeStateDown(t Tick) {
	o.Sync(t)
}

// Sync aligns the observer's mode with the source state.
func (o *BehaviorObserver) Sync(t Tick) {
	switch o.source.CurrentState() {
	case Pull, OnlyPull:
		if !o.pulling {
			o.pulling = true
			o.beginPull()
		}
	case Push:
		if o.pulling {
			o.pulling = false
			o.endPull()
		}
	}
}

// Pull samples the source on the observer's behalf at a fresh instant.
func (o *BehaviorObserver) Pull() any {
	return o.source.Sample(GetRuntime().Tick())
}

// Subscription is the handle returned to external observers; Deactivate
// removes the underlying listener in O(1).
type Subscription struct {
	source Parent
	node   *Node
}

func NewSubscription(source Parent, node *Node) *Subscription {
	return &Subscription{source: source, node: node}
}

func (s *Subscription) Deactivate() {
	s.source.RemoveListener(s.node)
}
