package internal

// BehaviorPlaceholder is a behavior whose source is bound later. Listeners
// registered before replacement are buffered on the placeholder itself; once
// replaced it is a transparent proxy, indistinguishable from subscribing to
// the source directly. Cyclic graphs are built by closing the loop here.
type BehaviorPlaceholder struct {
	Behavior
	source *Behavior
}

func NewBehaviorPlaceholder() *BehaviorPlaceholder {
	p := &BehaviorPlaceholder{}
	p.init(p)
	return p
}

func (p *BehaviorPlaceholder) Update(t Tick) any {
	if p.source == nil {
		panic(ErrPlaceholder)
	}
	return p.source.Sample(t)
}

func (p *BehaviorPlaceholder) Activate(t Tick) {
	if p.source == nil {
		// keep buffering; the state stays Inactive until replacement
		return
	}
	p.Behavior.Activate(t)
}

// ReplaceWith binds the source. Buffered listeners take effect at once: the
// placeholder adopts the source's state and, when pushing, publishes the
// current value downstream.
func (p *BehaviorPlaceholder) ReplaceWith(source *Behavior) {
	if p.source != nil {
		panic(ErrReplacedTwice)
	}
	p.source = source
	p.parents = []Parent{source}
	if p.listeners.Len() == 0 {
		return
	}
	t := GetRuntime().Tick()
	p.Activate(t)
	p.notifyStateToChildren(t)
	if p.state == Push && source.HasValue() {
		p.publish(t, source.Sample(t))
	}
}

// StreamPlaceholder is the stream-kind placeholder.
type StreamPlaceholder struct {
	Stream
	source *Stream
}

func NewStreamPlaceholder() *StreamPlaceholder {
	p := &StreamPlaceholder{}
	p.init(p)
	return p
}

func (p *StreamPlaceholder) PushS(t Tick, v any) {
	p.PushSToChildren(t, v)
}

func (p *StreamPlaceholder) Activate(t Tick) {
	if p.source == nil {
		return
	}
	p.Reactive.Activate(t)
}

func (p *StreamPlaceholder) ReplaceWith(source *Stream) {
	if p.source != nil {
		panic(ErrReplacedTwice)
	}
	p.source = source
	p.parents = []Parent{source}
	if p.listeners.Len() == 0 {
		return
	}
	t := GetRuntime().Tick()
	p.Activate(t)
	p.notifyStateToChildren(t)
}
