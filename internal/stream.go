package internal

// Stream is the core of a discrete-event reactive. It stores no current
// value; occurrences are forwarded to listeners as they happen.
type Stream struct {
	Reactive
}

// PushSToChildren fans one occurrence out to every listener in insertion
// order. Nodes linked during the in-flight propagation are skipped; they only
// observe subsequent ticks.
func (s *Stream) PushSToChildren(t Tick, v any) {
	for n := s.listeners.Head(); n != nil; {
		next := n.next
		if n.addedAt != t {
			if sl, ok := n.Sub.(SListener); ok {
				sl.PushS(t, v)
			}
		}
		n = next
	}
}

// SinkStream is a root stream with an external write operation. It is push by
// definition and never deactivates.
type SinkStream struct {
	Stream
}

func NewSinkStream() *SinkStream {
	s := &SinkStream{}
	s.init(s)
	s.alwaysActive = true
	s.state = Push
	return s
}

// Push feeds one occurrence into the graph, starting a fresh tick.
func (s *SinkStream) Push(v any) {
	t := GetRuntime().Tick()
	s.PushSToChildren(t, v)
}

// EmptyStream never emits.
type EmptyStream struct {
	Stream
}

func NewEmptyStream() *EmptyStream {
	s := &EmptyStream{}
	s.init(s)
	s.alwaysActive = true
	s.state = OnlyPull
	return s
}

// ProducerStream wraps an external occurrence source. The activation closure
// runs when the first listener arrives and its deactivator when the last one
// leaves, never nested.
type ProducerStream struct {
	Stream
	activate   func(push func(v any)) (deactivate func())
	deactivate func()
}

func NewProducerStream(activate func(push func(v any)) func()) *ProducerStream {
	s := &ProducerStream{activate: activate}
	s.init(s)
	return s
}

func (s *ProducerStream) Activate(t Tick) {
	if s.state != Inactive {
		return
	}
	s.state = Push
	s.deactivate = s.activate(func(v any) {
		s.PushSToChildren(GetRuntime().Tick(), v)
	})
}

func (s *ProducerStream) Deactivate() {
	if s.deactivate != nil {
		s.deactivate()
		s.deactivate = nil
	}
	s.state = Inactive
}

// MapStream applies f to every occurrence.
type MapStream struct {
	Stream
	f func(any) any
}

func NewMapStream(f func(any) any, parent Parent) *MapStream {
	s := &MapStream{f: f}
	s.init(s, parent)
	return s
}

func (s *MapStream) PushS(t Tick, v any) {
	s.PushSToChildren(t, s.f(v))
}

// FilterStream forwards occurrences matching p.
type FilterStream struct {
	Stream
	p func(any) bool
}

func NewFilterStream(p func(any) bool, parent Parent) *FilterStream {
	s := &FilterStream{p: p}
	s.init(s, parent)
	return s
}

func (s *FilterStream) PushS(t Tick, v any) {
	if s.p(v) {
		s.PushSToChildren(t, v)
	}
}

// FilterApplyStream forwards occurrences matching the predicate sampled from
// a behavior at the occurrence tick.
type FilterApplyStream struct {
	Stream
	pred *Behavior
	keep func(pred, v any) bool
}

func NewFilterApplyStream(pred *Behavior, keep func(pred, v any) bool, parent Parent) *FilterApplyStream {
	s := &FilterApplyStream{pred: pred, keep: keep}
	s.init(s, parent, pred)
	return s
}

func (s *FilterApplyStream) PushS(t Tick, v any) {
	if s.keep(s.pred.Sample(t), v) {
		s.PushSToChildren(t, v)
	}
}

// PushB implements BListener so predicate-behavior updates are accepted and
// ignored; the predicate is only read at occurrence ticks.
func (s *FilterApplyStream) PushB(Tick) {}

// ScanSStream carries an accumulator across occurrences.
type ScanSStream struct {
	Stream
	f   func(v, acc any) any
	acc any
}

func NewScanSStream(f func(v, acc any) any, initial any, parent Parent) *ScanSStream {
	s := &ScanSStream{f: f, acc: initial}
	s.init(s, parent)
	return s
}

func (s *ScanSStream) PushS(t Tick, v any) {
	s.acc = s.f(v, s.acc)
	s.PushSToChildren(t, s.acc)
}

// CombineStream interleaves the occurrences of any number of streams.
type CombineStream struct {
	Stream
}

func NewCombineStream(parents ...Parent) *CombineStream {
	s := &CombineStream{}
	s.init(s, parents...)
	return s
}

func (s *CombineStream) PushS(t Tick, v any) {
	s.PushSToChildren(t, v)
}

// SnapshotStream samples a behavior at each trigger occurrence and emits the
// combination. The target behavior is subscribed too, so it stays active and
// keeps accumulating, but its own pushes produce no occurrence.
type SnapshotStream struct {
	Stream
	target *Behavior
	f      func(v, b any) any
}

func NewSnapshotStream(f func(v, b any) any, target *Behavior, trigger Parent) *SnapshotStream {
	s := &SnapshotStream{target: target, f: f}
	s.init(s, trigger, target)
	return s
}

func (s *SnapshotStream) PushS(t Tick, v any) {
	s.PushSToChildren(t, s.f(v, s.target.Sample(t)))
}

func (s *SnapshotStream) PushB(Tick) {}
