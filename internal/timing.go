package internal

import "time"

// DelayStream re-emits every occurrence after a fixed wall-clock delay. The
// timer callback re-enters the graph as a fresh tick through the runtime
// dispatch. Outstanding timers are cleared on deactivation.
type DelayStream struct {
	Stream
	d       time.Duration
	nextID  int
	cancels map[int]func()
}

func NewDelayStream(d time.Duration, parent Parent) *DelayStream {
	s := &DelayStream{d: d, cancels: map[int]func(){}}
	s.init(s, parent)
	return s
}

func (s *DelayStream) PushS(_ Tick, v any) {
	rt := GetRuntime()
	id := s.nextID
	s.nextID++
	s.cancels[id] = rt.Timer().AfterFunc(s.d, func() {
		rt.Dispatch(func() {
			delete(s.cancels, id)
			s.PushSToChildren(rt.Tick(), v)
		})
	})
}

func (s *DelayStream) Deactivate() {
	for id, cancel := range s.cancels {
		cancel()
		delete(s.cancels, id)
	}
	s.Reactive.Deactivate()
}

// ThrottleStream passes an occurrence through, then silences the stream for
// the given span.
type ThrottleStream struct {
	Stream
	d      time.Duration
	muted  bool
	cancel func()
}

func NewThrottleStream(d time.Duration, parent Parent) *ThrottleStream {
	s := &ThrottleStream{d: d}
	s.init(s, parent)
	return s
}

func (s *ThrottleStream) PushS(t Tick, v any) {
	if s.muted {
		return
	}
	s.muted = true
	rt := GetRuntime()
	s.cancel = rt.Timer().AfterFunc(s.d, func() {
		rt.Dispatch(func() {
			s.muted = false
			s.cancel = nil
		})
	})
	s.PushSToChildren(t, v)
}

func (s *ThrottleStream) Deactivate() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.muted = false
	s.Reactive.Deactivate()
}

// DebounceStream emits the most recent occurrence once the stream has been
// quiet for the given span; every occurrence restarts the timer.
type DebounceStream struct {
	Stream
	d      time.Duration
	latest any
	cancel func()
}

func NewDebounceStream(d time.Duration, parent Parent) *DebounceStream {
	s := &DebounceStream{d: d}
	s.init(s, parent)
	return s
}

func (s *DebounceStream) PushS(_ Tick, v any) {
	s.latest = v
	if s.cancel != nil {
		s.cancel()
	}
	rt := GetRuntime()
	s.cancel = rt.Timer().AfterFunc(s.d, func() {
		rt.Dispatch(func() {
			s.cancel = nil
			s.PushSToChildren(rt.Tick(), s.latest)
		})
	})
}

func (s *DebounceStream) Deactivate() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.Reactive.Deactivate()
}
