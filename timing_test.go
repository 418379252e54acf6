package frpparty_test

import (
	"testing"
	"time"

	frp "github.com/delaneyj/frpparty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimer is a hand-cranked platform clock; Advance fires due callbacks
// in scheduling order.
type manualTimer struct {
	now     time.Time
	entries []*manualEntry
}

type manualEntry struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func newManualTimer() *manualTimer {
	return &manualTimer{now: time.Unix(0, 0)}
}

func (m *manualTimer) Now() time.Time { return m.now }

func (m *manualTimer) AfterFunc(d time.Duration, fn func()) func() {
	e := &manualEntry{at: m.now.Add(d), fn: fn}
	m.entries = append(m.entries, e)
	return func() { e.stopped = true }
}

func (m *manualTimer) Advance(d time.Duration) {
	m.now = m.now.Add(d)
	for progress := true; progress; {
		progress = false
		for _, e := range m.entries {
			if !e.fired && !e.stopped && !e.at.After(m.now) {
				e.fired = true
				e.fn()
				progress = true
			}
		}
	}
}

func (m *manualTimer) pending() int {
	n := 0
	for _, e := range m.entries {
		if !e.fired && !e.stopped {
			n++
		}
	}
	return n
}

func TestTimingDelayShiftsOccurrences(t *testing.T) {
	mt := newManualTimer()
	frp.SetTimer(mt)

	s := frp.SinkS[int]()
	d := frp.Delay[int](10*time.Millisecond, s)

	var got []int
	d.Subscribe(func(v int) { got = append(got, v) })

	s.Push(1)
	s.Push(2)
	require.Empty(t, got)

	mt.Advance(10 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, got)
}

func TestTimingThrottleSilencesWindow(t *testing.T) {
	mt := newManualTimer()
	frp.SetTimer(mt)

	s := frp.SinkS[int]()
	th := frp.Throttle[int](10*time.Millisecond, s)

	var got []int
	th.Subscribe(func(v int) { got = append(got, v) })

	s.Push(1)
	s.Push(2)
	mt.Advance(5 * time.Millisecond)
	s.Push(3)
	mt.Advance(5 * time.Millisecond)
	s.Push(4)

	assert.Equal(t, []int{1, 4}, got)
}

func TestTimingDebounceEmitsAfterQuiet(t *testing.T) {
	mt := newManualTimer()
	frp.SetTimer(mt)

	s := frp.SinkS[int]()
	db := frp.Debounce[int](10*time.Millisecond, s)

	var got []int
	db.Subscribe(func(v int) { got = append(got, v) })

	s.Push(1)
	mt.Advance(5 * time.Millisecond)
	s.Push(2)
	mt.Advance(5 * time.Millisecond)
	require.Empty(t, got)

	mt.Advance(5 * time.Millisecond)
	assert.Equal(t, []int{2}, got)
}

// deactivating the last observer clears the outstanding timers
func TestTimingDelayClearsTimersOnDeactivate(t *testing.T) {
	mt := newManualTimer()
	frp.SetTimer(mt)

	s := frp.SinkS[int]()
	d := frp.Delay[int](10*time.Millisecond, s)

	var got []int
	sub := d.Subscribe(func(v int) { got = append(got, v) })

	s.Push(1)
	require.Equal(t, 1, mt.pending())

	sub.Deactivate()
	assert.Equal(t, 0, mt.pending())

	mt.Advance(10 * time.Millisecond)
	assert.Empty(t, got)
}

// the integral accumulates trapezoids over platform-clock time
func TestTimingIntegrate(t *testing.T) {
	mt := newManualTimer()
	frp.SetTimer(mt)

	speed := frp.SinkB(2.0)
	dist := frp.Current[float64](frp.Integrate(speed))

	assert.Equal(t, 0.0, frp.At[float64](dist))

	mt.Advance(time.Second)
	speed.Publish(4.0)
	// one second from 2 to 4: trapezoid area 3
	assert.InDelta(t, 3.0, frp.At[float64](dist), 1e-9)

	mt.Advance(time.Second)
	// one more second at a steady 4
	assert.InDelta(t, 7.0, frp.At[float64](dist), 1e-9)
}
