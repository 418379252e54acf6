package frpparty_test

import (
	"testing"

	frp "github.com/delaneyj/frpparty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBehaviorConstantSample(t *testing.T) {
	b := frp.Constant("still")
	assert.Equal(t, "still", frp.At[string](b))
	assert.Equal(t, "still", frp.At[string](b))
}

func TestBehaviorFromFunction(t *testing.T) {
	calls := 0
	b := frp.FromFunction(func() int {
		calls++
		return calls
	})

	assert.Equal(t, 1, frp.At[int](b))
	assert.Equal(t, 2, frp.At[int](b))
}

// a subscriber receives the current value immediately, then every published
// one
func TestBehaviorSinkSubscribe(t *testing.T) {
	b := frp.SinkB(1)

	var got []int
	b.Subscribe(func(v int) { got = append(got, v) })

	b.Publish(2)
	b.Publish(3)
	assert.Equal(t, []int{1, 2, 3}, got)
}

// a publish whose mapped value comes out unchanged does not re-notify
func TestBehaviorMapSuppressesUnchangedValues(t *testing.T) {
	b := frp.SinkB(4)
	even := frp.MapB(func(v int) bool { return v%2 == 0 }, b)

	var got []bool
	even.Subscribe(func(v bool) { got = append(got, v) })

	b.Publish(6)
	b.Publish(7)
	assert.Equal(t, []bool{true, false}, got)
}

// a pulled behavior is sampled through map without any subscription
func TestBehaviorMapOverPulledParent(t *testing.T) {
	n := 10
	src := frp.FromFunction(func() int { return n })
	m := frp.MapB(func(v int) int { return v * v }, src)

	assert.Equal(t, 100, frp.At[int](m))
	n = 12
	assert.Equal(t, 144, frp.At[int](m))
}

func TestBehaviorLift2(t *testing.T) {
	a := frp.SinkB(2)
	b := frp.SinkB(3)
	sum := frp.Lift2(func(x, y int) int { return x + y }, a, b)

	var got []int
	sum.Subscribe(func(v int) { got = append(got, v) })

	a.Publish(10)
	b.Publish(20)
	assert.Equal(t, []int{5, 13, 30}, got)
}

func TestBehaviorAp(t *testing.T) {
	fns := frp.SinkB(func(x int) int { return x + 1 })
	xs := frp.SinkB(1)
	applied := frp.Ap[int, int](fns, xs)

	require.Equal(t, 2, frp.At[int](applied))
	fns.Publish(func(x int) int { return x * 10 })
	assert.Equal(t, 10, frp.At[int](applied))
	xs.Publish(7)
	assert.Equal(t, 70, frp.At[int](applied))
}

// lifting a constant with a sink stays push driven
func TestBehaviorLiftWithConstantParent(t *testing.T) {
	k := frp.Constant(100)
	x := frp.SinkB(1)
	sum := frp.Lift2(func(a, b int) int { return a + b }, k, x)

	var got []int
	sum.Subscribe(func(v int) { got = append(got, v) })

	x.Publish(2)
	assert.Equal(t, []int{101, 102}, got)
}

// the stepper's value at the occurrence tick is still the previous one; the
// new value becomes visible at the next tick
func TestBehaviorStepperIsDelayed(t *testing.T) {
	s := frp.SinkS[int]()
	b := frp.Stepper(0, s)
	snap := frp.Snapshot[int, int](b, s)

	var got []int
	snap.Subscribe(func(v int) { got = append(got, v) })

	s.Push(1)
	assert.Equal(t, []int{0}, got)
	assert.Equal(t, 1, frp.At[int](b))

	s.Push(2)
	assert.Equal(t, []int{0, 1}, got)
	assert.Equal(t, 2, frp.At[int](b))
}

// each sample of a scan yields an independent accumulator starting at the
// sample point
func TestBehaviorScanIsPureInTime(t *testing.T) {
	s := frp.SinkS[int]()
	sc := frp.Scan(func(v, acc int) int { return v + acc }, 1, s)

	b1 := frp.Current[int](sc)
	var spy []int
	b1.Subscribe(func(v int) { spy = append(spy, v) })

	s.Push(2)
	b2 := frp.Current[int](sc)
	s.Push(4)

	assert.Equal(t, 7, frp.At[int](b1))
	assert.Equal(t, 5, frp.At[int](b2))
	assert.Equal(t, []int{1, 3, 7}, spy)
}

// a chained behavior follows the inner behavior selected by the outer value;
// pushes at a no-longer-selected inner go nowhere
func TestBehaviorChainFollowsSelection(t *testing.T) {
	x := frp.SinkB(10)
	y := frp.SinkB(20)
	pick := frp.SinkB("x")
	c := frp.Chain(func(k string) *frp.Behavior[int] {
		if k == "x" {
			return x.Behavior
		}
		return y.Behavior
	}, pick)

	var got []int
	c.Subscribe(func(v int) { got = append(got, v) })
	require.Equal(t, []int{10}, got)

	y.Publish(21) // not selected
	assert.Equal(t, []int{10}, got)

	pick.Publish("y")
	assert.Equal(t, []int{10, 21}, got)

	x.Publish(11) // no longer selected
	assert.Equal(t, []int{10, 21}, got)

	y.Publish(22)
	assert.Equal(t, []int{10, 21, 22}, got)
}

// a moment body re-runs on pushes from exactly the behaviors it read last
// time; dependencies it stopped reading are dropped
func TestBehaviorMomentTracksDynamicDependencies(t *testing.T) {
	a := frp.SinkB(1)
	b := frp.SinkB(10)
	useA := frp.SinkB(true)

	m := frp.Moment(func() int {
		if frp.At[bool](useA) {
			return frp.At[int](a)
		}
		return frp.At[int](b)
	})

	var got []int
	m.Subscribe(func(v int) { got = append(got, v) })
	require.Equal(t, []int{1}, got)

	a.Publish(2)
	assert.Equal(t, []int{1, 2}, got)

	b.Publish(20) // not read by the last evaluation
	assert.Equal(t, []int{1, 2}, got)

	useA.Publish(false)
	assert.Equal(t, []int{1, 2, 20}, got)

	a.Publish(3) // dropped dependency
	assert.Equal(t, []int{1, 2, 20}, got)

	b.Publish(21)
	assert.Equal(t, []int{1, 2, 20, 21}, got)
}

// scenario: switcher starts at the initial behavior and hops on each stream
// occurrence
func TestBehaviorSwitcher(t *testing.T) {
	init := frp.Constant(1)
	hops := frp.SinkS[*frp.Behavior[int]]()
	sw := frp.Switcher[int](init, hops)

	var got []int
	frp.Current[int](sw).Subscribe(func(v int) { got = append(got, v) })

	inner := frp.SinkB(2)
	hops.Push(inner.Behavior)
	inner.Publish(3)
	assert.Equal(t, []int{1, 2, 3}, got)
}

// pushes at a behavior the switcher left do not reach it anymore
func TestBehaviorSwitcherDetachesOldInner(t *testing.T) {
	first := frp.SinkB(1)
	second := frp.SinkB(100)
	hops := frp.SinkS[*frp.Behavior[int]]()
	sw := frp.Current[int](frp.Switcher[int](first, hops))

	var got []int
	sw.Subscribe(func(v int) { got = append(got, v) })

	hops.Push(second.Behavior)
	first.Publish(2)
	second.Publish(101)
	assert.Equal(t, []int{1, 100, 101}, got)
}

// switchTo hops exactly once, when the future resolves
func TestBehaviorSwitchTo(t *testing.T) {
	first := frp.SinkB("before")
	second := frp.SinkB("after")
	fut := frp.SinkF[*frp.Behavior[string]]()
	sw := frp.SwitchTo[string](first, fut)

	var got []string
	sw.Subscribe(func(v string) { got = append(got, v) })

	first.Publish("before!")
	fut.Resolve(second.Behavior)
	second.Publish("after!")
	assert.Equal(t, []string{"before", "before!", "after", "after!"}, got)
}

// switchTo over an already resolved future starts on the future's behavior
func TestBehaviorSwitchToResolvedFuture(t *testing.T) {
	first := frp.SinkB("unused")
	second := frp.SinkB("live")
	sw := frp.SwitchTo[string](first, frp.FutureOf(second.Behavior))

	assert.Equal(t, "live", frp.At[string](sw))
}

// a producer behavior holds external resources only while observed
func TestBehaviorProducerActivationEdges(t *testing.T) {
	activations, deactivations := 0, 0
	var emit func(int)
	p := frp.Producer(func(push func(int)) func() {
		activations++
		emit = push
		return func() { deactivations++ }
	})

	var got []int
	sub := p.Subscribe(func(v int) { got = append(got, v) })
	require.Equal(t, 1, activations)

	emit(5)
	emit(6)
	assert.Equal(t, []int{5, 6}, got)

	sub.Deactivate()
	assert.Equal(t, 1, deactivations)
}

// observe flips between push and pull mode as the underlying state changes
func TestBehaviorObservePullBoundary(t *testing.T) {
	n := 7
	pulled := frp.FromFunction(func() int { return n })

	var pushes []int
	beginPulls, endPulls := 0, 0
	pulled.Observe(
		func(v int) { pushes = append(pushes, v) },
		func() { beginPulls++ },
		func() { endPulls++ },
	)

	require.Equal(t, 1, beginPulls)
	require.Empty(t, pushes)
	assert.Equal(t, 7, frp.At[int](pulled))
	assert.Equal(t, 0, endPulls)
}

// subscribing to a behavior that must be pulled is a programming error
func TestBehaviorSubscribeToPulledPanics(t *testing.T) {
	pulled := frp.FromFunction(func() int { return 1 })
	assert.PanicsWithValue(t, frp.ErrNotPushing, func() {
		pulled.Subscribe(func(int) {})
	})
}

// a derived behavior drops its upstream subscriptions when the last observer
// leaves, and re-acquires them on the next one
func TestBehaviorDeactivatesWithLastObserver(t *testing.T) {
	b := frp.SinkB(1)
	m := frp.MapB(func(v int) int { return v * 2 }, b)

	var first []int
	sub := m.Subscribe(func(v int) { first = append(first, v) })
	b.Publish(2)
	sub.Deactivate()
	b.Publish(3) // unobserved, not even computed
	assert.Equal(t, []int{2, 4}, first)

	var second []int
	m.Subscribe(func(v int) { second = append(second, v) })
	assert.Equal(t, []int{6}, second)
	b.Publish(4)
	assert.Equal(t, []int{6, 8}, second)
}
