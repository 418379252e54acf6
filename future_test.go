package frpparty_test

import (
	"testing"
	"time"

	frp "github.com/delaneyj/frpparty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFutureSinkResolveNotifiesOnce(t *testing.T) {
	f := frp.SinkF[string]()

	var got []string
	f.Subscribe(func(v string) { got = append(got, v) })

	f.Resolve("a")
	f.Resolve("b") // ignored after the first
	assert.Equal(t, []string{"a"}, got)
}

func TestFutureSubscribeAfterResolutionFiresImmediately(t *testing.T) {
	f := frp.SinkF[int]()
	f.Resolve(7)

	var got []int
	f.Subscribe(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{7}, got)
}

func TestFutureOfIsAlreadyResolved(t *testing.T) {
	var got []int
	frp.FutureOf(3).Subscribe(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{3}, got)
}

func TestFutureNeverStaysSilent(t *testing.T) {
	fired := false
	frp.Never[int]().Subscribe(func(int) { fired = true })
	assert.False(t, fired)
}

func TestFutureMap(t *testing.T) {
	f := frp.SinkF[int]()
	m := frp.MapF(func(v int) int { return v * v }, f)

	var got []int
	m.Subscribe(func(v int) { got = append(got, v) })

	f.Resolve(9)
	assert.Equal(t, []int{81}, got)
}

// combine resolves with whichever side resolves first; the loser is ignored
func TestFutureCombineEarliestWins(t *testing.T) {
	f1 := frp.SinkF[string]()
	f2 := frp.SinkF[string]()
	c := frp.CombineF[string](f1, f2)

	var got []string
	c.Subscribe(func(v string) { got = append(got, v) })

	f2.Resolve("b")
	f1.Resolve("a")
	assert.Equal(t, []string{"b"}, got)
}

func TestFutureLift2WaitsForBoth(t *testing.T) {
	a := frp.SinkF[int]()
	b := frp.SinkF[int]()
	sum := frp.Lift2F(func(x, y int) int { return x + y }, a, b)

	var got []int
	sum.Subscribe(func(v int) { got = append(got, v) })

	a.Resolve(1)
	require.Empty(t, got)
	b.Resolve(2)
	assert.Equal(t, []int{3}, got)
}

func TestFutureLift2OverResolvedParents(t *testing.T) {
	sum := frp.Lift2F(func(x, y int) int { return x + y }, frp.FutureOf(10), frp.FutureOf(20))

	var got []int
	sum.Subscribe(func(v int) { got = append(got, v) })
	assert.Equal(t, []int{30}, got)
}

// flatMap resolves in two stages: the outer value selects the inner future
func TestFutureFlatMap(t *testing.T) {
	outer := frp.SinkF[int]()
	inner := frp.SinkF[string]()
	fm := frp.FlatMapF(func(v int) *frp.Future[string] {
		if v > 0 {
			return inner.Future
		}
		return frp.FutureOf("negative")
	}, outer)

	var got []string
	fm.Subscribe(func(v string) { got = append(got, v) })

	outer.Resolve(1)
	require.Empty(t, got)
	inner.Resolve("positive")
	assert.Equal(t, []string{"positive"}, got)
}

func TestFutureFlatMapToResolvedInner(t *testing.T) {
	outer := frp.SinkF[int]()
	fm := frp.FlatMapF(func(v int) *frp.Future[string] {
		return frp.FutureOf("now")
	}, outer)

	var got []string
	fm.Subscribe(func(v string) { got = append(got, v) })

	outer.Resolve(-1)
	assert.Equal(t, []string{"now"}, got)
}

// the channel bridge resolves on the first received value
func TestFutureFromChan(t *testing.T) {
	ch := make(chan int, 1)
	f := frp.FromChan(ch)

	done := make(chan int, 1)
	f.Subscribe(func(v int) { done <- v })

	ch <- 42
	select {
	case v := <-done:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("future never resolved")
	}
}

// a sampled next-occurrence future only sees occurrences strictly after the
// sample
func TestFutureNextOccurrence(t *testing.T) {
	s := frp.SinkS[int]()
	nexts := frp.NextOccurrence[int](s)

	s.Push(1)
	f := frp.At[*frp.Future[int]](nexts)

	var got []int
	f.Subscribe(func(v int) { got = append(got, v) })
	require.Empty(t, got)

	s.Push(2)
	assert.Equal(t, []int{2}, got)

	s.Push(3) // future already resolved
	assert.Equal(t, []int{2}, got)
}

func TestFutureMapTo(t *testing.T) {
	f := frp.SinkF[int]()
	m := frp.MapToF[int]("done", f)

	var got []string
	m.Subscribe(func(v string) { got = append(got, v) })

	f.Resolve(1)
	assert.Equal(t, []string{"done"}, got)
}
