package internal

// StepperBehavior adopts each stream occurrence, one tick late: a sample at
// the exact occurrence tick still sees the previous value, and the new one
// becomes visible at the first strictly later tick. Promotion is keyed on the
// tick comparison, not on listener order, so feedback constructions that
// snapshot the stepper through its own source stream are deterministic.
type StepperBehavior struct {
	Behavior
	pending    any
	pendingAt  Tick
	hasPending bool
}

func NewStepperBehavior(initial any, source Parent) *StepperBehavior {
	b := &StepperBehavior{}
	b.init(b, source)
	b.Last = initial
	b.hasLast = true
	return b
}

func (b *StepperBehavior) PushS(t Tick, v any) {
	b.promote(t)
	b.pending = v
	b.pendingAt = t
	b.hasPending = true
	b.changedAt = t
	b.PushToChildren(t)
}

func (b *StepperBehavior) promote(t Tick) {
	if b.hasPending && t > b.pendingAt {
		b.Last = b.pending
		b.hasPending = false
	}
}

func (b *StepperBehavior) SamplePush(t Tick) any {
	b.promote(t)
	return b.Last
}

func (b *StepperBehavior) Update(t Tick) any {
	b.promote(t)
	return b.Last
}

// AccumBehavior folds stream occurrences into an accumulator. Instances are
// created per sample point and subscribe immediately, so each one owns an
// independent accumulator from its creation time onward.
type AccumBehavior struct {
	Behavior
	f func(v, acc any) any
}

func NewAccumBehavior(f func(v, acc any) any, initial any, source Parent, t Tick) *AccumBehavior {
	b := &AccumBehavior{f: f}
	b.init(b, source)
	b.alwaysActive = true
	b.Last = initial
	b.hasLast = true
	b.Reactive.Activate(t)
	b.state = Push
	return b
}

func (b *AccumBehavior) PushS(t Tick, v any) {
	b.publish(t, b.f(v, b.Last))
}

func (b *AccumBehavior) Update(Tick) any { return b.Last }

// IntegrateBehavior approximates the integral of a numeric behavior with
// trapezoidal sums over the platform-clock instants at which it is pushed or
// sampled. Like AccumBehavior, instances are per sample point.
type IntegrateBehavior struct {
	Behavior
	source  *Behavior
	sum     float64
	prev    float64
	prevAt  int64 // unix nanos from the platform timer
	primed  bool
}

func NewIntegrateBehavior(source *Behavior, t Tick) *IntegrateBehavior {
	b := &IntegrateBehavior{source: source}
	b.init(b, source)
	b.alwaysActive = true
	b.Last = 0.0
	b.hasLast = true
	b.Reactive.Activate(t)
	b.state = Push
	b.observe(t)
	return b
}

func (b *IntegrateBehavior) observe(t Tick) {
	now := GetRuntime().Timer().Now().UnixNano()
	v, _ := b.source.Sample(t).(float64)
	if b.primed {
		dt := float64(now-b.prevAt) / 1e9
		b.sum += (v + b.prev) / 2 * dt
	}
	b.prev = v
	b.prevAt = now
	b.primed = true
}

func (b *IntegrateBehavior) PushB(t Tick) {
	if b.pulledAt == t {
		return
	}
	b.observe(t)
	b.publish(t, b.sum)
}

func (b *IntegrateBehavior) SamplePush(t Tick) any {
	if b.pulledAt != t {
		b.observe(t)
		b.pulledAt = t
		b.Last = b.sum
		b.changedAt = t
	}
	return b.Last
}

func (b *IntegrateBehavior) Update(Tick) any { return b.Last }
