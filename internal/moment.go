package internal

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// MomentBehavior evaluates a body that may sample any behavior it likes.
// Every evaluation records exactly the set of behaviors read; the diff
// against the previous set subscribes to new dependencies and drops the ones
// no longer read, spreadsheet style. Apart from the switcher, which swaps its
// current inner behavior, it is the only node whose parent set mutates over
// time.
type MomentBehavior struct {
	Behavior
	body func(t Tick) any

	deps       mapset.Set[*Behavior]
	depNodes   map[*Behavior]*Node
	collecting mapset.Set[*Behavior]
}

func NewMomentBehavior(body func(t Tick) any) *MomentBehavior {
	b := &MomentBehavior{
		body:     body,
		deps:     mapset.NewThreadUnsafeSet[*Behavior](),
		depNodes: map[*Behavior]*Node{},
	}
	b.init(b)
	return b
}

// record is called from Behavior.Sample while this body runs.
func (b *MomentBehavior) record(dep *Behavior) {
	if b.collecting != nil && dep != &b.Behavior {
		b.collecting.Add(dep)
	}
}

func (b *MomentBehavior) Update(t Tick) any {
	rt := GetRuntime()
	prevMoment, prevTick := rt.activeMoment, rt.momentTick
	rt.activeMoment, rt.momentTick = b, t
	b.collecting = mapset.NewThreadUnsafeSet[*Behavior]()

	v := b.body(t)

	rt.activeMoment, rt.momentTick = prevMoment, prevTick
	next := b.collecting
	b.collecting = nil

	if b.state != Inactive {
		for dep := range next.Difference(b.deps).Iter() {
			b.depNodes[dep], _ = attachTo(b, dep, t)
		}
		for dep := range b.deps.Difference(next).Iter() {
			dep.RemoveListener(b.depNodes[dep])
			delete(b.depNodes, dep)
		}
	}
	b.deps = next
	b.syncParents()
	return v
}

// syncParents mirrors the dependency set into the base parent slice so the
// state join sees the current dependencies.
func (b *MomentBehavior) syncParents() {
	b.parents = b.parents[:0]
	for dep := range b.deps.Iter() {
		b.parents = append(b.parents, dep)
	}
}

func (b *MomentBehavior) Activate(t Tick) {
	if b.state != Inactive {
		return
	}
	b.state = Pull
	b.refresh(t) // runs the body once, wiring the dependency set
	if s := b.joinParents(); s < Inactive {
		b.state = s
	} else {
		b.state = OnlyPull
	}
}

func (b *MomentBehavior) Deactivate() {
	for dep, n := range b.depNodes {
		dep.RemoveListener(n)
		delete(b.depNodes, dep)
	}
	b.deps = mapset.NewThreadUnsafeSet[*Behavior]()
	b.parents = b.parents[:0]
	b.parentNodes = b.parentNodes[:0]
	b.state = Inactive
}

func (b *MomentBehavior) ChangeStateDown(t Tick) {
	ns := b.joinParents()
	if ns >= Inactive {
		ns = OnlyPull
	}
	if ns == b.state {
		return
	}
	b.state = ns
	b.notifyStateToChildren(t)
}
