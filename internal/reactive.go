package internal

import "reflect"

// State is the propagation mode of a reactive. The numeric order matters:
// joining parent states takes the minimum, so Push wins over Pull, Pull over
// OnlyPull, and an Inactive or Done parent never drags an active child up.
type State uint8

const (
	Push State = iota
	Pull
	OnlyPull
	Inactive
	Done
)

func (s State) String() string {
	switch s {
	case Push:
		return "push"
	case Pull:
		return "pull"
	case OnlyPull:
		return "only-pull"
	case Inactive:
		return "inactive"
	case Done:
		return "done"
	}
	return "unknown"
}

// StateListener is the minimal downstream contract: every listener reacts to
// state changes cascading down from its parents.
type StateListener interface {
	ChangeStateDown(t Tick)
}

// SListener receives discrete occurrences (stream pushes, future resolution).
type SListener interface {
	StateListener
	PushS(t Tick, v any)
}

// BListener is notified that a behavior it listens to changed at t; it reads
// the fresh value by sampling.
type BListener interface {
	StateListener
	PushB(t Tick)
}

// Parent is the upstream contract: something listeners can be linked to.
type Parent interface {
	AddListener(n *Node, t Tick) State
	RemoveListener(n *Node)
	CurrentState() State
}

type activatable interface {
	Activate(t Tick)
	Deactivate()
}

// Reactive is the shared node core: the state machine, the listener list and
// the parent subscriptions. Concrete nodes embed it and register themselves
// as self so the base can dispatch overridden hooks.
type Reactive struct {
	self any

	state       State
	listeners   NodeList
	parents     []Parent
	parentNodes []*Node

	// roots and self-activating accumulators never deactivate on listener loss
	alwaysActive bool
}

func (r *Reactive) init(self any, parents ...Parent) {
	r.self = self
	r.state = Inactive
	r.parents = parents
}

func (r *Reactive) CurrentState() State { return r.state }

func (r *Reactive) NrOfListeners() int { return r.listeners.Len() }

// AddListener links n and returns the current state so the new listener can
// synchronize. The first listener activates the node.
func (r *Reactive) AddListener(n *Node, t Tick) State {
	n.addedAt = t
	r.listeners.Append(n)
	if r.listeners.Len() == 1 && r.state == Inactive && !r.alwaysActive {
		r.self.(activatable).Activate(t)
	}
	return r.state
}

// RemoveListener unlinks n. Losing the last listener deactivates the node and
// releases its parent subscriptions. A node can sit in Inactive state with
// live parent links when a placeholder upstream is still unreplaced, so the
// parent-node check matters too.
func (r *Reactive) RemoveListener(n *Node) {
	r.listeners.Remove(n)
	if r.listeners.Len() == 0 && !r.alwaysActive && r.state != Done &&
		(r.state != Inactive || len(r.parentNodes) > 0) {
		r.self.(activatable).Deactivate()
	}
}

// Activate subscribes to every parent and adopts the join of their states.
func (r *Reactive) Activate(t Tick) {
	if r.state != Inactive {
		return
	}
	newState := Done
	for _, p := range r.parents {
		n := NewNode(r.self.(StateListener))
		r.parentNodes = append(r.parentNodes, n)
		if s := p.AddListener(n, t); s < newState {
			newState = s
		}
		if r.state != Inactive {
			// a parent fired reentrantly during subscription (an already
			// resolved future) and settled this node
			return
		}
	}
	r.state = newState
}

// Deactivate unsubscribes from every parent and returns to Inactive.
func (r *Reactive) Deactivate() {
	r.unlinkParents()
	r.state = Inactive
}

func (r *Reactive) unlinkParents() {
	for i, n := range r.parentNodes {
		r.parents[i].RemoveListener(n)
	}
	r.parentNodes = r.parentNodes[:0]
}

func (r *Reactive) joinParents() State {
	s := Done
	for _, p := range r.parents {
		if ps := p.CurrentState(); ps < s {
			s = ps
		}
	}
	return s
}

// ChangeStateDown recomputes this node's state from its parents and, when it
// changed, cascades further down. Idempotent when the join is unchanged.
func (r *Reactive) ChangeStateDown(t Tick) {
	ns := r.joinParents()
	if ns == r.state {
		return
	}
	r.state = ns
	r.notifyStateToChildren(t)
}

func (r *Reactive) notifyStateToChildren(t Tick) {
	for n := r.listeners.Head(); n != nil; {
		next := n.next
		n.Sub.ChangeStateDown(t)
		n = next
	}
}

// sameVal reports value equality for the change-suppression check. Values of
// uncomparable types always count as changed.
func sameVal(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
