package internal

// Node is one entry in a reactive's listener list. The observer keeps the
// pointer, which makes removal O(1) without searching.
type Node struct {
	Sub StateListener

	// stamp of the propagation during which the node was linked; a node never
	// observes the push that was already in flight when it was added
	addedAt Tick

	prev, next *Node
	linked     bool
}

func NewNode(sub StateListener) *Node {
	return &Node{Sub: sub}
}

// NodeList is an intrusive doubly-linked list of listener nodes. Insertion
// order is iteration order.
type NodeList struct {
	head, tail *Node
	size       int
}

func (l *NodeList) Len() int { return l.size }

func (l *NodeList) Head() *Node { return l.head }

func (l *NodeList) Append(n *Node) {
	if n.linked {
		return
	}
	n.linked = true
	n.prev = l.tail
	n.next = nil
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

func (l *NodeList) Remove(n *Node) {
	if !n.linked {
		return
	}
	n.linked = false
	if n.prev == nil {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.prev, n.next = nil, nil
	l.size--
}
