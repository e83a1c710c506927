// Package pairingheap implements an addressable pairing heap: a mergeable
// min-heap whose items are referenced by stable arena-index handles rather
// than pointers, supporting amortized O(log n) delete-min and decrease-key
// and O(1) insert, peek-min, meld and bulk additive offset.
//
// The lazy child_offset trick avoids touching every descendant on a bulk
// add: a node's true value is node.value plus the child_offsets of all its
// ancestors (the root's value is absolute). Link rebases the new child
// against its parent's child_offset so that sum stays unchanged.
package pairingheap

const NoHandle = -1

type node struct {
	sibling     int
	child       int
	leftUp      int
	value       float64
	childOffset float64
	payload     int
}

// Arena backs one or more Heaps with a single growable node pool, matching
// the growth simulator's pattern of allocating one shared buffer per
// cluster set rather than per cluster.
type Arena struct {
	nodes []node
}

func NewArena() *Arena {
	return &Arena{}
}

// Heap is an addressable pairing heap over float64 values with int payloads.
type Heap struct {
	arena *Arena
	root  int
}

// New returns an empty heap backed by arena. Multiple heaps may share one
// arena; handles returned by one heap's Insert are never valid on another.
func New(arena *Arena) *Heap {
	return &Heap{arena: arena, root: NoHandle}
}

func (h *Heap) Empty() bool { return h.root == NoHandle }

func (h *Heap) at(i int) *node { return &h.arena.nodes[i] }

func (h *Heap) alloc(value float64, payload int) int {
	idx := len(h.arena.nodes)
	h.arena.nodes = append(h.arena.nodes, node{
		sibling: NoHandle,
		child:   NoHandle,
		leftUp:  NoHandle,
		value:   value,
		payload: payload,
	})
	return idx
}

// link makes the larger-value root a child of the smaller-value root,
// rebasing the larger's value and child_offset against the smaller's
// child_offset so every true value (value plus ancestor child_offsets)
// is unchanged afterward.
func (h *Heap) link(a, b int) int {
	if a == NoHandle {
		return b
	}
	if b == NoHandle {
		return a
	}
	small, large := a, b
	if h.at(a).value > h.at(b).value {
		small, large = b, a
	}
	sn := h.at(small)
	ln := h.at(large)
	ln.value -= sn.childOffset
	ln.childOffset -= sn.childOffset
	ln.sibling = sn.child
	if sn.child != NoHandle {
		h.at(sn.child).leftUp = large
	}
	ln.leftUp = small
	sn.child = large
	return small
}

// Insert adds value/payload to the heap and returns its handle.
func (h *Heap) Insert(value float64, payload int) int {
	idx := h.alloc(value, payload)
	h.root = h.link(h.root, idx)
	return idx
}

// PeekMin reports the current minimum without removing it.
func (h *Heap) PeekMin() (value float64, payload int, ok bool) {
	if h.root == NoHandle {
		return 0, 0, false
	}
	r := h.at(h.root)
	return r.value, r.payload, true
}

// AddToHeap adds delta to every element currently in the heap, in O(1). The
// root's own value is shifted directly (it has no parent to fold an offset
// through); its child_offset is shifted the same amount, and since every
// descendant's true value includes the root's child_offset, they all pick
// up the shift too.
func (h *Heap) AddToHeap(delta float64) {
	if h.root == NoHandle {
		return
	}
	r := h.at(h.root)
	r.value += delta
	r.childOffset += delta
}

// isLeftmostChild reports whether handle is reached from its leftUp pointer
// as a parent (leftUp.child == handle) rather than as a previous sibling.
func (h *Heap) isLeftmostChild(handle int) bool {
	up := h.at(handle).leftUp
	return up != NoHandle && h.at(up).child == handle
}

// detach removes handle from its current sibling/child position, leaving it
// as a standalone node (no sibling, no leftUp).
func (h *Heap) detach(handle int) {
	n := h.at(handle)
	if n.leftUp == NoHandle {
		n.sibling = NoHandle
		return
	}
	if h.isLeftmostChild(handle) {
		parent := n.leftUp
		h.at(parent).child = n.sibling
		if n.sibling != NoHandle {
			h.at(n.sibling).leftUp = parent
		}
	} else {
		prevSibling := n.leftUp
		h.at(prevSibling).sibling = n.sibling
		if n.sibling != NoHandle {
			h.at(n.sibling).leftUp = prevSibling
		}
	}
	n.sibling = NoHandle
	n.leftUp = NoHandle
}

// DecreaseKey lowers handle's value to newValue, which must not exceed its
// current resolved value, and restores heap order.
func (h *Heap) DecreaseKey(handle int, newValue float64) {
	if handle == h.root {
		h.at(handle).value = newValue
		return
	}
	// Fold the ancestors' child_offsets into handle's own so its
	// descendants keep their true values once it is detached.
	ancestorOffset := 0.0
	for cur := handle; cur != h.root; {
		up := h.at(cur).leftUp
		if h.at(up).child == cur {
			ancestorOffset += h.at(up).childOffset
		}
		cur = up
	}
	h.detach(handle)
	n := h.at(handle)
	n.childOffset += ancestorOffset
	n.value = newValue
	h.root = h.link(h.root, handle)
}

// DeleteMin removes and returns the current minimum.
func (h *Heap) DeleteMin() (value float64, payload int, ok bool) {
	if h.root == NoHandle {
		return 0, 0, false
	}
	old := h.at(h.root)
	value, payload = old.value, old.payload
	child := old.child
	if child == NoHandle {
		h.root = NoHandle
		return value, payload, true
	}

	offset := old.childOffset
	var children []int
	for c := child; c != NoHandle; {
		cn := h.at(c)
		next := cn.sibling
		cn.value += offset
		cn.childOffset += offset
		cn.sibling = NoHandle
		cn.leftUp = NoHandle
		children = append(children, c)
		c = next
	}

	// Pass 1: pair up left to right.
	merged := make([]int, 0, (len(children)+1)/2)
	i := 0
	for ; i+1 < len(children); i += 2 {
		merged = append(merged, h.link(children[i], children[i+1]))
	}
	if i < len(children) {
		merged = append(merged, children[i])
	}

	// Pass 2: combine right to left.
	result := NoHandle
	for j := len(merged) - 1; j >= 0; j-- {
		result = h.link(merged[j], result)
	}
	h.root = result
	return value, payload, true
}

// Meld destructively combines a and b into one heap and empties both
// inputs. a and b must share the same arena.
func Meld(a, b *Heap) *Heap {
	merged := &Heap{arena: a.arena, root: a.link2(b)}
	a.root, b.root = NoHandle, NoHandle
	return merged
}

// link2 links b's root into a's heap (a and b share an arena) and returns
// the resulting root handle, without mutating a.root/b.root themselves.
func (h *Heap) link2(other *Heap) int {
	return h.link(h.root, other.root)
}
