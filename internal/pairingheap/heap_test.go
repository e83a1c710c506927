package pairingheap

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHeap(t *testing.T) {
	h := New(NewArena())
	assert.True(t, h.Empty())
	_, _, ok := h.PeekMin()
	assert.False(t, ok)
	_, _, ok = h.DeleteMin()
	assert.False(t, ok)
}

func TestInsertAndDrainIsSorted(t *testing.T) {
	values := []float64{5, 1, 4, 1, 9, 2, 6, 5, 3}
	h := New(NewArena())
	for i, v := range values {
		h.Insert(v, i)
	}

	var out []float64
	for !h.Empty() {
		v, _, ok := h.DeleteMin()
		require.True(t, ok)
		out = append(out, v)
	}

	want := append([]float64(nil), values...)
	sort.Float64s(want)
	assert.Equal(t, want, out)
}

func TestPeekMinDoesNotRemove(t *testing.T) {
	h := New(NewArena())
	h.Insert(3, 0)
	h.Insert(1, 1)
	v, p, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 1, p)

	v2, p2, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, v, v2)
	assert.Equal(t, p, p2)
}

func TestDecreaseKeyPromotesToMin(t *testing.T) {
	h := New(NewArena())
	a := h.Insert(10, 0)
	h.Insert(20, 1)
	h.Insert(30, 2)

	h.DecreaseKey(a, 1)
	v, p, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 0, p)
}

func TestDecreaseKeyOnNonRootChild(t *testing.T) {
	h := New(NewArena())
	handles := make([]int, 8)
	for i := 0; i < 8; i++ {
		handles[i] = h.Insert(float64(100+i), i)
	}
	// Decrease a node buried under several links.
	h.DecreaseKey(handles[6], 0.5)
	v, p, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.Equal(t, 6, p)

	v, _, ok = h.DeleteMin()
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestAddToHeapShiftsEveryElement(t *testing.T) {
	h := New(NewArena())
	for i := 0; i < 5; i++ {
		h.Insert(float64(i), i)
	}
	h.AddToHeap(100)

	var out []float64
	for !h.Empty() {
		v, _, _ := h.DeleteMin()
		out = append(out, v)
	}
	want := []float64{100, 101, 102, 103, 104}
	assert.Equal(t, want, out)
}

func TestAddToHeapThenDecreaseKeyComposesCorrectly(t *testing.T) {
	h := New(NewArena())
	a := h.Insert(0, 0)
	h.Insert(10, 1)
	h.AddToHeap(5) // true values now: a=5, b=15
	h.DecreaseKey(a, 2)
	v, p, ok := h.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, 0, p)
}

// TestDeleteMinPropagatesChildOffsetAcrossLevels builds a 3-level chain
// (B -> C -> D) by sequential insert, shifts the whole heap with
// AddToHeap, then pops all three. The third pop must see the offset B's
// removal folded into C's child_offset, not just into C's own value.
func TestDeleteMinPropagatesChildOffsetAcrossLevels(t *testing.T) {
	h := New(NewArena())
	h.Insert(1, 2)   // D
	h.Insert(0.5, 1) // C
	h.Insert(0.1, 0) // B
	h.AddToHeap(100)

	v, p, ok := h.DeleteMin()
	require.True(t, ok)
	assert.Equal(t, 100.1, v)
	assert.Equal(t, 0, p)

	v, p, ok = h.DeleteMin()
	require.True(t, ok)
	assert.Equal(t, 100.5, v)
	assert.Equal(t, 1, p)

	v, p, ok = h.DeleteMin()
	require.True(t, ok)
	assert.Equal(t, 101.0, v)
	assert.Equal(t, 2, p)
}

func TestMeldCombinesAndEmptiesInputs(t *testing.T) {
	arena := NewArena()
	a := New(arena)
	b := New(arena)
	a.Insert(3, 0)
	a.Insert(7, 1)
	b.Insert(1, 2)
	b.Insert(5, 3)

	m := Meld(a, b)
	assert.True(t, a.Empty())
	assert.True(t, b.Empty())

	var out []float64
	for !m.Empty() {
		v, _, _ := m.DeleteMin()
		out = append(out, v)
	}
	assert.Equal(t, []float64{1, 3, 5, 7}, out)
}

// TestRandomizedAgainstReference drives a large random sequence of
// Insert/DeleteMin/DecreaseKey/AddToHeap operations and checks the heap
// always reports the same minimum as a plain reference slice, exercising
// the child_offset invariant under heavy restructuring.
type heapTestItem struct {
	handle int
	value  float64
	alive  bool
}

func TestRandomizedAgainstReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	arena := NewArena()
	h := New(arena)

	var items []*heapTestItem
	var globalOffset float64

	trueOf := func(it *heapTestItem) float64 { return it.value + globalOffset }

	for step := 0; step < 2000; step++ {
		op := rng.Intn(4)
		switch {
		case op == 0 || len(items) == 0:
			v := rng.Float64()*200 - 50
			it := &heapTestItem{value: v - globalOffset, alive: true}
			it.handle = h.Insert(v, len(items))
			items = append(items, it)
		case op == 1:
			// delete-min
			minIdx := -1
			for i, it := range items {
				if !it.alive {
					continue
				}
				if minIdx == -1 || trueOf(it) < trueOf(items[minIdx]) {
					minIdx = i
				}
			}
			if minIdx == -1 {
				continue
			}
			v, p, ok := h.DeleteMin()
			require.True(t, ok)
			assert.InDelta(t, trueOf(items[minIdx]), v, 1e-9)
			assert.Equal(t, minIdx, p)
			items[minIdx].alive = false
		case op == 2:
			// decrease-key on a random alive item
			candidates := aliveIndices(items)
			if len(candidates) == 0 {
				continue
			}
			idx := candidates[rng.Intn(len(candidates))]
			cur := trueOf(items[idx])
			newVal := cur - rng.Float64()*10
			h.DecreaseKey(items[idx].handle, newVal)
			items[idx].value = newVal - globalOffset
		default:
			delta := rng.Float64()*20 - 10
			if h.Empty() {
				continue
			}
			h.AddToHeap(delta)
			globalOffset += delta
		}

		if !h.Empty() {
			wantMinIdx := -1
			for i, it := range items {
				if !it.alive {
					continue
				}
				if wantMinIdx == -1 || trueOf(it) < trueOf(items[wantMinIdx]) {
					wantMinIdx = i
				}
			}
			gotV, gotP, ok := h.PeekMin()
			require.True(t, ok)
			assert.Equal(t, wantMinIdx, gotP)
			assert.True(t, math.Abs(trueOf(items[wantMinIdx])-gotV) < 1e-6)
		}
	}
}

func aliveIndices(items []*heapTestItem) []int {
	var out []int
	for i, it := range items {
		if it.alive {
			out = append(out, i)
		}
	}
	return out
}
