package indexedpq

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyQueue(t *testing.T) {
	q := New()
	assert.Equal(t, 0, q.Len())
	_, _, ok := q.PeekMin()
	assert.False(t, ok)
	_, _, ok = q.DeleteMin()
	assert.False(t, ok)
}

func TestInsertAndDrainOrdered(t *testing.T) {
	q := New()
	q.Insert(5, 0)
	q.Insert(1, 1)
	q.Insert(3, 2)
	q.Insert(2, 3)

	var order []int
	for q.Len() > 0 {
		_, idx, ok := q.DeleteMin()
		require.True(t, ok)
		order = append(order, idx)
	}
	assert.Equal(t, []int{1, 3, 2, 0}, order)
}

func TestInsertUpsertsExistingIndex(t *testing.T) {
	q := New()
	q.Insert(10, 0)
	q.Insert(1, 1)
	q.Insert(2, 0) // index 0 now has value 2, still > value 1 of index 1
	v, idx, ok := q.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2, q.Len())
}

func TestDecreaseKey(t *testing.T) {
	q := New()
	q.Insert(10, 0)
	q.Insert(20, 1)
	q.DecreaseKey(1, 1)
	v, idx, ok := q.PeekMin()
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 1, idx)
}

func TestDeleteIsNoopWhenAbsent(t *testing.T) {
	q := New()
	q.Insert(5, 0)
	q.Delete(99)
	assert.Equal(t, 1, q.Len())
	q.Delete(0)
	assert.Equal(t, 0, q.Len())
}

func TestRandomizedMatchesSortedOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	q := New()
	n := 200
	values := make([]float64, n)
	present := make([]bool, n)
	for i := 0; i < n; i++ {
		values[i] = rng.Float64() * 1000
		q.Insert(values[i], i)
		present[i] = true
	}

	// Randomly decrease some keys and delete others before draining.
	for i := 0; i < n/4; i++ {
		idx := rng.Intn(n)
		if !present[idx] {
			continue
		}
		if rng.Intn(2) == 0 {
			nv := values[idx] - rng.Float64()*10
			values[idx] = nv
			q.DecreaseKey(nv, idx)
		} else {
			q.Delete(idx)
			present[idx] = false
		}
	}

	var lastVal float64 = -1
	count := 0
	for q.Len() > 0 {
		v, idx, ok := q.DeleteMin()
		require.True(t, ok)
		assert.True(t, present[idx])
		assert.GreaterOrEqual(t, v, lastVal)
		lastVal = v
		count++
	}
	want := 0
	for _, p := range present {
		if p {
			want++
		}
	}
	assert.Equal(t, want, count)
}
