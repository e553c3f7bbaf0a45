package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUReplacerEvictsLeastRecentlyInserted(t *testing.T) {
	r := NewLRUReplacer(5)
	r.Insert(0)
	r.Insert(1)
	r.Insert(2)
	r.Insert(3)
	r.Insert(4)
	require.Equal(t, 5, r.Size())

	for _, want := range []FrameId{0, 1, 2, 3, 4} {
		got, ok := r.Victim()
		require.True(t, ok)
		require.Equal(t, want, got)
	}
	require.Equal(t, 0, r.Size())
}

func TestLRUReplacerInsertPromotesToMRU(t *testing.T) {
	r := NewLRUReplacer(5)
	r.Insert(0)
	r.Insert(1)
	r.Insert(2)
	r.Insert(3)
	r.Insert(4)

	// Re-inserting 0 promotes it past everything already tracked.
	r.Insert(0)

	var order []FrameId
	for r.Size() > 0 {
		v, _ := r.Victim()
		order = append(order, v)
	}
	require.Equal(t, []FrameId{1, 2, 3, 4, 0}, order)
}

func TestLRUReplacerRemove(t *testing.T) {
	r := NewLRUReplacer(3)
	r.Insert(0)
	r.Insert(1)
	r.Remove(0)
	require.Equal(t, 1, r.Size())

	r.Remove(99) // no-op, absent frame

	v, ok := r.Victim()
	require.True(t, ok)
	require.Equal(t, FrameId(1), v)
}

func TestLRUReplacerVictimOnEmptyReturnsFalse(t *testing.T) {
	r := NewLRUReplacer(3)
	_, ok := r.Victim()
	require.False(t, ok)
}
