package inventory

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"
)

// freeSlots is the set of unoccupied indices. Membership lives in the
// mapset; the heap orders candidates so the lowest free index is found
// without re-sorting. Heap entries are deleted lazily: an index that is
// no longer a member is discarded when it reaches the top.
type freeSlots struct {
	members mapset.Set[int]
	order   *heap.Heap[int]
	limit   int // heap size that triggers a rebuild
}

func lessInt(a, b int) bool { return a < b }

// newFreeSlots returns a set holding every index in [0, n).
func newFreeSlots(n int) *freeSlots {
	f := &freeSlots{
		members: mapset.New[int](),
		order:   heap.New(lessInt),
		limit:   2*n + 8,
	}
	for i := range n {
		f.members.Put(i)
		f.order.Push(i)
	}
	return f
}

func (f *freeSlots) has(i int) bool { return f.members.Has(i) }

func (f *freeSlots) len() int { return f.members.Size() }

func (f *freeSlots) add(i int) {
	if f.members.Has(i) {
		return
	}
	f.members.Put(i)
	f.order.Push(i)
	if f.order.Size() > f.limit {
		f.rebuild()
	}
}

func (f *freeSlots) remove(i int) { f.members.Remove(i) }

// min returns the lowest free index, dropping stale heap entries on the way.
func (f *freeSlots) min() (int, bool) {
	for {
		i, ok := f.order.Peek()
		if !ok {
			return 0, false
		}
		if f.members.Has(i) {
			return i, true
		}
		f.order.Pop()
	}
}

// rebuild discards stale and duplicate heap entries.
func (f *freeSlots) rebuild() {
	f.order = heap.New(lessInt)
	f.members.Each(func(i int) {
		f.order.Push(i)
	})
}
