// Package inventory implements the fixed-capacity slot store. Each slot
// holds at most one item; the store tracks which slots are free and keeps
// every held item's cached Slot equal to the index holding it.
package inventory

import (
	"errors"
	"fmt"

	"gear-inventory/internal/component"
)

// DefaultCapacity is the number of slots in a player inventory.
const DefaultCapacity = 18

var (
	ErrFull        = errors.New("inventory full")
	ErrOccupied    = errors.New("slot occupied")
	ErrInvalidItem = errors.New("no item")
)

// RangeError is the panic value for a position outside the store.
// Out-of-range positions are programming errors, not domain failures.
type RangeError struct {
	Position int
	Capacity int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("inventory: position %d out of range [0,%d)", e.Position, e.Capacity)
}

// Store is a fixed-length array of optional items plus its free-slot set.
type Store struct {
	slots []*component.Item
	free  *freeSlots
}

// New creates an empty store with the given number of slots.
func New(capacity int) *Store {
	if capacity <= 0 {
		panic(fmt.Sprintf("inventory: capacity must be positive, got %d", capacity))
	}
	return &Store{
		slots: make([]*component.Item, capacity),
		free:  newFreeSlots(capacity),
	}
}

func (s *Store) checkRange(pos int) {
	if pos < 0 || pos >= len(s.slots) {
		panic(&RangeError{Position: pos, Capacity: len(s.slots)})
	}
}

// Capacity returns the fixed number of slots.
func (s *Store) Capacity() int { return len(s.slots) }

// Len returns the number of occupied slots.
func (s *Store) Len() int { return len(s.slots) - s.free.len() }

// FreeCount returns the number of empty slots.
func (s *Store) FreeCount() int { return s.free.len() }

// HasFreeSlot reports whether at least one slot is empty.
func (s *Store) HasFreeSlot() bool { return s.free.len() > 0 }

// FirstFree returns the lowest empty index.
func (s *Store) FirstFree() (int, bool) { return s.free.min() }

// IsFree reports whether the slot at pos is empty.
func (s *Store) IsFree(pos int) bool {
	s.checkRange(pos)
	return s.free.has(pos)
}

// StoreItem puts item into the lowest free slot and returns that index.
// Nothing changes on failure.
func (s *Store) StoreItem(item *component.Item) (int, error) {
	if item == nil {
		return component.NoSlot, ErrInvalidItem
	}
	pos, ok := s.free.min()
	if !ok {
		return component.NoSlot, ErrFull
	}
	s.place(item, pos)
	return pos, nil
}

// StoreMany stores items in order and returns the ones that did not fit.
// The stored prefix lands on the lowest free indices.
func (s *Store) StoreMany(items []*component.Item) []*component.Item {
	var rejected []*component.Item
	for _, item := range items {
		if _, err := s.StoreItem(item); err != nil {
			rejected = append(rejected, item)
		}
	}
	return rejected
}

// StoreInPosition writes item directly to pos. Without force an occupied
// slot is left alone and ErrOccupied returned; with force the previous
// occupant is dropped from the slot and its Slot reset to NoSlot.
// A nil item clears the slot.
func (s *Store) StoreInPosition(item *component.Item, pos int, force bool) error {
	s.checkRange(pos)
	if !s.free.has(pos) && !force {
		return ErrOccupied
	}
	if prev := s.slots[pos]; prev != nil && prev != item {
		prev.Slot = component.NoSlot
	}
	if item == nil {
		s.slots[pos] = nil
		s.free.add(pos)
		return nil
	}
	s.place(item, pos)
	return nil
}

// SwapInPosition exchanges a caller-held item with the occupant of pos and
// returns (item, previous occupant). The item's Slot becomes pos; the
// displaced item takes over the caller item's previous Slot, or NoSlot
// when the caller held nothing. If item is itself held by this store the
// call is a plain SwapSlots.
func (s *Store) SwapInPosition(item *component.Item, pos int) (placed, displaced *component.Item) {
	s.checkRange(pos)
	other := s.slots[pos]
	if item == other {
		return item, other
	}
	if item != nil && s.holds(item) {
		return s.SwapSlots(item.Slot, pos)
	}

	origin := component.NoSlot
	if item != nil {
		origin = item.Slot
		item.Slot = pos
		s.slots[pos] = item
		s.free.remove(pos)
	} else {
		s.slots[pos] = nil
		s.free.add(pos)
	}
	if other != nil {
		other.Slot = origin
	}
	return item, other
}

// FetchByPosition returns the item at pos without removing it.
func (s *Store) FetchByPosition(pos int) *component.Item {
	s.checkRange(pos)
	return s.slots[pos]
}

// Find returns the index holding item.
func (s *Store) Find(item *component.Item) (int, bool) {
	if item == nil {
		return component.NoSlot, false
	}
	for i, stored := range s.slots {
		if stored == item {
			return i, true
		}
	}
	return component.NoSlot, false
}

// RemoveFromSlot clears pos and returns its previous occupant, or nil if
// the slot was already empty.
func (s *Store) RemoveFromSlot(pos int) *component.Item {
	s.checkRange(pos)
	if s.free.has(pos) {
		return nil
	}
	item := s.slots[pos]
	s.slots[pos] = nil
	s.free.add(pos)
	item.Slot = component.NoSlot
	return item
}

// SwapSlots exchanges the contents of a and b and returns the items that
// were at (a, b) before the swap.
func (s *Store) SwapSlots(a, b int) (itemA, itemB *component.Item) {
	s.checkRange(a)
	s.checkRange(b)
	itemA, itemB = s.slots[a], s.slots[b]
	if a == b {
		return itemA, itemB
	}
	s.slots[a], s.slots[b] = itemB, itemA
	s.settle(a)
	s.settle(b)
	return itemA, itemB
}

// Items returns a copy of the slot array.
func (s *Store) Items() []*component.Item {
	out := make([]*component.Item, len(s.slots))
	copy(out, s.slots)
	return out
}

// holds reports whether item sits at its cached Slot in this store.
func (s *Store) holds(item *component.Item) bool {
	return item.Slot >= 0 && item.Slot < len(s.slots) && s.slots[item.Slot] == item
}

// place writes item to the free slot pos. An item already held elsewhere
// in the store is moved, not duplicated.
func (s *Store) place(item *component.Item, pos int) {
	if s.holds(item) && item.Slot != pos {
		s.slots[item.Slot] = nil
		s.free.add(item.Slot)
	}
	s.slots[pos] = item
	item.Slot = pos
	s.free.remove(pos)
}

// settle re-derives free-set membership and the back-reference for pos.
func (s *Store) settle(pos int) {
	if item := s.slots[pos]; item != nil {
		item.Slot = pos
		s.free.remove(pos)
		return
	}
	s.free.add(pos)
}
