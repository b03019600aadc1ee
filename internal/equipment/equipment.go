// Package equipment maps each equipment part to at most one equipped item.
package equipment

import (
	"errors"
	"fmt"

	"gear-inventory/internal/component"
)

var ErrPartMismatch = errors.New("item does not fit this part")

// Map holds the equipped item for each part. A nil entry means empty.
type Map struct {
	parts map[component.EquipmentPart]*component.Item
}

// New returns an empty equipment map.
func New() *Map {
	return &Map{parts: make(map[component.EquipmentPart]*component.Item)}
}

// Get returns the item equipped on part, or nil.
func (m *Map) Get(part component.EquipmentPart) *component.Item { return m.parts[part] }

// Has reports whether something is equipped on part.
func (m *Map) Has(part component.EquipmentPart) bool { return m.parts[part] != nil }

// Len returns the number of occupied parts.
func (m *Map) Len() int { return len(m.parts) }

// Set equips item on part and returns the previously equipped item.
// A nil item clears the part. The item's tag must match part.
func (m *Map) Set(part component.EquipmentPart, item *component.Item) (*component.Item, error) {
	if part == component.PartNone || !part.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrPartMismatch, part)
	}
	if item == nil {
		return m.Remove(part), nil
	}
	if item.Part != part {
		return nil, fmt.Errorf("%w: %s on %v", ErrPartMismatch, item.Name, part)
	}
	prev := m.parts[part]
	m.parts[part] = item
	item.Slot = component.NoSlot
	return prev, nil
}

// Remove clears part and returns what was equipped there.
func (m *Map) Remove(part component.EquipmentPart) *component.Item {
	prev := m.parts[part]
	delete(m.parts, part)
	return prev
}

// Items returns the equipped items in part order, skipping empty parts.
func (m *Map) Items() []*component.Item {
	out := make([]*component.Item, 0, len(m.parts))
	for _, p := range component.Parts() {
		if it := m.parts[p]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Snapshot returns a copy of the part → item mapping.
func (m *Map) Snapshot() map[component.EquipmentPart]*component.Item {
	out := make(map[component.EquipmentPart]*component.Item, len(m.parts))
	for p, it := range m.parts {
		out[p] = it
	}
	return out
}
