package controller

import "gear-inventory/internal/component"

// Snapshot is the full state handed to observers on every refresh.
type Snapshot struct {
	Items      []*component.Item // one entry per inventory slot, nil when empty
	Equipment  map[component.EquipmentPart]*component.Item
	Equipped   []*component.Item // occupied parts in part order
	Dragging   bool
	DragOrigin SlotRef
	Status     string // outcome of the last operation, for display
}

// ItemAt returns the item the snapshot shows in slot.
func (s Snapshot) ItemAt(slot SlotRef) *component.Item {
	if slot.IsEquipment() {
		return s.Equipment[slot.Part]
	}
	if slot.Index < 0 || slot.Index >= len(s.Items) {
		return nil
	}
	return s.Items[slot.Index]
}

// Observer is notified after every operation with a fresh snapshot.
type Observer interface {
	Refresh(Snapshot)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Refresh(s Snapshot) { f(s) }
