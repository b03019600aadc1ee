package controller

import (
	"fmt"

	"gear-inventory/internal/component"
)

// SlotKind tells inventory slots from equipment slots.
type SlotKind uint8

const (
	SlotInventory SlotKind = iota
	SlotEquipment
)

// SlotRef addresses one slot the player can interact with. Index is used
// for inventory slots, Part for equipment slots.
type SlotRef struct {
	Kind  SlotKind
	Index int
	Part  component.EquipmentPart
}

// InventorySlot refers to inventory index i.
func InventorySlot(i int) SlotRef { return SlotRef{Kind: SlotInventory, Index: i} }

// EquipmentSlot refers to the equipment slot for part.
func EquipmentSlot(part component.EquipmentPart) SlotRef {
	return SlotRef{Kind: SlotEquipment, Index: component.NoSlot, Part: part}
}

// IsEquipment reports whether s is an equipment slot.
func (s SlotRef) IsEquipment() bool { return s.Kind == SlotEquipment }

// Same reports whether s and o address the same slot.
func (s SlotRef) Same(o SlotRef) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.IsEquipment() {
		return s.Part == o.Part
	}
	return s.Index == o.Index
}

func (s SlotRef) String() string {
	if s.IsEquipment() {
		return fmt.Sprintf("equipment slot %v", s.Part)
	}
	return fmt.Sprintf("inventory slot %d", s.Index)
}

// Button is the pointer button of a slot interaction.
type Button uint8

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)
