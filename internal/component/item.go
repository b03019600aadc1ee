package component

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// NoSlot is the cached slot index of an item that is not held by an
// inventory store (equipped, or not stored anywhere).
const NoSlot = -1

// Item is one piece of gear. Items are shared by pointer: the inventory
// store and the equipment map hold references, never copies.
type Item struct {
	ID   string
	Name string
	Icon string         // glyph from the asset catalog; "" when none matched
	Tint colorful.Color // opaque to the inventory logic
	Part EquipmentPart  // PartNone when the item cannot be equipped
	Slot int            // inventory index holding this item, or NoSlot
}

// Equippable reports whether the item carries an equipment-part tag.
func (i *Item) Equippable() bool { return i != nil && i.Part != PartNone }

func (i *Item) String() string {
	if i == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s-%s", i.Name, i.ID)
}
