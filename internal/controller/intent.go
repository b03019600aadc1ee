package controller

import "fmt"

// IntentKind is what the player asked for.
type IntentKind uint8

const (
	IntentNone IntentKind = iota
	IntentEquip
	IntentUnequip
	IntentDragStart
	IntentDragDrop
	IntentDragCancel
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentEquip:      "equip",
	IntentUnequip:    "unequip",
	IntentDragStart:  "drag-start",
	IntentDragDrop:   "drag-drop",
	IntentDragCancel: "drag-cancel",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("IntentKind(%d)", uint8(k))
}

// Intent is one slot interaction produced by the presentation layer.
// Slot is the slot acted on; for IntentDragDrop it is the drop target.
type Intent struct {
	Kind IntentKind
	Slot SlotRef
}

// Apply dispatches an intent.
func (c *Controller) Apply(in Intent) error {
	switch in.Kind {
	case IntentEquip:
		return c.Equip(in.Slot)
	case IntentUnequip:
		return c.Unequip(in.Slot)
	case IntentDragStart:
		return c.StartDrag(in.Slot)
	case IntentDragDrop:
		return c.Drop(in.Slot)
	case IntentDragCancel:
		c.CancelDrag()
		return nil
	}
	return nil
}

// IntentFor maps a pointer press on slot to an intent: the right button
// starts a drag, the left button unequips an equipment slot or equips an
// inventory slot, the middle button maps to IntentNone.
func IntentFor(slot SlotRef, button Button) Intent {
	switch button {
	case ButtonRight:
		return Intent{Kind: IntentDragStart, Slot: slot}
	case ButtonLeft:
		if slot.IsEquipment() {
			return Intent{Kind: IntentUnequip, Slot: slot}
		}
		return Intent{Kind: IntentEquip, Slot: slot}
	}
	return Intent{Kind: IntentNone, Slot: slot}
}

// Interact applies the intent for a pointer press on slot.
func (c *Controller) Interact(slot SlotRef, button Button) error {
	return c.Apply(IntentFor(slot, button))
}

// StartDrag picks up the item in slot. Empty slots cannot be dragged.
func (c *Controller) StartDrag(slot SlotRef) error {
	defer c.notify()
	if c.ItemAt(slot) == nil {
		c.dragging = false
		return c.reject("drag", slot, ErrInvalidItem, "")
	}
	c.dragging = true
	c.dragOrigin = slot
	c.status = ""
	return nil
}

// Dragging returns the slot a drag started from.
func (c *Controller) Dragging() (SlotRef, bool) {
	return c.dragOrigin, c.dragging
}

// Drop resolves the current drag onto target. An inventory target swaps
// with the origin; the equipment slot matching the dragged item's part
// equips it; anything else cancels the drag. The drag ends either way.
func (c *Controller) Drop(target SlotRef) error {
	defer c.notify()
	if !c.dragging {
		return c.reject("drop", target, ErrNotDragging, "")
	}
	origin := c.dragOrigin
	c.dragging = false
	c.dragOrigin = SlotRef{}

	if origin.Same(target) {
		c.status = ""
		return nil
	}
	if !target.IsEquipment() {
		return c.swap(origin, target)
	}

	dragged := c.ItemAt(origin)
	if dragged == nil || dragged.Part != target.Part {
		return c.reject("drop", target, ErrPartMismatch, "That does not go there.")
	}
	if origin.IsEquipment() {
		// Two equipment slots never share a part.
		return c.reject("drop", target, ErrPartMismatch, "That does not go there.")
	}
	return c.equip(origin)
}

// CancelDrag ends a drag without changing anything.
func (c *Controller) CancelDrag() {
	defer c.notify()
	c.dragging = false
	c.dragOrigin = SlotRef{}
	c.status = ""
}
