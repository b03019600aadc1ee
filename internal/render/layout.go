package render

import (
	"gear-inventory/internal/component"
	"gear-inventory/internal/controller"
)

// Cell geometry. A slot is drawn as "[xx]" where xx is a two-column glyph.
const (
	cellW   = 4
	colStep = cellW + 1
	rowStep = 2
)

// Layout places the equipment column and the inventory grid on screen and
// answers which slot lies under a screen position.
type Layout struct {
	Capacity int
	Columns  int
	EquipX   int
	EquipY   int
	GridX    int
	GridY    int
}

// NewLayout returns the default layout for an inventory of capacity slots
// arranged in columns columns.
func NewLayout(capacity, columns int) Layout {
	if columns <= 0 {
		columns = 6
	}
	return Layout{
		Capacity: capacity,
		Columns:  columns,
		EquipX:   2,
		EquipY:   2,
		GridX:    20,
		GridY:    2,
	}
}

// Rows returns the number of inventory grid rows.
func (l Layout) Rows() int {
	return (l.Capacity + l.Columns - 1) / l.Columns
}

// Bottom returns the first screen row below both panels.
func (l Layout) Bottom() int {
	equip := l.EquipY + len(component.Parts())*rowStep
	grid := l.GridY + l.Rows()*rowStep
	return max(equip, grid)
}

// SlotOrigin returns the top-left screen cell of slot.
func (l Layout) SlotOrigin(slot controller.SlotRef) (x, y int) {
	if slot.IsEquipment() {
		return l.EquipX, l.EquipY + partIndex(slot.Part)*rowStep
	}
	return l.GridX + (slot.Index%l.Columns)*colStep, l.GridY + (slot.Index/l.Columns)*rowStep
}

// SlotAt returns the slot drawn at screen position (x, y).
func (l Layout) SlotAt(x, y int) (controller.SlotRef, bool) {
	parts := component.Parts()
	if x >= l.EquipX && x < l.EquipX+cellW && y >= l.EquipY && (y-l.EquipY)%rowStep == 0 {
		if i := (y - l.EquipY) / rowStep; i < len(parts) {
			return controller.EquipmentSlot(parts[i]), true
		}
	}
	if x < l.GridX || y < l.GridY || (y-l.GridY)%rowStep != 0 {
		return controller.SlotRef{}, false
	}
	dx := x - l.GridX
	if dx%colStep >= cellW {
		return controller.SlotRef{}, false // gap between cells
	}
	col, row := dx/colStep, (y-l.GridY)/rowStep
	if col >= l.Columns {
		return controller.SlotRef{}, false
	}
	idx := row*l.Columns + col
	if idx >= l.Capacity {
		return controller.SlotRef{}, false
	}
	return controller.InventorySlot(idx), true
}

// Slots lists every slot in drawing order: equipment first, then the grid.
func (l Layout) Slots() []controller.SlotRef {
	out := make([]controller.SlotRef, 0, len(component.Parts())+l.Capacity)
	for _, p := range component.Parts() {
		out = append(out, controller.EquipmentSlot(p))
	}
	for i := range l.Capacity {
		out = append(out, controller.InventorySlot(i))
	}
	return out
}

func partIndex(p component.EquipmentPart) int {
	for i, q := range component.Parts() {
		if q == p {
			return i
		}
	}
	return 0
}
