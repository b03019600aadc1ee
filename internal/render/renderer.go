package render

import (
	"gear-inventory/internal/component"
	"gear-inventory/internal/controller"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	frameStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	cursorStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	originStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// Renderer draws the equipment column and the inventory grid onto a tcell
// screen. It implements controller.Observer: every refresh redraws every
// slot.
type Renderer struct {
	screen tcell.Screen
	layout Layout
	snap   controller.Snapshot

	pointerX, pointerY int
	cursor             controller.SlotRef
	showCursor         bool
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, layout Layout) *Renderer {
	return &Renderer{screen: screen, layout: layout, pointerX: -1, pointerY: -1}
}

// Layout returns the slot geometry used for drawing and hit testing.
func (r *Renderer) Layout() Layout { return r.layout }

// Refresh stores the snapshot and redraws the whole screen.
func (r *Renderer) Refresh(s controller.Snapshot) {
	r.snap = s
	r.Draw()
}

// MovePointer records the pointer position, used for the ghost icon and
// the tooltip.
func (r *Renderer) MovePointer(x, y int) {
	r.pointerX, r.pointerY = x, y
}

// SetCursor highlights slot for keyboard navigation.
func (r *Renderer) SetCursor(slot controller.SlotRef) {
	r.cursor = slot
	r.showCursor = true
}

// Draw renders the last snapshot.
func (r *Renderer) Draw() {
	r.screen.Clear()
	r.drawText(0, 0, " Equipment", labelStyle.Bold(true))
	r.drawText(r.layout.GridX, 0, "Inventory", labelStyle.Bold(true))

	for _, slot := range r.layout.Slots() {
		r.drawSlot(slot)
	}
	for _, p := range component.Parts() {
		x, y := r.layout.SlotOrigin(controller.EquipmentSlot(p))
		r.drawText(x+cellW+1, y, p.String(), labelStyle)
	}

	r.drawHUD()
	// The ghost goes last so it stays on top of everything else.
	if r.snap.Dragging {
		if item := r.snap.ItemAt(r.snap.DragOrigin); item != nil && r.pointerX >= 0 {
			r.putGlyph(r.pointerX, r.pointerY, itemGlyph(item), itemStyle(item))
		}
	}
	r.screen.Show()
}

// drawSlot draws one "[xx]" cell. The drag origin is drawn without its
// icon while the item is carried by the pointer.
func (r *Renderer) drawSlot(slot controller.SlotRef) {
	x, y := r.layout.SlotOrigin(slot)
	style := frameStyle
	switch {
	case r.showCursor && r.cursor.Same(slot):
		style = cursorStyle
	case r.snap.Dragging && r.snap.DragOrigin.Same(slot):
		style = originStyle
	}
	r.screen.SetContent(x, y, '[', nil, style)
	r.screen.SetContent(x+cellW-1, y, ']', nil, style)

	item := r.snap.ItemAt(slot)
	if item == nil || (r.snap.Dragging && r.snap.DragOrigin.Same(slot)) {
		return
	}
	r.putGlyph(x+1, y, itemGlyph(item), itemStyle(item))
}

// itemGlyph returns the item's icon, falling back to its initial.
func itemGlyph(item *component.Item) string {
	if item.Icon != "" {
		return item.Icon
	}
	if item.Name == "" {
		return "?"
	}
	return string([]rune(item.Name)[:1])
}

// itemStyle tints the glyph with the item's color.
func itemStyle(item *component.Item) tcell.Style {
	cr, cg, cb := item.Tint.Clamped().RGB255()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cr), int32(cg), int32(cb)))
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Keep narrow glyphs two columns wide so cells line up.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
