package game

import (
	"gear-inventory/internal/component"
	"gear-inventory/internal/controller"

	"github.com/gdamore/tcell/v2"
)

// handleKey maps keyboard input. Arrows move the cursor, Enter equips or
// unequips, Space picks up or drops at the cursor.
func (g *Game) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return false
	case tcell.KeyCtrlL:
		g.screen.Sync()
		g.renderer.Draw()
	case tcell.KeyUp:
		g.moveCursor(0, -1)
	case tcell.KeyDown:
		g.moveCursor(0, 1)
	case tcell.KeyLeft:
		g.moveCursor(-1, 0)
	case tcell.KeyRight:
		g.moveCursor(1, 0)
	case tcell.KeyEnter:
		g.apply(controller.IntentFor(g.cursor, controller.ButtonLeft))
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			g.toggleDrag()
		}
	}
	return true
}

// toggleDrag starts a drag at the cursor, or drops the current one there.
func (g *Game) toggleDrag() {
	g.pointAtCursor()
	if _, dragging := g.ctrl.Dragging(); dragging {
		g.apply(controller.Intent{Kind: controller.IntentDragDrop, Slot: g.cursor})
		return
	}
	g.apply(controller.Intent{Kind: controller.IntentDragStart, Slot: g.cursor})
}

// moveCursor steps the keyboard cursor. The equipment column sits to the
// left of grid column 0.
func (g *Game) moveCursor(dx, dy int) {
	layout := g.renderer.Layout()
	parts := component.Parts()

	if g.cursor.IsEquipment() {
		i := partPosition(g.cursor.Part)
		switch {
		case dy != 0:
			i = clamp(i+dy, 0, len(parts)-1)
			g.cursor = controller.EquipmentSlot(parts[i])
		case dx > 0:
			row := min(i, layout.Rows()-1)
			g.cursor = controller.InventorySlot(row * layout.Columns)
		}
	} else {
		col, row := g.cursor.Index%layout.Columns, g.cursor.Index/layout.Columns
		switch {
		case dx < 0 && col == 0:
			g.cursor = controller.EquipmentSlot(parts[min(row, len(parts)-1)])
		case dx != 0:
			col = clamp(col+dx, 0, layout.Columns-1)
		default:
			row = clamp(row+dy, 0, layout.Rows()-1)
		}
		if !g.cursor.IsEquipment() {
			g.cursor = controller.InventorySlot(min(row*layout.Columns+col, layout.Capacity-1))
		}
	}

	g.renderer.SetCursor(g.cursor)
	if _, dragging := g.ctrl.Dragging(); dragging {
		g.pointAtCursor()
	}
	g.renderer.Draw()
}

// pointAtCursor parks the pointer just below the cursor cell so a keyboard
// drag shows its ghost there.
func (g *Game) pointAtCursor() {
	x, y := g.renderer.Layout().SlotOrigin(g.cursor)
	g.renderer.MovePointer(x+1, y+1)
}

// handleMouse maps pointer input. A left press equips or unequips, a right
// press starts a drag, the release drops it on the slot under the pointer.
func (g *Game) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := buttons &^ g.buttons
	released := g.buttons != 0 && buttons == 0
	g.buttons = buttons

	g.renderer.MovePointer(x, y)
	slot, onSlot := g.renderer.Layout().SlotAt(x, y)

	switch {
	case pressed&tcell.Button1 != 0:
		if onSlot {
			g.apply(controller.IntentFor(slot, controller.ButtonLeft))
			return
		}
	case pressed&tcell.Button2 != 0:
		if onSlot {
			g.apply(controller.IntentFor(slot, controller.ButtonRight))
			return
		}
	case pressed&tcell.Button3 != 0:
		// The middle button has no action.
	case released:
		if _, dragging := g.ctrl.Dragging(); dragging {
			if onSlot {
				g.apply(controller.Intent{Kind: controller.IntentDragDrop, Slot: slot})
			} else {
				g.apply(controller.Intent{Kind: controller.IntentDragCancel})
			}
			return
		}
	}
	// Pointer motion: the ghost and the tooltip follow.
	g.renderer.Draw()
}

func partPosition(p component.EquipmentPart) int {
	for i, q := range component.Parts() {
		if q == p {
			return i
		}
	}
	return 0
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
