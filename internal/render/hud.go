package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawHUD renders the separator, the tooltip for the hovered slot, the
// equipped count and the status line below the panels.
func (r *Renderer) drawHUD() {
	hudY := r.layout.Bottom()
	r.drawHLine(hudY, tcell.ColorGray)

	tip := ""
	if slot, ok := r.layout.SlotAt(r.pointerX, r.pointerY); ok {
		if item := r.snap.ItemAt(slot); item != nil {
			tip = fmt.Sprintf("%s  (%s)", item.Name, slot)
		} else {
			tip = slot.String()
		}
	}
	r.drawText(0, hudY+1, tip, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	used := 0
	for _, it := range r.snap.Items {
		if it != nil {
			used++
		}
	}
	summary := fmt.Sprintf("Slots %d/%d  Equipped %d", used, len(r.snap.Items), len(r.snap.Equipped))
	r.drawText(0, hudY+2, summary, tcell.StyleDefault.Foreground(tcell.ColorLightCyan))

	r.drawText(0, hudY+3, r.snap.Status, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	r.drawText(0, hudY+4, "[L] equip/unequip  [R] drag  [q] quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text from column x, truncated to the screen width.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	w, _ := r.screen.Size()
	if x >= w {
		return
	}
	text = runewidth.Truncate(text, w-x, "…")
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
