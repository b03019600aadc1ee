package assets

// Icon glyphs, keyed by the lower-case item name.
const (
	GlyphHead    = "🪖"
	GlyphChest   = "🥋"
	GlyphHands   = "🧤"
	GlyphLegs    = "👖"
	GlyphFeet    = "🥾"
	GlyphWeapon  = "🗡"
	GlyphTrinket = "💍"
)

var icons = map[string]string{
	"head":    GlyphHead,
	"chest":   GlyphChest,
	"hands":   GlyphHands,
	"legs":    GlyphLegs,
	"feet":    GlyphFeet,
	"weapon":  GlyphWeapon,
	"trinket": GlyphTrinket,
}

// Icon returns the glyph registered under name, or "" if there is none.
func Icon(name string) string {
	return icons[name]
}
