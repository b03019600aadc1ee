// Package factory mints placeholder items and keeps the item database the
// controller resolves identifiers against.
package factory

import (
	"fmt"
	"math/rand"
	"strings"

	"gear-inventory/assets"
	"gear-inventory/internal/component"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// Factory creates items. Identifiers and tints are drawn from rng so a
// seeded factory is reproducible.
type Factory struct {
	rng *rand.Rand
}

// New creates a Factory drawing randomness from rng.
func New(rng *rand.Rand) *Factory {
	return &Factory{rng: rng}
}

// NewItem creates an item tagged with part (PartNone for an untagged item).
// The name comes from the part and the icon from the asset catalog.
func (f *Factory) NewItem(part component.EquipmentPart) *component.Item {
	name := part.String()
	return &component.Item{
		ID:   f.newID(),
		Name: name,
		Icon: assets.Icon(strings.ToLower(name)),
		Tint: f.randomTint(),
		Part: part,
		Slot: component.NoSlot,
	}
}

// NewItems creates n items tagged with part.
func (f *Factory) NewItems(n int, part component.EquipmentPart) []*component.Item {
	items := make([]*component.Item, 0, n)
	for range n {
		items = append(items, f.NewItem(part))
	}
	return items
}

func (f *Factory) newID() string {
	id, err := uuid.NewRandomFromReader(f.rng)
	if err != nil {
		// math/rand never fails a Read.
		panic(fmt.Sprintf("factory: mint id: %v", err))
	}
	return id.String()
}

// randomTint picks a saturated, bright HSV color.
func (f *Factory) randomTint() colorful.Color {
	h := f.rng.Float64() * 360
	s := 0.5 + f.rng.Float64()*0.5
	v := 0.6 + f.rng.Float64()*0.4
	return colorful.Hsv(h, s, v)
}

// Seed fills db with perPart items for every equipment part, in part order.
func Seed(db *Database, f *Factory, perPart int) error {
	for _, part := range component.Parts() {
		for _, item := range f.NewItems(perPart, part) {
			if err := db.Add(item); err != nil {
				return fmt.Errorf("seed %v: %w", part, err)
			}
		}
	}
	return nil
}
