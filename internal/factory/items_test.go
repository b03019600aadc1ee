package factory

import (
	"errors"
	"math/rand"
	"testing"

	"gear-inventory/assets"
	"gear-inventory/internal/component"

	"github.com/google/uuid"
)

func newTestFactory() *Factory {
	return New(rand.New(rand.NewSource(42)))
}

func TestNewItemFields(t *testing.T) {
	f := newTestFactory()
	item := f.NewItem(component.PartHead)

	if item.Name != "Head" {
		t.Errorf("Name = %q; want Head", item.Name)
	}
	if item.Icon != assets.GlyphHead {
		t.Errorf("Icon = %q; want %q", item.Icon, assets.GlyphHead)
	}
	if item.Part != component.PartHead {
		t.Errorf("Part = %v; want Head", item.Part)
	}
	if item.Slot != component.NoSlot {
		t.Errorf("Slot = %d; want NoSlot", item.Slot)
	}
	if _, err := uuid.Parse(item.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", item.ID, err)
	}
	if !item.Tint.IsValid() {
		t.Errorf("Tint %v is not a valid color", item.Tint)
	}
}

func TestNewItemUntagged(t *testing.T) {
	item := newTestFactory().NewItem(component.PartNone)
	if item.Equippable() {
		t.Fatal("PartNone item must not be equippable")
	}
	if item.Name != "Trinket" || item.Icon != assets.GlyphTrinket {
		t.Errorf("untagged item = %q %q", item.Name, item.Icon)
	}
}

func TestNewItemsUniqueIDs(t *testing.T) {
	items := newTestFactory().NewItems(50, component.PartWeapon)
	if len(items) != 50 {
		t.Fatalf("NewItems returned %d items; want 50", len(items))
	}
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestFactoryDeterministic(t *testing.T) {
	a := newTestFactory().NewItem(component.PartLegs)
	b := newTestFactory().NewItem(component.PartLegs)
	if a.ID != b.ID {
		t.Errorf("same seed produced ids %s and %s", a.ID, b.ID)
	}
	if a.Tint != b.Tint {
		t.Errorf("same seed produced tints %v and %v", a.Tint, b.Tint)
	}
}

func TestDatabaseAddLookup(t *testing.T) {
	db := NewDatabase()
	f := newTestFactory()
	item := f.NewItem(component.PartChest)

	if err := db.Add(item); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, ok := db.Lookup(item.ID)
	if !ok || got != item {
		t.Fatalf("Lookup(%s) = %v, %v", item.ID, got, ok)
	}
	if _, ok := db.Lookup("missing"); ok {
		t.Fatal("Lookup of unknown id should miss")
	}
	if err := db.Add(item); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("second Add err = %v; want ErrDuplicateID", err)
	}
	if err := db.Add(nil); err == nil {
		t.Fatal("Add(nil) should fail")
	}
	if db.Len() != 1 {
		t.Errorf("Len = %d; want 1", db.Len())
	}
}

func TestSeedTwoPerPart(t *testing.T) {
	db := NewDatabase()
	if err := Seed(db, newTestFactory(), 2); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	parts := component.Parts()
	if db.Len() != 2*len(parts) {
		t.Fatalf("Len = %d; want %d", db.Len(), 2*len(parts))
	}
	all := db.All()
	for i, item := range all {
		if want := parts[i/2]; item.Part != want {
			t.Errorf("All()[%d].Part = %v; want %v (insertion order)", i, item.Part, want)
		}
	}
}
