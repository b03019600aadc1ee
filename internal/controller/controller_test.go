package controller

import (
	"errors"
	"math/rand"
	"testing"

	"gear-inventory/internal/component"
	"gear-inventory/internal/factory"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

func gear(name string, part component.EquipmentPart) *component.Item {
	return &component.Item{ID: name, Name: name, Part: part, Slot: component.NoSlot}
}

// newTestController returns an empty controller plus a counter of refresh
// notifications.
func newTestController(t *testing.T, capacity int) (*Controller, *[]Snapshot) {
	t.Helper()
	c := New(factory.NewDatabase(), WithCapacity(capacity))
	var snaps []Snapshot
	c.Observe(ObserverFunc(func(s Snapshot) { snaps = append(snaps, s) }))
	return c, &snaps
}

// put stores item at inventory index pos.
func put(t *testing.T, c *Controller, item *component.Item, pos int) {
	t.Helper()
	if err := c.inv.StoreInPosition(item, pos, false); err != nil {
		t.Fatalf("StoreInPosition(%v, %d): %v", item, pos, err)
	}
}

// wear equips item directly.
func wear(t *testing.T, c *Controller, item *component.Item) {
	t.Helper()
	if _, err := c.gear.Set(item.Part, item); err != nil {
		t.Fatalf("gear.Set(%v): %v", item, err)
	}
}

// checkOwnership verifies that every item lives in exactly one place and
// that back-references and part tags are consistent.
func checkOwnership(t *testing.T, c *Controller) {
	t.Helper()
	seen := make(map[*component.Item]string)
	for i, it := range c.Items() {
		if it == nil {
			if !c.inv.IsFree(i) {
				t.Fatalf("empty slot %d not free", i)
			}
			continue
		}
		if it.Slot != i {
			t.Fatalf("%v at slot %d has Slot %d", it, i, it.Slot)
		}
		if where, dup := seen[it]; dup {
			t.Fatalf("%v held twice (%s and slot %d)", it, where, i)
		}
		seen[it] = "inventory"
	}
	for _, p := range component.Parts() {
		it := c.Equipped(p)
		if it == nil {
			continue
		}
		if it.Part != p {
			t.Fatalf("%v equipped on %v", it, p)
		}
		if it.Slot != component.NoSlot {
			t.Fatalf("equipped %v has Slot %d", it, it.Slot)
		}
		if where, dup := seen[it]; dup {
			t.Fatalf("%v held twice (%s and %v)", it, where, p)
		}
		seen[it] = p.String()
	}
}

// ─── Populate ─────────────────────────────────────────────────────────────────

func TestPopulateStoresDatabaseInOrder(t *testing.T) {
	db := factory.NewDatabase()
	if err := factory.Seed(db, factory.New(rand.New(rand.NewSource(42))), 2); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	c := New(db)
	c.Populate()

	all := db.All()
	items := c.Items()
	for i, want := range all {
		if items[i] != want {
			t.Fatalf("slot %d = %v; want %v", i, items[i], want)
		}
	}
	if !c.inv.HasFreeSlot() || c.inv.FreeCount() != 18-len(all) {
		t.Fatalf("FreeCount = %d; want %d", c.inv.FreeCount(), 18-len(all))
	}
	if got, ok := c.Lookup(all[3].ID); !ok || got != all[3] {
		t.Fatal("Lookup should resolve database ids")
	}
	checkOwnership(t, c)
}

func TestPopulateOverflowReportsStatus(t *testing.T) {
	db := factory.NewDatabase()
	factory.Seed(db, factory.New(rand.New(rand.NewSource(1))), 2)
	c := New(db, WithCapacity(10))
	c.Populate()
	if c.inv.HasFreeSlot() {
		t.Fatal("10-slot inventory should be full after 12 items")
	}
	if got := c.Snapshot().Status; got != "2 items did not fit." {
		t.Errorf("Status = %q", got)
	}
}

// ─── Equip ────────────────────────────────────────────────────────────────────

func TestEquipIntoEmptyPart(t *testing.T) {
	c, snaps := newTestController(t, 18)
	helm := gear("helm", component.PartHead)
	put(t, c, helm, 3)

	if err := c.Equip(InventorySlot(3)); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if c.Equipped(component.PartHead) != helm {
		t.Fatal("helm should be equipped")
	}
	if c.ItemAt(InventorySlot(3)) != nil || !c.inv.IsFree(3) {
		t.Fatal("slot 3 should be vacated")
	}
	if len(*snaps) != 1 {
		t.Fatalf("observer notified %d times; want 1", len(*snaps))
	}
	last := (*snaps)[0]
	if len(last.Equipped) != 1 || last.Equipped[0] != helm {
		t.Errorf("snapshot Equipped = %v", last.Equipped)
	}
	if last.Status != "Equipped helm." {
		t.Errorf("Status = %q", last.Status)
	}
	checkOwnership(t, c)
}

func TestEquipForcesPreviousIntoVacatedSlot(t *testing.T) {
	c, _ := newTestController(t, 18)
	a := gear("A", component.PartChest)
	b := gear("B", component.PartChest)
	wear(t, c, b)
	put(t, c, a, 3)

	if err := c.Equip(InventorySlot(3)); err != nil {
		t.Fatalf("Equip: %v", err)
	}
	if c.Equipped(component.PartChest) != a {
		t.Fatal("A should be equipped")
	}
	if c.ItemAt(InventorySlot(3)) != b || b.Slot != 3 {
		t.Fatalf("B should be forced into slot 3; slot 3 = %v, B.Slot = %d", c.ItemAt(InventorySlot(3)), b.Slot)
	}
	if a.Slot != component.NoSlot {
		t.Errorf("A.Slot = %d; want NoSlot", a.Slot)
	}
	checkOwnership(t, c)
}

func TestEquipRejected(t *testing.T) {
	cases := []struct {
		name string
		slot SlotRef
		item *component.Item
	}{
		{"empty slot", InventorySlot(0), nil},
		{"untagged item", InventorySlot(0), gear("ring", component.PartNone)},
		{"equipment slot", EquipmentSlot(component.PartHead), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, snaps := newTestController(t, 4)
			if tc.item != nil {
				put(t, c, tc.item, 0)
			}
			before := c.Items()
			err := c.Equip(tc.slot)
			if !errors.Is(err, ErrInvalidItem) {
				t.Fatalf("err = %v; want ErrInvalidItem", err)
			}
			for i, it := range c.Items() {
				if it != before[i] {
					t.Fatalf("slot %d changed", i)
				}
			}
			if len(c.EquippedItems()) != 0 {
				t.Fatal("nothing should be equipped")
			}
			if len(*snaps) != 1 {
				t.Errorf("failed op should still refresh; got %d notifications", len(*snaps))
			}
		})
	}
}

// ─── Unequip ──────────────────────────────────────────────────────────────────

func TestUnequipToLowestFreeSlot(t *testing.T) {
	c, _ := newTestController(t, 6)
	put(t, c, gear("x", component.PartNone), 0)
	put(t, c, gear("y", component.PartNone), 2)
	boots := gear("boots", component.PartFeet)
	wear(t, c, boots)

	if err := c.Unequip(EquipmentSlot(component.PartFeet)); err != nil {
		t.Fatalf("Unequip: %v", err)
	}
	if c.Equipped(component.PartFeet) != nil {
		t.Fatal("Feet should be empty")
	}
	if c.ItemAt(InventorySlot(1)) != boots || boots.Slot != 1 {
		t.Fatalf("boots should land in slot 1; Slot = %d", boots.Slot)
	}
	checkOwnership(t, c)
}

func TestUnequipWithFullInventoryIsNoop(t *testing.T) {
	c, _ := newTestController(t, 2)
	put(t, c, gear("x", component.PartNone), 0)
	put(t, c, gear("y", component.PartNone), 1)
	boots := gear("boots", component.PartFeet)
	wear(t, c, boots)
	before := c.Items()

	err := c.Unequip(EquipmentSlot(component.PartFeet))
	if !errors.Is(err, ErrFull) {
		t.Fatalf("err = %v; want ErrFull", err)
	}
	if c.Equipped(component.PartFeet) != boots {
		t.Fatal("boots must stay equipped")
	}
	for i, it := range c.Items() {
		if it != before[i] {
			t.Fatalf("slot %d changed", i)
		}
	}
	checkOwnership(t, c)
}

func TestUnequipEmptyOrWrongSlot(t *testing.T) {
	c, _ := newTestController(t, 4)
	if err := c.Unequip(EquipmentSlot(component.PartHead)); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("empty part: err = %v; want ErrInvalidItem", err)
	}
	put(t, c, gear("helm", component.PartHead), 0)
	if err := c.Unequip(InventorySlot(0)); !errors.Is(err, ErrInvalidItem) {
		t.Errorf("inventory slot: err = %v; want ErrInvalidItem", err)
	}
}

// ─── Swap ─────────────────────────────────────────────────────────────────────

func TestSwapInventorySlots(t *testing.T) {
	c, _ := newTestController(t, 6)
	a, b := gear("a", component.PartHead), gear("b", component.PartNone)
	put(t, c, a, 0)
	put(t, c, b, 5)

	if err := c.Swap(InventorySlot(0), InventorySlot(5)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if c.ItemAt(InventorySlot(0)) != b || c.ItemAt(InventorySlot(5)) != a {
		t.Fatal("items not exchanged")
	}
	if err := c.Swap(InventorySlot(5), InventorySlot(2)); err != nil {
		t.Fatalf("Swap into empty: %v", err)
	}
	if c.ItemAt(InventorySlot(2)) != a || !c.inv.IsFree(5) {
		t.Fatal("swap into an empty slot should move the item")
	}
	checkOwnership(t, c)
}

func TestSwapEquipmentOriginResyncsPart(t *testing.T) {
	c, _ := newTestController(t, 6)
	worn := gear("worn", component.PartHead)
	spare := gear("spare", component.PartHead)
	wear(t, c, worn)
	put(t, c, spare, 4)

	if err := c.Swap(EquipmentSlot(component.PartHead), InventorySlot(4)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if c.Equipped(component.PartHead) != spare {
		t.Fatal("Head should now hold the spare")
	}
	if c.ItemAt(InventorySlot(4)) != worn || worn.Slot != 4 {
		t.Fatal("worn helm should be in slot 4")
	}
	checkOwnership(t, c)
}

func TestSwapEquipmentIntoEmptyInventorySlot(t *testing.T) {
	c, _ := newTestController(t, 6)
	worn := gear("worn", component.PartWeapon)
	wear(t, c, worn)

	if err := c.Swap(EquipmentSlot(component.PartWeapon), InventorySlot(2)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if c.Equipped(component.PartWeapon) != nil {
		t.Fatal("Weapon part should be empty")
	}
	if c.ItemAt(InventorySlot(2)) != worn {
		t.Fatal("weapon should be in slot 2")
	}
	checkOwnership(t, c)
}

func TestSwapInventoryOriginIntoEquipment(t *testing.T) {
	c, _ := newTestController(t, 6)
	gloves := gear("gloves", component.PartHands)
	put(t, c, gloves, 1)

	if err := c.Swap(InventorySlot(1), EquipmentSlot(component.PartHands)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if c.Equipped(component.PartHands) != gloves || !c.inv.IsFree(1) {
		t.Fatal("gloves should be equipped and slot 1 free")
	}
	checkOwnership(t, c)
}

func TestSwapRejectsMismatchedPart(t *testing.T) {
	c, _ := newTestController(t, 6)
	worn := gear("worn", component.PartHead)
	boots := gear("boots", component.PartFeet)
	wear(t, c, worn)
	put(t, c, boots, 0)

	err := c.Swap(EquipmentSlot(component.PartHead), InventorySlot(0))
	if !errors.Is(err, ErrPartMismatch) {
		t.Fatalf("err = %v; want ErrPartMismatch", err)
	}
	if c.Equipped(component.PartHead) != worn || c.ItemAt(InventorySlot(0)) != boots {
		t.Fatal("rejected swap must not mutate")
	}
	checkOwnership(t, c)
}

func TestSwapRejectsTwoEquipmentParts(t *testing.T) {
	c, _ := newTestController(t, 6)
	helm := gear("helm", component.PartHead)
	legs := gear("legs", component.PartLegs)
	wear(t, c, helm)
	wear(t, c, legs)

	err := c.Swap(EquipmentSlot(component.PartHead), EquipmentSlot(component.PartLegs))
	if !errors.Is(err, ErrPartMismatch) {
		t.Fatalf("err = %v; want ErrPartMismatch", err)
	}
	if c.Equipped(component.PartHead) != helm || c.Equipped(component.PartLegs) != legs {
		t.Fatal("rejected swap must not mutate")
	}
}

func TestSwapSameSlotIsNoop(t *testing.T) {
	c, _ := newTestController(t, 4)
	a := gear("a", component.PartHead)
	put(t, c, a, 2)
	wear(t, c, gear("h", component.PartHead))

	if err := c.Swap(InventorySlot(2), InventorySlot(2)); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	// An equipment ref built by hand with a stray index is still the same slot.
	if err := c.Swap(EquipmentSlot(component.PartHead), SlotRef{Kind: SlotEquipment, Part: component.PartHead}); err != nil {
		t.Fatalf("Swap equipment with itself: %v", err)
	}
	if c.ItemAt(InventorySlot(2)) != a || a.Slot != 2 {
		t.Fatal("self-swap must not mutate")
	}
	checkOwnership(t, c)
}

// ─── randomised ownership ─────────────────────────────────────────────────────

func TestRandomInteractionsKeepOwnership(t *testing.T) {
	db := factory.NewDatabase()
	factory.Seed(db, factory.New(rand.New(rand.NewSource(7))), 3)
	c := New(db, WithCapacity(18))
	c.Populate()
	rng := rand.New(rand.NewSource(42))

	randomSlot := func() SlotRef {
		if rng.Intn(3) == 0 {
			parts := component.Parts()
			return EquipmentSlot(parts[rng.Intn(len(parts))])
		}
		return InventorySlot(rng.Intn(c.Capacity()))
	}

	total := db.Len()
	for range 3000 {
		switch rng.Intn(4) {
		case 0:
			c.Interact(randomSlot(), ButtonLeft)
		case 1:
			c.Swap(randomSlot(), randomSlot())
		case 2:
			c.Interact(randomSlot(), ButtonRight)
			c.Drop(randomSlot())
		case 3:
			c.Interact(randomSlot(), ButtonMiddle)
		}
		checkOwnership(t, c)
		if held := c.inv.Len() + len(c.EquippedItems()); held != total {
			t.Fatalf("held %d items; want %d", held, total)
		}
	}
}
