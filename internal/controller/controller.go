// Package controller orchestrates equip, unequip, swap and drag-and-drop
// between the inventory store and the equipment map. It never talks to a
// screen: the presentation layer sends intents in and receives snapshots
// back through Observer.
package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"gear-inventory/internal/component"
	"gear-inventory/internal/equipment"
	"gear-inventory/internal/factory"
	"gear-inventory/internal/inventory"
)

// Domain failures. All of them leave the state unchanged.
var (
	ErrInvalidItem  = inventory.ErrInvalidItem
	ErrFull         = inventory.ErrFull
	ErrPartMismatch = equipment.ErrPartMismatch
	ErrNotDragging  = errors.New("no drag in progress")
)

// Option configures a Controller.
type Option func(*Controller)

// WithCapacity sets the number of inventory slots.
func WithCapacity(n int) Option {
	return func(c *Controller) { c.capacity = n }
}

// WithLogger sets the logger used for rejected operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// Controller owns one inventory store and one equipment map.
// It is not safe for concurrent use.
type Controller struct {
	capacity  int
	inv       *inventory.Store
	gear      *equipment.Map
	db        *factory.Database
	logger    *slog.Logger
	observers []Observer

	dragging   bool
	dragOrigin SlotRef
	status     string
}

// New creates a Controller resolving items against db.
func New(db *factory.Database, opts ...Option) *Controller {
	c := &Controller{
		capacity: inventory.DefaultCapacity,
		db:       db,
		gear:     equipment.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c.inv = inventory.New(c.capacity)
	return c
}

// Observe registers o for refresh notifications.
func (c *Controller) Observe(o Observer) {
	c.observers = append(c.observers, o)
}

// Populate stores every database item in the inventory, in database order.
// Items that do not fit are logged and left out.
func (c *Controller) Populate() {
	defer c.notify()
	rejected := c.inv.StoreMany(c.db.All())
	for _, item := range rejected {
		c.logger.Warn("populate: item did not fit", "item", item.String())
	}
	if len(rejected) > 0 {
		c.status = fmt.Sprintf("%d items did not fit.", len(rejected))
	}
}

// Equip moves the item in an inventory slot onto its equipment part. The
// item previously equipped there is force-written into the vacated slot.
func (c *Controller) Equip(slot SlotRef) error {
	defer c.notify()
	return c.equip(slot)
}

func (c *Controller) equip(slot SlotRef) error {
	if slot.IsEquipment() {
		return c.reject("equip", slot, ErrInvalidItem, "Select a backpack item to equip.")
	}
	item := c.inv.FetchByPosition(slot.Index)
	if item == nil {
		return c.reject("equip", slot, ErrInvalidItem, "Nothing selected.")
	}
	if !item.Equippable() {
		return c.reject("equip", slot, ErrInvalidItem, "Cannot equip that.")
	}

	prev, err := c.gear.Set(item.Part, item)
	if err != nil {
		return c.reject("equip", slot, err, "Cannot equip that.")
	}
	// A nil prev clears the slot.
	if err := c.inv.StoreInPosition(prev, slot.Index, true); err != nil {
		return fmt.Errorf("equip %v: %w", slot, err)
	}
	c.logger.Debug("equip", "slot", slot.String(), "item", item.String(), "displaced", prev.String())
	c.status = fmt.Sprintf("Equipped %s.", item.Name)
	return nil
}

// Unequip moves the item on an equipment slot into the lowest free
// inventory slot.
func (c *Controller) Unequip(slot SlotRef) error {
	defer c.notify()
	if !slot.IsEquipment() {
		return c.reject("unequip", slot, ErrInvalidItem, "Select an equipment slot to unequip.")
	}
	item := c.gear.Get(slot.Part)
	if item == nil {
		return c.reject("unequip", slot, ErrInvalidItem, fmt.Sprintf("Nothing equipped in %s slot.", slot.Part))
	}
	if !c.inv.HasFreeSlot() {
		return c.reject("unequip", slot, ErrFull, "Inventory full. Move something first.")
	}

	c.gear.Remove(slot.Part)
	if _, err := c.inv.StoreItem(item); err != nil {
		return fmt.Errorf("unequip %v: %w", slot, err)
	}
	c.logger.Debug("unequip", "slot", slot.String(), "item", item.String(), "to", item.Slot)
	c.status = fmt.Sprintf("Unequipped %s.", item.Name)
	return nil
}

// Swap exchanges the contents of two slots. Only one equipment part may be
// involved; swapping two different equipment parts is rejected.
func (c *Controller) Swap(origin, target SlotRef) error {
	defer c.notify()
	return c.swap(origin, target)
}

func (c *Controller) swap(origin, target SlotRef) error {
	if origin.Same(target) {
		c.status = ""
		return nil
	}
	switch {
	case !origin.IsEquipment() && !target.IsEquipment():
		c.inv.SwapSlots(origin.Index, target.Index)
		c.status = ""
		return nil
	case origin.IsEquipment() && target.IsEquipment():
		return c.reject("swap", target, ErrPartMismatch, "Those slots take different parts.")
	case origin.IsEquipment():
		return c.swapWithEquipment(target.Index, origin.Part)
	default:
		return c.swapWithEquipment(origin.Index, target.Part)
	}
}

// swapWithEquipment trades the inventory item at idx with the item
// equipped on part and resynchronizes that single part.
func (c *Controller) swapWithEquipment(idx int, part component.EquipmentPart) error {
	incoming := c.inv.FetchByPosition(idx)
	if incoming != nil && incoming.Part != part {
		return c.reject("swap", EquipmentSlot(part), ErrPartMismatch,
			fmt.Sprintf("%s does not go in the %s slot.", incoming.Name, part))
	}
	equipped := c.gear.Get(part)
	c.inv.SwapInPosition(equipped, idx)
	if _, err := c.gear.Set(part, incoming); err != nil {
		return fmt.Errorf("swap %v: %w", part, err)
	}
	c.logger.Debug("swap", "part", part.String(), "index", idx, "equipped", incoming.String(), "stored", equipped.String())
	c.status = ""
	return nil
}

// Items returns a copy of the inventory slots.
func (c *Controller) Items() []*component.Item { return c.inv.Items() }

// EquippedItems returns the equipped items in part order.
func (c *Controller) EquippedItems() []*component.Item { return c.gear.Items() }

// Equipped returns the item equipped on part, or nil.
func (c *Controller) Equipped(part component.EquipmentPart) *component.Item {
	return c.gear.Get(part)
}

// ItemAt returns the item held by slot, or nil.
func (c *Controller) ItemAt(slot SlotRef) *component.Item {
	if slot.IsEquipment() {
		return c.gear.Get(slot.Part)
	}
	return c.inv.FetchByPosition(slot.Index)
}

// Capacity returns the number of inventory slots.
func (c *Controller) Capacity() int { return c.inv.Capacity() }

// Lookup resolves an item identifier against the database.
func (c *Controller) Lookup(id string) (*component.Item, bool) { return c.db.Lookup(id) }

// Snapshot captures the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Items:      c.inv.Items(),
		Equipment:  c.gear.Snapshot(),
		Equipped:   c.gear.Items(),
		Dragging:   c.dragging,
		DragOrigin: c.dragOrigin,
		Status:     c.status,
	}
}

// notify sends a full snapshot to every observer.
func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, o := range c.observers {
		o.Refresh(snap)
	}
}

// reject records a domain failure. The state is left untouched.
func (c *Controller) reject(op string, slot SlotRef, err error, status string) error {
	c.logger.Debug(op+" rejected", "slot", slot.String(), "error", err)
	c.status = status
	return fmt.Errorf("%s %v: %w", op, slot, err)
}
