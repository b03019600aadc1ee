package factory

import (
	"errors"
	"fmt"

	"gear-inventory/internal/component"
)

var ErrDuplicateID = errors.New("duplicate item id")

// Database indexes items by identifier and remembers insertion order.
// One database is owned by each controller; there is no process-wide table.
type Database struct {
	byID  map[string]*component.Item
	order []*component.Item
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{byID: make(map[string]*component.Item)}
}

// Add registers item under its ID.
func (db *Database) Add(item *component.Item) error {
	if item == nil {
		return errors.New("add nil item")
	}
	if _, exists := db.byID[item.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, item.ID)
	}
	db.byID[item.ID] = item
	db.order = append(db.order, item)
	return nil
}

// Lookup returns the item registered under id.
func (db *Database) Lookup(id string) (*component.Item, bool) {
	item, ok := db.byID[id]
	return item, ok
}

// All returns every item in insertion order.
func (db *Database) All() []*component.Item {
	out := make([]*component.Item, len(db.order))
	copy(out, db.order)
	return out
}

// Len returns the number of registered items.
func (db *Database) Len() int { return len(db.order) }
