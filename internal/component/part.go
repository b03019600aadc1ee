package component

import (
	"fmt"
	"strings"
)

// EquipmentPart categorises where an item can be equipped.
type EquipmentPart uint8

const (
	PartNone   EquipmentPart = iota // not equippable
	PartHead                        // 1
	PartChest                       // 2
	PartHands                       // 3
	PartLegs                        // 4
	PartFeet                        // 5
	PartWeapon                      // 6
)

var partNames = [...]string{
	PartNone:   "Trinket",
	PartHead:   "Head",
	PartChest:  "Chest",
	PartHands:  "Hands",
	PartLegs:   "Legs",
	PartFeet:   "Feet",
	PartWeapon: "Weapon",
}

// Parts returns every equippable part in declaration order.
func Parts() []EquipmentPart {
	return []EquipmentPart{PartHead, PartChest, PartHands, PartLegs, PartFeet, PartWeapon}
}

// Valid reports whether p is one of the declared constants.
func (p EquipmentPart) Valid() bool { return int(p) < len(partNames) }

func (p EquipmentPart) String() string {
	if !p.Valid() {
		return fmt.Sprintf("EquipmentPart(%d)", uint8(p))
	}
	return partNames[p]
}

// ParsePart is the inverse of String, case-insensitive.
func ParsePart(s string) (EquipmentPart, error) {
	for p, name := range partNames {
		if strings.EqualFold(name, s) {
			return EquipmentPart(p), nil
		}
	}
	return PartNone, fmt.Errorf("unknown equipment part %q", s)
}
