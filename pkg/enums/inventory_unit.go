package enums

import "fmt"

// InventoryUnit is the unit of measure an inventory item is counted in.
type InventoryUnit string

const (
	InventoryUnitMilliliter InventoryUnit = "ml"
	InventoryUnitEach       InventoryUnit = "each"
	InventoryUnitGram       InventoryUnit = "g"
	InventoryUnitOunce      InventoryUnit = "oz"
)

var validInventoryUnits = []InventoryUnit{
	InventoryUnitMilliliter,
	InventoryUnitEach,
	InventoryUnitGram,
	InventoryUnitOunce,
}

// String implements fmt.Stringer.
func (u InventoryUnit) String() string {
	return string(u)
}

// IsValid reports whether the value is a known InventoryUnit.
func (u InventoryUnit) IsValid() bool {
	for _, candidate := range validInventoryUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseInventoryUnit converts raw input into an InventoryUnit.
func ParseInventoryUnit(value string) (InventoryUnit, error) {
	for _, candidate := range validInventoryUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory unit %q", value)
}
