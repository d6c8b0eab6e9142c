package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryLevel tracks the on-hand quantity of one item at one venue.
// Stock mutation happens in the fulfillment path; allocation only reads it.
type InventoryLevel struct {
	VenueID         uuid.UUID       `gorm:"column:venue_id;type:uuid;primaryKey"`
	InventoryItemID uuid.UUID       `gorm:"column:inventory_item_id;type:uuid;primaryKey"`
	OnHandQty       decimal.Decimal `gorm:"column:on_hand_qty;type:numeric(12,3);not null;default:0"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
