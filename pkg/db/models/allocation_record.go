package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationRecord is one per-venue take written by an allocation run.
// RequiredQty repeats the whole-event requirement on every row; shortage is
// only meaningful at the item level and is reported in the run result, so
// per-venue rows always carry zero. SubstitutionOf is set only by manual
// substitution overrides, never by the engine.
type AllocationRecord struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID         uuid.UUID       `gorm:"column:event_id;type:uuid;not null;index"`
	VenueID         uuid.UUID       `gorm:"column:venue_id;type:uuid;not null"`
	InventoryItemID uuid.UUID       `gorm:"column:inventory_item_id;type:uuid;not null"`
	RequiredQty     decimal.Decimal `gorm:"column:required_qty;type:numeric(12,3);not null"`
	AllocatedQty    decimal.Decimal `gorm:"column:allocated_qty;type:numeric(12,3);not null;default:0"`
	ShortageQty     decimal.Decimal `gorm:"column:shortage_qty;type:numeric(12,3);not null;default:0"`
	SubstitutionOf  *uuid.UUID      `gorm:"column:substitution_of;type:uuid"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}
