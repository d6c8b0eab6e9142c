package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumptionRule declares how much of one inventory item a package consumes
// per guest. Items sharing a substitution group are interchangeable when the
// rule is substitutable.
type ConsumptionRule struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PackageID         uuid.UUID       `gorm:"column:package_id;type:uuid;not null;index"`
	InventoryItemID   uuid.UUID       `gorm:"column:inventory_item_id;type:uuid;not null"`
	Position          int             `gorm:"column:position;not null;default:0"`
	QtyPerGuest       decimal.Decimal `gorm:"column:qty_per_guest;type:numeric(12,3);not null;default:0"`
	IsSubstitutable   bool            `gorm:"column:is_substitutable;not null;default:true"`
	SubstitutionGroup *string         `gorm:"column:substitution_group"`
}
