package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/venuehq/venuehq-backend/pkg/enums"
)

// InventoryItem is a catalog entry; on-hand quantities live per venue in
// InventoryLevel rows.
type InventoryItem struct {
	ID             uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID           `gorm:"column:organization_id;type:uuid;not null"`
	Name           string              `gorm:"column:name;not null"`
	Unit           enums.InventoryUnit `gorm:"column:unit;not null;default:'ml'"`
	Tags           pq.StringArray      `gorm:"column:tags;type:text[]"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
