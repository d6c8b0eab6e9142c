package models

import (
	"time"

	"github.com/google/uuid"
)

// EventPackage bundles per-guest consumption rules with pricing defaults.
type EventPackage struct {
	ID                     uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID         uuid.UUID         `gorm:"column:organization_id;type:uuid;not null"`
	Name                   string            `gorm:"column:name;not null"`
	Description            *string           `gorm:"column:description"`
	BasePriceCents         int               `gorm:"column:base_price_cents;not null;default:0"`
	DefaultDurationMinutes int               `gorm:"column:default_duration_minutes;not null;default:180"`
	IncludesPremiumSpirits bool              `gorm:"column:includes_premium_spirits;not null;default:false"`
	IsActive               bool              `gorm:"column:is_active;not null;default:true"`
	Rules                  []ConsumptionRule `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
	CreatedAt              time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
