package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a physical location events are hosted at.
type Venue struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	Address        *string   `gorm:"column:address"`
	Timezone       string    `gorm:"column:timezone;not null;default:'America/Chicago'"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
