package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType labels events for calendars and filtering.
type EventType struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID `gorm:"column:organization_id;type:uuid;not null"`
	Name           string    `gorm:"column:name;not null"`
	ColorHex       string    `gorm:"column:color_hex;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
