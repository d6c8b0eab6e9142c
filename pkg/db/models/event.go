package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/pkg/enums"
)

// Event is a scheduled booking at a venue with an expected headcount.
type Event struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrganizationID uuid.UUID         `gorm:"column:organization_id;type:uuid;not null;index"`
	VenueID        uuid.UUID         `gorm:"column:venue_id;type:uuid;not null"`
	EventTypeID    uuid.UUID         `gorm:"column:event_type_id;type:uuid;not null"`
	PackageID      uuid.UUID         `gorm:"column:package_id;type:uuid;not null"`
	Name           string            `gorm:"column:name;not null"`
	StartsAt       time.Time         `gorm:"column:starts_at;not null"`
	EndsAt         time.Time         `gorm:"column:ends_at;not null"`
	ExpectedGuests int               `gorm:"column:expected_guests;not null"`
	Status         enums.EventStatus `gorm:"column:status;not null;default:'scheduled'"`
	Notes          *string           `gorm:"column:notes"`
	CreatedBy      *string           `gorm:"column:created_by"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}
