package models

import (
	"time"

	"github.com/google/uuid"
)

// VenueLink is a directed parent->child edge declaring which resources the
// child shares with the parent. Only link_inventory edges participate in
// allocation; staff and event links are consumed by other subsystems.
type VenueLink struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ParentVenueID uuid.UUID `gorm:"column:parent_venue_id;type:uuid;not null;index"`
	ChildVenueID  uuid.UUID `gorm:"column:child_venue_id;type:uuid;not null"`
	LinkInventory bool      `gorm:"column:link_inventory;not null;default:false"`
	LinkStaff     bool      `gorm:"column:link_staff;not null;default:false"`
	LinkEvents    bool      `gorm:"column:link_events;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
