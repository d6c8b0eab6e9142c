package models

import (
	"time"

	"github.com/google/uuid"
)

// AllocationAuditEvent is the append-only trace row written after each
// allocation run. Best effort; nothing reads it on the hot path.
type AllocationAuditEvent struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EventID       uuid.UUID `gorm:"column:event_id;type:uuid;not null;index"`
	PackageID     uuid.UUID `gorm:"column:package_id;type:uuid;not null"`
	ItemCount     int       `gorm:"column:item_count;not null"`
	ShortageCount int       `gorm:"column:shortage_count;not null"`
	DurationMS    int64     `gorm:"column:duration_ms;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}
