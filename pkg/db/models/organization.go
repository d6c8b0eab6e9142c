package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is the tenant root every venue and catalog row hangs off.
type Organization struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
