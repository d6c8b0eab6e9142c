package allocation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// Repository persists allocation records.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateRecord appends one allocation row. Runs never update rows in place.
func (r *Repository) CreateRecord(ctx context.Context, record *models.AllocationRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByEvent returns the event's allocation rows in insertion order.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.AllocationRecord, error) {
	var records []models.AllocationRecord
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads one allocation row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AllocationRecord, error) {
	var record models.AllocationRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteByEvent drops every allocation row for the event. Event workflows call
// this before re-running allocation so superseded rows do not accumulate.
func (r *Repository) DeleteByEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("event_id = ?", eventID).Delete(&models.AllocationRecord{}).Error
}
