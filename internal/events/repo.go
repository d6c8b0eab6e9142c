package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
	"github.com/venuehq/venuehq-backend/pkg/pagination"
)

// EventFilters narrows an event listing.
type EventFilters struct {
	VenueID     *uuid.UUID
	EventTypeID *uuid.UUID
	Status      *enums.EventStatus
	From        *time.Time
	To          *time.Time
}

// EventListResult is one page of events plus the cursor for the next page.
type EventListResult struct {
	Events     []models.Event
	NextCursor string
}

// Repository wires together event and event type persistence.
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

// FindByID loads an event by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a new event row.
func (r *Repository) Create(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Update saves an existing event row.
func (r *Repository) Update(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

// Delete removes an event by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Event{}).Error
}

// ListByOrganization returns one page of the organization's events ordered by
// start time descending, then ID, so pages stay stable under inserts.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID, params pagination.Params, filters EventFilters) (*EventListResult, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("organization_id = ?", orgID)

	if filters.VenueID != nil {
		query = query.Where("venue_id = ?", *filters.VenueID)
	}
	if filters.EventTypeID != nil {
		query = query.Where("event_type_id = ?", *filters.EventTypeID)
	}
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.From != nil {
		query = query.Where("starts_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("starts_at < ?", *filters.To)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"starts_at < ? OR (starts_at = ? AND id < ?)",
			cursor.StartsAt, cursor.StartsAt, cursor.ID,
		)
	}

	var events []models.Event
	if err := query.
		Order("starts_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&events).Error; err != nil {
		return nil, err
	}

	result := &EventListResult{}
	if len(events) > limit {
		events = events[:limit]
		last := events[len(events)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			StartsAt: last.StartsAt,
			ID:       last.ID,
		})
	}
	result.Events = events
	return result, nil
}

// CreateEventType inserts a new event type row.
func (r *Repository) CreateEventType(ctx context.Context, eventType *models.EventType) (*models.EventType, error) {
	if eventType.ID == uuid.Nil {
		eventType.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(eventType).Error; err != nil {
		return nil, err
	}
	return eventType, nil
}

// FindEventTypeByID loads an event type by ID.
func (r *Repository) FindEventTypeByID(ctx context.Context, id uuid.UUID) (*models.EventType, error) {
	var eventType models.EventType
	if err := r.db.WithContext(ctx).First(&eventType, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &eventType, nil
}

// ListEventTypesByOrganization returns the organization's event types.
func (r *Repository) ListEventTypesByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.EventType, error) {
	var eventTypes []models.EventType
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&eventTypes).Error; err != nil {
		return nil, err
	}
	return eventTypes, nil
}

// DeleteEventType removes an event type by ID.
func (r *Repository) DeleteEventType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EventType{}).Error
}
