package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/internal/allocation"
	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
)

// EventDTO is the API representation of an event.
type EventDTO struct {
	ID             uuid.UUID         `json:"id"`
	OrganizationID uuid.UUID         `json:"organizationId"`
	VenueID        uuid.UUID         `json:"venueId"`
	EventTypeID    uuid.UUID         `json:"eventTypeId"`
	PackageID      uuid.UUID         `json:"packageId"`
	Name           string            `json:"name"`
	StartsAt       time.Time         `json:"startsAt"`
	EndsAt         time.Time         `json:"endsAt"`
	ExpectedGuests int               `json:"expectedGuests"`
	Status         enums.EventStatus `json:"status"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedBy      *string           `json:"createdBy,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// EventWithAllocationDTO pairs a created event with its allocation outcome.
type EventWithAllocationDTO struct {
	Event      EventDTO           `json:"event"`
	Allocation *allocation.Result `json:"allocation,omitempty"`
}

// EventDetailDTO is an event plus its persisted allocation rows.
type EventDetailDTO struct {
	Event       EventDTO              `json:"event"`
	Allocations []AllocationRecordDTO `json:"allocations"`
}

// EventListDTO is one page of events.
type EventListDTO struct {
	Events     []EventDTO `json:"events"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

// AllocationRecordDTO is the API representation of a persisted allocation row.
type AllocationRecordDTO struct {
	ID              uuid.UUID       `json:"id"`
	EventID         uuid.UUID       `json:"eventId"`
	VenueID         uuid.UUID       `json:"venueId"`
	InventoryItemID uuid.UUID       `json:"inventoryItemId"`
	RequiredQty     decimal.Decimal `json:"requiredQty"`
	AllocatedQty    decimal.Decimal `json:"allocatedQty"`
	ShortageQty     decimal.Decimal `json:"shortageQty"`
	SubstitutionOf  *uuid.UUID      `json:"substitutionOf,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// EventTypeDTO is the API representation of an event type.
type EventTypeDTO struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Name           string    `json:"name"`
	ColorHex       string    `json:"colorHex"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewEventDTO maps an event row to its DTO.
func NewEventDTO(event *models.Event) *EventDTO {
	if event == nil {
		return nil
	}
	return &EventDTO{
		ID:             event.ID,
		OrganizationID: event.OrganizationID,
		VenueID:        event.VenueID,
		EventTypeID:    event.EventTypeID,
		PackageID:      event.PackageID,
		Name:           event.Name,
		StartsAt:       event.StartsAt,
		EndsAt:         event.EndsAt,
		ExpectedGuests: event.ExpectedGuests,
		Status:         event.Status,
		Notes:          event.Notes,
		CreatedBy:      event.CreatedBy,
		CreatedAt:      event.CreatedAt,
	}
}

// NewAllocationRecordDTO maps an allocation row to its DTO.
func NewAllocationRecordDTO(record *models.AllocationRecord) *AllocationRecordDTO {
	if record == nil {
		return nil
	}
	return &AllocationRecordDTO{
		ID:              record.ID,
		EventID:         record.EventID,
		VenueID:         record.VenueID,
		InventoryItemID: record.InventoryItemID,
		RequiredQty:     record.RequiredQty,
		AllocatedQty:    record.AllocatedQty,
		ShortageQty:     record.ShortageQty,
		SubstitutionOf:  record.SubstitutionOf,
		CreatedAt:       record.CreatedAt,
	}
}

// NewEventTypeDTO maps an event type row to its DTO.
func NewEventTypeDTO(eventType *models.EventType) *EventTypeDTO {
	if eventType == nil {
		return nil
	}
	return &EventTypeDTO{
		ID:             eventType.ID,
		OrganizationID: eventType.OrganizationID,
		Name:           eventType.Name,
		ColorHex:       eventType.ColorHex,
		CreatedAt:      eventType.CreatedAt,
	}
}
