package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/internal/allocation"
	"github.com/venuehq/venuehq-backend/internal/audit"
	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/metrics"
	"github.com/venuehq/venuehq-backend/pkg/pagination"
)

// Service exposes event scheduling and allocation workflow operations.
type Service interface {
	CreateEvent(ctx context.Context, orgID uuid.UUID, input CreateEventInput) (*EventWithAllocationDTO, error)
	GetEvent(ctx context.Context, orgID, eventID uuid.UUID) (*EventDetailDTO, error)
	ListEvents(ctx context.Context, orgID uuid.UUID, input ListEventsInput) (*EventListDTO, error)
	UpdateEvent(ctx context.Context, orgID, eventID uuid.UUID, input UpdateEventInput) (*EventDTO, error)
	DeleteEvent(ctx context.Context, orgID, eventID uuid.UUID) error
	Reallocate(ctx context.Context, orgID, eventID uuid.UUID) (*allocation.Result, error)
	Substitute(ctx context.Context, orgID, eventID uuid.UUID, input SubstituteInput) (*AllocationRecordDTO, error)
	CreateEventType(ctx context.Context, orgID uuid.UUID, input CreateEventTypeInput) (*EventTypeDTO, error)
	ListEventTypes(ctx context.Context, orgID uuid.UUID) ([]EventTypeDTO, error)
	DeleteEventType(ctx context.Context, orgID, eventTypeID uuid.UUID) error
}

// CreateEventInput holds the validated payload to create an event.
type CreateEventInput struct {
	VenueID        uuid.UUID
	EventTypeID    uuid.UUID
	PackageID      uuid.UUID
	Name           string
	StartsAt       time.Time
	EndsAt         time.Time
	ExpectedGuests int
	Notes          *string
	CreatedBy      *string
}

// UpdateEventInput holds optional mutation values for an event. Changing the
// headcount here does not re-run allocation; callers use Reallocate for that.
type UpdateEventInput struct {
	Name           *string
	StartsAt       *time.Time
	EndsAt         *time.Time
	ExpectedGuests *int
	Status         *enums.EventStatus
	Notes          *string
}

// ListEventsInput narrows and pages an event listing.
type ListEventsInput struct {
	Pagination pagination.Params
	Filters    EventFilters
}

// SubstituteInput records a manual substitution against a shorted allocation row.
type SubstituteInput struct {
	OriginalRecordID uuid.UUID
	SubstituteItemID uuid.UUID
	Qty              decimal.Decimal
}

// CreateEventTypeInput holds the validated payload to create an event type.
type CreateEventTypeInput struct {
	Name     string
	ColorHex string
}

type allocator interface {
	Run(ctx context.Context, input allocation.RunInput) (*allocation.Result, error)
}

type allocationStore interface {
	CreateRecord(ctx context.Context, record *models.AllocationRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.AllocationRecord, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.AllocationRecord, error)
	DeleteByEvent(ctx context.Context, eventID uuid.UUID) error
}

type venueLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}

type packageLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.EventPackage, error)
}

// service implements the event service.
type service struct {
	repo        *Repository
	engine      allocator
	allocations allocationStore
	venues      venueLoader
	packages    packageLoader
	audit       audit.Recorder
	metrics     *metrics.AllocationMetrics
}

// NewService constructs an event service instance. Metrics may be nil.
func NewService(repo *Repository, engine allocator, allocations allocationStore, venues venueLoader, packages packageLoader, auditRecorder audit.Recorder, allocMetrics *metrics.AllocationMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	if engine == nil {
		return nil, fmt.Errorf("allocation engine required")
	}
	if allocations == nil {
		return nil, fmt.Errorf("allocation store required")
	}
	if venues == nil {
		return nil, fmt.Errorf("venue repository required")
	}
	if packages == nil {
		return nil, fmt.Errorf("package repository required")
	}
	if auditRecorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{
		repo:        repo,
		engine:      engine,
		allocations: allocations,
		venues:      venues,
		packages:    packages,
		audit:       auditRecorder,
		metrics:     allocMetrics,
	}, nil
}

// CreateEvent creates the event and immediately runs allocation for it.
func (s *service) CreateEvent(ctx context.Context, orgID uuid.UUID, input CreateEventInput) (*EventWithAllocationDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.ExpectedGuests <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected_guests must be positive")
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}

	venue, err := s.loadOrgVenue(ctx, orgID, input.VenueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "venue is inactive")
	}
	pkg, err := s.loadOrgPackage(ctx, orgID, input.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "event package is inactive")
	}
	if _, err := s.loadOrgEventType(ctx, orgID, input.EventTypeID); err != nil {
		return nil, err
	}

	event := &models.Event{
		OrganizationID: orgID,
		VenueID:        input.VenueID,
		EventTypeID:    input.EventTypeID,
		PackageID:      input.PackageID,
		Name:           name,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		ExpectedGuests: input.ExpectedGuests,
		Status:         enums.EventStatusScheduled,
		Notes:          input.Notes,
		CreatedBy:      input.CreatedBy,
	}
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert event")
	}

	result, err := s.runAllocation(ctx, created, "create")
	if err != nil {
		return nil, err
	}

	return &EventWithAllocationDTO{
		Event:      *NewEventDTO(created),
		Allocation: result,
	}, nil
}

// GetEvent loads an event with its persisted allocation rows.
func (s *service) GetEvent(ctx context.Context, orgID, eventID uuid.UUID) (*EventDetailDTO, error) {
	event, err := s.loadOrgEvent(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}
	records, err := s.allocations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list allocation records")
	}
	out := make([]AllocationRecordDTO, 0, len(records))
	for i := range records {
		out = append(out, *NewAllocationRecordDTO(&records[i]))
	}
	return &EventDetailDTO{
		Event:       *NewEventDTO(event),
		Allocations: out,
	}, nil
}

// ListEvents returns one page of the organization's events.
func (s *service) ListEvents(ctx context.Context, orgID uuid.UUID, input ListEventsInput) (*EventListDTO, error) {
	page, err := s.repo.ListByOrganization(ctx, orgID, input.Pagination, input.Filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list events")
	}
	events := make([]EventDTO, 0, len(page.Events))
	for i := range page.Events {
		events = append(events, *NewEventDTO(&page.Events[i]))
	}
	return &EventListDTO{Events: events, NextCursor: page.NextCursor}, nil
}

// UpdateEvent applies the provided mutations to an existing event.
func (s *service) UpdateEvent(ctx context.Context, orgID, eventID uuid.UUID, input UpdateEventInput) (*EventDTO, error) {
	event, err := s.loadOrgEvent(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		event.Name = name
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = *input.EndsAt
	}
	if !event.EndsAt.After(event.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must be after starts_at")
	}
	if input.ExpectedGuests != nil {
		if *input.ExpectedGuests <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expected_guests must be positive")
		}
		event.ExpectedGuests = *input.ExpectedGuests
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event status")
		}
		if event.Status == enums.EventStatusCanceled && *input.Status != enums.EventStatusCanceled {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "canceled events cannot change status")
		}
		event.Status = *input.Status
	}
	if input.Notes != nil {
		event.Notes = input.Notes
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update event")
	}
	return NewEventDTO(event), nil
}

// DeleteEvent removes the event and its allocation rows.
func (s *service) DeleteEvent(ctx context.Context, orgID, eventID uuid.UUID) error {
	if _, err := s.loadOrgEvent(ctx, orgID, eventID); err != nil {
		return err
	}
	if err := s.allocations.DeleteByEvent(ctx, eventID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete allocation records")
	}
	if err := s.repo.Delete(ctx, eventID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete event")
	}
	return nil
}

// Reallocate clears the event's allocation rows and runs the engine again
// against current stock.
func (s *service) Reallocate(ctx context.Context, orgID, eventID uuid.UUID) (*allocation.Result, error) {
	event, err := s.loadOrgEvent(ctx, orgID, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status == enums.EventStatusCanceled || event.Status == enums.EventStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "event is no longer open for allocation")
	}
	return s.runAllocation(ctx, event, "reallocate")
}

// Substitute records a manual replacement for a shorted allocation row. The
// substitute row points back at the original through substitution_of.
func (s *service) Substitute(ctx context.Context, orgID, eventID uuid.UUID, input SubstituteInput) (*AllocationRecordDTO, error) {
	if !input.Qty.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be positive")
	}
	if _, err := s.loadOrgEvent(ctx, orgID, eventID); err != nil {
		return nil, err
	}

	original, err := s.allocations.FindByID(ctx, input.OriginalRecordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "allocation record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load allocation record")
	}
	if original.EventID != eventID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "allocation record belongs to another event")
	}
	if original.InventoryItemID == input.SubstituteItemID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "substitute must differ from the original item")
	}

	record := &models.AllocationRecord{
		EventID:         eventID,
		VenueID:         original.VenueID,
		InventoryItemID: input.SubstituteItemID,
		RequiredQty:     input.Qty,
		AllocatedQty:    input.Qty,
		ShortageQty:     decimal.Zero,
		SubstitutionOf:  &original.ID,
	}
	if err := s.allocations.CreateRecord(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert substitution record")
	}
	return NewAllocationRecordDTO(record), nil
}

// CreateEventType adds a calendar label to the organization.
func (s *service) CreateEventType(ctx context.Context, orgID uuid.UUID, input CreateEventTypeInput) (*EventTypeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	colorHex := strings.TrimSpace(input.ColorHex)
	if colorHex == "" {
		colorHex = "#64748b"
	}

	eventType, err := s.repo.CreateEventType(ctx, &models.EventType{
		OrganizationID: orgID,
		Name:           name,
		ColorHex:       colorHex,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert event type")
	}
	return NewEventTypeDTO(eventType), nil
}

// ListEventTypes returns the organization's event types.
func (s *service) ListEventTypes(ctx context.Context, orgID uuid.UUID) ([]EventTypeDTO, error) {
	rows, err := s.repo.ListEventTypesByOrganization(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list event types")
	}
	out := make([]EventTypeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewEventTypeDTO(&rows[i]))
	}
	return out, nil
}

// DeleteEventType removes an event type.
func (s *service) DeleteEventType(ctx context.Context, orgID, eventTypeID uuid.UUID) error {
	if _, err := s.loadOrgEventType(ctx, orgID, eventTypeID); err != nil {
		return err
	}
	if err := s.repo.DeleteEventType(ctx, eventTypeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete event type")
	}
	return nil
}

// runAllocation clears any prior rows for the event, runs the engine, and
// records metrics and an audit trace. Storage failures surface to the caller.
func (s *service) runAllocation(ctx context.Context, event *models.Event, trigger string) (*allocation.Result, error) {
	if err := s.allocations.DeleteByEvent(ctx, event.ID); err != nil {
		s.metrics.IncFailure(trigger)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear allocation records")
	}

	start := time.Now()
	result, err := s.engine.Run(ctx, allocation.RunInput{
		EventID:        event.ID,
		VenueID:        event.VenueID,
		PackageID:      event.PackageID,
		ExpectedGuests: event.ExpectedGuests,
	})
	if err != nil {
		s.metrics.IncFailure(trigger)
		return nil, err
	}
	elapsed := time.Since(start)

	shortages := 0
	for _, item := range result.Allocations {
		if item.ShortageQty > 0 {
			shortages++
		}
	}

	s.metrics.ObserveRun(trigger, elapsed)
	s.metrics.AddItems(trigger, len(result.Allocations))
	s.metrics.AddShortages(trigger, shortages)
	s.audit.RecordRun(ctx, audit.RecordRunInput{
		EventID:       event.ID,
		PackageID:     event.PackageID,
		ItemCount:     len(result.Allocations),
		ShortageCount: shortages,
		Duration:      elapsed,
	})

	return result, nil
}

func (s *service) loadOrgEvent(ctx context.Context, orgID, eventID uuid.UUID) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}
	if event.OrganizationID != orgID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
	}
	return event, nil
}

func (s *service) loadOrgVenue(ctx context.Context, orgID, venueID uuid.UUID) (*models.Venue, error) {
	venue, err := s.venues.FindByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "venue not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load venue")
	}
	if venue.OrganizationID != orgID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "venue not found")
	}
	return venue, nil
}

func (s *service) loadOrgPackage(ctx context.Context, orgID, packageID uuid.UUID) (*models.EventPackage, error) {
	pkg, err := s.packages.FindByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event package not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event package")
	}
	if pkg.OrganizationID != orgID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event package not found")
	}
	return pkg, nil
}

func (s *service) loadOrgEventType(ctx context.Context, orgID, eventTypeID uuid.UUID) (*models.EventType, error) {
	eventType, err := s.repo.FindEventTypeByID(ctx, eventTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event type")
	}
	if eventType.OrganizationID != orgID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event type not found")
	}
	return eventType, nil
}
