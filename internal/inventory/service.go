package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
)

// Service exposes catalog item and stock level management operations.
type Service interface {
	CreateItem(ctx context.Context, orgID uuid.UUID, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, orgID, itemID uuid.UUID) (*ItemDTO, error)
	ListItems(ctx context.Context, orgID uuid.UUID) ([]ItemDTO, error)
	UpdateItem(ctx context.Context, orgID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	DeleteItem(ctx context.Context, orgID, itemID uuid.UUID) error
	SetLevel(ctx context.Context, orgID uuid.UUID, input SetLevelInput) (*LevelDTO, error)
	ListVenueLevels(ctx context.Context, venueID uuid.UUID) ([]LevelDTO, error)
}

// CreateItemInput holds the validated payload to create a catalog item.
type CreateItemInput struct {
	Name string
	Unit enums.InventoryUnit
	Tags []string
}

// UpdateItemInput holds optional mutation values for an item.
type UpdateItemInput struct {
	Name *string
	Unit *enums.InventoryUnit
	Tags *[]string
}

// SetLevelInput sets the absolute on-hand quantity of one item at one venue.
type SetLevelInput struct {
	VenueID         uuid.UUID
	InventoryItemID uuid.UUID
	OnHandQty       decimal.Decimal
}

// service implements the inventory service.
type service struct {
	repo *Repository
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

// CreateItem adds an item to the organization catalog.
func (s *service) CreateItem(ctx context.Context, orgID uuid.UUID, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Unit.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
	}

	item := &models.InventoryItem{
		OrganizationID: orgID,
		Name:           name,
		Unit:           input.Unit,
		Tags:           pq.StringArray(input.Tags),
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inventory item")
	}
	return NewItemDTO(created), nil
}

// GetItem loads an item scoped to the organization.
func (s *service) GetItem(ctx context.Context, orgID, itemID uuid.UUID) (*ItemDTO, error) {
	item, err := s.loadOrgItem(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}
	return NewItemDTO(item), nil
}

// ListItems returns the organization's item catalog.
func (s *service) ListItems(ctx context.Context, orgID uuid.UUID) ([]ItemDTO, error) {
	rows, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory items")
	}
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewItemDTO(&rows[i]))
	}
	return out, nil
}

// UpdateItem applies the provided mutations to an existing item.
func (s *service) UpdateItem(ctx context.Context, orgID, itemID uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.loadOrgItem(ctx, orgID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}
	if input.Unit != nil {
		if !input.Unit.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit")
		}
		item.Unit = *input.Unit
	}
	if input.Tags != nil {
		item.Tags = pq.StringArray(append([]string(nil), *input.Tags...))
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inventory item")
	}
	return NewItemDTO(item), nil
}

// DeleteItem removes an item from the catalog.
func (s *service) DeleteItem(ctx context.Context, orgID, itemID uuid.UUID) error {
	if _, err := s.loadOrgItem(ctx, orgID, itemID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete inventory item")
	}
	return nil
}

// SetLevel sets the absolute on-hand quantity for an item at a venue.
func (s *service) SetLevel(ctx context.Context, orgID uuid.UUID, input SetLevelInput) (*LevelDTO, error) {
	if input.OnHandQty.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "on_hand_qty must be non-negative")
	}
	if _, err := s.loadOrgItem(ctx, orgID, input.InventoryItemID); err != nil {
		return nil, err
	}

	level := &models.InventoryLevel{
		VenueID:         input.VenueID,
		InventoryItemID: input.InventoryItemID,
		OnHandQty:       input.OnHandQty,
	}
	saved, err := s.repo.UpsertLevel(ctx, level)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert inventory level")
	}
	return NewLevelDTO(saved), nil
}

// ListVenueLevels returns every stock row at the venue.
func (s *service) ListVenueLevels(ctx context.Context, venueID uuid.UUID) ([]LevelDTO, error) {
	rows, err := s.repo.ListLevelsByVenue(ctx, venueID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory levels")
	}
	out := make([]LevelDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewLevelDTO(&rows[i]))
	}
	return out, nil
}

func (s *service) loadOrgItem(ctx context.Context, orgID, itemID uuid.UUID) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	if item.OrganizationID != orgID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return item, nil
}
