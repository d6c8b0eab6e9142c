package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db"
	"github.com/venuehq/venuehq-backend/pkg/db/models"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
)

// Service exposes venue and venue-link management operations.
type Service interface {
	CreateVenue(ctx context.Context, orgID uuid.UUID, input CreateVenueInput) (*VenueDTO, error)
	GetVenue(ctx context.Context, orgID, venueID uuid.UUID) (*VenueDTO, error)
	ListVenues(ctx context.Context, orgID uuid.UUID) ([]VenueDTO, error)
	UpdateVenue(ctx context.Context, orgID, venueID uuid.UUID, input UpdateVenueInput) (*VenueDTO, error)
	DeleteVenue(ctx context.Context, orgID, venueID uuid.UUID) error
	AddLink(ctx context.Context, orgID uuid.UUID, input AddLinkInput) (*VenueLinkDTO, error)
	ListLinks(ctx context.Context, orgID, parentVenueID uuid.UUID) ([]VenueLinkDTO, error)
	RemoveLink(ctx context.Context, orgID, parentVenueID, linkID uuid.UUID) error
}

// CreateVenueInput holds the validated payload to create a venue.
type CreateVenueInput struct {
	Name     string
	Address  *string
	Timezone string
	IsActive bool
}

// UpdateVenueInput holds optional mutation values for a venue.
type UpdateVenueInput struct {
	Name     *string
	Address  *string
	Timezone *string
	IsActive *bool
}

// AddLinkInput declares a new parent->child link and the resources it shares.
type AddLinkInput struct {
	ParentVenueID uuid.UUID
	ChildVenueID  uuid.UUID
	LinkInventory bool
	LinkStaff     bool
	LinkEvents    bool
}

// service implements the venue service.
type service struct {
	repo *Repository
}

// NewService constructs a venue service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("venue repository required")
	}
	return &service{repo: repo}, nil
}

// CreateVenue creates a venue inside the organization.
func (s *service) CreateVenue(ctx context.Context, orgID uuid.UUID, input CreateVenueInput) (*VenueDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	timezone := strings.TrimSpace(input.Timezone)
	if timezone == "" {
		timezone = "America/Chicago"
	}

	venue := &models.Venue{
		OrganizationID: orgID,
		Name:           name,
		Address:        input.Address,
		Timezone:       timezone,
		IsActive:       input.IsActive,
	}
	created, err := s.repo.Create(ctx, venue)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert venue")
	}
	return NewVenueDTO(created), nil
}

// GetVenue loads a venue scoped to the organization.
func (s *service) GetVenue(ctx context.Context, orgID, venueID uuid.UUID) (*VenueDTO, error) {
	venue, err := s.loadOrgVenue(ctx, orgID, venueID)
	if err != nil {
		return nil, err
	}
	return NewVenueDTO(venue), nil
}

// ListVenues returns every venue in the organization.
func (s *service) ListVenues(ctx context.Context, orgID uuid.UUID) ([]VenueDTO, error) {
	rows, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list venues")
	}
	out := make([]VenueDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewVenueDTO(&rows[i]))
	}
	return out, nil
}

// UpdateVenue applies the provided mutations to an existing venue.
func (s *service) UpdateVenue(ctx context.Context, orgID, venueID uuid.UUID, input UpdateVenueInput) (*VenueDTO, error) {
	venue, err := s.loadOrgVenue(ctx, orgID, venueID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		venue.Name = name
	}
	if input.Address != nil {
		venue.Address = input.Address
	}
	if input.Timezone != nil {
		timezone := strings.TrimSpace(*input.Timezone)
		if timezone == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "timezone cannot be empty")
		}
		venue.Timezone = timezone
	}
	if input.IsActive != nil {
		venue.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update venue")
	}
	return NewVenueDTO(venue), nil
}

// DeleteVenue removes a venue and relies on FK cascades for its links.
func (s *service) DeleteVenue(ctx context.Context, orgID, venueID uuid.UUID) error {
	if _, err := s.loadOrgVenue(ctx, orgID, venueID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, venueID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete venue")
	}
	return nil
}

// AddLink creates a directed link between two venues in the organization.
func (s *service) AddLink(ctx context.Context, orgID uuid.UUID, input AddLinkInput) (*VenueLinkDTO, error) {
	if input.ParentVenueID == input.ChildVenueID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "a venue cannot link to itself")
	}
	if !input.LinkInventory && !input.LinkStaff && !input.LinkEvents {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one link flag must be set")
	}

	if _, err := s.loadOrgVenue(ctx, orgID, input.ParentVenueID); err != nil {
		return nil, err
	}
	if _, err := s.loadOrgVenue(ctx, orgID, input.ChildVenueID); err != nil {
		return nil, err
	}

	link := &models.VenueLink{
		ParentVenueID: input.ParentVenueID,
		ChildVenueID:  input.ChildVenueID,
		LinkInventory: input.LinkInventory,
		LinkStaff:     input.LinkStaff,
		LinkEvents:    input.LinkEvents,
	}
	created, err := s.repo.CreateLink(ctx, link)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "venues are already linked")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert venue link")
	}
	return NewVenueLinkDTO(created), nil
}

// ListLinks returns the links whose parent is the given venue, in insertion order.
func (s *service) ListLinks(ctx context.Context, orgID, parentVenueID uuid.UUID) ([]VenueLinkDTO, error) {
	if _, err := s.loadOrgVenue(ctx, orgID, parentVenueID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListLinksByParent(ctx, parentVenueID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list venue links")
	}
	out := make([]VenueLinkDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewVenueLinkDTO(&rows[i]))
	}
	return out, nil
}

// RemoveLink deletes a link owned by the given parent venue.
func (s *service) RemoveLink(ctx context.Context, orgID, parentVenueID, linkID uuid.UUID) error {
	if _, err := s.loadOrgVenue(ctx, orgID, parentVenueID); err != nil {
		return err
	}
	if err := s.repo.DeleteLink(ctx, linkID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete venue link")
	}
	return nil
}

func (s *service) loadOrgVenue(ctx context.Context, orgID, venueID uuid.UUID) (*models.Venue, error) {
	venue, err := s.repo.FindByID(ctx, venueID)
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
