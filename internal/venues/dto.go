package venues

import (
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// VenueDTO is the API representation of a venue.
type VenueDTO struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organizationId"`
	Name           string    `json:"name"`
	Address        *string   `json:"address,omitempty"`
	Timezone       string    `json:"timezone"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// VenueLinkDTO is the API representation of a parent->child venue link.
type VenueLinkDTO struct {
	ID            uuid.UUID `json:"id"`
	ParentVenueID uuid.UUID `json:"parentVenueId"`
	ChildVenueID  uuid.UUID `json:"childVenueId"`
	LinkInventory bool      `json:"linkInventory"`
	LinkStaff     bool      `json:"linkStaff"`
	LinkEvents    bool      `json:"linkEvents"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewVenueDTO maps a venue row to its DTO.
func NewVenueDTO(venue *models.Venue) *VenueDTO {
	if venue == nil {
		return nil
	}
	return &VenueDTO{
		ID:             venue.ID,
		OrganizationID: venue.OrganizationID,
		Name:           venue.Name,
		Address:        venue.Address,
		Timezone:       venue.Timezone,
		IsActive:       venue.IsActive,
		CreatedAt:      venue.CreatedAt,
		UpdatedAt:      venue.UpdatedAt,
	}
}

// NewVenueLinkDTO maps a link row to its DTO.
func NewVenueLinkDTO(link *models.VenueLink) *VenueLinkDTO {
	if link == nil {
		return nil
	}
	return &VenueLinkDTO{
		ID:            link.ID,
		ParentVenueID: link.ParentVenueID,
		ChildVenueID:  link.ChildVenueID,
		LinkInventory: link.LinkInventory,
		LinkStaff:     link.LinkStaff,
		LinkEvents:    link.LinkEvents,
		CreatedAt:     link.CreatedAt,
	}
}
