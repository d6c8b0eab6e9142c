package venues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// Repository wires together venue and venue-link persistence.
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

// FindByID loads the venue without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	if err := r.db.WithContext(ctx).First(&venue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// ListByOrganization returns all venues in the organization.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.Venue, error) {
	var venues []models.Venue
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&venues).Error; err != nil {
		return nil, err
	}
	return venues, nil
}

// Create inserts a new venue row.
func (r *Repository) Create(ctx context.Context, venue *models.Venue) (*models.Venue, error) {
	if venue.ID == uuid.Nil {
		venue.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(venue).Error; err != nil {
		return nil, err
	}
	return venue, nil
}

// Update saves an existing venue row.
func (r *Repository) Update(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Save(venue).Error
}

// Delete removes a venue by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Venue{}).Error
}

// CreateLink inserts a parent->child link row.
func (r *Repository) CreateLink(ctx context.Context, link *models.VenueLink) (*models.VenueLink, error) {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, err
	}
	return link, nil
}

// ListLinksByParent returns every link row whose parent is the given venue,
// in insertion order. The resolver depends on this order for allocation
// preference, so it must stay stable.
func (r *Repository) ListLinksByParent(ctx context.Context, parentVenueID uuid.UUID) ([]models.VenueLink, error) {
	var links []models.VenueLink
	if err := r.db.WithContext(ctx).
		Where("parent_venue_id = ?", parentVenueID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteLink removes a link by ID.
func (r *Repository) DeleteLink(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.VenueLink{}).Error
}
