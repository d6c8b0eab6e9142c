package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// SubstituteCandidate is one substitution option with its pooled availability
// summed across every venue holding stock.
type SubstituteCandidate struct {
	InventoryItemID uuid.UUID `gorm:"column:inventory_item_id"`
	AvailableQty    float64   `gorm:"column:available"`
}

// Repository wires together inventory item and stock level persistence.
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

// FindByID loads an item by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByOrganization returns the organization's item catalog.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new catalog item.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update saves an existing catalog item.
func (r *Repository) Update(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{}).Error
}

// UpsertLevel inserts or replaces the stock level for one item at one venue.
func (r *Repository) UpsertLevel(ctx context.Context, level *models.InventoryLevel) (*models.InventoryLevel, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "venue_id"}, {Name: "inventory_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"on_hand_qty", "updated_at"}),
	}).Create(level).Error; err != nil {
		return nil, err
	}
	return level, nil
}

// ListLevelsByVenue returns every stock row at the venue.
func (r *Repository) ListLevelsByVenue(ctx context.Context, venueID uuid.UUID) ([]models.InventoryLevel, error) {
	var levels []models.InventoryLevel
	if err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// LevelsForItem batch-reads the on-hand quantity of one item across the given
// venues. Venues without a stock row are absent from the map; callers treat
// them as zero.
func (r *Repository) LevelsForItem(ctx context.Context, itemID uuid.UUID, venueIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	if len(venueIDs) == 0 {
		return map[uuid.UUID]float64{}, nil
	}

	var levels []models.InventoryLevel
	if err := r.db.WithContext(ctx).
		Where("inventory_item_id = ? AND venue_id IN ?", itemID, venueIDs).
		Find(&levels).Error; err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]float64, len(levels))
	for _, level := range levels {
		out[level.VenueID] = level.OnHandQty.InexactFloat64()
	}
	return out, nil
}

// FindTopSubstituteCandidates returns up to limit items in the substitution
// group ranked by pooled availability. The limit applies before the caller
// filters out the shorted item itself and zero-stock rows, so fewer rows may
// survive.
func (r *Repository) FindTopSubstituteCandidates(ctx context.Context, group string, limit int) ([]SubstituteCandidate, error) {
	var candidates []SubstituteCandidate
	query := `
SELECT il.inventory_item_id AS inventory_item_id, SUM(il.on_hand_qty) AS available
FROM inventory_levels il
WHERE il.inventory_item_id IN (
  SELECT cr.inventory_item_id
  FROM consumption_rules cr
  WHERE cr.substitution_group = ?
)
GROUP BY il.inventory_item_id
ORDER BY available DESC
LIMIT ?`
	if err := r.db.WithContext(ctx).Raw(query, group, limit).Scan(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}
