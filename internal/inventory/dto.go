package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
)

// ItemDTO is the API representation of a catalog item.
type ItemDTO struct {
	ID             uuid.UUID           `json:"id"`
	OrganizationID uuid.UUID           `json:"organizationId"`
	Name           string              `json:"name"`
	Unit           enums.InventoryUnit `json:"unit"`
	Tags           []string            `json:"tags"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// LevelDTO is the API representation of an on-hand stock row.
type LevelDTO struct {
	VenueID         uuid.UUID       `json:"venueId"`
	InventoryItemID uuid.UUID       `json:"inventoryItemId"`
	OnHandQty       decimal.Decimal `json:"onHandQty"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewItemDTO maps an item row to its DTO.
func NewItemDTO(item *models.InventoryItem) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:             item.ID,
		OrganizationID: item.OrganizationID,
		Name:           item.Name,
		Unit:           item.Unit,
		Tags:           append([]string(nil), item.Tags...),
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

// NewLevelDTO maps a stock row to its DTO.
func NewLevelDTO(level *models.InventoryLevel) *LevelDTO {
	if level == nil {
		return nil
	}
	return &LevelDTO{
		VenueID:         level.VenueID,
		InventoryItemID: level.InventoryItemID,
		OnHandQty:       level.OnHandQty,
		UpdatedAt:       level.UpdatedAt,
	}
}
