package packages

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// PackageDTO is the API representation of an event package.
type PackageDTO struct {
	ID                     uuid.UUID `json:"id"`
	OrganizationID         uuid.UUID `json:"organizationId"`
	Name                   string    `json:"name"`
	Description            *string   `json:"description,omitempty"`
	BasePriceCents         int       `json:"basePriceCents"`
	DefaultDurationMinutes int       `json:"defaultDurationMinutes"`
	IncludesPremiumSpirits bool      `json:"includesPremiumSpirits"`
	IsActive               bool      `json:"isActive"`
	Rules                  []RuleDTO `json:"rules,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// RuleDTO is the API representation of a consumption rule.
type RuleDTO struct {
	ID                uuid.UUID       `json:"id"`
	InventoryItemID   uuid.UUID       `json:"inventoryItemId"`
	QtyPerGuest       decimal.Decimal `json:"qtyPerGuest"`
	IsSubstitutable   bool            `json:"isSubstitutable"`
	SubstitutionGroup *string         `json:"substitutionGroup,omitempty"`
}

// NewPackageDTO maps a package row and its preloaded rules to a DTO.
func NewPackageDTO(pkg *models.EventPackage) *PackageDTO {
	if pkg == nil {
		return nil
	}
	rules := make([]RuleDTO, 0, len(pkg.Rules))
	for i := range pkg.Rules {
		rules = append(rules, NewRuleDTO(&pkg.Rules[i]))
	}
	return &PackageDTO{
		ID:                     pkg.ID,
		OrganizationID:         pkg.OrganizationID,
		Name:                   pkg.Name,
		Description:            pkg.Description,
		BasePriceCents:         pkg.BasePriceCents,
		DefaultDurationMinutes: pkg.DefaultDurationMinutes,
		IncludesPremiumSpirits: pkg.IncludesPremiumSpirits,
		IsActive:               pkg.IsActive,
		Rules:                  rules,
		CreatedAt:              pkg.CreatedAt,
		UpdatedAt:              pkg.UpdatedAt,
	}
}

// NewRuleDTO maps a rule row to its DTO.
func NewRuleDTO(rule *models.ConsumptionRule) RuleDTO {
	return RuleDTO{
		ID:                rule.ID,
		InventoryItemID:   rule.InventoryItemID,
		QtyPerGuest:       rule.QtyPerGuest,
		IsSubstitutable:   rule.IsSubstitutable,
		SubstitutionGroup: rule.SubstitutionGroup,
	}
}
