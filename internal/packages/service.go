package packages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
)

// Service exposes event package and consumption rule management operations.
type Service interface {
	CreatePackage(ctx context.Context, orgID uuid.UUID, input CreatePackageInput) (*PackageDTO, error)
	GetPackage(ctx context.Context, orgID, packageID uuid.UUID) (*PackageDTO, error)
	ListPackages(ctx context.Context, orgID uuid.UUID) ([]PackageDTO, error)
	UpdatePackage(ctx context.Context, orgID, packageID uuid.UUID, input UpdatePackageInput) (*PackageDTO, error)
	DeletePackage(ctx context.Context, orgID, packageID uuid.UUID) error
	ReplaceRules(ctx context.Context, orgID, packageID uuid.UUID, rules []RuleInput) (*PackageDTO, error)
}

// CreatePackageInput holds the validated payload to create a package.
type CreatePackageInput struct {
	Name                   string
	Description            *string
	BasePriceCents         int
	DefaultDurationMinutes int
	IncludesPremiumSpirits bool
	IsActive               bool
	Rules                  []RuleInput
}

// UpdatePackageInput holds optional mutation values for a package.
type UpdatePackageInput struct {
	Name                   *string
	Description            *string
	BasePriceCents         *int
	DefaultDurationMinutes *int
	IncludesPremiumSpirits *bool
	IsActive               *bool
}

// RuleInput declares one per-guest consumption rule.
type RuleInput struct {
	InventoryItemID   uuid.UUID
	QtyPerGuest       decimal.Decimal
	IsSubstitutable   bool
	SubstitutionGroup *string
}

// service implements the package service.
type service struct {
	repo *Repository
}

// NewService constructs a package service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("package repository required")
	}
	return &service{repo: repo}, nil
}

// CreatePackage creates a package with its initial rule set.
func (s *service) CreatePackage(ctx context.Context, orgID uuid.UUID, input CreatePackageInput) (*PackageDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.BasePriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price_cents must be non-negative")
	}
	if err := validateRules(input.Rules); err != nil {
		return nil, err
	}

	duration := input.DefaultDurationMinutes
	if duration <= 0 {
		duration = 180
	}

	pkg := &models.EventPackage{
		OrganizationID:         orgID,
		Name:                   name,
		Description:            input.Description,
		BasePriceCents:         input.BasePriceCents,
		DefaultDurationMinutes: duration,
		IncludesPremiumSpirits: input.IncludesPremiumSpirits,
		IsActive:               input.IsActive,
	}
	created, err := s.repo.Create(ctx, pkg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert event package")
	}

	if len(input.Rules) > 0 {
		if err := s.repo.ReplaceRules(ctx, created.ID, buildRuleRows(input.Rules)); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert consumption rules")
		}
	}

	return s.GetPackage(ctx, orgID, created.ID)
}

// GetPackage loads a package with rules, scoped to the organization.
func (s *service) GetPackage(ctx context.Context, orgID, packageID uuid.UUID) (*PackageDTO, error) {
	pkg, err := s.loadOrgPackage(ctx, orgID, packageID)
	if err != nil {
		return nil, err
	}
	return NewPackageDTO(pkg), nil
}

// ListPackages returns the organization's packages without rules.
func (s *service) ListPackages(ctx context.Context, orgID uuid.UUID) ([]PackageDTO, error) {
	rows, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list event packages")
	}
	out := make([]PackageDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewPackageDTO(&rows[i]))
	}
	return out, nil
}

// UpdatePackage applies the provided mutations to an existing package.
func (s *service) UpdatePackage(ctx context.Context, orgID, packageID uuid.UUID, input UpdatePackageInput) (*PackageDTO, error) {
	pkg, err := s.loadOrgPackage(ctx, orgID, packageID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		pkg.Name = name
	}
	if input.Description != nil {
		pkg.Description = input.Description
	}
	if input.BasePriceCents != nil {
		if *input.BasePriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base_price_cents must be non-negative")
		}
		pkg.BasePriceCents = *input.BasePriceCents
	}
	if input.DefaultDurationMinutes != nil {
		if *input.DefaultDurationMinutes <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "default_duration_minutes must be positive")
		}
		pkg.DefaultDurationMinutes = *input.DefaultDurationMinutes
	}
	if input.IncludesPremiumSpirits != nil {
		pkg.IncludesPremiumSpirits = *input.IncludesPremiumSpirits
	}
	if input.IsActive != nil {
		pkg.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update event package")
	}
	return s.GetPackage(ctx, orgID, packageID)
}

// DeletePackage removes a package; its rules cascade.
func (s *service) DeletePackage(ctx context.Context, orgID, packageID uuid.UUID) error {
	if _, err := s.loadOrgPackage(ctx, orgID, packageID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, packageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete event package")
	}
	return nil
}

// ReplaceRules swaps the package's rule set wholesale.
func (s *service) ReplaceRules(ctx context.Context, orgID, packageID uuid.UUID, rules []RuleInput) (*PackageDTO, error) {
	if _, err := s.loadOrgPackage(ctx, orgID, packageID); err != nil {
		return nil, err
	}
	if err := validateRules(rules); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceRules(ctx, packageID, buildRuleRows(rules)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace consumption rules")
	}
	return s.GetPackage(ctx, orgID, packageID)
}

func (s *service) loadOrgPackage(ctx context.Context, orgID, packageID uuid.UUID) (*models.EventPackage, error) {
	pkg, err := s.repo.FindByID(ctx, packageID)
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

func validateRules(rules []RuleInput) error {
	seen := make(map[uuid.UUID]struct{}, len(rules))
	for _, rule := range rules {
		if rule.InventoryItemID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "inventory_item_id is required")
		}
		if _, ok := seen[rule.InventoryItemID]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate rule for inventory item")
		}
		seen[rule.InventoryItemID] = struct{}{}
		if rule.QtyPerGuest.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "qty_per_guest must be non-negative")
		}
		if rule.SubstitutionGroup != nil && strings.TrimSpace(*rule.SubstitutionGroup) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "substitution_group cannot be empty")
		}
	}
	return nil
}

func buildRuleRows(rules []RuleInput) []models.ConsumptionRule {
	rows := make([]models.ConsumptionRule, len(rules))
	for i, rule := range rules {
		rows[i] = models.ConsumptionRule{
			InventoryItemID:   rule.InventoryItemID,
			QtyPerGuest:       rule.QtyPerGuest,
			IsSubstitutable:   rule.IsSubstitutable,
			SubstitutionGroup: rule.SubstitutionGroup,
		}
	}
	return rows
}
