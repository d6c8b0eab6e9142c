package packages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

// Repository wires together event package and consumption rule persistence.
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

// FindByID loads a package with its rules preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.EventPackage, error) {
	var pkg models.EventPackage
	if err := r.db.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ListByOrganization returns the organization's packages without rules.
func (r *Repository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]models.EventPackage, error) {
	var pkgs []models.EventPackage
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at ASC").
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

// Create inserts a new package row. Rules are managed separately.
func (r *Repository) Create(ctx context.Context, pkg *models.EventPackage) (*models.EventPackage, error) {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Omit("Rules").Create(pkg).Error; err != nil {
		return nil, err
	}
	return pkg, nil
}

// Update saves an existing package row.
func (r *Repository) Update(ctx context.Context, pkg *models.EventPackage) error {
	return r.db.WithContext(ctx).Omit("Rules").Save(pkg).Error
}

// Delete removes a package; rules cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EventPackage{}).Error
}

// ListRulesByPackage returns the package's consumption rules in position
// order. The engine walks them in this order.
func (r *Repository) ListRulesByPackage(ctx context.Context, packageID uuid.UUID) ([]models.ConsumptionRule, error) {
	var rules []models.ConsumptionRule
	if err := r.db.WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("position ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// ReplaceRules swaps the package's rule set in one transaction.
func (r *Repository) ReplaceRules(ctx context.Context, packageID uuid.UUID, rules []models.ConsumptionRule) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", packageID).Delete(&models.ConsumptionRule{}).Error; err != nil {
			return err
		}
		for i := range rules {
			rules[i].PackageID = packageID
			rules[i].Position = i
			if rules[i].ID == uuid.Nil {
				rules[i].ID = uuid.New()
			}
		}
		if len(rules) == 0 {
			return nil
		}
		return tx.Create(&rules).Error
	})
}
