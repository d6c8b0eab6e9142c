package packages

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

func setupPackagesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	pkgs := `
CREATE TABLE IF NOT EXISTS event_packages (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  base_price_cents INTEGER NOT NULL DEFAULT 0,
  default_duration_minutes INTEGER NOT NULL DEFAULT 180,
  includes_premium_spirits INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	rules := `
CREATE TABLE IF NOT EXISTS consumption_rules (
  id TEXT PRIMARY KEY,
  package_id TEXT NOT NULL,
  inventory_item_id TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  qty_per_guest NUMERIC NOT NULL DEFAULT 0,
  is_substitutable INTEGER NOT NULL DEFAULT 1,
  substitution_group TEXT
);`
	require.NoError(t, db.Exec(pkgs).Error)
	require.NoError(t, db.Exec(rules).Error)
	return db
}

func TestRepositoryPackageCRUD(t *testing.T) {
	db := setupPackagesTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	created, err := repo.Create(context.Background(), &models.EventPackage{
		OrganizationID:         orgID,
		Name:                   "Open Bar",
		BasePriceCents:         150000,
		DefaultDurationMinutes: 240,
		IsActive:               true,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Open Bar", found.Name)
	assert.Empty(t, found.Rules)

	found.Name = "Premium Open Bar"
	require.NoError(t, repo.Update(context.Background(), found))

	list, err := repo.ListByOrganization(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Premium Open Bar", list[0].Name)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryReplaceRules_orderAndSwap(t *testing.T) {
	db := setupPackagesTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	pkg, err := repo.Create(context.Background(), &models.EventPackage{
		OrganizationID: orgID,
		Name:           "Beverage",
		IsActive:       true,
	})
	require.NoError(t, err)

	beer := uuid.New()
	vodka := uuid.New()
	group := "spirit"
	require.NoError(t, repo.ReplaceRules(context.Background(), pkg.ID, []models.ConsumptionRule{
		{InventoryItemID: beer, QtyPerGuest: decimal.RequireFromString("0.75")},
		{InventoryItemID: vodka, QtyPerGuest: decimal.RequireFromString("0.2"), IsSubstitutable: true, SubstitutionGroup: &group},
	}))

	rules, err := repo.ListRulesByPackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, beer, rules[0].InventoryItemID)
	assert.Equal(t, vodka, rules[1].InventoryItemID)
	assert.Equal(t, 0, rules[0].Position)
	assert.Equal(t, 1, rules[1].Position)

	// Replacement swaps the whole set, not appends.
	require.NoError(t, repo.ReplaceRules(context.Background(), pkg.ID, []models.ConsumptionRule{
		{InventoryItemID: vodka, QtyPerGuest: decimal.RequireFromString("0.3")},
	}))
	rules, err = repo.ListRulesByPackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, vodka, rules[0].InventoryItemID)

	require.NoError(t, repo.ReplaceRules(context.Background(), pkg.ID, nil))
	rules, err = repo.ListRulesByPackage(context.Background(), pkg.ID)
	require.NoError(t, err)
	assert.Empty(t, rules)
}
