package allocation

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

func setupAllocationTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	records := `
CREATE TABLE IF NOT EXISTS allocation_records (
  id TEXT PRIMARY KEY,
  event_id TEXT NOT NULL,
  venue_id TEXT NOT NULL,
  inventory_item_id TEXT NOT NULL,
  required_qty NUMERIC NOT NULL,
  allocated_qty NUMERIC NOT NULL DEFAULT 0,
  shortage_qty NUMERIC NOT NULL DEFAULT 0,
  substitution_of TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(records).Error)
	return db
}

func TestRepositoryRecordLifecycle(t *testing.T) {
	db := setupAllocationTestDB(t)
	repo := NewRepository(db)

	eventID := uuid.New()
	otherEventID := uuid.New()
	venueID := uuid.New()
	itemID := uuid.New()

	first := &models.AllocationRecord{
		EventID:         eventID,
		VenueID:         venueID,
		InventoryItemID: itemID,
		RequiredQty:     decimal.RequireFromString("75"),
		AllocatedQty:    decimal.RequireFromString("40"),
		ShortageQty:     decimal.Zero,
	}
	require.NoError(t, repo.CreateRecord(context.Background(), first))
	require.NotEqual(t, uuid.Nil, first.ID)

	second := &models.AllocationRecord{
		EventID:         eventID,
		VenueID:         uuid.New(),
		InventoryItemID: itemID,
		RequiredQty:     decimal.RequireFromString("75"),
		AllocatedQty:    decimal.RequireFromString("35"),
		ShortageQty:     decimal.Zero,
	}
	require.NoError(t, repo.CreateRecord(context.Background(), second))

	other := &models.AllocationRecord{
		EventID:         otherEventID,
		VenueID:         venueID,
		InventoryItemID: itemID,
		RequiredQty:     decimal.RequireFromString("10"),
		AllocatedQty:    decimal.RequireFromString("10"),
		ShortageQty:     decimal.Zero,
	}
	require.NoError(t, repo.CreateRecord(context.Background(), other))

	list, err := repo.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	found, err := repo.FindByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.True(t, found.AllocatedQty.Equal(decimal.RequireFromString("40")))

	require.NoError(t, repo.DeleteByEvent(context.Background(), eventID))
	list, err = repo.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Other events are untouched.
	remaining, err := repo.ListByEvent(context.Background(), otherEventID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestRepositorySubstitutionRecord(t *testing.T) {
	db := setupAllocationTestDB(t)
	repo := NewRepository(db)

	original := &models.AllocationRecord{
		EventID:         uuid.New(),
		VenueID:         uuid.New(),
		InventoryItemID: uuid.New(),
		RequiredQty:     decimal.RequireFromString("20"),
		AllocatedQty:    decimal.RequireFromString("5"),
		ShortageQty:     decimal.Zero,
	}
	require.NoError(t, repo.CreateRecord(context.Background(), original))

	sub := &models.AllocationRecord{
		EventID:         original.EventID,
		VenueID:         original.VenueID,
		InventoryItemID: uuid.New(),
		RequiredQty:     decimal.RequireFromString("15"),
		AllocatedQty:    decimal.RequireFromString("15"),
		ShortageQty:     decimal.Zero,
		SubstitutionOf:  &original.ID,
	}
	require.NoError(t, repo.CreateRecord(context.Background(), sub))

	found, err := repo.FindByID(context.Background(), sub.ID)
	require.NoError(t, err)
	require.NotNil(t, found.SubstitutionOf)
	assert.Equal(t, original.ID, *found.SubstitutionOf)
}
