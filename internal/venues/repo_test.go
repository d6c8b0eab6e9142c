package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

func setupVenuesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	venues := `
CREATE TABLE IF NOT EXISTS venues (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  name TEXT NOT NULL,
  address TEXT,
  timezone TEXT NOT NULL DEFAULT 'America/Chicago',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	venueLinks := `
CREATE TABLE IF NOT EXISTS venue_links (
  id TEXT PRIMARY KEY,
  parent_venue_id TEXT NOT NULL,
  child_venue_id TEXT NOT NULL,
  link_inventory INTEGER NOT NULL DEFAULT 0,
  link_staff INTEGER NOT NULL DEFAULT 0,
  link_events INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  UNIQUE (parent_venue_id, child_venue_id)
);`
	require.NoError(t, db.Exec(venues).Error)
	require.NoError(t, db.Exec(venueLinks).Error)
	return db
}

func newVenue(t *testing.T, db *gorm.DB, orgID uuid.UUID, name string) *models.Venue {
	t.Helper()

	venue := &models.Venue{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Name:           name,
		Timezone:       "America/Chicago",
		IsActive:       true,
	}
	require.NoError(t, db.Create(venue).Error)
	return venue
}

func TestRepositoryVenueCRUD(t *testing.T) {
	db := setupVenuesTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	created, err := repo.Create(context.Background(), &models.Venue{
		OrganizationID: orgID,
		Name:           "Main Hall",
		Timezone:       "America/Chicago",
		IsActive:       true,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", found.Name)
	assert.Equal(t, orgID, found.OrganizationID)

	found.Name = "Grand Hall"
	require.NoError(t, repo.Update(context.Background(), found))

	updated, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Grand Hall", updated.Name)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByOrganization(t *testing.T) {
	db := setupVenuesTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	otherOrgID := uuid.New()
	newVenue(t, db, orgID, "First")
	newVenue(t, db, orgID, "Second")
	newVenue(t, db, otherOrgID, "Elsewhere")

	list, err := repo.ListByOrganization(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, venue := range list {
		assert.Equal(t, orgID, venue.OrganizationID)
	}
}

func TestRepositoryListLinksByParent_order(t *testing.T) {
	db := setupVenuesTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	parent := newVenue(t, db, orgID, "Parent")
	childA := newVenue(t, db, orgID, "Child A")
	childB := newVenue(t, db, orgID, "Child B")

	first, err := repo.CreateLink(context.Background(), &models.VenueLink{
		ParentVenueID: parent.ID,
		ChildVenueID:  childA.ID,
		LinkInventory: true,
	})
	require.NoError(t, err)
	second, err := repo.CreateLink(context.Background(), &models.VenueLink{
		ParentVenueID: parent.ID,
		ChildVenueID:  childB.ID,
		LinkStaff:     true,
	})
	require.NoError(t, err)

	links, err := repo.ListLinksByParent(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, first.ID, links[0].ID)
	assert.Equal(t, second.ID, links[1].ID)
	assert.True(t, links[0].LinkInventory)
	assert.True(t, links[1].LinkStaff)

	require.NoError(t, repo.DeleteLink(context.Background(), first.ID))
	links, err = repo.ListLinksByParent(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, second.ID, links[0].ID)
}
