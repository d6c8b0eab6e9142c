package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/enums"
	"github.com/venuehq/venuehq-backend/pkg/pagination"
)

func setupEventsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	events := `
CREATE TABLE IF NOT EXISTS events (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  venue_id TEXT NOT NULL,
  event_type_id TEXT NOT NULL,
  package_id TEXT NOT NULL,
  name TEXT NOT NULL,
  starts_at DATETIME NOT NULL,
  ends_at DATETIME NOT NULL,
  expected_guests INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled',
  notes TEXT,
  created_by TEXT,
  created_at DATETIME
);`
	eventTypes := `
CREATE TABLE IF NOT EXISTS event_types (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  name TEXT NOT NULL,
  color_hex TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(events).Error)
	require.NoError(t, db.Exec(eventTypes).Error)
	return db
}

func newEvent(t *testing.T, db *gorm.DB, orgID, venueID uuid.UUID, name string, startsAt time.Time, status enums.EventStatus) *models.Event {
	t.Helper()

	event := &models.Event{
		ID:             uuid.New(),
		OrganizationID: orgID,
		VenueID:        venueID,
		EventTypeID:    uuid.New(),
		PackageID:      uuid.New(),
		Name:           name,
		StartsAt:       startsAt,
		EndsAt:         startsAt.Add(4 * time.Hour),
		ExpectedGuests: 100,
		Status:         status,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func TestRepositoryEventCRUD(t *testing.T) {
	db := setupEventsTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	created, err := repo.Create(context.Background(), &models.Event{
		OrganizationID: orgID,
		VenueID:        uuid.New(),
		EventTypeID:    uuid.New(),
		PackageID:      uuid.New(),
		Name:           "Spring Gala",
		StartsAt:       now.Add(24 * time.Hour),
		EndsAt:         now.Add(28 * time.Hour),
		ExpectedGuests: 150,
		Status:         enums.EventStatusScheduled,
	})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring Gala", found.Name)
	assert.Equal(t, 150, found.ExpectedGuests)

	found.Status = enums.EventStatusConfirmed
	require.NoError(t, repo.Update(context.Background(), found))

	updated, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.EventStatusConfirmed, updated.Status)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	_, err = repo.FindByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByOrganization_pagination(t *testing.T) {
	db := setupEventsTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	venueID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	early := newEvent(t, db, orgID, venueID, "Early", now.Add(24*time.Hour), enums.EventStatusScheduled)
	late := newEvent(t, db, orgID, venueID, "Late", now.Add(48*time.Hour), enums.EventStatusScheduled)

	// Latest start time comes first.
	page, err := repo.ListByOrganization(context.Background(), orgID, pagination.Params{Limit: 1}, EventFilters{})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, late.ID, page.Events[0].ID)
	require.NotEmpty(t, page.NextCursor)

	second, err := repo.ListByOrganization(context.Background(), orgID, pagination.Params{Limit: 1, Cursor: page.NextCursor}, EventFilters{})
	require.NoError(t, err)
	require.Len(t, second.Events, 1)
	assert.Equal(t, early.ID, second.Events[0].ID)
	assert.Empty(t, second.NextCursor)
}

func TestRepositoryListByOrganization_filters(t *testing.T) {
	db := setupEventsTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	venueA := uuid.New()
	venueB := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	match := newEvent(t, db, orgID, venueA, "Match", now.Add(24*time.Hour), enums.EventStatusConfirmed)
	newEvent(t, db, orgID, venueB, "Other Venue", now.Add(24*time.Hour), enums.EventStatusConfirmed)
	newEvent(t, db, orgID, venueA, "Wrong Status", now.Add(24*time.Hour), enums.EventStatusCanceled)
	newEvent(t, db, orgID, venueA, "Too Late", now.Add(96*time.Hour), enums.EventStatusConfirmed)

	status := enums.EventStatusConfirmed
	from := now
	to := now.Add(72 * time.Hour)
	page, err := repo.ListByOrganization(context.Background(), orgID, pagination.Params{Limit: 10}, EventFilters{
		VenueID: &venueA,
		Status:  &status,
		From:    &from,
		To:      &to,
	})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, match.ID, page.Events[0].ID)
}

func TestRepositoryListByOrganization_eventTypeFilter(t *testing.T) {
	db := setupEventsTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	venueID := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)
	match := newEvent(t, db, orgID, venueID, "Wedding", now.Add(24*time.Hour), enums.EventStatusScheduled)
	newEvent(t, db, orgID, venueID, "Corporate Mixer", now.Add(48*time.Hour), enums.EventStatusScheduled)

	page, err := repo.ListByOrganization(context.Background(), orgID, pagination.Params{Limit: 10}, EventFilters{
		EventTypeID: &match.EventTypeID,
	})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	assert.Equal(t, match.ID, page.Events[0].ID)
}

func TestRepositoryEventTypes(t *testing.T) {
	db := setupEventsTestDB(t)
	repo := NewRepository(db)

	orgID := uuid.New()
	created, err := repo.CreateEventType(context.Background(), &models.EventType{
		OrganizationID: orgID,
		Name:           "Wedding",
		ColorHex:       "#f472b6",
	})
	require.NoError(t, err)

	found, err := repo.FindEventTypeByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wedding", found.Name)

	list, err := repo.ListEventTypesByOrganization(context.Background(), orgID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.DeleteEventType(context.Background(), created.ID))
	_, err = repo.FindEventTypeByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
