package venues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	db := setupVenuesTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateVenue(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	dto, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{
		Name:     "  Main Hall  ",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Hall", dto.Name)
	assert.Equal(t, orgID, dto.OrganizationID)
	assert.Equal(t, "America/Chicago", dto.Timezone)

	_, err = svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "   "})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestServiceGetVenue_tenantScoping(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	dto, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Scoped", IsActive: true})
	require.NoError(t, err)

	got, err := svc.GetVenue(context.Background(), orgID, dto.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, got.ID)

	// Another organization cannot see the venue.
	_, err = svc.GetVenue(context.Background(), uuid.New(), dto.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestServiceUpdateVenue(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	dto, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Before", IsActive: true})
	require.NoError(t, err)

	name := "After"
	inactive := false
	updated, err := svc.UpdateVenue(context.Background(), orgID, dto.ID, UpdateVenueInput{
		Name:     &name,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.False(t, updated.IsActive)

	empty := " "
	_, err = svc.UpdateVenue(context.Background(), orgID, dto.ID, UpdateVenueInput{Timezone: &empty})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestServiceAddLink(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	parent, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Parent", IsActive: true})
	require.NoError(t, err)
	child, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Child", IsActive: true})
	require.NoError(t, err)

	link, err := svc.AddLink(context.Background(), orgID, AddLinkInput{
		ParentVenueID: parent.ID,
		ChildVenueID:  child.ID,
		LinkInventory: true,
	})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, link.ParentVenueID)
	assert.Equal(t, child.ID, link.ChildVenueID)
	assert.True(t, link.LinkInventory)

	links, err := svc.ListLinks(context.Background(), orgID, parent.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)

	require.NoError(t, svc.RemoveLink(context.Background(), orgID, parent.ID, link.ID))
	links, err = svc.ListLinks(context.Background(), orgID, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestServiceAddLink_duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	parent, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Parent", IsActive: true})
	require.NoError(t, err)
	child, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Child", IsActive: true})
	require.NoError(t, err)

	input := AddLinkInput{
		ParentVenueID: parent.ID,
		ChildVenueID:  child.ID,
		LinkInventory: true,
	}
	_, err = svc.AddLink(context.Background(), orgID, input)
	require.NoError(t, err)

	_, err = svc.AddLink(context.Background(), orgID, input)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestServiceAddLink_validation(t *testing.T) {
	svc, _ := newTestService(t)
	orgID := uuid.New()

	parent, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Parent", IsActive: true})
	require.NoError(t, err)
	child, err := svc.CreateVenue(context.Background(), orgID, CreateVenueInput{Name: "Child", IsActive: true})
	require.NoError(t, err)

	_, err = svc.AddLink(context.Background(), orgID, AddLinkInput{
		ParentVenueID: parent.ID,
		ChildVenueID:  parent.ID,
		LinkInventory: true,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.AddLink(context.Background(), orgID, AddLinkInput{
		ParentVenueID: parent.ID,
		ChildVenueID:  child.ID,
	})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())

	_, err = svc.AddLink(context.Background(), orgID, AddLinkInput{
		ParentVenueID: parent.ID,
		ChildVenueID:  uuid.New(),
		LinkInventory: true,
	})
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
