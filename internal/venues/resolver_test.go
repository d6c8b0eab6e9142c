package venues

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

type stubLinkReader struct {
	links []models.VenueLink
	err   error
}

func (s stubLinkReader) ListLinksByParent(_ context.Context, _ uuid.UUID) ([]models.VenueLink, error) {
	return s.links, s.err
}

func TestNewResolverRequiresLinkReader(t *testing.T) {
	if _, err := NewResolver(nil); err == nil {
		t.Fatal("expected error creating resolver without link reader")
	}
}

func TestResolveClusterUnlinkedVenue(t *testing.T) {
	primary := uuid.New()
	resolver, err := NewResolver(stubLinkReader{})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.ResolveCluster(context.Background(), primary, true)
	if err != nil {
		t.Fatalf("resolve cluster: %v", err)
	}
	if len(got) != 1 || got[0] != primary {
		t.Fatalf("expected single-element cluster with primary, got %v", got)
	}
}

func TestResolveClusterPrimaryAlwaysFirst(t *testing.T) {
	primary := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	resolver, err := NewResolver(stubLinkReader{links: []models.VenueLink{
		{ParentVenueID: primary, ChildVenueID: childA, LinkInventory: true},
		{ParentVenueID: primary, ChildVenueID: childB, LinkInventory: true},
	}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.ResolveCluster(context.Background(), primary, true)
	if err != nil {
		t.Fatalf("resolve cluster: %v", err)
	}
	want := []uuid.UUID{primary, childA, childB}
	if len(got) != len(want) {
		t.Fatalf("expected %d venues, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s got %s", i, want[i], got[i])
		}
	}
}

func TestResolveClusterSkipsNonInventoryLinks(t *testing.T) {
	primary := uuid.New()
	staffOnly := uuid.New()
	stocked := uuid.New()
	resolver, err := NewResolver(stubLinkReader{links: []models.VenueLink{
		{ParentVenueID: primary, ChildVenueID: staffOnly, LinkInventory: false, LinkStaff: true, LinkEvents: true},
		{ParentVenueID: primary, ChildVenueID: stocked, LinkInventory: true},
	}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.ResolveCluster(context.Background(), primary, true)
	if err != nil {
		t.Fatalf("resolve cluster: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 venues, got %v", got)
	}
	if got[1] != stocked {
		t.Fatalf("expected inventory-linked child, got %s", got[1])
	}

	// With the filter disabled, staff-only edges are included too.
	got, err = resolver.ResolveCluster(context.Background(), primary, false)
	if err != nil {
		t.Fatalf("resolve cluster: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 venues without filter, got %v", got)
	}
}

func TestResolveClusterDeduplicates(t *testing.T) {
	primary := uuid.New()
	child := uuid.New()
	resolver, err := NewResolver(stubLinkReader{links: []models.VenueLink{
		{ParentVenueID: primary, ChildVenueID: child, LinkInventory: true},
		{ParentVenueID: primary, ChildVenueID: child, LinkInventory: true},
		{ParentVenueID: primary, ChildVenueID: primary, LinkInventory: true}, // self-loop collapses too
	}})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	got, err := resolver.ResolveCluster(context.Background(), primary, true)
	if err != nil {
		t.Fatalf("resolve cluster: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected deduplicated cluster of 2, got %v", got)
	}
	if got[0] != primary || got[1] != child {
		t.Fatalf("unexpected cluster %v", got)
	}
}

func TestResolveClusterPropagatesError(t *testing.T) {
	resolver, err := NewResolver(stubLinkReader{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	if _, err := resolver.ResolveCluster(context.Background(), uuid.New(), true); err == nil {
		t.Fatal("expected error")
	}
}
