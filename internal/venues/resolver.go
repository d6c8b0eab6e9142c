package venues

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
)

type linkReader interface {
	ListLinksByParent(ctx context.Context, parentVenueID uuid.UUID) ([]models.VenueLink, error)
}

// Resolver computes the ordered venue cluster inventory allocation draws from.
type Resolver struct {
	links linkReader
}

// NewResolver builds a resolver over the provided link reader.
func NewResolver(links linkReader) (*Resolver, error) {
	if links == nil {
		return nil, fmt.Errorf("link reader required")
	}
	return &Resolver{links: links}, nil
}

// ResolveCluster returns the primary venue followed by its directly linked
// children, deduplicated, in link insertion order. The primary venue is
// always first; that position governs allocation preference. Only a single
// hop is traversed: children of children are not considered. When
// onlyInventoryLinks is set, edges without link_inventory are skipped.
//
// The primary venue is not validated to exist; an unlinked venue resolves to
// a single-element cluster containing itself.
func (r *Resolver) ResolveCluster(ctx context.Context, primaryVenueID uuid.UUID, onlyInventoryLinks bool) ([]uuid.UUID, error) {
	ordered := []uuid.UUID{primaryVenueID}
	seen := map[uuid.UUID]struct{}{primaryVenueID: {}}

	links, err := r.links.ListLinksByParent(ctx, primaryVenueID)
	if err != nil {
		return nil, err
	}

	for _, link := range links {
		if onlyInventoryLinks && !link.LinkInventory {
			continue
		}
		if _, ok := seen[link.ChildVenueID]; ok {
			continue
		}
		seen[link.ChildVenueID] = struct{}{}
		ordered = append(ordered, link.ChildVenueID)
	}

	return ordered, nil
}
