package allocation

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/internal/inventory"
	"github.com/venuehq/venuehq-backend/pkg/db/models"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
)

// maxSubstituteSuggestions caps how many substitution candidates are fetched
// per shorted item. The cap applies before self and zero-stock filtering.
const maxSubstituteSuggestions = 5

// RunInput identifies the event to allocate for.
type RunInput struct {
	EventID        uuid.UUID
	VenueID        uuid.UUID
	PackageID      uuid.UUID
	ExpectedGuests int
}

// SubstituteSuggestion is one replacement option for a shorted item.
type SubstituteSuggestion struct {
	InventoryItemID uuid.UUID `json:"inventoryItemId"`
	AvailableQty    float64   `json:"availableQty"`
}

// ItemAllocation summarizes the run outcome for one consumption rule.
type ItemAllocation struct {
	InventoryItemID uuid.UUID              `json:"inventoryItemId"`
	RequiredQty     float64                `json:"requiredQty"`
	AllocatedQty    float64                `json:"allocatedQty"`
	ShortageQty     float64                `json:"shortageQty"`
	SuggestedSubs   []SubstituteSuggestion `json:"suggestedSubs,omitempty"`
}

// Result is the outcome of one allocation run.
type Result struct {
	Allocations  []ItemAllocation `json:"allocations"`
	HadShortages bool             `json:"hadShortages"`
}

type ruleReader interface {
	ListRulesByPackage(ctx context.Context, packageID uuid.UUID) ([]models.ConsumptionRule, error)
}

type clusterResolver interface {
	ResolveCluster(ctx context.Context, primaryVenueID uuid.UUID, inventoryOnly bool) ([]uuid.UUID, error)
}

type stockReader interface {
	LevelsForItem(ctx context.Context, itemID uuid.UUID, venueIDs []uuid.UUID) (map[uuid.UUID]float64, error)
	FindTopSubstituteCandidates(ctx context.Context, group string, limit int) ([]inventory.SubstituteCandidate, error)
}

type recordWriter interface {
	CreateRecord(ctx context.Context, record *models.AllocationRecord) error
}

// Engine allocates event inventory across a venue's linked cluster.
type Engine struct {
	rules   ruleReader
	cluster clusterResolver
	stock   stockReader
	records recordWriter
}

// NewEngine constructs an allocation engine instance.
func NewEngine(rules ruleReader, cluster clusterResolver, stock stockReader, records recordWriter) (*Engine, error) {
	if rules == nil {
		return nil, fmt.Errorf("rule reader required")
	}
	if cluster == nil {
		return nil, fmt.Errorf("cluster resolver required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock reader required")
	}
	if records == nil {
		return nil, fmt.Errorf("record writer required")
	}
	return &Engine{rules: rules, cluster: cluster, stock: stock, records: records}, nil
}

// Run walks the package's consumption rules in order and greedily takes stock
// venue by venue, primary venue first, then inventory-linked venues in link
// order. One record is written per venue that contributes a non-zero take;
// the whole-event required quantity is repeated on each of those rows.
//
// Runs read stock without locking, so concurrent runs can both see the same
// availability. Records are append-only: running twice for the same event
// duplicates rows unless the caller cleared the old ones first.
func (e *Engine) Run(ctx context.Context, input RunInput) (*Result, error) {
	rules, err := e.rules.ListRulesByPackage(ctx, input.PackageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load consumption rules")
	}

	cluster, err := e.cluster.ResolveCluster(ctx, input.VenueID, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve venue cluster")
	}

	result := &Result{Allocations: make([]ItemAllocation, 0, len(rules))}
	for _, rule := range rules {
		required := math.Ceil(rule.QtyPerGuest.InexactFloat64() * float64(input.ExpectedGuests))

		levels, err := e.stock.LevelsForItem(ctx, rule.InventoryItemID, cluster)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load inventory levels")
		}

		remaining := required
		for _, venueID := range cluster {
			if remaining <= 0 {
				break
			}
			avail := levels[venueID]
			take := math.Min(avail, remaining)
			if take <= 0 {
				continue
			}
			record := &models.AllocationRecord{
				EventID:         input.EventID,
				VenueID:         venueID,
				InventoryItemID: rule.InventoryItemID,
				RequiredQty:     decimal.NewFromFloat(required),
				AllocatedQty:    decimal.NewFromFloat(take),
				ShortageQty:     decimal.Zero,
			}
			if err := e.records.CreateRecord(ctx, record); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert allocation record")
			}
			remaining -= take
		}

		shortage := math.Max(0, remaining)
		item := ItemAllocation{
			InventoryItemID: rule.InventoryItemID,
			RequiredQty:     required,
			AllocatedQty:    required - shortage,
			ShortageQty:     shortage,
		}

		if shortage > 0 {
			result.HadShortages = true
			if rule.IsSubstitutable && rule.SubstitutionGroup != nil && *rule.SubstitutionGroup != "" {
				subs, err := e.suggestSubstitutes(ctx, *rule.SubstitutionGroup, rule.InventoryItemID)
				if err != nil {
					return nil, err
				}
				item.SuggestedSubs = subs
			}
		}

		result.Allocations = append(result.Allocations, item)
	}

	return result, nil
}

func (e *Engine) suggestSubstitutes(ctx context.Context, group string, excludeItemID uuid.UUID) ([]SubstituteSuggestion, error) {
	candidates, err := e.stock.FindTopSubstituteCandidates(ctx, group, maxSubstituteSuggestions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load substitute candidates")
	}

	suggestions := make([]SubstituteSuggestion, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.InventoryItemID == excludeItemID || candidate.AvailableQty <= 0 {
			continue
		}
		suggestions = append(suggestions, SubstituteSuggestion{
			InventoryItemID: candidate.InventoryItemID,
			AvailableQty:    candidate.AvailableQty,
		})
	}
	if len(suggestions) == 0 {
		return nil, nil
	}
	return suggestions, nil
}
