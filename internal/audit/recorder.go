package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/logger"
)

// Recorder writes allocation run traces. Failures are logged and swallowed so
// an audit outage never fails the allocation itself.
type Recorder interface {
	RecordRun(ctx context.Context, input RecordRunInput)
}

// RecordRunInput captures one allocation run's trace data.
type RecordRunInput struct {
	EventID       uuid.UUID
	PackageID     uuid.UUID
	ItemCount     int
	ShortageCount int
	Duration      time.Duration
}

type recorder struct {
	repo Repository
	logg *logger.Logger
}

// NewRecorder wires an audit recorder with the provided repository.
func NewRecorder(repo Repository, logg *logger.Logger) (Recorder, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &recorder{repo: repo, logg: logg}, nil
}

func (r *recorder) RecordRun(ctx context.Context, input RecordRunInput) {
	event := &models.AllocationAuditEvent{
		EventID:       input.EventID,
		PackageID:     input.PackageID,
		ItemCount:     input.ItemCount,
		ShortageCount: input.ShortageCount,
		DurationMS:    input.Duration.Milliseconds(),
	}
	if err := r.repo.Create(ctx, event); err != nil {
		ctx = r.logg.WithEventID(ctx, input.EventID.String())
		r.logg.Error(ctx, "audit: record allocation run", err)
	}
}
