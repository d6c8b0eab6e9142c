package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/venuehq/venuehq-backend/pkg/db/models"
	"github.com/venuehq/venuehq-backend/pkg/logger"
)

type stubAuditRepo struct {
	events []models.AllocationAuditEvent
	err    error
}

func (s *stubAuditRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubAuditRepo) Create(_ context.Context, event *models.AllocationAuditEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, *event)
	return nil
}

func (s *stubAuditRepo) ListByEventID(_ context.Context, eventID uuid.UUID) ([]models.AllocationAuditEvent, error) {
	var out []models.AllocationAuditEvent
	for _, event := range s.events {
		if event.EventID == eventID {
			out = append(out, event)
		}
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "audit-test", Level: zerolog.Disabled})
}

func TestRecorderRecordRun(t *testing.T) {
	repo := &stubAuditRepo{}
	recorder, err := NewRecorder(repo, testLogger())
	require.NoError(t, err)

	eventID := uuid.New()
	recorder.RecordRun(context.Background(), RecordRunInput{
		EventID:       eventID,
		PackageID:     uuid.New(),
		ItemCount:     3,
		ShortageCount: 1,
		Duration:      42 * time.Millisecond,
	})

	require.Len(t, repo.events, 1)
	assert.Equal(t, eventID, repo.events[0].EventID)
	assert.Equal(t, 3, repo.events[0].ItemCount)
	assert.Equal(t, 1, repo.events[0].ShortageCount)
	assert.Equal(t, int64(42), repo.events[0].DurationMS)
}

func TestRecorderSwallowsStorageErrors(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("boom")}
	recorder, err := NewRecorder(repo, testLogger())
	require.NoError(t, err)

	// Must not panic or propagate.
	recorder.RecordRun(context.Background(), RecordRunInput{EventID: uuid.New()})
	assert.Empty(t, repo.events)
}

func TestNewRecorderValidation(t *testing.T) {
	if _, err := NewRecorder(nil, testLogger()); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewRecorder(&stubAuditRepo{}, nil); err == nil {
		t.Fatal("expected error without logger")
	}
}
