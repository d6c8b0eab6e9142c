package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuehq/venuehq-backend/api/responses"
	"github.com/venuehq/venuehq-backend/api/validators"
	"github.com/venuehq/venuehq-backend/internal/events"
	"github.com/venuehq/venuehq-backend/pkg/enums"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/logger"
	"github.com/venuehq/venuehq-backend/pkg/pagination"
)

type eventCreateRequest struct {
	VenueID        string    `json:"venueId" validate:"required,uuid"`
	EventTypeID    string    `json:"eventTypeId" validate:"required,uuid"`
	PackageID      string    `json:"packageId" validate:"required,uuid"`
	Name           string    `json:"name" validate:"required"`
	StartsAt       time.Time `json:"startsAt" validate:"required"`
	EndsAt         time.Time `json:"endsAt" validate:"required"`
	ExpectedGuests int       `json:"expectedGuests" validate:"required,gt=0"`
	Notes          *string   `json:"notes"`
	CreatedBy      *string   `json:"createdBy"`
}

func (req eventCreateRequest) toInput() (events.CreateEventInput, error) {
	venueID, err := uuid.Parse(strings.TrimSpace(req.VenueID))
	if err != nil {
		return events.CreateEventInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid venueId")
	}
	eventTypeID, err := uuid.Parse(strings.TrimSpace(req.EventTypeID))
	if err != nil {
		return events.CreateEventInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid eventTypeId")
	}
	packageID, err := uuid.Parse(strings.TrimSpace(req.PackageID))
	if err != nil {
		return events.CreateEventInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid packageId")
	}

	return events.CreateEventInput{
		VenueID:        venueID,
		EventTypeID:    eventTypeID,
		PackageID:      packageID,
		Name:           req.Name,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		ExpectedGuests: req.ExpectedGuests,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
	}, nil
}

type eventUpdateRequest struct {
	Name           *string    `json:"name"`
	StartsAt       *time.Time `json:"startsAt"`
	EndsAt         *time.Time `json:"endsAt"`
	ExpectedGuests *int       `json:"expectedGuests"`
	Status         *string    `json:"status"`
	Notes          *string    `json:"notes"`
}

type eventSubstituteRequest struct {
	OriginalRecordID string          `json:"originalRecordId" validate:"required,uuid"`
	SubstituteItemID string          `json:"substituteItemId" validate:"required,uuid"`
	Qty              decimal.Decimal `json:"qty"`
}

// EventCreate books an event and runs the initial inventory allocation.
func EventCreate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateEvent(r.Context(), orgID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// EventFetch returns an event with its current allocation ledger.
func EventFetch(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetEvent(r.Context(), orgID, eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// EventList returns a cursor-paginated event listing, newest start first.
func EventList(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := events.ListEventsInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}

		if venueID, err := validators.ParseQueryUUID(r, "venueId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			input.Filters.VenueID = venueID
		}

		if eventTypeID, err := validators.ParseQueryUUID(r, "eventTypeId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			input.Filters.EventTypeID = eventTypeID
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseEventStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid event status"))
				return
			}
			input.Filters.Status = &status
		}

		if from, err := validators.ParseQueryTime(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			input.Filters.From = from
		}

		if to, err := validators.ParseQueryTime(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		} else {
			input.Filters.To = to
		}

		list, err := svc.ListEvents(r.Context(), orgID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// EventUpdate mutates event details without re-running allocation.
func EventUpdate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := events.UpdateEventInput{
			Name:           payload.Name,
			StartsAt:       payload.StartsAt,
			EndsAt:         payload.EndsAt,
			ExpectedGuests: payload.ExpectedGuests,
			Notes:          payload.Notes,
		}
		if payload.Status != nil {
			status, err := enums.ParseEventStatus(strings.TrimSpace(*payload.Status))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid event status"))
				return
			}
			input.Status = &status
		}

		updated, err := svc.UpdateEvent(r.Context(), orgID, eventID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// EventDelete removes an event and its allocation records.
func EventDelete(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEvent(r.Context(), orgID, eventID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// EventReallocate discards and rebuilds the event's allocation ledger.
func EventReallocate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Reallocate(r.Context(), orgID, eventID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// EventSubstitute records a manual substitution against a shorted allocation row.
func EventSubstitute(svc events.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "event service unavailable"))
			return
		}

		orgID, err := organizationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		eventID, err := pathUUID(r, "eventId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload eventSubstituteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		originalID, err := uuid.Parse(strings.TrimSpace(payload.OriginalRecordID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid originalRecordId"))
			return
		}
		substituteID, err := uuid.Parse(strings.TrimSpace(payload.SubstituteItemID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid substituteItemId"))
			return
		}

		record, err := svc.Substitute(r.Context(), orgID, eventID, events.SubstituteInput{
			OriginalRecordID: originalID,
			SubstituteItemID: substituteID,
			Qty:              payload.Qty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}
