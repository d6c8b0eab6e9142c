package controllers

import (
	"net/http"

	"github.com/venuehq/venuehq-backend/api/responses"
	"github.com/venuehq/venuehq-backend/api/validators"
	"github.com/venuehq/venuehq-backend/internal/events"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/logger"
)

type eventTypeCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	ColorHex string `json:"colorHex"`
}

// EventTypeCreate registers a calendar category for the organization.
func EventTypeCreate(svc events.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload eventTypeCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateEventType(r.Context(), orgID, events.CreateEventTypeInput{
			Name:     payload.Name,
			ColorHex: payload.ColorHex,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// EventTypeList returns the organization's calendar categories.
func EventTypeList(svc events.Service, logg *logger.Logger) http.HandlerFunc {
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

		list, err := svc.ListEventTypes(r.Context(), orgID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// EventTypeDelete removes a calendar category.
func EventTypeDelete(svc events.Service, logg *logger.Logger) http.HandlerFunc {
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

		eventTypeID, err := pathUUID(r, "eventTypeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteEventType(r.Context(), orgID, eventTypeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
