package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/venuehq/venuehq-backend/api/responses"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/logger"
)

type contextKey string

const ctxOrganizationID contextKey = "organization_id"

const organizationIDHeader = "X-Organization-Id"

// OrganizationIDFromContext returns the tenant scoping every request carries.
func OrganizationIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxOrganizationID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithOrganizationID injects the organization identifier into the context.
func WithOrganizationID(ctx context.Context, orgID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxOrganizationID, orgID)
}

// OrganizationScope requires an X-Organization-Id header on every request and
// parks the parsed ID in the request context. Identity itself is handled
// upstream of this service.
func OrganizationScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(organizationIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Organization-Id header required"))
				return
			}
			orgID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Organization-Id must be a UUID"))
				return
			}

			ctx := WithOrganizationID(r.Context(), orgID)
			if logg != nil {
				ctx = logg.WithOrganizationID(ctx, orgID.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
