package controllers

import (
	"net/http"

	"go.uber.org/multierr"

	"github.com/venuehq/venuehq-backend/api/responses"
	"github.com/venuehq/venuehq-backend/pkg/config"
	"github.com/venuehq/venuehq-backend/pkg/db"
	pkgerrors "github.com/venuehq/venuehq-backend/pkg/errors"
	"github.com/venuehq/venuehq-backend/pkg/logger"
	"github.com/venuehq/venuehq-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VenueHQ-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired dependency answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VenueHQ-Env", cfg.App.Env)

		var err error
		if dbP != nil {
			if pingErr := dbP.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}
		if redisP != nil {
			if pingErr := redisP.Ping(r.Context()); pingErr != nil {
				err = multierr.Append(err, pingErr)
			}
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency ping failed"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
