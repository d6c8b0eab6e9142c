package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/venuehq/venuehq-backend/api/controllers"
	"github.com/venuehq/venuehq-backend/api/middleware"
	"github.com/venuehq/venuehq-backend/internal/events"
	"github.com/venuehq/venuehq-backend/internal/inventory"
	"github.com/venuehq/venuehq-backend/internal/packages"
	"github.com/venuehq/venuehq-backend/internal/venues"
	"github.com/venuehq/venuehq-backend/pkg/config"
	"github.com/venuehq/venuehq-backend/pkg/db"
	"github.com/venuehq/venuehq-backend/pkg/logger"
	"github.com/venuehq/venuehq-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	venueService venues.Service,
	inventoryService inventory.Service,
	packageService packages.Service,
	eventService events.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.OrganizationScope(logg))
		if redisClient != nil {
			r.Use(middleware.Idempotency(redisClient, logg))
		}

		r.Route("/venues", func(r chi.Router) {
			r.Get("/", controllers.VenueList(venueService, logg))
			r.Post("/", controllers.VenueCreate(venueService, logg))
			r.Get("/{venueId}", controllers.VenueFetch(venueService, logg))
			r.Patch("/{venueId}", controllers.VenueUpdate(venueService, logg))
			r.Delete("/{venueId}", controllers.VenueDelete(venueService, logg))
			r.Route("/{venueId}/links", func(r chi.Router) {
				r.Get("/", controllers.VenueLinkList(venueService, logg))
				r.Post("/", controllers.VenueLinkCreate(venueService, logg))
				r.Delete("/{linkId}", controllers.VenueLinkDelete(venueService, logg))
			})
			r.Get("/{venueId}/levels", controllers.InventoryLevelList(inventoryService, logg))
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.InventoryItemList(inventoryService, logg))
				r.Post("/", controllers.InventoryItemCreate(inventoryService, logg))
				r.Get("/{itemId}", controllers.InventoryItemFetch(inventoryService, logg))
				r.Patch("/{itemId}", controllers.InventoryItemUpdate(inventoryService, logg))
				r.Delete("/{itemId}", controllers.InventoryItemDelete(inventoryService, logg))
			})
			r.Put("/levels", controllers.InventoryLevelSet(inventoryService, logg))
		})

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", controllers.PackageList(packageService, logg))
			r.Post("/", controllers.PackageCreate(packageService, logg))
			r.Get("/{packageId}", controllers.PackageFetch(packageService, logg))
			r.Patch("/{packageId}", controllers.PackageUpdate(packageService, logg))
			r.Delete("/{packageId}", controllers.PackageDelete(packageService, logg))
			r.Put("/{packageId}/rules", controllers.PackageRulesReplace(packageService, logg))
		})

		r.Route("/event-types", func(r chi.Router) {
			r.Get("/", controllers.EventTypeList(eventService, logg))
			r.Post("/", controllers.EventTypeCreate(eventService, logg))
			r.Delete("/{eventTypeId}", controllers.EventTypeDelete(eventService, logg))
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.EventList(eventService, logg))
			r.Post("/", controllers.EventCreate(eventService, logg))
			r.Get("/{eventId}", controllers.EventFetch(eventService, logg))
			r.Patch("/{eventId}", controllers.EventUpdate(eventService, logg))
			r.Delete("/{eventId}", controllers.EventDelete(eventService, logg))
			r.Post("/{eventId}/reallocate", controllers.EventReallocate(eventService, logg))
			r.Post("/{eventId}/substitute", controllers.EventSubstitute(eventService, logg))
		})
	})

	return r
}
