package handlers

import (
	"context"
	"net/http"
	"time"

	"coopcycle-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Mounter interface {
	Mount(r chi.Router)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Alerts      Alerts
	Paging      Paging
	CORSOrigins []string
	DB          Pinger
}

// Resources exposes every entity service under its REST path.
func Resources(s *service.Services, alerts Alerts, paging Paging) []Mounter {
	return []Mounter{
		NewResource[service.OrderDTO]("orders", s.Orders, alerts, paging),
		NewResource[service.BasketDTO]("baskets", s.Baskets, alerts, paging),
		NewResource[service.PaymentDTO]("payments", s.Payments, alerts, paging),
		NewResource[service.RestaurantDTO]("restaurants", s.Restaurants, alerts, paging),
		NewResource[service.RestaurantOwnerDTO]("restaurant-owners", s.RestaurantOwners, alerts, paging),
		NewResource[service.ShareholderDTO]("shareholders", s.Shareholders, alerts, paging),
		NewResource[service.ClientDTO]("clients", s.Clients, alerts, paging),
	}
}

func NewRouter(cfg RouterConfig, resources ...Mounter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", health(cfg.DB))
	if len(resources) > 0 {
		r.Route("/api", func(r chi.Router) {
			for _, res := range resources {
				res.Mount(r)
			}
		})
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{
			"Location", "Link", "X-Total-Count",
			cfg.Alerts.header("alert"), cfg.Alerts.header("error"), cfg.Alerts.header("params"),
		},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				writeError(w, http.StatusServiceUnavailable, "unavailable", "database unreachable", nil)
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	}
}
