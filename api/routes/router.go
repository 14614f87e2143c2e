package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/distrocart/backend/api/controllers"
	cartcontrollers "github.com/distrocart/backend/api/controllers/cart"
	"github.com/distrocart/backend/api/middleware"
	"github.com/distrocart/backend/internal/cart"
	"github.com/distrocart/backend/internal/optimizer"
	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/db"
	"github.com/distrocart/backend/pkg/logger"
	"github.com/distrocart/backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	cartService cart.Service,
	optimizerService optimizer.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/", cartcontrollers.CartFetch(cartService, logg))
		r.Post("/items", cartcontrollers.CartAdd(cartService, logg))
		r.Post("/optimize", cartcontrollers.CartOptimize(optimizerService, logg))
		r.Get("/optimize/presets", cartcontrollers.WeightPresets(optimizerService, logg))
	})

	return r
}
