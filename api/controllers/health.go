package controllers

import (
	"net/http"

	"github.com/distrocart/backend/api/responses"
	"github.com/distrocart/backend/pkg/config"
	"github.com/distrocart/backend/pkg/db"
	pkgerrors "github.com/distrocart/backend/pkg/errors"
	"github.com/distrocart/backend/pkg/logger"
	"github.com/distrocart/backend/pkg/redis"
)

const envHeader = "X-DistroCart-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the backing stores so load balancers only route to
// instances that can serve traffic.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]string{}

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
			checks["database"] = "ok"
		}

		if redisP != nil {
			if err := redisP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
