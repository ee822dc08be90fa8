package controllers

import (
	"net/http"

	"github.com/masjid-digital/admin-backend/api/responses"
	"github.com/masjid-digital/admin-backend/pkg/db"
	pkgerrors "github.com/masjid-digital/admin-backend/pkg/errors"
	"github.com/masjid-digital/admin-backend/pkg/logger"
	"github.com/masjid-digital/admin-backend/pkg/redis"
)

// HealthLive answers liveness probes. Process up equals alive.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady answers readiness probes by pinging the backing stores.
func HealthReady(dbClient db.Pinger, redisClient redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dbClient != nil {
			if err := dbClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
