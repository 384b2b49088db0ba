// Package health serves the connectivity diagnostics of the backend.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/gymstats/storage/postgres"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

const pingTimeout = 3 * time.Second

type DBChecker interface {
	Ping(ctx context.Context) error
	CheckHealth(ctx context.Context) postgres.HealthReport
}

type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Status struct {
	Healthy bool              `json:"healthy"`
	Backend string            `json:"backend"`
	Checks  map[string]string `json:"checks"`
}

type Handler struct {
	backend string
	db      DBChecker
	redis   Pinger
}

// NewHandler skips the database checks when db is nil, as with the local
// backend.
func NewHandler(backend string, db DBChecker, redisClient Pinger) *Handler {
	return &Handler{
		backend: backend,
		db:      db,
		redis:   redisClient,
	}
}

func (handler *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := Status{
		Healthy: true,
		Backend: handler.backend,
		Checks:  map[string]string{},
	}
	if handler.db != nil {
		if err := handler.db.Ping(ctx); err != nil {
			log.Errorf("health: db ping: %s", err)
			status.Healthy = false
			status.Checks["db"] = err.Error()
		} else {
			status.Checks["db"] = "ok"
		}
	}
	if handler.redis != nil {
		if err := handler.redis.Ping(ctx).Err(); err != nil {
			log.Errorf("health: redis ping: %s", err)
			status.Healthy = false
			status.Checks["redis"] = err.Error()
		} else {
			status.Checks["redis"] = "ok"
		}
	}

	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	pkg.WriteJSONResponse(w, status, code)
}

// HandleDB reports the required tables that are missing or unreadable.
func (handler *Handler) HandleDB(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.health.db")
	defer span.End()

	if handler.db == nil {
		http.Error(w, "error, no database configured for backend "+handler.backend, http.StatusNotFound)
		return
	}

	report := handler.db.CheckHealth(ctx)
	code := http.StatusOK
	if !report.IsHealthy {
		code = http.StatusServiceUnavailable
	}
	pkg.WriteJSONResponse(w, report, code)
}
