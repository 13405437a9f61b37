package handler

import (
	"context"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness. The database is required; the cache is
// reported but never fails the check.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{"database": "up", "cache": "up"}
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		data["cache"] = "down"
	}
	if h.db == nil || h.db.Ping(ctx) != nil {
		data["database"] = "down"
		return response.Error(c, fiber.StatusServiceUnavailable, "unavailable", data)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
