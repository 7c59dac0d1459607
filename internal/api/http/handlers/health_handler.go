package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shelfcam/shelfcam-api/internal/persistence"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	postgres *persistence.Postgres
	redis    *persistence.Redis
}

func NewHealthHandler(pg *persistence.Postgres, rd *persistence.Redis) *HealthHandler {
	return &HealthHandler{postgres: pg, redis: rd}
}

// Root greets unauthenticated callers so load balancers and humans can
// confirm the service is up.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "ShelfCam API is live"})
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready reports whether backing stores are reachable. A degraded
// dependency yields 503 with per-dependency detail.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.UserContext()
	checks := fiber.Map{}
	healthy := true

	if err := h.postgres.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	} else {
		checks["postgres"] = "ok"
	}

	if err := h.redis.Ping(ctx); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	} else {
		checks["redis"] = "ok"
	}

	status := fiber.StatusOK
	state := "ready"
	if !healthy {
		status = fiber.StatusServiceUnavailable
		state = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{"status": state, "checks": checks})
}
