package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/identity-service/internal/domain"
)

// Prober produces a liveness record and never fails.
type Prober interface {
	Probe(ctx context.Context) domain.HealthRecord
}

// Pinger checks an optional dependency.
type Pinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	probe       Prober
	redis       Pinger
}

// NewHealthHandler returns a new handler instance. redis may be nil.
func NewHealthHandler(serviceName, version string, probe Prober, redis Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, probe: probe, redis: redis}
}

// Root handles GET /.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Live reports process liveness without touching dependencies.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Health reports the database liveness record.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	record := h.probe.Probe(c.UserContext())
	if !record.Healthy() {
		c.Status(fiber.StatusServiceUnavailable)
	}
	return c.JSON(record)
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	record := h.probe.Probe(c.UserContext())
	ready := record.Healthy()

	depStatus := fiber.Map{"postgres": record}
	if h.redis != nil && h.redis.Enabled() {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			depStatus["redis"] = "unavailable"
			ready = false
		} else {
			depStatus["redis"] = "ok"
		}
	}

	if ready {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
