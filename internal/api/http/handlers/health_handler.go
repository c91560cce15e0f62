package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-match/internal/observability"
	"github.com/spec-kit/study-match/internal/repository"
)

// HealthHandler responds to liveness and readiness probes. The only backing
// store is in-process memory, so readiness reports counts rather than
// pinging external dependencies.
type HealthHandler struct {
	serviceName string
	version     string
	users       repository.UserRepository
	metrics     *observability.Metrics
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, users repository.UserRepository, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, users: users, metrics: metrics}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	users, err := h.users.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "identity store unavailable",
			},
		})
	}

	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"status": "ready",
		"stats": fiber.Map{
			"registered_users": len(users),
			"requests_served":  requests,
			"requests_failed":  errors,
		},
	})
}
