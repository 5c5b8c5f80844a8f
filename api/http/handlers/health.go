package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/VaibhavKawatra/copy-job-tracker/pkg/health"
	"github.com/VaibhavKawatra/copy-job-tracker/pkg/logging"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc health.ReadinessUseCase
	log logging.Logger
}

func NewHealthHandler(svc health.ReadinessUseCase, log logging.Logger) *HealthHandler {
	return &HealthHandler{svc: svc, log: log}
}

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// Ready: readiness check with DB ping.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 1*time.Second)
	defer cancel()
	if err := h.svc.Ready(ctx); err != nil {
		h.log.Warn(ctx, "readiness check failed", "err", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ready"})
}
