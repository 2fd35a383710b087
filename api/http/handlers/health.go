package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/chatbot/api/http/presenter"
	"github.com/artem13815/chatbot/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	svc     health.ReadinessUseCase
	timeout time.Duration
}

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler {
	return &HealthHandler{svc: svc, timeout: 5 * time.Second}
}

// Health: basic liveness check, independent of the completion provider.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} health.Liveness
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(health.Alive())
}

// Ready reports whether the completion provider answers its catalog call.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} health.Readiness
// @Failure 503 {object} health.Readiness
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()
	err := h.svc.Ready(ctx)
	status := fiber.StatusOK
	if err != nil {
		log.Printf("[%s] not ready: %v", c.GetRespHeader(fiber.HeaderXRequestID), err)
		status = fiber.StatusServiceUnavailable
	}
	return presenter.JSON(c, status, health.Report(err))
}
