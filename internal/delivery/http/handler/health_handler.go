package handler

import (
	"context"
	"time"

	"skillex/internal/database"
	"skillex/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Health)
	r.Get("/readyz", h.Ready)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"status": "up"})
}

// Ready reports whether the database answers within a short deadline.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	var one int
	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "database unreachable", nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"status": "ready"})
}
