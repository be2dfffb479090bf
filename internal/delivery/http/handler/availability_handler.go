package handler

import (
	"errors"

	"skillex/internal/delivery/http/dto"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/pkg/response"
	"skillex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	uc usecase.AvailabilityUsecase
}

type replaceAvailabilityRequest struct {
	Slots []bool `json:"slots"`
}

type overlapRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

func NewAvailabilityHandler(uc usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

func (h *AvailabilityHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/availability", h.GetMine)
	r.Put("/me/availability", h.Replace)
	r.Get("/users/:id/availability", h.GetForUser)
	r.Post("/availability/overlap", h.Overlap)
}

func (h *AvailabilityHandler) GetMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return h.respondWeek(c, userID)
}

func (h *AvailabilityHandler) GetForUser(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.respondWeek(c, userID)
}

func (h *AvailabilityHandler) respondWeek(c fiber.Ctx, userID uuid.UUID) error {
	slots, sum, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.AvailabilityResponse{Slots: slots, Summary: sum})
}

// Replace takes the full week every time; there is no partial update.
func (h *AvailabilityHandler) Replace(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req replaceAvailabilityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	sum, err := h.uc.Replace(c.Context(), userID, req.Slots)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, sum)
}

func (h *AvailabilityHandler) Overlap(c fiber.Ctx) error {
	var req overlapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	out, err := h.uc.CommonTimes(c.Context(), req.UserIDs)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.OverlapResponse{
		UserIDs: out.UserIDs,
		Slots:   out.Slots,
		Summary: out.Summary,
	})
}

func mapAvailabilityUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidMask):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Availability must cover exactly one week", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrAvailabilityNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Availability not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
