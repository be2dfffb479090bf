package handler

import (
	"errors"
	"strconv"

	"skillex/internal/delivery/http/dto"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/pkg/response"
	"skillex/internal/repository"
	"skillex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Body        string    `json:"body"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/messages")
	grp.Post("/", h.Send)
	grp.Get("/:user_id", h.Conversation)
	grp.Post("/:user_id/read", h.MarkRead)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Send(c.Context(), userID, req.RecipientID, req.Body)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toMessageResponse(created))
}

func (h *MessageHandler) Conversation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	otherID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.uc.Conversation(c.Context(), userID, otherID, limit)
	if err != nil {
		return mapMessageUsecaseError(err)
	}

	res := make([]dto.MessageResponse, 0, len(items))
	for _, m := range items {
		res = append(res, toMessageResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MessageHandler) MarkRead(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	senderID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	n, err := h.uc.MarkRead(c.Context(), userID, senderID)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]int64{"marked_read": n})
}

func toMessageResponse(m repository.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		SentAt:      m.SentAt,
		ReadAt:      m.ReadAt,
	}
}

func mapMessageUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrRecipientNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Recipient not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
