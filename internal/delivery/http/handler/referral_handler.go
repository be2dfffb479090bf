package handler

import (
	"errors"

	"skillex/internal/delivery/http/dto"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/pkg/response"
	"skillex/internal/repository"
	"skillex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ReferralHandler struct {
	uc usecase.ReferralUsecase
}

type referRequest struct {
	ReferredID uuid.UUID `json:"referred_id"`
	SkillID    uuid.UUID `json:"skill_id"`
	Note       string    `json:"note"`
}

type endorseRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	SkillID uuid.UUID `json:"skill_id"`
	Comment string    `json:"comment"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func NewReferralHandler(uc usecase.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{uc: uc}
}

func (h *ReferralHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/referrals", h.Refer)
	r.Get("/users/:id/referrals", h.ListReferrals)
	r.Post("/endorsements", h.Endorse)
	r.Get("/users/:id/endorsements", h.ListEndorsements)
	r.Post("/sessions/:id/feedback", h.SubmitFeedback)
	r.Get("/sessions/:id/feedback", h.ListFeedback)
}

func (h *ReferralHandler) Refer(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req referRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Refer(c.Context(), userID, req.ReferredID, req.SkillID, req.Note)
	if err != nil {
		return mapReferralUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toReferralResponse(created))
}

func (h *ReferralHandler) ListReferrals(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListReferrals(c.Context(), userID)
	if err != nil {
		return mapReferralUsecaseError(err)
	}

	res := make([]dto.ReferralResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toReferralResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ReferralHandler) Endorse(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req endorseRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Endorse(c.Context(), userID, req.UserID, req.SkillID, req.Comment)
	if err != nil {
		return mapReferralUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toEndorsementResponse(created))
}

func (h *ReferralHandler) ListEndorsements(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListEndorsements(c.Context(), userID)
	if err != nil {
		return mapReferralUsecaseError(err)
	}

	res := make([]dto.EndorsementResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toEndorsementResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ReferralHandler) SubmitFeedback(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req feedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.SubmitFeedback(c.Context(), sessionID, userID, req.Rating, req.Comment)
	if err != nil {
		return mapReferralUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toFeedbackResponse(created))
}

func (h *ReferralHandler) ListFeedback(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.ListFeedback(c.Context(), sessionID, userID)
	if err != nil {
		return mapReferralUsecaseError(err)
	}

	res := make([]dto.FeedbackResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toFeedbackResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func toReferralResponse(r repository.Referral) dto.ReferralResponse {
	return dto.ReferralResponse{
		ID:         r.ID,
		ReferrerID: r.ReferrerID,
		ReferredID: r.ReferredID,
		SkillID:    r.SkillID,
		SkillName:  r.SkillName,
		Note:       r.Note,
		CreatedAt:  r.CreatedAt,
	}
}

func toEndorsementResponse(e repository.Endorsement) dto.EndorsementResponse {
	return dto.EndorsementResponse{
		ID:         e.ID,
		EndorserID: e.EndorserID,
		UserID:     e.UserID,
		SkillID:    e.SkillID,
		SkillName:  e.SkillName,
		Comment:    e.Comment,
		CreatedAt:  e.CreatedAt,
	}
}

func toFeedbackResponse(f repository.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:        f.ID,
		SessionID: f.SessionID,
		AuthorID:  f.AuthorID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		CreatedAt: f.CreatedAt,
	}
}

func mapReferralUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member", nil, err)
	case errors.Is(err, usecase.ErrReferralExists):
		return middleware.NewAppError(fiber.StatusConflict, "Referral already exists", nil, err)
	case errors.Is(err, usecase.ErrEndorsementExists):
		return middleware.NewAppError(fiber.StatusConflict, "Endorsement already exists", nil, err)
	case errors.Is(err, usecase.ErrFeedbackExists):
		return middleware.NewAppError(fiber.StatusConflict, "Feedback already submitted", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
