package handler

import (
	"errors"
	"strconv"

	"skillex/internal/delivery/http/dto"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/domain/matching"
	"skillex/internal/pkg/response"
	"skillex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/matches", h.ListCandidates)
	r.Get("/matches/:user_id", h.CalculateMatch)
}

func (h *MatchHandler) ListCandidates(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		limit = n
	}

	items, err := h.uc.ListCandidates(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	res := make([]dto.CandidateResponse, 0, len(items))
	for _, it := range items {
		res = append(res, dto.CandidateResponse{
			UserID:       it.UserID,
			MatchScore:   it.MatchScore,
			OverlapHours: it.OverlapHours,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MatchHandler) CalculateMatch(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	otherID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.CalculateMatch(c.Context(), userID, otherID)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toMatchDetailResponse(res))
}

func toMatchDetailResponse(res matching.Result) dto.MatchDetailResponse {
	blocks := make([]string, 0, len(res.CommonBlocks))
	for _, b := range res.CommonBlocks {
		blocks = append(blocks, b.Display())
	}

	matched := make([]dto.MatchedSkillResponse, 0, len(res.MatchedSkills))
	for _, m := range res.MatchedSkills {
		matched = append(matched, dto.MatchedSkillResponse{
			SkillID:           m.SkillID,
			SkillName:         m.SkillName,
			TeacherID:         m.TeacherID,
			ScoreContribution: m.ScoreContribution,
		})
	}

	unmet := make([]dto.UnmetSkillResponse, 0, len(res.UnmetSkills))
	for _, u := range res.UnmetSkills {
		unmet = append(unmet, dto.UnmetSkillResponse{
			SkillID:   u.SkillID,
			SkillName: u.SkillName,
			LearnerID: u.LearnerID,
		})
	}

	return dto.MatchDetailResponse{
		MatchScore:    res.MatchScore,
		OverlapHours:  res.OverlapHours,
		CommonBlocks:  blocks,
		MatchedSkills: matched,
		UnmetSkills:   unmet,
	}
}

func mapMatchUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSkillProfileEmpty):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Add skills to your profile first", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
