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

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type addUserSkillRequest struct {
	SkillID     uuid.UUID `json:"skill_id"`
	Role        string    `json:"role"`
	Proficiency int       `json:"proficiency"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// RegisterCatalog mounts the public skill catalog.
func (h *SkillHandler) RegisterCatalog(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/skills", h.ListCatalog)
}

// RegisterRoutes mounts the authenticated user-skill listing routes.
func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/me/skills")
	grp.Get("/", h.ListMine)
	grp.Post("/", h.Add)
	grp.Delete("/:id", h.Remove)
}

func (h *SkillHandler) ListCatalog(c fiber.Ctx) error {
	items, err := h.uc.ListCatalog(c.Context())
	if err != nil {
		return mapSkillUsecaseError(err)
	}

	res := make([]dto.SkillResponse, 0, len(items))
	for _, s := range items {
		res = append(res, dto.SkillResponse{ID: s.ID, Name: s.Name, Category: s.Category})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *SkillHandler) ListMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserSkillResponses(items))
}

func (h *SkillHandler) Add(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req addUserSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.Add(c.Context(), userID, req.SkillID, req.Role, req.Proficiency)
	if err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toUserSkillResponse(created))
}

func (h *SkillHandler) Remove(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Remove(c.Context(), userID, id); err != nil {
		return mapSkillUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toUserSkillResponse(it repository.UserSkillRow) dto.UserSkillResponse {
	return dto.UserSkillResponse{
		ID:          it.ID,
		SkillID:     it.SkillID,
		SkillName:   it.SkillName,
		Role:        it.Role,
		Proficiency: it.Proficiency,
	}
}

func toUserSkillResponses(items []repository.UserSkillRow) []dto.UserSkillResponse {
	res := make([]dto.UserSkillResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toUserSkillResponse(it))
	}
	return res
}

func mapSkillUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillDuplicate):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already listed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
