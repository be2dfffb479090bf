package handler

import (
	"errors"
	"strconv"

	"skillex/internal/delivery/http/dto"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/domain/cohort"
	"skillex/internal/pkg/response"
	"skillex/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CohortHandler struct {
	cohorts  usecase.CohortUsecase
	sessions usecase.SessionUsecase
}

type createCohortRequest struct {
	Name     string    `json:"name"`
	SkillID  uuid.UUID `json:"skill_id"`
	Capacity int       `json:"capacity"`
}

type scheduleSessionRequest struct {
	Title    string `json:"title"`
	Day      int    `json:"day"`
	Hour     int    `json:"hour"`
	Duration int    `json:"duration"`
}

type sessionStatusRequest struct {
	Status string `json:"status"`
}

func NewCohortHandler(cohorts usecase.CohortUsecase, sessions usecase.SessionUsecase) *CohortHandler {
	return &CohortHandler{cohorts: cohorts, sessions: sessions}
}

func (h *CohortHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/cohorts")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/mine", h.ListMine)
	grp.Get("/:id", h.Get)
	grp.Post("/:id/join", h.Join)
	grp.Post("/:id/leave", h.Leave)
	grp.Get("/:id/sessions", h.ListSessions)
	grp.Post("/:id/sessions", h.ScheduleSession)

	r.Patch("/sessions/:id/status", h.SetSessionStatus)
}

func (h *CohortHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createCohortRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.cohorts.Create(c.Context(), userID, usecase.CreateCohortInput{
		Name:     req.Name,
		SkillID:  req.SkillID,
		Capacity: req.Capacity,
	})
	if err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toCohortResponse(created))
}

func (h *CohortHandler) List(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.cohorts.List(c.Context(), limit, offset)
	if err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCohortResponses(items))
}

func (h *CohortHandler) ListMine(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.cohorts.ListMine(c.Context(), userID)
	if err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCohortResponses(items))
}

func (h *CohortHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	detail, err := h.cohorts.Get(c.Context(), id)
	if err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CohortDetailResponse{
		CohortResponse: toCohortResponse(detail.Cohort),
		MemberIDs:      detail.MemberIDs,
	})
}

func (h *CohortHandler) Join(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.cohorts.Join(c.Context(), id, userID); err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CohortHandler) Leave(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.cohorts.Leave(c.Context(), id, userID); err != nil {
		return mapCohortUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *CohortHandler) ScheduleSession(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req scheduleSessionRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.sessions.Schedule(c.Context(), cohortID, userID, usecase.ScheduleSessionInput{
		Title:    req.Title,
		Day:      req.Day,
		Hour:     req.Hour,
		Duration: req.Duration,
	})
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, toSessionResponse(created))
}

func (h *CohortHandler) ListSessions(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.sessions.List(c.Context(), cohortID, userID)
	if err != nil {
		return mapSessionUsecaseError(err)
	}

	res := make([]dto.SessionResponse, 0, len(items))
	for _, s := range items {
		res = append(res, toSessionResponse(s))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *CohortHandler) SetSessionStatus(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req sessionStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	updated, err := h.sessions.SetStatus(c.Context(), sessionID, userID, req.Status)
	if err != nil {
		return mapSessionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSessionResponse(updated))
}

func toCohortResponse(c cohort.Cohort) dto.CohortResponse {
	return dto.CohortResponse{
		ID:        c.ID,
		Name:      c.Name,
		SkillID:   c.SkillID,
		CreatedBy: c.CreatedBy,
		Capacity:  c.Capacity,
		CreatedAt: c.CreatedAt,
	}
}

func toCohortResponses(items []cohort.Cohort) []dto.CohortResponse {
	res := make([]dto.CohortResponse, 0, len(items))
	for _, it := range items {
		res = append(res, toCohortResponse(it))
	}
	return res
}

func toSessionResponse(s cohort.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:        s.ID,
		CohortID:  s.CohortID,
		Title:     s.Title,
		Day:       s.Day,
		Hour:      s.Hour,
		Duration:  s.Duration,
		Status:    s.Status,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
	}
}

func mapCohortUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrCohortNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Cohort not found", nil, err)
	case errors.Is(err, usecase.ErrCohortFull):
		return middleware.NewAppError(fiber.StatusConflict, "Cohort is full", nil, err)
	case errors.Is(err, usecase.ErrAlreadyMember):
		return middleware.NewAppError(fiber.StatusConflict, "Already a member", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func mapSessionUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotMember):
		return middleware.NewAppError(fiber.StatusForbidden, "Not a member", nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	case errors.Is(err, usecase.ErrSlotUnavailable):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Slot is outside the cohort's shared availability", nil, err)
	case errors.Is(err, usecase.ErrSlotTaken):
		return middleware.NewAppError(fiber.StatusConflict, "Slot already scheduled", nil, err)
	case errors.Is(err, usecase.ErrSchedulingBusy):
		return middleware.NewAppError(fiber.StatusConflict, "Scheduling in progress, try again", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Session is no longer scheduled", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
