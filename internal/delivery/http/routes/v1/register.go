package v1

import (
	"log"

	"skillex/internal/config"
	"skillex/internal/database"
	"skillex/internal/delivery/http/handler"
	"skillex/internal/delivery/http/middleware"
	"skillex/internal/infrastructure/persistence/postgres"
	"skillex/internal/pkg/jwt"
	"skillex/internal/repository"
	"skillex/internal/usecase"
	useruc "skillex/internal/usecase/user"
	"skillex/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything route registration needs. The container builds
// it once at startup.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  usecase.MatchCache
	Hub    *ws.Hub
	Logger *log.Logger
}

// Register wires repositories, usecases and handlers under /api/v1.
func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := postgres.NewUserRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(deps.DB)
	availRepo := repository.NewPostgresAvailabilityRepository(deps.DB)
	cohortRepo := repository.NewPostgresCohortRepository(deps.DB)
	sessionRepo := repository.NewPostgresSessionRepository(deps.DB)
	messageRepo := repository.NewPostgresMessageRepository(deps.DB)
	referralRepo := repository.NewPostgresReferralRepository(deps.DB)
	endorsementRepo := repository.NewPostgresEndorsementRepository(deps.DB)
	feedbackRepo := repository.NewPostgresFeedbackRepository(deps.DB)

	var notify usecase.Notifier
	if deps.Hub != nil {
		notify = deps.Hub
	}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := useruc.NewService(userRepo)
	skillUC := usecase.NewSkillUsecase(skillRepo, userSkillRepo, deps.Cache)
	availUC := usecase.NewAvailabilityUsecase(availRepo, deps.Cache)
	matchUC := usecase.NewMatchingUsecase(userSkillRepo, availRepo, deps.Cache)
	cohortUC := usecase.NewCohortUsecase(cohortRepo, skillRepo, notify)
	sessionUC := usecase.NewSessionUsecase(sessionRepo, cohortRepo, availRepo, deps.Cache, notify)
	messageUC := usecase.NewMessageUsecase(messageRepo, userRepo, notify)
	referralUC := usecase.NewReferralUsecase(referralRepo, endorsementRepo, feedbackRepo, sessionRepo, cohortRepo, userRepo, skillRepo)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(userUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	availHandler := handler.NewAvailabilityHandler(availUC)
	matchHandler := handler.NewMatchHandler(matchUC)
	cohortHandler := handler.NewCohortHandler(cohortUC, sessionUC)
	messageHandler := handler.NewMessageHandler(messageUC)
	referralHandler := handler.NewReferralHandler(referralUC)

	authHandler.RegisterRoutes(r.Group("/auth"))
	skillHandler.RegisterCatalog(r)

	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterRoutes(protected)
	skillHandler.RegisterRoutes(protected)
	availHandler.RegisterRoutes(protected)
	matchHandler.RegisterRoutes(protected)
	cohortHandler.RegisterRoutes(protected)
	messageHandler.RegisterRoutes(protected)
	referralHandler.RegisterRoutes(protected)

	if deps.Hub != nil {
		wsHandler := ws.NewHandler(deps.Hub, deps.Logger)
		protected.Get("/ws", wsHandler.HandleEventsWS)
	}
}
