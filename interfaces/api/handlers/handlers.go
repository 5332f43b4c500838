package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/redis"
	"newsletter-backend/pkg/config"
	"newsletter-backend/pkg/scheduler"
)

// Services contains all the services needed for handlers
type Services struct {
	AuthService       services.AuthService
	ModuleCatalog     services.ModuleCatalogService
	IssueSelection    services.IssueSelectionService
	ContentGeneration services.ContentGenerationService
	AiAppService      services.AiAppService
	AdService         services.AdService
}

// Infrastructure carries the pieces the health handler probes directly
type Infrastructure struct {
	DB          *gorm.DB
	RedisClient *redis.RedisClient
	Scheduler   scheduler.EventScheduler
}

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth       *AuthHandler
	Module     *ModuleHandler
	Issue      *IssueHandler
	Generation *GenerationHandler
	AiApp      *AiAppHandler
	Ad         *AdHandler
	Health     *HealthHandler
	Log        *LogHandler
}

// NewHandlers creates a new instance of Handlers with all dependencies
func NewHandlers(svcs *Services, infra *Infrastructure, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svcs.AuthService),
		Module:     NewModuleHandler(svcs.ModuleCatalog),
		Issue:      NewIssueHandler(svcs.IssueSelection),
		Generation: NewGenerationHandler(svcs.ContentGeneration),
		AiApp:      NewAiAppHandler(svcs.AiAppService),
		Ad:         NewAdHandler(svcs.AdService),
		Health:     NewHealthHandler(infra.DB, infra.RedisClient, infra.Scheduler),
		Log:        NewLogHandler(cfg),
	}
}

// parseUUIDParam reads a path parameter as a UUID
func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
