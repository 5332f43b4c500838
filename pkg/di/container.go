package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	"newsletter-backend/application/serviceimpl"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/aiclient"
	"newsletter-backend/infrastructure/postgres"
	"newsletter-backend/infrastructure/redis"
	"newsletter-backend/infrastructure/websocket"
	"newsletter-backend/interfaces/api/handlers"
	"newsletter-backend/pkg/config"
	"newsletter-backend/pkg/logger"
	"newsletter-backend/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redis.RedisClient
	CatalogCache   *redis.CatalogCache
	EventScheduler scheduler.EventScheduler
	WSManager      *websocket.ConnectionManager
	AIClient       *aiclient.Client

	// Repositories
	UserRepository        repositories.UserRepository
	ModuleRepository      repositories.ModuleRepository
	IssueModuleRepository repositories.IssueModuleRepository
	IssueRepository       repositories.IssueRepository
	AiAppRepository       repositories.AiAppRepository
	AdRepository          repositories.AdRepository

	// Services
	AuthService              services.AuthService
	ModuleCatalogService     services.ModuleCatalogService
	IssueSelectionService    services.IssueSelectionService
	ContentGenerationService services.ContentGenerationService
	AiAppService             services.AiAppService
	AdService                services.AdService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	if err := c.initServices(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	return nil
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Startup("config_loaded", "Configuration loaded", nil)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Startup("db_connected", "Database connected", nil)

	// Run migrations
	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Startup("db_migrated", "Database migrated", nil)

	// Initialize Redis
	redisConfig := redis.RedisConfig{
		Host:     c.Config.Redis.Host,
		Port:     c.Config.Redis.Port,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
	c.RedisClient = redis.NewRedisClient(redisConfig)

	// The catalog cache tolerates a dead Redis; reads fall through to Postgres
	if err := c.RedisClient.Ping(context.Background()); err != nil {
		logger.StartupWarn("redis_connection_failed", "Redis connection failed", map[string]interface{}{"error": err.Error()})
	} else {
		logger.Startup("redis_connected", "Redis connected", nil)
	}
	c.CatalogCache = redis.NewCatalogCache(c.RedisClient, time.Duration(c.Config.Generation.CatalogCacheTTLSecs)*time.Second)

	// Initialize WebSocket manager for generation progress events
	c.WSManager = websocket.NewConnectionManager()

	// Initialize AI provider clients. Unconfigured providers stay nil and
	// requests routed to them fail with a configuration error.
	var openaiClient *aiclient.OpenAIClient
	if c.Config.OpenAI.APIKey != "" {
		openaiClient = aiclient.NewOpenAIClient(c.Config.OpenAI.APIKey, c.Config.OpenAI.Model, c.Config.OpenAI.ImageModel, c.Config.OpenAI.BaseURL)
		logger.Startup("openai_initialized", "OpenAI client initialized", nil)
	} else {
		logger.StartupWarn("openai_not_configured", "OpenAI API key not configured", nil)
	}

	var anthropicClient *aiclient.AnthropicClient
	if c.Config.Anthropic.APIKey != "" {
		anthropicClient = aiclient.NewAnthropicClient(c.Config.Anthropic.APIKey, c.Config.Anthropic.Model, c.Config.Anthropic.BaseURL, c.Config.Anthropic.Version)
		logger.Startup("anthropic_initialized", "Anthropic client initialized", nil)
	} else {
		logger.StartupWarn("anthropic_not_configured", "Anthropic API key not configured", nil)
	}

	var geminiClient *aiclient.GeminiClient
	if c.Config.Gemini.APIKey != "" {
		geminiClient, err = aiclient.NewGeminiClient(c.Config.Gemini.APIKey, c.Config.Gemini.Model, c.Config.Gemini.EmbeddingModel)
		if err != nil {
			logger.StartupWarn("gemini_init_failed", "Failed to initialize Gemini client", map[string]interface{}{"error": err.Error()})
			geminiClient = nil
		} else {
			logger.Startup("gemini_initialized", "Gemini client initialized", nil)
		}
	} else {
		logger.StartupWarn("gemini_not_configured", "Gemini API key not configured", nil)
	}

	c.AIClient = aiclient.NewClient(openaiClient, anthropicClient, geminiClient)

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.ModuleRepository = postgres.NewModuleRepository(c.DB)
	c.IssueModuleRepository = postgres.NewIssueModuleRepository(c.DB)
	c.IssueRepository = postgres.NewIssueRepository(c.DB)
	c.AiAppRepository = postgres.NewAiAppRepository(c.DB)
	c.AdRepository = postgres.NewAdRepository(c.DB)
	logger.Startup("repositories_initialized", "Repositories initialized", nil)
	return nil
}

func (c *Container) initServices() error {
	c.AuthService = serviceimpl.NewAuthService(c.UserRepository, c.Config.JWT.Secret)
	c.ModuleCatalogService = serviceimpl.NewModuleCatalogService(c.ModuleRepository, c.CatalogCache)
	c.IssueSelectionService = serviceimpl.NewIssueSelectionService(
		c.ModuleCatalogService,
		c.IssueModuleRepository,
		time.Duration(c.Config.Generation.StuckThresholdMinutes)*time.Minute,
	)
	c.ContentGenerationService = serviceimpl.NewContentGenerationService(
		c.IssueSelectionService,
		c.IssueRepository,
		c.AiAppRepository,
		c.AdRepository,
		c.AIClient,
		c.WSManager,
		c.Config.Generation,
	)
	c.AiAppService = serviceimpl.NewAiAppService(c.AiAppRepository, c.AIClient)
	c.AdService = serviceimpl.NewAdService(c.AdRepository)

	logger.Startup("services_initialized", "Services initialized", nil)
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()
	c.EventScheduler.Start()
	logger.Startup("scheduler_started", "Event scheduler started", nil)

	// Sweep job that returns stuck generating-state blocks to pending
	sweepCron := c.Config.Generation.SweepCron
	if err := scheduler.ValidateCronExpression(sweepCron); err != nil {
		logger.StartupWarn("sweep_cron_invalid", "Invalid sweep cron expression, sweep disabled", map[string]interface{}{
			"cron":  sweepCron,
			"error": err.Error(),
		})
		return nil
	}

	err := c.EventScheduler.AddJob("stuck-block-sweep", sweepCron, func() {
		reset, err := c.IssueSelectionService.ResetStuckBlocks(context.Background())
		if err != nil {
			logger.SchedulerError("stuck_block_sweep", "Stuck block sweep failed", err, nil)
			return
		}
		if reset > 0 {
			logger.Scheduler("stuck_block_sweep", "Reset stuck generating blocks", map[string]interface{}{"count": reset})
		}
	})
	if err != nil {
		logger.StartupWarn("sweep_schedule_failed", "Failed to schedule stuck block sweep", map[string]interface{}{"error": err.Error()})
		return nil
	}

	logger.Startup("sweep_scheduled", "Stuck block sweep scheduled", map[string]interface{}{"cron": sweepCron})
	return nil
}

// GetHandlerServices bundles the services the HTTP layer needs
func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		AuthService:       c.AuthService,
		ModuleCatalog:     c.ModuleCatalogService,
		IssueSelection:    c.IssueSelectionService,
		ContentGeneration: c.ContentGenerationService,
		AiAppService:      c.AiAppService,
		AdService:         c.AdService,
	}
}

// GetInfrastructure bundles the pieces the health handler probes directly
func (c *Container) GetInfrastructure() *handlers.Infrastructure {
	return &handlers.Infrastructure{
		DB:          c.DB,
		RedisClient: c.RedisClient,
		Scheduler:   c.EventScheduler,
	}
}

// GetConfig returns the loaded configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
		logger.Startup("scheduler_stopped", "Event scheduler stopped", nil)
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.StartupWarn("redis_close_failed", "Failed to close Redis connection", map[string]interface{}{"error": err.Error()})
		} else {
			logger.Startup("redis_closed", "Redis connection closed", nil)
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Close(); err != nil {
			return err
		}
		logger.Startup("db_closed", "Database connection closed", nil)
	}

	return nil
}
