package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"newsletter-backend/domain/models"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// pgvector for AI-tool directory embeddings
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to enable pgvector extension: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Publication{},
		&models.Issue{},
		&models.IssueArticle{},
		&models.Poll{},
		&models.AiApp{},
		&models.IssueAppSelection{},
		&models.Advertisement{},
		&models.IssueAdSlot{},

		// Module catalog and per-issue snapshots (order matters for FKs)
		&models.NewsletterModule{},
		&models.ModuleBlock{},
		&models.IssueModule{},
		&models.IssueBlock{},
	); err != nil {
		return fmt.Errorf("failed to run auto migrations: %v", err)
	}

	// One snapshot row per issue/block pair
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_issue_blocks_issue_block ON issue_blocks(issue_id, block_id)`,
	).Error; err != nil {
		return fmt.Errorf("failed to create issue_blocks unique index: %v", err)
	}
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_issue_modules_issue_module ON issue_modules(issue_id, module_id)`,
	).Error; err != nil {
		return fmt.Errorf("failed to create issue_modules unique index: %v", err)
	}

	return nil
}
