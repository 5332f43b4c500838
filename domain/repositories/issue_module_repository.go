package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

// IssueBlockUpdate is the whole-row generation outcome written through the
// single update path. GeneratedAt is derived from the status inside the
// repository so content and status can never disagree.
type IssueBlockUpdate struct {
	GenerationStatus  models.GenerationStatus
	GeneratedContent  *string
	GeneratedImageURL *string
	GenerationError   *string
}

type IssueModuleRepository interface {
	// Initialization
	CountModulesByIssue(ctx context.Context, issueID uuid.UUID) (int64, error)
	CreateModules(ctx context.Context, issueModules []*models.IssueModule) error
	CreateBlocks(ctx context.Context, issueBlocks []*models.IssueBlock) error

	// Reads
	GetModulesByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueModule, error)
	GetBlocksByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error)
	GetBlockByID(ctx context.Context, issueBlockID uuid.UUID) (*models.IssueBlock, error)
	GetBlockByIssueAndBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error)
	GetPendingTextBlocks(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) ([]models.IssueBlock, error)
	GetPendingImageBlocks(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error)

	// Writes
	UpdateBlockGeneration(ctx context.Context, issueBlockID uuid.UUID, update IssueBlockUpdate) error
	SetBlockOverride(ctx context.Context, issueBlockID uuid.UUID, content, imageURL *string, status models.GenerationStatus) error
	MarkModulesUsed(ctx context.Context, issueID uuid.UUID, usedAt time.Time) (int64, error)
	DeleteByIssue(ctx context.Context, issueID uuid.UUID) error

	// Maintenance
	ResetStuckGenerating(ctx context.Context, olderThan time.Duration) (int64, error)
}
