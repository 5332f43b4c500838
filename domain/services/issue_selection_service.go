package services

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

// InitializeResult reports how many snapshot rows an initialization created.
// A repeated initialization reports zeros.
type InitializeResult struct {
	ModulesCreated int `json:"modules_created"`
	BlocksCreated  int `json:"blocks_created"`
}

// BlockSelection pairs a catalog block with its per-issue state
type BlockSelection struct {
	Block models.ModuleBlock `json:"block"`
	State models.IssueBlock  `json:"state"`
}

// ModuleSelection is one issue module with its ordered block selections
type ModuleSelection struct {
	IssueModule models.IssueModule      `json:"issue_module"`
	Module      models.NewsletterModule `json:"module"`
	Blocks      []BlockSelection        `json:"blocks"`
}

// IssueSelectionService materializes and maintains the per-issue snapshot of
// modules and blocks, and owns every write to issue-block generation state.
type IssueSelectionService interface {
	InitializeForIssue(ctx context.Context, issueID, publicationID uuid.UUID) (*InitializeResult, error)
	GetIssueSelections(ctx context.Context, issueID uuid.UUID) ([]ModuleSelection, error)

	GetIssueBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error)
	GetBlocksForTiming(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) ([]models.IssueBlock, error)
	GetImageBlocksForGeneration(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error)

	UpdateIssueBlock(ctx context.Context, issueBlockID uuid.UUID, update repositories.IssueBlockUpdate) error
	SetOverrideContent(ctx context.Context, issueID, blockID uuid.UUID, overrideContent, overrideImageURL *string) (*models.IssueBlock, error)

	RecordUsage(ctx context.Context, issueID uuid.UUID) (int64, error)
	ClearIssueData(ctx context.Context, issueID uuid.UUID) error

	// ResetStuckBlocks returns generating-state blocks older than the
	// configured threshold to pending. Run by the scheduler.
	ResetStuckBlocks(ctx context.Context) (int64, error)
}
