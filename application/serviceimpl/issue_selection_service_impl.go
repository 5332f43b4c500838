package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/pkg/logger"
)

type IssueSelectionServiceImpl struct {
	catalog        services.ModuleCatalogService
	issueModules   repositories.IssueModuleRepository
	stuckThreshold time.Duration
}

func NewIssueSelectionService(
	catalog services.ModuleCatalogService,
	issueModules repositories.IssueModuleRepository,
	stuckThreshold time.Duration,
) services.IssueSelectionService {
	return &IssueSelectionServiceImpl{
		catalog:        catalog,
		issueModules:   issueModules,
		stuckThreshold: stuckThreshold,
	}
}

// InitializeForIssue snapshots the active module catalog into per-issue rows.
// Idempotent: if any issue-module rows already exist the call reports zero
// new rows and leaves existing state untouched.
func (s *IssueSelectionServiceImpl) InitializeForIssue(ctx context.Context, issueID, publicationID uuid.UUID) (*services.InitializeResult, error) {
	existing, err := s.issueModules.CountModulesByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing selections: %w", err)
	}
	if existing > 0 {
		logger.Generation("initialize_skipped", "Issue already initialized", map[string]interface{}{
			"issue_id": issueID.String(),
			"existing": existing,
		})
		return &services.InitializeResult{}, nil
	}

	modules := s.catalog.GetActiveModules(ctx, publicationID)

	var issueModules []*models.IssueModule
	var issueBlocks []*models.IssueBlock

	for _, module := range modules {
		issueModule := &models.IssueModule{
			ID:       uuid.New(),
			IssueID:  issueID,
			ModuleID: module.ID,
		}
		issueModules = append(issueModules, issueModule)

		for _, block := range module.Blocks {
			issueBlocks = append(issueBlocks, newIssueBlock(issueID, issueModule.ID, block))
		}
	}

	if err := s.issueModules.CreateModules(ctx, issueModules); err != nil {
		return nil, fmt.Errorf("failed to create issue modules: %w", err)
	}
	if err := s.issueModules.CreateBlocks(ctx, issueBlocks); err != nil {
		return nil, fmt.Errorf("failed to create issue blocks: %w", err)
	}

	logger.Generation("initialize_done", "Issue selections initialized", map[string]interface{}{
		"issue_id": issueID.String(),
		"modules":  len(issueModules),
		"blocks":   len(issueBlocks),
	})

	return &services.InitializeResult{
		ModulesCreated: len(issueModules),
		BlocksCreated:  len(issueBlocks),
	}, nil
}

// newIssueBlock pre-computes the initial state: static content is completed
// immediately, everything that generates starts pending.
func newIssueBlock(issueID, issueModuleID uuid.UUID, block models.ModuleBlock) *models.IssueBlock {
	ib := &models.IssueBlock{
		ID:               uuid.New(),
		IssueID:          issueID,
		IssueModuleID:    issueModuleID,
		BlockID:          block.ID,
		GenerationStatus: models.StatusPending,
	}

	switch block.BlockType {
	case models.BlockTypeStaticText:
		now := time.Now()
		ib.GenerationStatus = models.StatusCompleted
		ib.GeneratedContent = block.StaticContent
		ib.GeneratedAt = &now
	case models.BlockTypeImage:
		if block.ImageType != models.ImageTypeAIGenerated {
			now := time.Now()
			ib.GenerationStatus = models.StatusCompleted
			ib.GeneratedImageURL = block.ImageURL
			ib.GeneratedAt = &now
		}
	}

	return ib
}

func (s *IssueSelectionServiceImpl) GetIssueSelections(ctx context.Context, issueID uuid.UUID) ([]services.ModuleSelection, error) {
	issueModules, err := s.issueModules.GetModulesByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load issue modules: %w", err)
	}

	issueBlocks, err := s.issueModules.GetBlocksByIssue(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("failed to load issue blocks: %w", err)
	}

	stateByBlock := make(map[uuid.UUID]models.IssueBlock, len(issueBlocks))
	for _, ib := range issueBlocks {
		stateByBlock[ib.BlockID] = ib
	}

	selections := make([]services.ModuleSelection, 0, len(issueModules))
	for _, im := range issueModules {
		selection := services.ModuleSelection{
			IssueModule: im,
			Module:      im.Module,
		}
		for _, block := range im.Module.Blocks {
			state, ok := stateByBlock[block.ID]
			if !ok {
				// Block added to the catalog after initialization; no per-issue row
				continue
			}
			selection.Blocks = append(selection.Blocks, services.BlockSelection{
				Block: block,
				State: state,
			})
		}
		selections = append(selections, selection)
	}

	return selections, nil
}

func (s *IssueSelectionServiceImpl) GetIssueBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error) {
	return s.issueModules.GetBlockByIssueAndBlock(ctx, issueID, blockID)
}

func (s *IssueSelectionServiceImpl) GetBlocksForTiming(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) ([]models.IssueBlock, error) {
	return s.issueModules.GetPendingTextBlocks(ctx, issueID, timing)
}

func (s *IssueSelectionServiceImpl) GetImageBlocksForGeneration(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error) {
	return s.issueModules.GetPendingImageBlocks(ctx, issueID)
}

// UpdateIssueBlock is the sole write path for generation outcomes. The
// transition table is enforced here, centrally, and override fields are
// never touched.
func (s *IssueSelectionServiceImpl) UpdateIssueBlock(ctx context.Context, issueBlockID uuid.UUID, update repositories.IssueBlockUpdate) error {
	current, err := s.issueModules.GetBlockByID(ctx, issueBlockID)
	if err != nil {
		return fmt.Errorf("issue block not found: %w", err)
	}

	if !current.GenerationStatus.CanTransitionTo(update.GenerationStatus) {
		return fmt.Errorf("invalid status transition %s -> %s", current.GenerationStatus, update.GenerationStatus)
	}

	if err := s.issueModules.UpdateBlockGeneration(ctx, issueBlockID, update); err != nil {
		return fmt.Errorf("failed to update issue block: %w", err)
	}

	return nil
}

// SetOverrideContent forces manual status while an override is present and
// falls back to completed (not pending) when the override is cleared.
func (s *IssueSelectionServiceImpl) SetOverrideContent(ctx context.Context, issueID, blockID uuid.UUID, overrideContent, overrideImageURL *string) (*models.IssueBlock, error) {
	block, err := s.issueModules.GetBlockByIssueAndBlock(ctx, issueID, blockID)
	if err != nil {
		return nil, fmt.Errorf("issue block not found: %w", err)
	}

	status := models.StatusManual
	if overrideContent == nil && overrideImageURL == nil {
		status = models.StatusCompleted
	}

	if err := s.issueModules.SetBlockOverride(ctx, block.ID, overrideContent, overrideImageURL, status); err != nil {
		return nil, fmt.Errorf("failed to set override: %w", err)
	}

	return s.issueModules.GetBlockByID(ctx, block.ID)
}

func (s *IssueSelectionServiceImpl) RecordUsage(ctx context.Context, issueID uuid.UUID) (int64, error) {
	touched, err := s.issueModules.MarkModulesUsed(ctx, issueID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to record usage: %w", err)
	}

	logger.Generation("usage_recorded", "Issue module usage recorded", map[string]interface{}{
		"issue_id": issueID.String(),
		"touched":  touched,
	})

	return touched, nil
}

func (s *IssueSelectionServiceImpl) ClearIssueData(ctx context.Context, issueID uuid.UUID) error {
	if err := s.issueModules.DeleteByIssue(ctx, issueID); err != nil {
		return fmt.Errorf("failed to clear issue data: %w", err)
	}
	return nil
}

func (s *IssueSelectionServiceImpl) ResetStuckBlocks(ctx context.Context) (int64, error) {
	reset, err := s.issueModules.ResetStuckGenerating(ctx, s.stuckThreshold)
	if err != nil {
		return 0, fmt.Errorf("failed to reset stuck blocks: %w", err)
	}
	if reset > 0 {
		logger.Generation("stuck_blocks_reset", "Stuck generating blocks returned to pending", map[string]interface{}{
			"count": reset,
		})
	}
	return reset, nil
}
