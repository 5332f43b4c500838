package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

type IssueModuleRepositoryImpl struct {
	db *gorm.DB
}

func NewIssueModuleRepository(db *gorm.DB) repositories.IssueModuleRepository {
	return &IssueModuleRepositoryImpl{db: db}
}

func (r *IssueModuleRepositoryImpl) CountModulesByIssue(ctx context.Context, issueID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.IssueModule{}).
		Where("issue_id = ?", issueID).
		Count(&count).Error
	return count, err
}

func (r *IssueModuleRepositoryImpl) CreateModules(ctx context.Context, issueModules []*models.IssueModule) error {
	if len(issueModules) == 0 {
		return nil
	}
	for _, im := range issueModules {
		if im.ID == uuid.Nil {
			im.ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(issueModules).Error
}

func (r *IssueModuleRepositoryImpl) CreateBlocks(ctx context.Context, issueBlocks []*models.IssueBlock) error {
	if len(issueBlocks) == 0 {
		return nil
	}
	for _, ib := range issueBlocks {
		if ib.ID == uuid.Nil {
			ib.ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).Create(issueBlocks).Error
}

func (r *IssueModuleRepositoryImpl) GetModulesByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueModule, error) {
	var issueModules []models.IssueModule
	err := r.db.WithContext(ctx).
		Preload("Module").
		Preload("Module.Blocks", orderedBlocks).
		Joins("JOIN newsletter_modules ON newsletter_modules.id = issue_modules.module_id").
		Where("issue_modules.issue_id = ?", issueID).
		Order("newsletter_modules.display_order ASC").
		Find(&issueModules).Error
	return issueModules, err
}

func (r *IssueModuleRepositoryImpl) GetBlocksByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error) {
	var blocks []models.IssueBlock
	err := r.db.WithContext(ctx).
		Preload("Block").
		Where("issue_id = ?", issueID).
		Find(&blocks).Error
	return blocks, err
}

func (r *IssueModuleRepositoryImpl) GetBlockByID(ctx context.Context, issueBlockID uuid.UUID) (*models.IssueBlock, error) {
	var block models.IssueBlock
	err := r.db.WithContext(ctx).
		Preload("Block").
		First(&block, "id = ?", issueBlockID).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *IssueModuleRepositoryImpl) GetBlockByIssueAndBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error) {
	var block models.IssueBlock
	err := r.db.WithContext(ctx).
		Preload("Block").
		First(&block, "issue_id = ? AND block_id = ?", issueID, blockID).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *IssueModuleRepositoryImpl) GetPendingTextBlocks(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) ([]models.IssueBlock, error) {
	var blocks []models.IssueBlock
	err := r.db.WithContext(ctx).
		Preload("Block").
		Joins("JOIN module_blocks ON module_blocks.id = issue_blocks.block_id").
		Where("issue_blocks.issue_id = ? AND issue_blocks.generation_status = ?", issueID, models.StatusPending).
		Where("module_blocks.block_type = ? AND module_blocks.generation_timing = ?", models.BlockTypeAIPrompt, timing).
		Order("module_blocks.display_order ASC").
		Find(&blocks).Error
	return blocks, err
}

func (r *IssueModuleRepositoryImpl) GetPendingImageBlocks(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error) {
	var blocks []models.IssueBlock
	err := r.db.WithContext(ctx).
		Preload("Block").
		Joins("JOIN module_blocks ON module_blocks.id = issue_blocks.block_id").
		Where("issue_blocks.issue_id = ? AND issue_blocks.generation_status = ?", issueID, models.StatusPending).
		Where("module_blocks.block_type = ? AND module_blocks.image_type = ?", models.BlockTypeImage, models.ImageTypeAIGenerated).
		Order("module_blocks.display_order ASC").
		Find(&blocks).Error
	return blocks, err
}

// UpdateBlockGeneration writes status and content in one UPDATE so the row
// can never hold a status inconsistent with its content. generated_at is set
// iff the new status is completed.
func (r *IssueModuleRepositoryImpl) UpdateBlockGeneration(ctx context.Context, issueBlockID uuid.UUID, update repositories.IssueBlockUpdate) error {
	fields := map[string]interface{}{
		"generation_status": update.GenerationStatus,
	}
	if update.GeneratedContent != nil {
		fields["generated_content"] = *update.GeneratedContent
	}
	if update.GeneratedImageURL != nil {
		fields["generated_image_url"] = *update.GeneratedImageURL
	}
	if update.GenerationError != nil {
		fields["generation_error"] = *update.GenerationError
	}
	if update.GenerationStatus == models.StatusCompleted {
		fields["generated_at"] = time.Now()
	} else {
		fields["generated_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.IssueBlock{}).
		Where("id = ?", issueBlockID).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *IssueModuleRepositoryImpl) SetBlockOverride(ctx context.Context, issueBlockID uuid.UUID, content, imageURL *string, status models.GenerationStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.IssueBlock{}).
		Where("id = ?", issueBlockID).
		Updates(map[string]interface{}{
			"override_content":   content,
			"override_image_url": imageURL,
			"generation_status":  status,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkModulesUsed only touches rows where used_at is still null, so repeated
// calls are no-ops.
func (r *IssueModuleRepositoryImpl) MarkModulesUsed(ctx context.Context, issueID uuid.UUID, usedAt time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.IssueModule{}).
		Where("issue_id = ? AND used_at IS NULL", issueID).
		Update("used_at", usedAt)
	return result.RowsAffected, result.Error
}

func (r *IssueModuleRepositoryImpl) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("issue_id = ?", issueID).Delete(&models.IssueBlock{}).Error; err != nil {
			return err
		}
		return tx.Where("issue_id = ?", issueID).Delete(&models.IssueModule{}).Error
	})
}

// ResetStuckGenerating returns blocks abandoned mid-generation (e.g. by a
// crashed process) to pending so the next pass picks them up.
func (r *IssueModuleRepositoryImpl) ResetStuckGenerating(ctx context.Context, olderThan time.Duration) (int64, error) {
	threshold := time.Now().Add(-olderThan)
	result := r.db.WithContext(ctx).
		Model(&models.IssueBlock{}).
		Where("generation_status = ? AND updated_at < ?", models.StatusGenerating, threshold).
		Updates(map[string]interface{}{
			"generation_status": models.StatusPending,
			"generation_error":  "",
		})
	return result.RowsAffected, result.Error
}
