package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

type ModuleRepositoryImpl struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) repositories.ModuleRepository {
	return &ModuleRepositoryImpl{db: db}
}

func orderedBlocks(db *gorm.DB) *gorm.DB {
	return db.Order("module_blocks.display_order ASC")
}

func (r *ModuleRepositoryImpl) Create(ctx context.Context, module *models.NewsletterModule) error {
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *ModuleRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.NewsletterModule, error) {
	var module models.NewsletterModule
	err := r.db.WithContext(ctx).
		Preload("Blocks", orderedBlocks).
		First(&module, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepositoryImpl) GetActiveByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error) {
	var modules []models.NewsletterModule
	err := r.db.WithContext(ctx).
		Preload("Blocks", orderedBlocks).
		Where("publication_id = ? AND is_active = ?", publicationID, true).
		Order("display_order ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepositoryImpl) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error) {
	var modules []models.NewsletterModule
	err := r.db.WithContext(ctx).
		Preload("Blocks", orderedBlocks).
		Where("publication_id = ?", publicationID).
		Order("display_order ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepositoryImpl) Update(ctx context.Context, module *models.NewsletterModule) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *ModuleRepositoryImpl) UpdateDisplayOrders(ctx context.Context, publicationID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&models.NewsletterModule{}).
				Where("id = ? AND publication_id = ?", id, publicationID).
				Update("display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ModuleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("module_id = ?", id).Delete(&models.ModuleBlock{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.NewsletterModule{}, "id = ?", id).Error
	})
}

func (r *ModuleRepositoryImpl) CreateBlock(ctx context.Context, block *models.ModuleBlock) error {
	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *ModuleRepositoryImpl) GetBlockByID(ctx context.Context, id uuid.UUID) (*models.ModuleBlock, error) {
	var block models.ModuleBlock
	err := r.db.WithContext(ctx).First(&block, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *ModuleRepositoryImpl) UpdateBlock(ctx context.Context, block *models.ModuleBlock) error {
	return r.db.WithContext(ctx).Save(block).Error
}

func (r *ModuleRepositoryImpl) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ModuleBlock{}, "id = ?", id).Error
}
