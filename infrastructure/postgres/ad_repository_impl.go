package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

type AdRepositoryImpl struct {
	db *gorm.DB
}

func NewAdRepository(db *gorm.DB) repositories.AdRepository {
	return &AdRepositoryImpl{db: db}
}

func (r *AdRepositoryImpl) Create(ctx context.Context, ad *models.Advertisement) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(ad).Error
}

func (r *AdRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	var ad models.Advertisement
	err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *AdRepositoryImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Advertisement, int64, error) {
	var ads []models.Advertisement
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Advertisement{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("rotation_position ASC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&ads).Error

	return ads, total, err
}

func (r *AdRepositoryImpl) Update(ctx context.Context, ad *models.Advertisement) error {
	return r.db.WithContext(ctx).Save(ad).Error
}

func (r *AdRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Advertisement{}, "id = ?", id).Error
}

func (r *AdRepositoryImpl) GetSlotsByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueAdSlot, error) {
	var slots []models.IssueAdSlot
	err := r.db.WithContext(ctx).
		Preload("Ad").
		Where("issue_id = ?", issueID).
		Order("position ASC").
		Find(&slots).Error
	return slots, err
}

func (r *AdRepositoryImpl) CreateSlot(ctx context.Context, slot *models.IssueAdSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *AdRepositoryImpl) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.IssueAdSlot{}, "id = ?", slotID).Error
}

func (r *AdRepositoryImpl) ReorderSlots(ctx context.Context, issueID uuid.UUID, orderedSlotIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedSlotIDs {
			if err := tx.Model(&models.IssueAdSlot{}).
				Where("id = ? AND issue_id = ?", id, issueID).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
