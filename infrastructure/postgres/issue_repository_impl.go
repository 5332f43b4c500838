package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

type IssueRepositoryImpl struct {
	db *gorm.DB
}

func NewIssueRepository(db *gorm.DB) repositories.IssueRepository {
	return &IssueRepositoryImpl{db: db}
}

func (r *IssueRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).
		Preload("Publication").
		First(&issue, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepositoryImpl) GetLatestSentByPublication(ctx context.Context, publicationID uuid.UUID) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).
		Preload("Publication").
		Where("publication_id = ? AND status = ?", publicationID, models.IssueStatusSent).
		Order("sent_at DESC NULLS LAST").
		First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *IssueRepositoryImpl) GetArticles(ctx context.Context, issueID uuid.UUID) ([]models.IssueArticle, error) {
	var articles []models.IssueArticle
	err := r.db.WithContext(ctx).
		Where("issue_id = ? AND is_active = ?", issueID, true).
		Order("rank ASC").
		Find(&articles).Error
	return articles, err
}

func (r *IssueRepositoryImpl) GetPollByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).First(&poll, "id = ?", pollID).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *IssueRepositoryImpl) GetAppSelections(ctx context.Context, issueID uuid.UUID) ([]models.IssueAppSelection, error) {
	var selections []models.IssueAppSelection
	err := r.db.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("module_id ASC, position ASC").
		Find(&selections).Error
	return selections, err
}
