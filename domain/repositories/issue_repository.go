package repositories

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

type IssueRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error)
	GetLatestSentByPublication(ctx context.Context, publicationID uuid.UUID) (*models.Issue, error)
	GetArticles(ctx context.Context, issueID uuid.UUID) ([]models.IssueArticle, error)
	GetPollByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error)
	GetAppSelections(ctx context.Context, issueID uuid.UUID) ([]models.IssueAppSelection, error)
}
