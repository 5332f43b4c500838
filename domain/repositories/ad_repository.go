package repositories

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

type AdRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Advertisement, int64, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Per-issue slots
	GetSlotsByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueAdSlot, error)
	CreateSlot(ctx context.Context, slot *models.IssueAdSlot) error
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error
	ReorderSlots(ctx context.Context, issueID uuid.UUID, orderedSlotIDs []uuid.UUID) error
}
