package services

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

type AdRequest struct {
	Title            string `json:"title" validate:"required"`
	Body             string `json:"body"`
	LinkURL          string `json:"link_url" validate:"omitempty,url"`
	AdvertiserName   string `json:"advertiser_name"`
	RotationPosition int    `json:"rotation_position"`
	IsActive         *bool  `json:"is_active"`
}

type AdService interface {
	Create(ctx context.Context, req *AdRequest) (*models.Advertisement, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Advertisement, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *AdRequest) (*models.Advertisement, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetSlotsByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueAdSlot, error)
	AddSlot(ctx context.Context, issueID, adID uuid.UUID, position int) (*models.IssueAdSlot, error)
	RemoveSlot(ctx context.Context, slotID uuid.UUID) error
	ReorderSlots(ctx context.Context, issueID uuid.UUID, orderedSlotIDs []uuid.UUID) error
}
