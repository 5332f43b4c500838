package services

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

type AiAppRequest struct {
	Name        string `json:"name" validate:"required"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	IsActive    *bool  `json:"is_active"`
}

// AiAppService administers the AI-tool directory. Embeddings are computed
// best-effort on create/update; an embedding failure never fails the save.
type AiAppService interface {
	Create(ctx context.Context, req *AiAppRequest) (*models.AiApp, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.AiApp, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.AiApp, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *AiAppRequest) (*models.AiApp, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]models.AiApp, error)
}
