package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"newsletter-backend/domain/models"
)

type AiAppRepository interface {
	Create(ctx context.Context, app *models.AiApp) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AiApp, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AiApp, error)
	List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.AiApp, int64, error)
	Update(ctx context.Context, app *models.AiApp) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding pgvector.Vector) error
	FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]models.AiApp, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
