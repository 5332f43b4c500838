package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

type AiAppRepositoryImpl struct {
	db *gorm.DB
}

func NewAiAppRepository(db *gorm.DB) repositories.AiAppRepository {
	return &AiAppRepositoryImpl{db: db}
}

func (r *AiAppRepositoryImpl) Create(ctx context.Context, app *models.AiApp) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *AiAppRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.AiApp, error) {
	var app models.AiApp
	err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *AiAppRepositoryImpl) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AiApp, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var apps []models.AiApp
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&apps).Error
	return apps, err
}

func (r *AiAppRepositoryImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.AiApp, int64, error) {
	var apps []models.AiApp
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AiApp{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&apps).Error

	return apps, total, err
}

func (r *AiAppRepositoryImpl) Update(ctx context.Context, app *models.AiApp) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *AiAppRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding pgvector.Vector) error {
	return r.db.WithContext(ctx).
		Model(&models.AiApp{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

// FindSimilar does a cosine-distance nearest-neighbour lookup against the
// stored embeddings, excluding the app itself and rows with no embedding.
func (r *AiAppRepositoryImpl) FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]models.AiApp, error) {
	var apps []models.AiApp
	err := r.db.WithContext(ctx).Raw(`
		SELECT a.* FROM ai_apps a, ai_apps target
		WHERE target.id = ?
		  AND a.id <> target.id
		  AND a.is_active = true
		  AND a.embedding IS NOT NULL
		  AND target.embedding IS NOT NULL
		ORDER BY a.embedding <=> target.embedding
		LIMIT ?`, id, limit).Scan(&apps).Error
	return apps, err
}

func (r *AiAppRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.AiApp{}, "id = ?", id).Error
}
