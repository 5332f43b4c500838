package serviceimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/aiclient"
	"newsletter-backend/pkg/logger"
)

type AiAppServiceImpl struct {
	appRepo repositories.AiAppRepository
	ai      aiclient.Invoker // optional; nil disables embeddings
}

func NewAiAppService(appRepo repositories.AiAppRepository, ai aiclient.Invoker) services.AiAppService {
	return &AiAppServiceImpl{
		appRepo: appRepo,
		ai:      ai,
	}
}

func (s *AiAppServiceImpl) Create(ctx context.Context, req *services.AiAppRequest) (*models.AiApp, error) {
	app := &models.AiApp{
		Name:        req.Name,
		Tagline:     req.Tagline,
		Description: req.Description,
		WebsiteURL:  req.WebsiteURL,
		LogoURL:     req.LogoURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		app.IsActive = *req.IsActive
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create app: %w", err)
	}

	s.refreshEmbedding(ctx, app)
	return app, nil
}

func (s *AiAppServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.AiApp, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("app not found: %w", err)
	}
	return app, nil
}

func (s *AiAppServiceImpl) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.AiApp, int64, error) {
	return s.appRepo.List(ctx, offset, limit, activeOnly)
}

func (s *AiAppServiceImpl) Update(ctx context.Context, id uuid.UUID, req *services.AiAppRequest) (*models.AiApp, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("app not found: %w", err)
	}

	reembed := app.Name != req.Name || app.Tagline != req.Tagline || app.Description != req.Description

	app.Name = req.Name
	app.Tagline = req.Tagline
	app.Description = req.Description
	app.WebsiteURL = req.WebsiteURL
	app.LogoURL = req.LogoURL
	if req.IsActive != nil {
		app.IsActive = *req.IsActive
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to update app: %w", err)
	}

	if reembed {
		s.refreshEmbedding(ctx, app)
	}
	return app, nil
}

func (s *AiAppServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.appRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("app not found: %w", err)
	}
	return s.appRepo.Delete(ctx, id)
}

func (s *AiAppServiceImpl) FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]models.AiApp, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.appRepo.FindSimilar(ctx, id, limit)
}

// refreshEmbedding recomputes the similarity embedding best-effort. Failures
// only log; directory entries stay usable without an embedding.
func (s *AiAppServiceImpl) refreshEmbedding(ctx context.Context, app *models.AiApp) {
	if s.ai == nil {
		return
	}

	text := strings.TrimSpace(strings.Join([]string{app.Name, app.Tagline, app.Description}, "\n"))
	if text == "" {
		return
	}

	values, err := s.ai.EmbedText(ctx, text)
	if err != nil {
		logger.GenerationError("app_embedding", "Failed to embed app", err, map[string]interface{}{
			"app_id": app.ID.String(),
		})
		return
	}

	if err := s.appRepo.UpdateEmbedding(ctx, app.ID, pgvector.NewVector(values)); err != nil {
		logger.DBError("app_embedding", "Failed to store app embedding", err, map[string]interface{}{
			"app_id": app.ID.String(),
		})
	}
}
