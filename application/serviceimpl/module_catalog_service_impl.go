package serviceimpl

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/redis"
	"newsletter-backend/pkg/logger"
)

type ModuleCatalogServiceImpl struct {
	moduleRepo repositories.ModuleRepository
	cache      *redis.CatalogCache // optional
}

func NewModuleCatalogService(moduleRepo repositories.ModuleRepository, cache *redis.CatalogCache) services.ModuleCatalogService {
	return &ModuleCatalogServiceImpl{
		moduleRepo: moduleRepo,
		cache:      cache,
	}
}

// GetActiveModules returns the ordered active-module catalog for a
// publication. Fails soft: a data-access error is logged and surfaces as an
// empty catalog, because "no modules configured" is a normal state for the
// issue pipeline.
func (s *ModuleCatalogServiceImpl) GetActiveModules(ctx context.Context, publicationID uuid.UUID) []models.NewsletterModule {
	if s.cache != nil {
		if modules, ok := s.cache.Get(ctx, publicationID); ok {
			return modules
		}
	}

	modules, err := s.moduleRepo.GetActiveByPublication(ctx, publicationID)
	if err != nil {
		logger.DBError("catalog_load_failed", "Failed to load active modules", err, map[string]interface{}{
			"publication_id": publicationID.String(),
		})
		return []models.NewsletterModule{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, publicationID, modules)
	}

	return modules
}

func (s *ModuleCatalogServiceImpl) GetModule(ctx context.Context, moduleID uuid.UUID) (*models.NewsletterModule, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("module not found: %w", err)
	}
	return module, nil
}

func (s *ModuleCatalogServiceImpl) CreateModule(ctx context.Context, req *services.CreateModuleRequest) (*models.NewsletterModule, error) {
	module := &models.NewsletterModule{
		PublicationID: req.PublicationID,
		Name:          req.Name,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module: %w", err)
	}

	s.invalidate(ctx, module.PublicationID)
	return module, nil
}

func (s *ModuleCatalogServiceImpl) UpdateModule(ctx context.Context, moduleID uuid.UUID, req *services.UpdateModuleRequest) (*models.NewsletterModule, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("module not found: %w", err)
	}

	if req.Name != nil {
		module.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		module.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}

	s.invalidate(ctx, module.PublicationID)
	return module, nil
}

func (s *ModuleCatalogServiceImpl) ReorderModules(ctx context.Context, publicationID uuid.UUID, orderedIDs []uuid.UUID) error {
	if err := s.moduleRepo.UpdateDisplayOrders(ctx, publicationID, orderedIDs); err != nil {
		return fmt.Errorf("failed to reorder modules: %w", err)
	}
	s.invalidate(ctx, publicationID)
	return nil
}

func (s *ModuleCatalogServiceImpl) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("module not found: %w", err)
	}

	if err := s.moduleRepo.Delete(ctx, moduleID); err != nil {
		return fmt.Errorf("failed to delete module: %w", err)
	}

	s.invalidate(ctx, module.PublicationID)
	return nil
}

func (s *ModuleCatalogServiceImpl) CreateBlock(ctx context.Context, moduleID uuid.UUID, req *services.BlockRequest) (*models.ModuleBlock, []string, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, nil, fmt.Errorf("module not found: %w", err)
	}

	block := blockFromRequest(req)
	block.ModuleID = moduleID

	warnings := validateBlockConfig(block)

	if err := s.moduleRepo.CreateBlock(ctx, block); err != nil {
		return nil, nil, fmt.Errorf("failed to create block: %w", err)
	}

	s.invalidate(ctx, module.PublicationID)
	return block, warnings, nil
}

func (s *ModuleCatalogServiceImpl) UpdateBlock(ctx context.Context, blockID uuid.UUID, req *services.BlockRequest) (*models.ModuleBlock, []string, error) {
	block, err := s.moduleRepo.GetBlockByID(ctx, blockID)
	if err != nil {
		return nil, nil, fmt.Errorf("block not found: %w", err)
	}

	updated := blockFromRequest(req)
	updated.ID = block.ID
	updated.ModuleID = block.ModuleID
	updated.CreatedAt = block.CreatedAt

	warnings := validateBlockConfig(updated)

	if err := s.moduleRepo.UpdateBlock(ctx, updated); err != nil {
		return nil, nil, fmt.Errorf("failed to update block: %w", err)
	}

	module, err := s.moduleRepo.GetByID(ctx, block.ModuleID)
	if err == nil {
		s.invalidate(ctx, module.PublicationID)
	}

	return updated, warnings, nil
}

func (s *ModuleCatalogServiceImpl) DeleteBlock(ctx context.Context, blockID uuid.UUID) error {
	block, err := s.moduleRepo.GetBlockByID(ctx, blockID)
	if err != nil {
		return fmt.Errorf("block not found: %w", err)
	}

	if err := s.moduleRepo.DeleteBlock(ctx, blockID); err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}

	if module, err := s.moduleRepo.GetByID(ctx, block.ModuleID); err == nil {
		s.invalidate(ctx, module.PublicationID)
	}

	return nil
}

func (s *ModuleCatalogServiceImpl) invalidate(ctx context.Context, publicationID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, publicationID)
	}
}

func blockFromRequest(req *services.BlockRequest) *models.ModuleBlock {
	return &models.ModuleBlock{
		DisplayOrder:     req.DisplayOrder,
		BlockType:        models.BlockType(req.BlockType),
		StaticContent:    req.StaticContent,
		Prompt:           req.Prompt,
		Model:            req.Model,
		Provider:         req.Provider,
		Temperature:      req.Temperature,
		MaxTokens:        req.MaxTokens,
		SystemPrompt:     req.SystemPrompt,
		GenerationTiming: models.GenerationTiming(req.GenerationTiming),
		ImageType:        models.ImageType(req.ImageType),
		ImageURL:         req.ImageURL,
		AIImagePrompt:    req.AIImagePrompt,
	}
}

// validateBlockConfig surfaces incomplete prompt configuration at save time
// instead of leaving it to runtime fallbacks.
func validateBlockConfig(block *models.ModuleBlock) []string {
	var warnings []string

	switch block.BlockType {
	case models.BlockTypeAIPrompt:
		if block.Prompt == "" {
			warnings = append(warnings, "ai_prompt block has no prompt text; generation will fail")
		}
		if block.GenerationTiming == "" {
			warnings = append(warnings, "ai_prompt block has no generation_timing; regeneration will fall back to after_articles")
		}
	case models.BlockTypeImage:
		if block.ImageType == models.ImageTypeAIGenerated && block.AIImagePrompt == "" {
			warnings = append(warnings, "ai_generated image block has no image prompt; generation will fail")
		}
		if block.ImageType == models.ImageTypeStatic && block.ImageURL == "" {
			warnings = append(warnings, "static image block has no image URL")
		}
	case models.BlockTypeStaticText:
		if block.StaticContent == "" {
			warnings = append(warnings, "static_text block has empty content")
		}
	}

	return warnings
}
