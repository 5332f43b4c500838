package services

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

// CreateModuleRequest is the admin payload for creating a module
type CreateModuleRequest struct {
	PublicationID uuid.UUID `json:"publication_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	DisplayOrder  int       `json:"display_order"`
}

// UpdateModuleRequest carries partial module updates; nil fields are left alone
type UpdateModuleRequest struct {
	Name         *string `json:"name"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

// BlockRequest is the admin payload for creating or updating a block
type BlockRequest struct {
	DisplayOrder     int      `json:"display_order"`
	BlockType        string   `json:"block_type" validate:"required,oneof=static_text ai_prompt image"`
	StaticContent    string   `json:"static_content"`
	Prompt           string   `json:"prompt"`
	Model            string   `json:"model"`
	Provider         string   `json:"provider"`
	Temperature      *float64 `json:"temperature"`
	MaxTokens        *int     `json:"max_tokens"`
	SystemPrompt     string   `json:"system_prompt"`
	GenerationTiming string   `json:"generation_timing" validate:"omitempty,oneof=before_articles after_articles"`
	ImageType        string   `json:"image_type" validate:"omitempty,oneof=static ai_generated"`
	ImageURL         string   `json:"image_url"`
	AIImagePrompt    string   `json:"ai_image_prompt"`
}

// ModuleCatalogService reads and administers the publication-level module
// catalog. Reads are fail-soft: a data-access error surfaces as an empty
// catalog, since "no modules configured" is a normal state for callers.
type ModuleCatalogService interface {
	GetActiveModules(ctx context.Context, publicationID uuid.UUID) []models.NewsletterModule
	GetModule(ctx context.Context, moduleID uuid.UUID) (*models.NewsletterModule, error)

	CreateModule(ctx context.Context, req *CreateModuleRequest) (*models.NewsletterModule, error)
	UpdateModule(ctx context.Context, moduleID uuid.UUID, req *UpdateModuleRequest) (*models.NewsletterModule, error)
	ReorderModules(ctx context.Context, publicationID uuid.UUID, orderedIDs []uuid.UUID) error
	DeleteModule(ctx context.Context, moduleID uuid.UUID) error

	CreateBlock(ctx context.Context, moduleID uuid.UUID, req *BlockRequest) (*models.ModuleBlock, []string, error)
	UpdateBlock(ctx context.Context, blockID uuid.UUID, req *BlockRequest) (*models.ModuleBlock, []string, error)
	DeleteBlock(ctx context.Context, blockID uuid.UUID) error
}
