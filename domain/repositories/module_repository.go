package repositories

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
)

type ModuleRepository interface {
	// Modules
	Create(ctx context.Context, module *models.NewsletterModule) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.NewsletterModule, error)
	GetActiveByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error)
	ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error)
	Update(ctx context.Context, module *models.NewsletterModule) error
	UpdateDisplayOrders(ctx context.Context, publicationID uuid.UUID, orderedIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Blocks
	CreateBlock(ctx context.Context, block *models.ModuleBlock) error
	GetBlockByID(ctx context.Context, id uuid.UUID) (*models.ModuleBlock, error)
	UpdateBlock(ctx context.Context, block *models.ModuleBlock) error
	DeleteBlock(ctx context.Context, id uuid.UUID) error
}
