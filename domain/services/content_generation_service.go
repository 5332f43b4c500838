package services

import (
	"context"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/pkg/placeholder"
)

// GenerationResult tallies one batch pass. A failed block never aborts the
// batch; it is counted and the loop continues.
type GenerationResult struct {
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

// PromptTestResult carries both the injected prompt and the model output so
// operators can inspect what was actually sent.
type PromptTestResult struct {
	InjectedPrompt string `json:"injected_prompt"`
	Output         string `json:"output"`
}

// GenerationEventPublisher receives progress events from the generation loop.
// Implementations must not block.
type GenerationEventPublisher interface {
	PublishGenerationEvent(eventType string, issueID uuid.UUID, data map[string]interface{})
}

// ContentGenerationService assembles placeholder data, injects it into
// stored prompt templates and drives the AI providers for an issue's blocks.
type ContentGenerationService interface {
	BuildPlaceholderData(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) (*placeholder.Data, error)
	GenerateBlocksWithTiming(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) (*GenerationResult, error)
	RegenerateBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error)
	TestPrompt(ctx context.Context, publicationID uuid.UUID, promptText string, timing models.GenerationTiming) (*PromptTestResult, error)
}
