package serviceimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/aiclient"
	"newsletter-backend/pkg/config"
	"newsletter-backend/pkg/logger"
	"newsletter-backend/pkg/placeholder"
)

type ContentGenerationServiceImpl struct {
	selection services.IssueSelectionService
	issueRepo repositories.IssueRepository
	appRepo   repositories.AiAppRepository
	adRepo    repositories.AdRepository
	ai        aiclient.Invoker
	events    services.GenerationEventPublisher // optional
	defaults  config.GenerationConfig
}

func NewContentGenerationService(
	selection services.IssueSelectionService,
	issueRepo repositories.IssueRepository,
	appRepo repositories.AiAppRepository,
	adRepo repositories.AdRepository,
	ai aiclient.Invoker,
	events services.GenerationEventPublisher,
	defaults config.GenerationConfig,
) services.ContentGenerationService {
	return &ContentGenerationServiceImpl{
		selection: selection,
		issueRepo: issueRepo,
		appRepo:   appRepo,
		adRepo:    adRepo,
		ai:        ai,
		events:    events,
		defaults:  defaults,
	}
}

// BuildPlaceholderData assembles the timing-scoped read model for one issue.
// The before_articles phase only carries issue metadata; article, app, poll
// and ad data exist solely in the after_articles phase. Failures on the
// optional sections are logged and leave the section empty rather than
// failing the whole pass.
func (s *ContentGenerationServiceImpl) BuildPlaceholderData(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) (*placeholder.Data, error) {
	issue, err := s.issueRepo.GetByID(ctx, issueID)
	if err != nil {
		return nil, fmt.Errorf("issue not found: %w", err)
	}

	data := &placeholder.Data{
		IssueDate:       issue.IssueDate.Format("January 2, 2006"),
		PublicationName: issue.Publication.Name,
		SubscriberName:  issue.Publication.SubscriberMergeTag,
	}

	if timing != models.TimingAfterArticles {
		return data, nil
	}

	data.Articles = s.loadArticles(ctx, issueID)
	data.Apps = s.loadApps(ctx, issueID)
	data.Poll = s.loadPoll(ctx, issue)
	data.Ads = s.loadAds(ctx, issueID)

	return data, nil
}

func (s *ContentGenerationServiceImpl) loadArticles(ctx context.Context, issueID uuid.UUID) []placeholder.Article {
	articles, err := s.issueRepo.GetArticles(ctx, issueID)
	if err != nil {
		logger.GenerationError("placeholder_articles", "Failed to load issue articles", err, map[string]interface{}{
			"issue_id": issueID.String(),
		})
		return nil
	}

	out := make([]placeholder.Article, 0, len(articles))
	for _, a := range articles {
		out = append(out, placeholder.Article{
			Headline: a.Headline,
			Content:  a.Content,
			Rank:     a.Rank,
		})
	}
	return out
}

// loadApps flattens the issue's app selections across all modules in
// (module, position) order. Selections are not deduplicated: a tool picked in
// two modules occupies two placeholder indices.
func (s *ContentGenerationServiceImpl) loadApps(ctx context.Context, issueID uuid.UUID) []placeholder.App {
	selections, err := s.issueRepo.GetAppSelections(ctx, issueID)
	if err != nil {
		logger.GenerationError("placeholder_apps", "Failed to load app selections", err, map[string]interface{}{
			"issue_id": issueID.String(),
		})
		return nil
	}
	if len(selections) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(selections))
	for _, sel := range selections {
		ids = append(ids, sel.AppID)
	}

	apps, err := s.appRepo.GetByIDs(ctx, ids)
	if err != nil {
		logger.GenerationError("placeholder_apps", "Failed to load apps", err, map[string]interface{}{
			"issue_id": issueID.String(),
		})
		return nil
	}

	byID := make(map[uuid.UUID]models.AiApp, len(apps))
	for _, app := range apps {
		byID[app.ID] = app
	}

	out := make([]placeholder.App, 0, len(selections))
	for _, sel := range selections {
		app, ok := byID[sel.AppID]
		if !ok {
			// Selection points at a deleted app; skip the slot
			continue
		}
		out = append(out, placeholder.App{
			Name:        app.Name,
			Tagline:     app.Tagline,
			Description: app.Description,
		})
	}
	return out
}

// loadPoll prefers the snapshot frozen on the issue over the live poll row,
// so edits to the poll after lock-in never leak into generation.
func (s *ContentGenerationServiceImpl) loadPoll(ctx context.Context, issue *models.Issue) *placeholder.Poll {
	if issue.PollSnapshot != "" {
		var snap models.PollData
		if err := json.Unmarshal([]byte(issue.PollSnapshot), &snap); err != nil {
			logger.GenerationError("placeholder_poll", "Failed to decode poll snapshot", err, map[string]interface{}{
				"issue_id": issue.ID.String(),
			})
		} else if snap.Question != "" {
			return &placeholder.Poll{Question: snap.Question, Options: snap.Options}
		}
	}

	if issue.PollID == nil {
		return nil
	}

	poll, err := s.issueRepo.GetPollByID(ctx, *issue.PollID)
	if err != nil {
		logger.GenerationError("placeholder_poll", "Failed to load poll", err, map[string]interface{}{
			"issue_id": issue.ID.String(),
			"poll_id":  issue.PollID.String(),
		})
		return nil
	}

	var options []string
	if poll.Options != "" {
		if err := json.Unmarshal([]byte(poll.Options), &options); err != nil {
			logger.GenerationError("placeholder_poll", "Failed to decode poll options", err, map[string]interface{}{
				"poll_id": poll.ID.String(),
			})
		}
	}

	return &placeholder.Poll{Question: poll.Question, Options: options}
}

func (s *ContentGenerationServiceImpl) loadAds(ctx context.Context, issueID uuid.UUID) []placeholder.Ad {
	slots, err := s.adRepo.GetSlotsByIssue(ctx, issueID)
	if err != nil {
		logger.GenerationError("placeholder_ads", "Failed to load ad slots", err, map[string]interface{}{
			"issue_id": issueID.String(),
		})
		return nil
	}

	out := make([]placeholder.Ad, 0, len(slots))
	for _, slot := range slots {
		if slot.Ad.ID == uuid.Nil {
			continue
		}
		out = append(out, placeholder.Ad{
			Title: slot.Ad.Title,
			Body:  slot.Ad.Body,
		})
	}
	return out
}

// GenerateBlocksWithTiming runs one batch pass over the issue's pending
// blocks for the given timing. Blocks are processed sequentially; a failed
// block is recorded and counted but never aborts the batch. Image blocks
// only generate in the after_articles phase.
func (s *ContentGenerationServiceImpl) GenerateBlocksWithTiming(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) (*services.GenerationResult, error) {
	data, err := s.BuildPlaceholderData(ctx, issueID, timing)
	if err != nil {
		return nil, err
	}

	blocks, err := s.selection.GetBlocksForTiming(ctx, issueID, timing)
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks for generation: %w", err)
	}

	if timing == models.TimingAfterArticles {
		imageBlocks, err := s.selection.GetImageBlocksForGeneration(ctx, issueID)
		if err != nil {
			return nil, fmt.Errorf("failed to load image blocks for generation: %w", err)
		}
		blocks = append(blocks, imageBlocks...)
	}

	s.publish("generation_started", issueID, map[string]interface{}{
		"timing": string(timing),
		"blocks": len(blocks),
	})

	result := &services.GenerationResult{}
	for i := range blocks {
		if err := s.processBlock(ctx, issueID, &blocks[i], data); err != nil {
			result.Failed++
		} else {
			result.Generated++
		}
	}

	logger.Generation("batch_done", "Generation batch finished", map[string]interface{}{
		"issue_id":  issueID.String(),
		"timing":    string(timing),
		"generated": result.Generated,
		"failed":    result.Failed,
	})

	s.publish("generation_finished", issueID, map[string]interface{}{
		"timing":    string(timing),
		"generated": result.Generated,
		"failed":    result.Failed,
	})

	return result, nil
}

// processBlock moves one issue block through generating and into its
// terminal state, persisting the outcome either way.
func (s *ContentGenerationServiceImpl) processBlock(ctx context.Context, issueID uuid.UUID, ib *models.IssueBlock, data *placeholder.Data) error {
	if err := s.selection.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusGenerating,
	}); err != nil {
		logger.GenerationError("block_claim", "Failed to mark block generating", err, map[string]interface{}{
			"issue_block_id": ib.ID.String(),
		})
		return err
	}

	started := time.Now()

	content, imageURL, genErr := s.generate(ctx, &ib.Block, data)
	if genErr != nil {
		msg := genErr.Error()
		if err := s.selection.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
			GenerationStatus: models.StatusFailed,
			GenerationError:  &msg,
		}); err != nil {
			logger.GenerationError("block_persist", "Failed to record block failure", err, map[string]interface{}{
				"issue_block_id": ib.ID.String(),
			})
		}

		logger.GenerationError("block_failed", "Block generation failed", genErr, map[string]interface{}{
			"issue_block_id": ib.ID.String(),
			"block_type":     string(ib.Block.BlockType),
		})

		s.publish("block_failed", issueID, map[string]interface{}{
			"issue_block_id": ib.ID.String(),
			"error":          msg,
		})
		return genErr
	}

	update := repositories.IssueBlockUpdate{GenerationStatus: models.StatusCompleted}
	if imageURL != "" {
		update.GeneratedImageURL = &imageURL
	} else {
		update.GeneratedContent = &content
	}

	if err := s.selection.UpdateIssueBlock(ctx, ib.ID, update); err != nil {
		logger.GenerationError("block_persist", "Failed to record block result", err, map[string]interface{}{
			"issue_block_id": ib.ID.String(),
		})
		return err
	}

	logger.Generation("block_completed", "Block generated", map[string]interface{}{
		"issue_block_id": ib.ID.String(),
		"block_type":     string(ib.Block.BlockType),
		"duration_ms":    time.Since(started).Milliseconds(),
	})

	s.publish("block_completed", issueID, map[string]interface{}{
		"issue_block_id": ib.ID.String(),
	})
	return nil
}

func (s *ContentGenerationServiceImpl) generate(ctx context.Context, block *models.ModuleBlock, data *placeholder.Data) (content, imageURL string, err error) {
	switch block.BlockType {
	case models.BlockTypeAIPrompt:
		content, err = s.generateBlockContent(ctx, block, data)
		return content, "", err
	case models.BlockTypeImage:
		imageURL, err = s.generateBlockImage(ctx, block, data)
		return "", imageURL, err
	default:
		return "", "", fmt.Errorf("block type %s does not generate", block.BlockType)
	}
}

// generateBlockContent injects placeholder data into the block's stored
// prompt and dispatches to the block's provider. Missing per-block settings
// fall back to the configured defaults.
func (s *ContentGenerationServiceImpl) generateBlockContent(ctx context.Context, block *models.ModuleBlock, data *placeholder.Data) (string, error) {
	if block.Prompt == "" {
		return "", fmt.Errorf("block has no prompt configured")
	}

	req := &aiclient.TextRequest{
		Prompt:       placeholder.Inject(block.Prompt, data),
		SystemPrompt: placeholder.Inject(block.SystemPrompt, data),
		Model:        block.Model,
		Provider:     block.Provider,
		MaxTokens:    s.defaults.DefaultMaxTokens,
		Temperature:  s.defaults.DefaultTemperature,
	}
	if block.MaxTokens != nil {
		req.MaxTokens = *block.MaxTokens
	}
	if block.Temperature != nil {
		req.Temperature = *block.Temperature
	}

	out, err := s.ai.GenerateText(ctx, req)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("empty response from provider")
	}

	return out, nil
}

func (s *ContentGenerationServiceImpl) generateBlockImage(ctx context.Context, block *models.ModuleBlock, data *placeholder.Data) (string, error) {
	if block.ImageType != models.ImageTypeAIGenerated {
		return "", fmt.Errorf("image block is not ai_generated")
	}
	if block.AIImagePrompt == "" {
		return "", fmt.Errorf("block has no image prompt configured")
	}

	return s.ai.GenerateImage(ctx, placeholder.Inject(block.AIImagePrompt, data))
}

// RegenerateBlock re-runs generation for a single block on demand. The
// placeholder phase comes from the block's own generation_timing; blocks
// without one use the richer after_articles data. Manually overridden blocks
// are rejected by the status transition check.
func (s *ContentGenerationServiceImpl) RegenerateBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error) {
	ib, err := s.selection.GetIssueBlock(ctx, issueID, blockID)
	if err != nil {
		return nil, fmt.Errorf("issue block not found: %w", err)
	}

	timing := ib.Block.GenerationTiming
	if timing == "" {
		timing = models.TimingAfterArticles
	}

	data, err := s.BuildPlaceholderData(ctx, issueID, timing)
	if err != nil {
		return nil, err
	}

	if err := s.selection.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusGenerating,
	}); err != nil {
		return nil, err
	}

	content, imageURL, genErr := s.generate(ctx, &ib.Block, data)
	if genErr != nil {
		msg := genErr.Error()
		if err := s.selection.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
			GenerationStatus: models.StatusFailed,
			GenerationError:  &msg,
		}); err != nil {
			logger.GenerationError("block_persist", "Failed to record block failure", err, map[string]interface{}{
				"issue_block_id": ib.ID.String(),
			})
		}
		s.publish("block_failed", issueID, map[string]interface{}{
			"issue_block_id": ib.ID.String(),
			"error":          msg,
		})
		return nil, genErr
	}

	update := repositories.IssueBlockUpdate{GenerationStatus: models.StatusCompleted}
	if imageURL != "" {
		update.GeneratedImageURL = &imageURL
	} else {
		update.GeneratedContent = &content
	}

	if err := s.selection.UpdateIssueBlock(ctx, ib.ID, update); err != nil {
		return nil, fmt.Errorf("failed to record block result: %w", err)
	}

	s.publish("block_completed", issueID, map[string]interface{}{
		"issue_block_id": ib.ID.String(),
	})

	return s.selection.GetIssueBlock(ctx, issueID, blockID)
}

// TestPrompt runs arbitrary prompt text against real data from the
// publication's most recent sent issue, so operators can see what the
// template produces before saving it.
func (s *ContentGenerationServiceImpl) TestPrompt(ctx context.Context, publicationID uuid.UUID, promptText string, timing models.GenerationTiming) (*services.PromptTestResult, error) {
	issue, err := s.issueRepo.GetLatestSentByPublication(ctx, publicationID)
	if err != nil {
		return nil, fmt.Errorf("no sent issue available for prompt testing: %w", err)
	}

	data, err := s.BuildPlaceholderData(ctx, issue.ID, timing)
	if err != nil {
		return nil, err
	}

	injected := placeholder.Inject(promptText, data)

	out, err := s.ai.GenerateText(ctx, &aiclient.TextRequest{
		Prompt:      injected,
		MaxTokens:   s.defaults.DefaultMaxTokens,
		Temperature: s.defaults.DefaultTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("prompt test failed: %w", err)
	}

	return &services.PromptTestResult{
		InjectedPrompt: injected,
		Output:         out,
	}, nil
}

func (s *ContentGenerationServiceImpl) publish(eventType string, issueID uuid.UUID, data map[string]interface{}) {
	if s.events != nil {
		s.events.PublishGenerationEvent(eventType, issueID, data)
	}
}
