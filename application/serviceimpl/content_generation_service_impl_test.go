package serviceimpl

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/services"
	"newsletter-backend/infrastructure/aiclient"
	"newsletter-backend/pkg/config"
)

type generationFixture struct {
	repo      *fakeIssueModuleRepo
	issueRepo *fakeIssueRepo
	appRepo   *fakeAppRepo
	adRepo    *fakeAdRepo
	invoker   *fakeInvoker
	publisher *fakePublisher
	svc       services.ContentGenerationService
	issueID   uuid.UUID
}

func newGenerationFixture(t *testing.T) *generationFixture {
	t.Helper()

	issueID := uuid.New()
	issue := &models.Issue{
		ID:        issueID,
		IssueDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Publication: models.Publication{
			Name:               "The Signal",
			SubscriberMergeTag: "*|FNAME|*",
		},
	}

	f := &generationFixture{
		repo:      &fakeIssueModuleRepo{},
		issueRepo: &fakeIssueRepo{issue: issue},
		appRepo:   &fakeAppRepo{},
		adRepo:    &fakeAdRepo{},
		invoker:   &fakeInvoker{textOut: "generated copy", imageURL: "https://img.example.com/out.png"},
		publisher: &fakePublisher{},
		issueID:   issueID,
	}

	catalog := NewModuleCatalogService(&fakeModuleRepo{}, nil)
	selection := NewIssueSelectionService(catalog, f.repo, 30*time.Minute)

	f.svc = NewContentGenerationService(
		selection, f.issueRepo, f.appRepo, f.adRepo, f.invoker, f.publisher,
		config.GenerationConfig{DefaultMaxTokens: 500, DefaultTemperature: 0.7},
	)
	return f
}

func TestBuildPlaceholderDataBeforeArticlesOmitsContentSections(t *testing.T) {
	f := newGenerationFixture(t)
	f.issueRepo.articles = []models.IssueArticle{{Headline: "Big News", Content: "Details"}}

	data, err := f.svc.BuildPlaceholderData(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)

	assert.Equal(t, "March 14, 2026", data.IssueDate)
	assert.Equal(t, "The Signal", data.PublicationName)
	assert.Equal(t, "*|FNAME|*", data.SubscriberName)
	assert.Empty(t, data.Articles)
	assert.Empty(t, data.Apps)
	assert.Nil(t, data.Poll)
	assert.Empty(t, data.Ads)
}

func TestBuildPlaceholderDataAfterArticlesCarriesEverything(t *testing.T) {
	f := newGenerationFixture(t)

	f.issueRepo.articles = []models.IssueArticle{
		{Headline: "Big News", Content: "Details", Rank: 1},
		{Headline: "More News", Content: "Even more", Rank: 2},
	}

	app := models.AiApp{ID: uuid.New(), Name: "PromptPal", Tagline: "Prompts, managed", Description: "A prompt library"}
	f.appRepo.apps = []models.AiApp{app}
	// Same app selected in two modules: two placeholder slots, no dedup
	f.issueRepo.appSelections = []models.IssueAppSelection{
		{IssueID: f.issueID, ModuleID: uuid.New(), AppID: app.ID, Position: 0},
		{IssueID: f.issueID, ModuleID: uuid.New(), AppID: app.ID, Position: 1},
	}

	f.issueRepo.issue.PollSnapshot = `{"question":"Favorite format?","options":["Short","Long"]}`

	adID := uuid.New()
	f.adRepo.slots = []models.IssueAdSlot{{
		IssueID: f.issueID,
		AdID:    adID,
		Ad:      models.Advertisement{ID: adID, Title: "Sponsor", Body: "Buy things"},
	}}

	data, err := f.svc.BuildPlaceholderData(context.Background(), f.issueID, models.TimingAfterArticles)
	require.NoError(t, err)

	require.Len(t, data.Articles, 2)
	assert.Equal(t, "Big News", data.Articles[0].Headline)

	require.Len(t, data.Apps, 2)
	assert.Equal(t, "PromptPal", data.Apps[0].Name)
	assert.Equal(t, "PromptPal", data.Apps[1].Name)

	require.NotNil(t, data.Poll)
	assert.Equal(t, "Favorite format?", data.Poll.Question)
	assert.Equal(t, []string{"Short", "Long"}, data.Poll.Options)

	require.Len(t, data.Ads, 1)
	assert.Equal(t, "Sponsor", data.Ads[0].Title)
}

func TestBuildPlaceholderDataPrefersPollSnapshotOverLiveRow(t *testing.T) {
	f := newGenerationFixture(t)

	pollID := uuid.New()
	f.issueRepo.poll = &models.Poll{ID: pollID, Question: "Edited after lock-in", Options: `["A","B"]`}
	f.issueRepo.issue.PollID = &pollID
	f.issueRepo.issue.PollSnapshot = `{"question":"Frozen question","options":["X"]}`

	data, err := f.svc.BuildPlaceholderData(context.Background(), f.issueID, models.TimingAfterArticles)
	require.NoError(t, err)
	require.NotNil(t, data.Poll)
	assert.Equal(t, "Frozen question", data.Poll.Question)
}

func TestBuildPlaceholderDataFallsBackToLivePoll(t *testing.T) {
	f := newGenerationFixture(t)

	pollID := uuid.New()
	f.issueRepo.poll = &models.Poll{ID: pollID, Question: "Live question", Options: `["A","B"]`}
	f.issueRepo.issue.PollID = &pollID

	data, err := f.svc.BuildPlaceholderData(context.Background(), f.issueID, models.TimingAfterArticles)
	require.NoError(t, err)
	require.NotNil(t, data.Poll)
	assert.Equal(t, "Live question", data.Poll.Question)
	assert.Equal(t, []string{"A", "B"}, data.Poll.Options)
}

func TestBuildPlaceholderDataArticleLoadFailureLeavesSectionEmpty(t *testing.T) {
	f := newGenerationFixture(t)
	f.issueRepo.articlesErr = fmt.Errorf("connection reset")

	data, err := f.svc.BuildPlaceholderData(context.Background(), f.issueID, models.TimingAfterArticles)
	require.NoError(t, err)
	assert.Empty(t, data.Articles)
}

func seedPromptBlock(f *generationFixture, timing models.GenerationTiming, prompt string) *models.IssueBlock {
	return seedIssueBlock(f.repo, f.issueID, models.StatusPending, models.ModuleBlock{
		ID:               uuid.New(),
		BlockType:        models.BlockTypeAIPrompt,
		Prompt:           prompt,
		GenerationTiming: timing,
	})
}

func TestGenerateBlocksWithTimingCountsFailuresWithoutAborting(t *testing.T) {
	f := newGenerationFixture(t)

	seedPromptBlock(f, models.TimingBeforeArticles, "Intro for {{issue_date}}")
	seedPromptBlock(f, models.TimingBeforeArticles, "FAIL marker")
	seedPromptBlock(f, models.TimingBeforeArticles, "Sign-off for {{publication_name}}")

	f.invoker.textFunc = func(req *aiclient.TextRequest) (string, error) {
		if strings.Contains(req.Prompt, "FAIL") {
			return "", fmt.Errorf("provider timeout")
		}
		return "generated copy", nil
	}

	result, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 1, result.Failed)

	var completed, failed int
	for _, b := range f.repo.blocks {
		switch b.GenerationStatus {
		case models.StatusCompleted:
			completed++
			assert.Equal(t, "generated copy", b.GeneratedContent)
			assert.NotNil(t, b.GeneratedAt)
		case models.StatusFailed:
			failed++
			assert.Equal(t, "provider timeout", b.GenerationError)
			assert.Nil(t, b.GeneratedAt)
		}
	}
	assert.Equal(t, 2, completed)
	assert.Equal(t, 1, failed)
}

func TestGenerateBlocksWithTimingInjectsPlaceholders(t *testing.T) {
	f := newGenerationFixture(t)
	seedPromptBlock(f, models.TimingBeforeArticles, "Intro for {{issue_date}} of {{publication_name}}")

	_, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)

	require.Len(t, f.invoker.textRequests, 1)
	assert.Equal(t, "Intro for March 14, 2026 of The Signal", f.invoker.textRequests[0].Prompt)
}

func TestGenerateBlocksWithTimingAppliesBlockSettingsAndDefaults(t *testing.T) {
	f := newGenerationFixture(t)

	temp := 0.2
	maxTokens := 128
	seedIssueBlock(f.repo, f.issueID, models.StatusPending, models.ModuleBlock{
		ID:               uuid.New(),
		BlockType:        models.BlockTypeAIPrompt,
		Prompt:           "Tuned block",
		Provider:         "claude",
		Model:            "claude-3-5-haiku-latest",
		Temperature:      &temp,
		MaxTokens:        &maxTokens,
		GenerationTiming: models.TimingBeforeArticles,
	})
	seedPromptBlock(f, models.TimingBeforeArticles, "Default block")

	_, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)

	require.Len(t, f.invoker.textRequests, 2)

	byPrompt := map[string]aiclient.TextRequest{}
	for _, req := range f.invoker.textRequests {
		byPrompt[req.Prompt] = req
	}

	tuned := byPrompt["Tuned block"]
	assert.Equal(t, "claude", tuned.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", tuned.Model)
	assert.Equal(t, 0.2, tuned.Temperature)
	assert.Equal(t, 128, tuned.MaxTokens)

	def := byPrompt["Default block"]
	assert.Equal(t, "", def.Provider)
	assert.Equal(t, 0.7, def.Temperature)
	assert.Equal(t, 500, def.MaxTokens)
}

func TestGenerateBlocksWithTimingImagesOnlyAfterArticles(t *testing.T) {
	f := newGenerationFixture(t)

	image := seedIssueBlock(f.repo, f.issueID, models.StatusPending, models.ModuleBlock{
		ID:            uuid.New(),
		BlockType:     models.BlockTypeImage,
		ImageType:     models.ImageTypeAIGenerated,
		AIImagePrompt: "Hero image for {{publication_name}}",
	})

	result, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Empty(t, f.invoker.imagePrompts)
	assert.Equal(t, models.StatusPending, image.GenerationStatus)

	result, err = f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingAfterArticles)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.Len(t, f.invoker.imagePrompts, 1)
	assert.Equal(t, "Hero image for The Signal", f.invoker.imagePrompts[0])
	assert.Equal(t, models.StatusCompleted, image.GenerationStatus)
	assert.Equal(t, "https://img.example.com/out.png", image.GeneratedImageURL)
}

func TestGenerateBlocksWithTimingGatesTextBlocksByTiming(t *testing.T) {
	f := newGenerationFixture(t)

	before := seedPromptBlock(f, models.TimingBeforeArticles, "Intro copy")
	after := seedPromptBlock(f, models.TimingAfterArticles, "Closing copy")

	result, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, f.invoker.textRequests, 1)
	assert.Equal(t, "Intro copy", f.invoker.textRequests[0].Prompt)

	assert.Equal(t, models.StatusCompleted, before.GenerationStatus)

	// The other phase's block is never selected or touched
	assert.Equal(t, models.StatusPending, after.GenerationStatus)
	assert.Empty(t, after.GeneratedContent)
	assert.Nil(t, after.GeneratedAt)
}

func TestGenerateBlocksWithTimingPublishesProgressEvents(t *testing.T) {
	f := newGenerationFixture(t)
	seedPromptBlock(f, models.TimingBeforeArticles, "Intro")

	_, err := f.svc.GenerateBlocksWithTiming(context.Background(), f.issueID, models.TimingBeforeArticles)
	require.NoError(t, err)

	types := make([]string, 0, len(f.publisher.events))
	for _, e := range f.publisher.events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{"generation_started", "block_completed", "generation_finished"}, types)
}

func TestRegenerateBlockDefaultsTimingToAfterArticles(t *testing.T) {
	f := newGenerationFixture(t)
	f.issueRepo.articles = []models.IssueArticle{{Headline: "Big News", Content: "Details", Rank: 1}}

	// No generation_timing configured on the block
	ib := seedIssueBlock(f.repo, f.issueID, models.StatusFailed, models.ModuleBlock{
		ID:        uuid.New(),
		BlockType: models.BlockTypeAIPrompt,
		Prompt:    "Summarize {{article_1_headline}}",
	})

	updated, err := f.svc.RegenerateBlock(context.Background(), f.issueID, ib.BlockID)
	require.NoError(t, err)

	require.Len(t, f.invoker.textRequests, 1)
	assert.Equal(t, "Summarize Big News", f.invoker.textRequests[0].Prompt)
	assert.Equal(t, models.StatusCompleted, updated.GenerationStatus)
	assert.Equal(t, "generated copy", updated.GeneratedContent)
}

func TestRegenerateBlockRejectsManualBlocks(t *testing.T) {
	f := newGenerationFixture(t)

	ib := seedIssueBlock(f.repo, f.issueID, models.StatusManual, models.ModuleBlock{
		ID:        uuid.New(),
		BlockType: models.BlockTypeAIPrompt,
		Prompt:    "Anything",
	})

	_, err := f.svc.RegenerateBlock(context.Background(), f.issueID, ib.BlockID)
	require.Error(t, err)
	assert.Empty(t, f.invoker.textRequests)
	assert.Equal(t, models.StatusManual, ib.GenerationStatus)
}

func TestRegenerateBlockRecordsFailure(t *testing.T) {
	f := newGenerationFixture(t)
	f.invoker.textErr = fmt.Errorf("provider down")

	ib := seedIssueBlock(f.repo, f.issueID, models.StatusCompleted, models.ModuleBlock{
		ID:               uuid.New(),
		BlockType:        models.BlockTypeAIPrompt,
		Prompt:           "Anything",
		GenerationTiming: models.TimingBeforeArticles,
	})

	_, err := f.svc.RegenerateBlock(context.Background(), f.issueID, ib.BlockID)
	require.Error(t, err)
	assert.Equal(t, models.StatusFailed, ib.GenerationStatus)
	assert.Equal(t, "provider down", ib.GenerationError)
}

func TestTestPromptRequiresSentIssue(t *testing.T) {
	f := newGenerationFixture(t)

	_, err := f.svc.TestPrompt(context.Background(), uuid.New(), "Hello {{publication_name}}", models.TimingAfterArticles)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sent issue")
	assert.Empty(t, f.invoker.textRequests)
}

func TestTestPromptInjectsAgainstLatestSentIssue(t *testing.T) {
	f := newGenerationFixture(t)
	f.issueRepo.latestSent = f.issueRepo.issue

	result, err := f.svc.TestPrompt(context.Background(), uuid.New(), "Hello {{publication_name}}, today is {{issue_date}}", models.TimingAfterArticles)
	require.NoError(t, err)

	assert.Equal(t, "Hello The Signal, today is March 14, 2026", result.InjectedPrompt)
	assert.Equal(t, "generated copy", result.Output)
	require.Len(t, f.invoker.textRequests, 1)
	assert.Equal(t, result.InjectedPrompt, f.invoker.textRequests[0].Prompt)
}
