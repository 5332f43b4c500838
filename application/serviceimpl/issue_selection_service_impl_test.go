package serviceimpl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
)

func testCatalog(publicationID uuid.UUID) []models.NewsletterModule {
	return []models.NewsletterModule{
		{
			ID:            uuid.New(),
			PublicationID: publicationID,
			Name:          "Intro",
			IsActive:      true,
			Blocks: []models.ModuleBlock{
				{ID: uuid.New(), BlockType: models.BlockTypeStaticText, StaticContent: "Welcome back!"},
				{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt, Prompt: "Write an intro for {{issue_date}}", GenerationTiming: models.TimingBeforeArticles},
			},
		},
		{
			ID:            uuid.New(),
			PublicationID: publicationID,
			Name:          "Visuals",
			IsActive:      true,
			Blocks: []models.ModuleBlock{
				{ID: uuid.New(), BlockType: models.BlockTypeImage, ImageType: models.ImageTypeStatic, ImageURL: "https://cdn.example.com/banner.png"},
				{ID: uuid.New(), BlockType: models.BlockTypeImage, ImageType: models.ImageTypeAIGenerated, AIImagePrompt: "Newsletter hero image"},
			},
		},
	}
}

func newSelectionFixture(t *testing.T) (*fakeIssueModuleRepo, *IssueSelectionServiceImpl, uuid.UUID, uuid.UUID) {
	t.Helper()

	publicationID := uuid.New()
	issueID := uuid.New()

	repo := &fakeIssueModuleRepo{}
	catalog := NewModuleCatalogService(&fakeModuleRepo{active: testCatalog(publicationID)}, nil)
	svc := NewIssueSelectionService(catalog, repo, 30*time.Minute).(*IssueSelectionServiceImpl)

	return repo, svc, issueID, publicationID
}

func TestInitializeForIssueSnapshotsCatalog(t *testing.T) {
	repo, svc, issueID, publicationID := newSelectionFixture(t)

	result, err := svc.InitializeForIssue(context.Background(), issueID, publicationID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.ModulesCreated)
	assert.Equal(t, 4, result.BlocksCreated)
	assert.Len(t, repo.modules, 2)
	assert.Len(t, repo.blocks, 4)

	for _, ib := range repo.blocks {
		assert.Equal(t, issueID, ib.IssueID)
	}
}

func TestInitializeForIssueSeedsBlockStates(t *testing.T) {
	publicationID := uuid.New()
	issueID := uuid.New()

	catalogModules := testCatalog(publicationID)
	repo := &fakeIssueModuleRepo{}
	catalog := NewModuleCatalogService(&fakeModuleRepo{active: catalogModules}, nil)
	svc := NewIssueSelectionService(catalog, repo, 30*time.Minute)

	_, err := svc.InitializeForIssue(context.Background(), issueID, publicationID)
	require.NoError(t, err)

	states := map[uuid.UUID]*models.IssueBlock{}
	for _, b := range repo.blocks {
		states[b.BlockID] = b
	}

	staticText := catalogModules[0].Blocks[0]
	aiPrompt := catalogModules[0].Blocks[1]
	staticImage := catalogModules[1].Blocks[0]
	aiImage := catalogModules[1].Blocks[1]

	assert.Equal(t, models.StatusCompleted, states[staticText.ID].GenerationStatus)
	assert.Equal(t, "Welcome back!", states[staticText.ID].GeneratedContent)
	assert.NotNil(t, states[staticText.ID].GeneratedAt)

	assert.Equal(t, models.StatusPending, states[aiPrompt.ID].GenerationStatus)
	assert.Nil(t, states[aiPrompt.ID].GeneratedAt)

	assert.Equal(t, models.StatusCompleted, states[staticImage.ID].GenerationStatus)
	assert.Equal(t, "https://cdn.example.com/banner.png", states[staticImage.ID].GeneratedImageURL)

	assert.Equal(t, models.StatusPending, states[aiImage.ID].GenerationStatus)
}

func TestInitializeForIssueIsIdempotent(t *testing.T) {
	repo, svc, issueID, publicationID := newSelectionFixture(t)
	ctx := context.Background()

	first, err := svc.InitializeForIssue(ctx, issueID, publicationID)
	require.NoError(t, err)
	require.Equal(t, 2, first.ModulesCreated)

	blocksBefore := len(repo.blocks)

	second, err := svc.InitializeForIssue(ctx, issueID, publicationID)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ModulesCreated)
	assert.Equal(t, 0, second.BlocksCreated)
	assert.Len(t, repo.blocks, blocksBefore)
}

func seedIssueBlock(repo *fakeIssueModuleRepo, issueID uuid.UUID, status models.GenerationStatus, block models.ModuleBlock) *models.IssueBlock {
	ib := &models.IssueBlock{
		ID:               uuid.New(),
		IssueID:          issueID,
		IssueModuleID:    uuid.New(),
		BlockID:          block.ID,
		GenerationStatus: status,
		UpdatedAt:        time.Now(),
		Block:            block,
	}
	repo.blocks = append(repo.blocks, ib)
	return ib
}

func TestUpdateIssueBlockSetsGeneratedAtOnlyWhenCompleted(t *testing.T) {
	repo, svc, issueID, _ := newSelectionFixture(t)
	ctx := context.Background()

	ib := seedIssueBlock(repo, issueID, models.StatusPending, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})

	require.NoError(t, svc.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusGenerating,
	}))
	assert.Nil(t, ib.GeneratedAt)

	content := "generated copy"
	require.NoError(t, svc.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusCompleted,
		GeneratedContent: &content,
	}))
	require.NotNil(t, ib.GeneratedAt)
	assert.Equal(t, "generated copy", ib.GeneratedContent)

	// Re-entering generating clears the completion timestamp
	require.NoError(t, svc.UpdateIssueBlock(ctx, ib.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusGenerating,
	}))
	assert.Nil(t, ib.GeneratedAt)
}

func TestUpdateIssueBlockRejectsInvalidTransitions(t *testing.T) {
	repo, svc, issueID, _ := newSelectionFixture(t)
	ctx := context.Background()

	pending := seedIssueBlock(repo, issueID, models.StatusPending, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})
	err := svc.UpdateIssueBlock(ctx, pending.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusCompleted,
	})
	assert.ErrorContains(t, err, "invalid status transition")
	assert.Equal(t, models.StatusPending, pending.GenerationStatus)

	manual := seedIssueBlock(repo, issueID, models.StatusManual, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})
	err = svc.UpdateIssueBlock(ctx, manual.ID, repositories.IssueBlockUpdate{
		GenerationStatus: models.StatusGenerating,
	})
	assert.ErrorContains(t, err, "invalid status transition")
	assert.Equal(t, models.StatusManual, manual.GenerationStatus)
}

func TestSetOverrideContentForcesManualStatus(t *testing.T) {
	repo, svc, issueID, _ := newSelectionFixture(t)
	ctx := context.Background()

	block := models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt}
	ib := seedIssueBlock(repo, issueID, models.StatusCompleted, block)
	ib.GeneratedContent = "machine copy"

	override := "hand-written copy"
	updated, err := svc.SetOverrideContent(ctx, issueID, block.ID, &override, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusManual, updated.GenerationStatus)
	require.NotNil(t, updated.OverrideContent)
	assert.Equal(t, "hand-written copy", *updated.OverrideContent)
	// Generated output survives underneath the override
	assert.Equal(t, "machine copy", updated.GeneratedContent)

	cleared, err := svc.SetOverrideContent(ctx, issueID, block.ID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, cleared.GenerationStatus)
	assert.Nil(t, cleared.OverrideContent)
	assert.Nil(t, cleared.OverrideImageURL)
}

func TestRecordUsageIsIdempotent(t *testing.T) {
	repo, svc, issueID, publicationID := newSelectionFixture(t)
	ctx := context.Background()

	_, err := svc.InitializeForIssue(ctx, issueID, publicationID)
	require.NoError(t, err)

	touched, err := svc.RecordUsage(ctx, issueID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), touched)

	stamps := make([]time.Time, 0, len(repo.modules))
	for _, m := range repo.modules {
		require.NotNil(t, m.UsedAt)
		stamps = append(stamps, *m.UsedAt)
	}

	touched, err = svc.RecordUsage(ctx, issueID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), touched)

	for i, m := range repo.modules {
		assert.Equal(t, stamps[i], *m.UsedAt)
	}
}

func TestClearIssueDataRemovesSnapshot(t *testing.T) {
	repo, svc, issueID, publicationID := newSelectionFixture(t)
	ctx := context.Background()

	_, err := svc.InitializeForIssue(ctx, issueID, publicationID)
	require.NoError(t, err)
	require.NotEmpty(t, repo.blocks)

	require.NoError(t, svc.ClearIssueData(ctx, issueID))
	assert.Empty(t, repo.modules)
	assert.Empty(t, repo.blocks)
}

func TestResetStuckBlocksOnlyTouchesOldGenerating(t *testing.T) {
	repo, svc, issueID, _ := newSelectionFixture(t)
	ctx := context.Background()

	stuck := seedIssueBlock(repo, issueID, models.StatusGenerating, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})
	stuck.UpdatedAt = time.Now().Add(-2 * time.Hour)

	fresh := seedIssueBlock(repo, issueID, models.StatusGenerating, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})
	done := seedIssueBlock(repo, issueID, models.StatusCompleted, models.ModuleBlock{ID: uuid.New(), BlockType: models.BlockTypeAIPrompt})

	reset, err := svc.ResetStuckBlocks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)
	assert.Equal(t, models.StatusPending, stuck.GenerationStatus)
	assert.Equal(t, models.StatusGenerating, fresh.GenerationStatus)
	assert.Equal(t, models.StatusCompleted, done.GenerationStatus)
}
