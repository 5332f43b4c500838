package serviceimpl

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/services"
)

func TestGetActiveModulesFailsSoftOnRepositoryError(t *testing.T) {
	svc := NewModuleCatalogService(&fakeModuleRepo{err: fmt.Errorf("connection refused")}, nil)

	modules := svc.GetActiveModules(context.Background(), uuid.New())
	assert.NotNil(t, modules)
	assert.Empty(t, modules)
}

func TestGetActiveModulesReturnsCatalog(t *testing.T) {
	publicationID := uuid.New()
	svc := NewModuleCatalogService(&fakeModuleRepo{active: testCatalog(publicationID)}, nil)

	modules := svc.GetActiveModules(context.Background(), publicationID)
	require.Len(t, modules, 2)
	assert.Equal(t, "Intro", modules[0].Name)
}

func TestCreateBlockWarnsOnIncompleteConfig(t *testing.T) {
	publicationID := uuid.New()
	catalog := testCatalog(publicationID)
	svc := NewModuleCatalogService(&fakeModuleRepo{active: catalog}, nil)

	// ai_prompt with neither prompt nor timing
	_, warnings, err := svc.CreateBlock(context.Background(), catalog[0].ID, &services.BlockRequest{
		BlockType: string(models.BlockTypeAIPrompt),
	})
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "no prompt text")
	assert.Contains(t, warnings[1], "no generation_timing")

	// ai_generated image without an image prompt
	_, warnings, err = svc.CreateBlock(context.Background(), catalog[0].ID, &services.BlockRequest{
		BlockType: string(models.BlockTypeImage),
		ImageType: string(models.ImageTypeAIGenerated),
	})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no image prompt")

	// fully configured block passes clean
	_, warnings, err = svc.CreateBlock(context.Background(), catalog[0].ID, &services.BlockRequest{
		BlockType:        string(models.BlockTypeAIPrompt),
		Prompt:           "Write an intro",
		GenerationTiming: string(models.TimingBeforeArticles),
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}
