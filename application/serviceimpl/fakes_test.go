package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"newsletter-backend/domain/models"
	"newsletter-backend/domain/repositories"
	"newsletter-backend/infrastructure/aiclient"
)

// fakeIssueModuleRepo is an in-memory IssueModuleRepository mirroring the
// postgres implementation's write semantics, notably that generated_at is
// derived from the status on every generation write.
type fakeIssueModuleRepo struct {
	modules []*models.IssueModule
	blocks  []*models.IssueBlock
}

func (r *fakeIssueModuleRepo) CountModulesByIssue(ctx context.Context, issueID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range r.modules {
		if m.IssueID == issueID {
			n++
		}
	}
	return n, nil
}

func (r *fakeIssueModuleRepo) CreateModules(ctx context.Context, issueModules []*models.IssueModule) error {
	r.modules = append(r.modules, issueModules...)
	return nil
}

func (r *fakeIssueModuleRepo) CreateBlocks(ctx context.Context, issueBlocks []*models.IssueBlock) error {
	r.blocks = append(r.blocks, issueBlocks...)
	return nil
}

func (r *fakeIssueModuleRepo) GetModulesByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueModule, error) {
	var out []models.IssueModule
	for _, m := range r.modules {
		if m.IssueID == issueID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeIssueModuleRepo) GetBlocksByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error) {
	var out []models.IssueBlock
	for _, b := range r.blocks {
		if b.IssueID == issueID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeIssueModuleRepo) GetBlockByID(ctx context.Context, issueBlockID uuid.UUID) (*models.IssueBlock, error) {
	for _, b := range r.blocks {
		if b.ID == issueBlockID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIssueModuleRepo) GetBlockByIssueAndBlock(ctx context.Context, issueID, blockID uuid.UUID) (*models.IssueBlock, error) {
	for _, b := range r.blocks {
		if b.IssueID == issueID && b.BlockID == blockID {
			copied := *b
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeIssueModuleRepo) GetPendingTextBlocks(ctx context.Context, issueID uuid.UUID, timing models.GenerationTiming) ([]models.IssueBlock, error) {
	var out []models.IssueBlock
	for _, b := range r.blocks {
		if b.IssueID == issueID &&
			b.GenerationStatus == models.StatusPending &&
			b.Block.BlockType == models.BlockTypeAIPrompt &&
			b.Block.GenerationTiming == timing {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeIssueModuleRepo) GetPendingImageBlocks(ctx context.Context, issueID uuid.UUID) ([]models.IssueBlock, error) {
	var out []models.IssueBlock
	for _, b := range r.blocks {
		if b.IssueID == issueID &&
			b.GenerationStatus == models.StatusPending &&
			b.Block.BlockType == models.BlockTypeImage &&
			b.Block.ImageType == models.ImageTypeAIGenerated {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeIssueModuleRepo) UpdateBlockGeneration(ctx context.Context, issueBlockID uuid.UUID, update repositories.IssueBlockUpdate) error {
	for _, b := range r.blocks {
		if b.ID != issueBlockID {
			continue
		}
		b.GenerationStatus = update.GenerationStatus
		if update.GeneratedContent != nil {
			b.GeneratedContent = *update.GeneratedContent
		}
		if update.GeneratedImageURL != nil {
			b.GeneratedImageURL = *update.GeneratedImageURL
		}
		if update.GenerationError != nil {
			b.GenerationError = *update.GenerationError
		}
		if update.GenerationStatus == models.StatusCompleted {
			now := time.Now()
			b.GeneratedAt = &now
		} else {
			b.GeneratedAt = nil
		}
		b.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeIssueModuleRepo) SetBlockOverride(ctx context.Context, issueBlockID uuid.UUID, content, imageURL *string, status models.GenerationStatus) error {
	for _, b := range r.blocks {
		if b.ID != issueBlockID {
			continue
		}
		b.OverrideContent = content
		b.OverrideImageURL = imageURL
		b.GenerationStatus = status
		b.UpdatedAt = time.Now()
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeIssueModuleRepo) MarkModulesUsed(ctx context.Context, issueID uuid.UUID, usedAt time.Time) (int64, error) {
	var touched int64
	for _, m := range r.modules {
		if m.IssueID == issueID && m.UsedAt == nil {
			ts := usedAt
			m.UsedAt = &ts
			touched++
		}
	}
	return touched, nil
}

func (r *fakeIssueModuleRepo) DeleteByIssue(ctx context.Context, issueID uuid.UUID) error {
	modules := r.modules[:0]
	for _, m := range r.modules {
		if m.IssueID != issueID {
			modules = append(modules, m)
		}
	}
	r.modules = modules

	blocks := r.blocks[:0]
	for _, b := range r.blocks {
		if b.IssueID != issueID {
			blocks = append(blocks, b)
		}
	}
	r.blocks = blocks
	return nil
}

func (r *fakeIssueModuleRepo) ResetStuckGenerating(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	var reset int64
	for _, b := range r.blocks {
		if b.GenerationStatus == models.StatusGenerating && b.UpdatedAt.Before(cutoff) {
			b.GenerationStatus = models.StatusPending
			b.UpdatedAt = time.Now()
			reset++
		}
	}
	return reset, nil
}

// fakeModuleRepo serves the catalog tests; err poisons every read.
type fakeModuleRepo struct {
	active []models.NewsletterModule
	err    error
}

func (r *fakeModuleRepo) Create(ctx context.Context, module *models.NewsletterModule) error {
	return r.err
}

func (r *fakeModuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.NewsletterModule, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.active {
		if r.active[i].ID == id {
			return &r.active[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeModuleRepo) GetActiveByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.active, nil
}

func (r *fakeModuleRepo) ListByPublication(ctx context.Context, publicationID uuid.UUID) ([]models.NewsletterModule, error) {
	return r.active, r.err
}

func (r *fakeModuleRepo) Update(ctx context.Context, module *models.NewsletterModule) error {
	return r.err
}

func (r *fakeModuleRepo) UpdateDisplayOrders(ctx context.Context, publicationID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.err
}

func (r *fakeModuleRepo) Delete(ctx context.Context, id uuid.UUID) error { return r.err }

func (r *fakeModuleRepo) CreateBlock(ctx context.Context, block *models.ModuleBlock) error {
	return r.err
}

func (r *fakeModuleRepo) GetBlockByID(ctx context.Context, id uuid.UUID) (*models.ModuleBlock, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.active {
		for j := range r.active[i].Blocks {
			if r.active[i].Blocks[j].ID == id {
				return &r.active[i].Blocks[j], nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeModuleRepo) UpdateBlock(ctx context.Context, block *models.ModuleBlock) error {
	return r.err
}

func (r *fakeModuleRepo) DeleteBlock(ctx context.Context, id uuid.UUID) error { return r.err }

// fakeIssueRepo serves placeholder assembly with canned read-side data
type fakeIssueRepo struct {
	issue         *models.Issue
	latestSent    *models.Issue
	articles      []models.IssueArticle
	articlesErr   error
	poll          *models.Poll
	appSelections []models.IssueAppSelection
}

func (r *fakeIssueRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Issue, error) {
	if r.issue == nil || r.issue.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.issue, nil
}

func (r *fakeIssueRepo) GetLatestSentByPublication(ctx context.Context, publicationID uuid.UUID) (*models.Issue, error) {
	if r.latestSent == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.latestSent, nil
}

func (r *fakeIssueRepo) GetArticles(ctx context.Context, issueID uuid.UUID) ([]models.IssueArticle, error) {
	return r.articles, r.articlesErr
}

func (r *fakeIssueRepo) GetPollByID(ctx context.Context, pollID uuid.UUID) (*models.Poll, error) {
	if r.poll == nil || r.poll.ID != pollID {
		return nil, gorm.ErrRecordNotFound
	}
	return r.poll, nil
}

func (r *fakeIssueRepo) GetAppSelections(ctx context.Context, issueID uuid.UUID) ([]models.IssueAppSelection, error) {
	return r.appSelections, nil
}

type fakeAppRepo struct {
	apps []models.AiApp
}

func (r *fakeAppRepo) Create(ctx context.Context, app *models.AiApp) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	r.apps = append(r.apps, *app)
	return nil
}

func (r *fakeAppRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AiApp, error) {
	for i := range r.apps {
		if r.apps[i].ID == id {
			return &r.apps[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AiApp, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.AiApp
	for _, app := range r.apps {
		if want[app.ID] {
			out = append(out, app)
		}
	}
	return out, nil
}

func (r *fakeAppRepo) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.AiApp, int64, error) {
	return r.apps, int64(len(r.apps)), nil
}

func (r *fakeAppRepo) Update(ctx context.Context, app *models.AiApp) error {
	for i := range r.apps {
		if r.apps[i].ID == app.ID {
			r.apps[i] = *app
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding pgvector.Vector) error {
	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps[i].Embedding = embedding
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeAppRepo) FindSimilar(ctx context.Context, id uuid.UUID, limit int) ([]models.AiApp, error) {
	return nil, nil
}

func (r *fakeAppRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps = append(r.apps[:i], r.apps[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeAdRepo struct {
	ads   []models.Advertisement
	slots []models.IssueAdSlot
}

func (r *fakeAdRepo) Create(ctx context.Context, ad *models.Advertisement) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	r.ads = append(r.ads, *ad)
	return nil
}

func (r *fakeAdRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	for i := range r.ads {
		if r.ads[i].ID == id {
			return &r.ads[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAdRepo) List(ctx context.Context, offset, limit int, activeOnly bool) ([]models.Advertisement, int64, error) {
	return r.ads, int64(len(r.ads)), nil
}

func (r *fakeAdRepo) Update(ctx context.Context, ad *models.Advertisement) error { return nil }

func (r *fakeAdRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeAdRepo) GetSlotsByIssue(ctx context.Context, issueID uuid.UUID) ([]models.IssueAdSlot, error) {
	var out []models.IssueAdSlot
	for _, s := range r.slots {
		if s.IssueID == issueID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeAdRepo) CreateSlot(ctx context.Context, slot *models.IssueAdSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	r.slots = append(r.slots, *slot)
	return nil
}

func (r *fakeAdRepo) DeleteSlot(ctx context.Context, slotID uuid.UUID) error { return nil }

func (r *fakeAdRepo) ReorderSlots(ctx context.Context, issueID uuid.UUID, orderedSlotIDs []uuid.UUID) error {
	return nil
}

// fakeInvoker records every request and answers from canned responses.
// textFunc, when set, decides per request.
type fakeInvoker struct {
	textOut  string
	textErr  error
	textFunc func(req *aiclient.TextRequest) (string, error)

	imageURL string
	imageErr error

	embedOut []float32
	embedErr error

	textRequests []aiclient.TextRequest
	imagePrompts []string
}

func (f *fakeInvoker) GenerateText(ctx context.Context, req *aiclient.TextRequest) (string, error) {
	f.textRequests = append(f.textRequests, *req)
	if f.textFunc != nil {
		return f.textFunc(req)
	}
	return f.textOut, f.textErr
}

func (f *fakeInvoker) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.imagePrompts = append(f.imagePrompts, prompt)
	return f.imageURL, f.imageErr
}

func (f *fakeInvoker) EmbedText(ctx context.Context, text string) ([]float32, error) {
	return f.embedOut, f.embedErr
}

type publishedEvent struct {
	Type    string
	IssueID uuid.UUID
	Data    map[string]interface{}
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishGenerationEvent(eventType string, issueID uuid.UUID, data map[string]interface{}) {
	f.events = append(f.events, publishedEvent{Type: eventType, IssueID: issueID, Data: data})
}
