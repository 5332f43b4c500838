package models

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

const (
	StatusPending    GenerationStatus = "pending"
	StatusGenerating GenerationStatus = "generating"
	StatusCompleted  GenerationStatus = "completed"
	StatusFailed     GenerationStatus = "failed"
	StatusManual     GenerationStatus = "manual"
)

// allowedTransitions is the closed transition table enforced by the single
// issue-block update path. manual is reachable only through the override path
// and leaves only by clearing the override.
var allowedTransitions = map[GenerationStatus][]GenerationStatus{
	StatusPending:    {StatusGenerating},
	StatusGenerating: {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusGenerating},
	StatusFailed:     {StatusGenerating},
	StatusManual:     {},
}

// CanTransitionTo reports whether the automatic pipeline may move a block
// from s to next.
func (s GenerationStatus) CanTransitionTo(next GenerationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IssueModule records that a module was selected for a specific issue.
// Immutable after creation except used_at, which is set once when the issue
// is sent.
type IssueModule struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	IssueID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ModuleID uuid.UUID `gorm:"type:uuid;not null;index"`

	UsedAt *time.Time

	CreatedAt time.Time

	// Relations
	Module NewsletterModule `gorm:"foreignKey:ModuleID"`
}

func (IssueModule) TableName() string {
	return "issue_modules"
}

// IssueBlock is the per-issue, per-block generation-state record
type IssueBlock struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	IssueID       uuid.UUID `gorm:"type:uuid;not null;index"`
	IssueModuleID uuid.UUID `gorm:"type:uuid;not null;index"`
	BlockID       uuid.UUID `gorm:"type:uuid;not null;index"`

	GenerationStatus  GenerationStatus `gorm:"default:'pending';index"`
	GeneratedContent  string           `gorm:"type:text"`
	GeneratedImageURL string
	GenerationError   string `gorm:"type:text"`

	// Operator-supplied replacements; nil means no override
	OverrideContent  *string `gorm:"type:text"`
	OverrideImageURL *string

	GeneratedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Block ModuleBlock `gorm:"foreignKey:BlockID"`
}

func (IssueBlock) TableName() string {
	return "issue_blocks"
}
