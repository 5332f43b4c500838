package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// AiApp is one entry in the AI-tool directory
type AiApp struct {
	ID uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	Name        string `gorm:"not null"`
	Tagline     string
	Description string `gorm:"type:text"`
	WebsiteURL  string
	LogoURL     string
	IsActive    bool `gorm:"default:true;index"`

	// Embedding of name+tagline+description for similar-tool lookup.
	// Empty when embedding generation failed or is disabled.
	Embedding pgvector.Vector `gorm:"type:vector(768)" json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AiApp) TableName() string {
	return "ai_apps"
}

// IssueAppSelection links an AI-tool entry into an AI-app module for one
// issue. Placeholder assembly flattens selections across all modules in
// (module, position) order without deduplicating, so a tool selected in two
// modules appears at two placeholder indices.
type IssueAppSelection struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	IssueID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ModuleID uuid.UUID `gorm:"type:uuid;not null;index"`
	AppID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Position int `gorm:"default:0"`

	CreatedAt time.Time
}

func (IssueAppSelection) TableName() string {
	return "issue_app_selections"
}
