package models

import (
	"time"

	"github.com/google/uuid"
)

type BlockType string

const (
	BlockTypeStaticText BlockType = "static_text"
	BlockTypeAIPrompt   BlockType = "ai_prompt"
	BlockTypeImage      BlockType = "image"
)

type GenerationTiming string

const (
	TimingBeforeArticles GenerationTiming = "before_articles"
	TimingAfterArticles  GenerationTiming = "after_articles"
)

type ImageType string

const (
	ImageTypeStatic      ImageType = "static"
	ImageTypeAIGenerated ImageType = "ai_generated"
)

// NewsletterModule is a named, ordered, publication-scoped container of blocks.
// Modules are retired by deactivation, not deletion.
type NewsletterModule struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PublicationID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name         string `gorm:"not null"`
	DisplayOrder int    `gorm:"default:0;index"`
	IsActive     bool   `gorm:"default:true;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Blocks []ModuleBlock `gorm:"foreignKey:ModuleID"`
}

func (NewsletterModule) TableName() string {
	return "newsletter_modules"
}

// ModuleBlock is one content unit inside a module. Exactly one block type
// applies; the type-specific columns for the other types stay empty.
type ModuleBlock struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ModuleID uuid.UUID `gorm:"type:uuid;not null;index"`

	DisplayOrder int       `gorm:"default:0"`
	BlockType    BlockType `gorm:"not null;index"`

	// static_text payload
	StaticContent string `gorm:"type:text"`

	// ai_prompt payload
	Prompt           string `gorm:"type:text"`
	Model            string
	Provider         string
	Temperature      *float64
	MaxTokens        *int
	SystemPrompt     string           `gorm:"type:text"`
	GenerationTiming GenerationTiming `gorm:"index"`

	// image payload
	ImageType     ImageType
	ImageURL      string
	AIImagePrompt string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ModuleBlock) TableName() string {
	return "module_blocks"
}

// IsGenerated reports whether the block ever transitions through the
// generation lifecycle; everything else is completed data at initialization.
func (b *ModuleBlock) IsGenerated() bool {
	switch b.BlockType {
	case BlockTypeAIPrompt:
		return true
	case BlockTypeImage:
		return b.ImageType == ImageTypeAIGenerated
	default:
		return false
	}
}
