package models

import (
	"time"

	"github.com/google/uuid"
)

type Publication struct {
	ID   uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name string    `gorm:"not null"`
	Slug string    `gorm:"uniqueIndex"`

	// Mail-merge token forwarded into prompts untouched (e.g. "*|FNAME|*")
	SubscriberMergeTag string `gorm:"default:'*|FNAME|*'"`

	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Publication) TableName() string {
	return "publications"
}

type IssueStatus string

const (
	IssueStatusDraft     IssueStatus = "draft"
	IssueStatusScheduled IssueStatus = "scheduled"
	IssueStatusSent      IssueStatus = "sent"
)

type Issue struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PublicationID uuid.UUID `gorm:"type:uuid;not null;index"`

	Title     string
	IssueDate time.Time   `gorm:"not null;index"`
	Status    IssueStatus `gorm:"default:'draft';index"`
	SentAt    *time.Time

	// Poll locked in for this issue. PollSnapshot freezes the poll as JSON at
	// lock-in time and wins over the live poll row during placeholder assembly.
	PollID       *uuid.UUID `gorm:"type:uuid"`
	PollSnapshot string     `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Relations
	Publication Publication    `gorm:"foreignKey:PublicationID"`
	Articles    []IssueArticle `gorm:"foreignKey:IssueID"`
}

func (Issue) TableName() string {
	return "issues"
}

// IssueArticle is one article finalized for an issue, ranked for display order
type IssueArticle struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	IssueID uuid.UUID `gorm:"type:uuid;not null;index"`

	Headline string `gorm:"not null"`
	Content  string `gorm:"type:text"`
	Rank     int    `gorm:"default:0"`
	IsActive bool   `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (IssueArticle) TableName() string {
	return "issue_articles"
}

type Poll struct {
	ID            uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PublicationID uuid.UUID `gorm:"type:uuid;not null;index"`

	Question string `gorm:"not null"`
	Options  string `gorm:"type:jsonb"` // JSON array of option strings
	IsActive bool   `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Poll) TableName() string {
	return "polls"
}

// PollData is the decoded question/options shape shared by Poll.Options and
// Issue.PollSnapshot.
type PollData struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}
