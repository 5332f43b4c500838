package models

import (
	"time"

	"github.com/google/uuid"
)

type Advertisement struct {
	ID uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`

	Title          string `gorm:"not null"`
	Body           string `gorm:"type:text"`
	LinkURL        string
	AdvertiserName string
	IsActive       bool `gorm:"default:true;index"`

	// Position in the rotation across issues
	RotationPosition int `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Advertisement) TableName() string {
	return "advertisements"
}

// IssueAdSlot locks an advertisement into a display position for one issue
type IssueAdSlot struct {
	ID      uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	IssueID uuid.UUID `gorm:"type:uuid;not null;index"`
	AdID    uuid.UUID `gorm:"type:uuid;not null;index"`

	Position int `gorm:"default:0"`

	CreatedAt time.Time

	// Relations
	Ad Advertisement `gorm:"foreignKey:AdID"`
}

func (IssueAdSlot) TableName() string {
	return "issue_ad_slots"
}
