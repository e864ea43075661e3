package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChallengeAttempt records one try at a challenge. UserID may hold a
// synthetic bot identity ("bot-..."), so it carries no foreign key.
type ChallengeAttempt struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"user_id"`
	ChallengeID string     `gorm:"size:36;not null;index" json:"challenge_id"`
	UserInput   string     `gorm:"type:text" json:"user_input,omitempty"`
	IsCorrect   bool       `gorm:"not null;default:false" json:"is_correct"`
	Score       int        `gorm:"not null;default:0" json:"score"`
	TimeTaken   int        `json:"time_taken,omitempty"`
	Feedback    string     `gorm:"type:text" json:"feedback,omitempty"`
	Mistakes    []string   `gorm:"serializer:json" json:"mistakes,omitempty"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (a *ChallengeAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.StartedAt.IsZero() {
		a.StartedAt = time.Now()
	}
	return nil
}
