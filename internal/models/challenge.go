package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Challenge struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"size:120;not null" json:"title"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	Category      string    `gorm:"size:50;not null;index" json:"category"`
	Difficulty    string    `gorm:"size:20;not null" json:"difficulty"`
	ChallengeType string    `gorm:"size:50;not null" json:"challenge_type"`
	MaxScore      int       `gorm:"not null;default:100" json:"max_score"`
	TimeLimit     int       `gorm:"not null;default:300" json:"time_limit"`
	Hints         []string  `gorm:"serializer:json" json:"hints,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	CategoryRed  = "red"
	CategoryBlue = "blue"
	CategoryCoop = "coop"
)

func (c *Challenge) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
