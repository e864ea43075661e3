package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DuelStatusWaiting    = "waiting"
	DuelStatusInProgress = "in_progress"
	DuelStatusCompleted  = "completed"

	TeamRed  = "red"
	TeamBlue = "blue"
)

// Participant is one entry in a duel's ordered participant list. Team is
// empty in cooperative sessions.
type Participant struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Team     string `json:"team,omitempty"`
}

// ParticipantResult is the last-write-wins summary kept per participant.
type ParticipantResult struct {
	Username  string    `json:"username"`
	IsCorrect bool      `json:"is_correct"`
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback"`
	LastSeen  time.Time `json:"last_seen"`
}

// DuelSession is the durable record of one duel. The JSON-serialized
// columns keep the wire shape of the persisted snapshot while the Go side
// works with typed structs.
type DuelSession struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	CreatorID   string `gorm:"size:36;not null;index" json:"creator_id"`
	ChallengeID string `gorm:"size:36;not null" json:"challenge_id"`
	Code        string `gorm:"size:8;uniqueIndex;not null" json:"code"`

	// CreatorTeam is empty for cooperative sessions; "red" or "blue"
	// switches the session to competitive team mode.
	CreatorTeam string `gorm:"size:20" json:"creator_team,omitempty"`
	Status      string `gorm:"size:20;not null;default:'waiting'" json:"status"`

	Participants []Participant                `gorm:"serializer:json" json:"participants"`
	Results      map[string]ParticipantResult `gorm:"serializer:json" json:"results,omitempty"`
	HPMap        map[string]int               `gorm:"serializer:json" json:"hp_map,omitempty"`
	Cooldowns    map[string]int64             `gorm:"serializer:json" json:"cooldowns,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (s *DuelSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TeamMode reports whether competitive PvP rules apply.
func (s *DuelSession) TeamMode() bool {
	return s.CreatorTeam == TeamRed || s.CreatorTeam == TeamBlue
}

func (s *DuelSession) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// ParticipantTeam returns the team of the given participant, empty when
// unassigned or unknown.
func (s *DuelSession) ParticipantTeam(userID string) string {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return p.Team
		}
	}
	return ""
}

// AddParticipant appends a participant, keeping the list unique by id.
// It reports whether the list changed.
func (s *DuelSession) AddParticipant(p Participant) bool {
	if s.HasParticipant(p.UserID) {
		return false
	}
	s.Participants = append(s.Participants, p)
	return true
}

// OpposingTeam returns the side opposite the creator's.
func (s *DuelSession) OpposingTeam() string {
	if s.CreatorTeam == TeamRed {
		return TeamBlue
	}
	if s.CreatorTeam == TeamBlue {
		return TeamRed
	}
	return ""
}
