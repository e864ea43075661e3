package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/moneefalasali/Shield-Spear/internal/bot"
	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"

	"gorm.io/gorm"
)

// ChallengeService covers solo play: the challenge catalog, attempts
// against the simulated opponent, and the leaderboard.
type ChallengeService struct {
	db        *gorm.DB
	evaluator scoring.Evaluator
}

func NewChallengeService(db *gorm.DB, evaluator scoring.Evaluator) *ChallengeService {
	return &ChallengeService{db: db, evaluator: evaluator}
}

func (s *ChallengeService) List(category string) ([]models.Challenge, error) {
	q := s.db.Where("is_active = ?", true)
	if category != "" && category != "all" {
		q = q.Where("category = ?", category)
	}
	var challenges []models.Challenge
	if err := q.Order("created_at ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (s *ChallengeService) Get(id string) (*models.Challenge, error) {
	var ch models.Challenge
	if err := s.db.First(&ch, "id = ?", id).Error; err != nil {
		return nil, errors.New("challenge not found")
	}
	return &ch, nil
}

// StartAttempt opens a solo attempt and reports which role the simulated
// opponent plays: red-team challenges get a defending bot and vice versa.
func (s *ChallengeService) StartAttempt(challengeID, userID string) (*models.ChallengeAttempt, scoring.Role, error) {
	ch, err := s.Get(challengeID)
	if err != nil {
		return nil, "", err
	}

	attempt := models.ChallengeAttempt{
		UserID:      userID,
		ChallengeID: ch.ID,
	}
	if err := s.db.Create(&attempt).Error; err != nil {
		return nil, "", err
	}

	return &attempt, BotRole(ch), nil
}

type AttemptResult struct {
	Attempt *models.ChallengeAttempt `json:"attempt"`
	Result  scoring.Result           `json:"result"`
}

// SubmitSolution evaluates a solo submission through the canonical
// collaborator and completes the attempt.
func (s *ChallengeService) SubmitSolution(attemptID, userID, input string) (*AttemptResult, error) {
	attempt, err := s.GetAttempt(attemptID, userID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, errors.New("attempt already completed")
	}
	if input == "" {
		return nil, errors.New("solution cannot be empty")
	}

	ch, err := s.Get(attempt.ChallengeID)
	if err != nil {
		return nil, err
	}
	challengeType, err := scoring.ParseChallengeType(ch.ChallengeType)
	if err != nil {
		return nil, fmt.Errorf("challenge misconfigured: %w", err)
	}

	result := s.evaluator.Evaluate(challengeType, input, scoring.Difficulty(ch.Difficulty))

	now := time.Now()
	attempt.UserInput = input
	attempt.IsCorrect = result.Success
	attempt.Score = result.Score
	attempt.Feedback = result.Feedback
	attempt.Mistakes = result.Errors
	attempt.TimeTaken = int(now.Sub(attempt.StartedAt).Seconds())
	attempt.IsCompleted = true
	attempt.CompletedAt = &now
	if err := s.db.Save(attempt).Error; err != nil {
		return nil, err
	}

	return &AttemptResult{Attempt: attempt, Result: result}, nil
}

func (s *ChallengeService) GetAttempt(attemptID, userID string) (*models.ChallengeAttempt, error) {
	var attempt models.ChallengeAttempt
	if err := s.db.First(&attempt, "id = ?", attemptID).Error; err != nil {
		return nil, errors.New("attempt not found")
	}
	if attempt.UserID != userID {
		return nil, errors.New("attempt not found")
	}
	return &attempt, nil
}

// BotInteract returns the opponent's canned reaction for a solo attempt.
func (s *ChallengeService) BotInteract(attemptID, userID, message string) (string, error) {
	attempt, err := s.GetAttempt(attemptID, userID)
	if err != nil {
		return "", err
	}
	if message == "" {
		return "", errors.New("message cannot be empty")
	}
	ch, err := s.Get(attempt.ChallengeID)
	if err != nil {
		return "", err
	}

	opponent := bot.New(scoring.Difficulty(ch.Difficulty), BotRole(ch), rand.New(rand.NewSource(time.Now().UnixNano())))
	return opponent.HintResponse(), nil
}

type LeaderboardEntry struct {
	Position int    `json:"position"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Leaderboard ranks users by cumulative completed-attempt score,
// optionally filtered by challenge category. Bot attempts never rank.
func (s *ChallengeService) Leaderboard(category string) ([]LeaderboardEntry, error) {
	q := s.db.Model(&models.ChallengeAttempt{}).
		Select("users.id AS user_id, users.username AS username, SUM(challenge_attempts.score) AS score").
		Joins("JOIN users ON users.id = challenge_attempts.user_id").
		Joins("JOIN challenges ON challenges.id = challenge_attempts.challenge_id").
		Where("challenge_attempts.is_completed = ?", true)
	if category != "" && category != "all" {
		q = q.Where("challenges.category = ?", category)
	}

	var entries []LeaderboardEntry
	err := q.Group("users.id, users.username").
		Having("SUM(challenge_attempts.score) > 0").
		Order("score DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

// BotRole picks the opponent's side: it defends against red-team players
// and attacks everyone else.
func BotRole(ch *models.Challenge) scoring.Role {
	if ch.Category == models.CategoryRed {
		return scoring.RoleDefender
	}
	return scoring.RoleAttacker
}
