package duel

import (
	"errors"

	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/ws"

	"gorm.io/gorm"
)

// Store is the durable side of a duel: anything that can load and save
// sessions by code and append attempt history satisfies it.
type Store interface {
	CreateSession(s *models.DuelSession) error
	SessionByCode(code string) (*models.DuelSession, error)
	SaveSession(s *models.DuelSession) error
	ChallengeByID(id string) (*models.Challenge, error)
	CreateAttempt(a *models.ChallengeAttempt) error
	CodeInUse(code string) (bool, error)
}

// Broadcaster delivers an event to every client connected to a duel.
type Broadcaster interface {
	Broadcast(code string, msg ws.Message)
}

// GormStore backs Store with the relational database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateSession(sess *models.DuelSession) error {
	return s.db.Create(sess).Error
}

func (s *GormStore) SessionByCode(code string) (*models.DuelSession, error) {
	var sess models.DuelSession
	if err := s.db.Where("code = ?", code).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *GormStore) SaveSession(sess *models.DuelSession) error {
	return s.db.Save(sess).Error
}

func (s *GormStore) ChallengeByID(id string) (*models.Challenge, error) {
	var ch models.Challenge
	if err := s.db.First(&ch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeMissing
		}
		return nil, err
	}
	return &ch, nil
}

func (s *GormStore) CreateAttempt(a *models.ChallengeAttempt) error {
	return s.db.Create(a).Error
}

func (s *GormStore) CodeInUse(code string) (bool, error) {
	var count int64
	err := s.db.Model(&models.DuelSession{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}
