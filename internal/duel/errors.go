package duel

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrChallengeMissing = errors.New("the challenge associated with the session is missing")
	ErrSessionStarted   = errors.New("session already started")
	ErrSessionCompleted = errors.New("session already completed")
	ErrNotCreator       = errors.New("only the session creator can start it")
	ErrNotParticipant   = errors.New("caller is not a participant of this session")
	ErrOnCooldown       = errors.New("action submitted before cooldown expired")
)
