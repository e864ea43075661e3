package duel

import (
	"sync"

	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"
	"github.com/moneefalasali/Shield-Spear/internal/ws"

	"github.com/google/uuid"
)

// fakeStore mimics the database's copy semantics: loads hand out clones,
// so only SaveSession makes mutations visible to the next load.
type fakeStore struct {
	mu         sync.Mutex
	sessions   map[string]*models.DuelSession
	challenges map[string]*models.Challenge
	attempts   []models.ChallengeAttempt

	failSave    error
	failAttempt error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:   make(map[string]*models.DuelSession),
		challenges: make(map[string]*models.Challenge),
	}
}

func (f *fakeStore) addChallenge(ch *models.Challenge) *models.Challenge {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	f.challenges[ch.ID] = ch
	return ch
}

func (f *fakeStore) CreateSession(s *models.DuelSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	f.sessions[s.Code] = cloneSession(s)
	return nil
}

func (f *fakeStore) SessionByCode(code string) (*models.DuelSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[code]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (f *fakeStore) SaveSession(s *models.DuelSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave != nil {
		return f.failSave
	}
	f.sessions[s.Code] = cloneSession(s)
	return nil
}

func (f *fakeStore) ChallengeByID(id string) (*models.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.challenges[id]
	if !ok {
		return nil, ErrChallengeMissing
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeStore) CreateAttempt(a *models.ChallengeAttempt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAttempt != nil {
		return f.failAttempt
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeStore) CodeInUse(code string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.sessions[code]
	return ok, nil
}

func (f *fakeStore) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attempts)
}

func cloneSession(s *models.DuelSession) *models.DuelSession {
	cp := *s
	cp.Participants = append([]models.Participant(nil), s.Participants...)
	if s.Results != nil {
		cp.Results = make(map[string]models.ParticipantResult, len(s.Results))
		for k, v := range s.Results {
			cp.Results[k] = v
		}
	}
	cp.HPMap = copyIntMap(s.HPMap)
	cp.Cooldowns = copyInt64Map(s.Cooldowns)
	return &cp
}

// recorderHub captures broadcasts for assertions.
type recorderHub struct {
	mu       sync.Mutex
	messages []recordedMessage
}

type recordedMessage struct {
	code string
	msg  ws.Message
}

func (r *recorderHub) Broadcast(code string, msg ws.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, recordedMessage{code: code, msg: msg})
}

func (r *recorderHub) ofType(msgType string) []ws.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ws.Message
	for _, m := range r.messages {
		if m.msg.Type == msgType {
			out = append(out, m.msg)
		}
	}
	return out
}

// fixedEvaluator always returns the same result.
func fixedEvaluator(result scoring.Result) scoring.EvaluatorFunc {
	return func(scoring.ChallengeType, string, scoring.Difficulty) scoring.Result {
		return result
	}
}

// clearCooldown lets a test actor move again immediately.
func clearCooldown(reg *Registry, code, actorID string) {
	state := reg.GetOrCreate(code)
	state.mu.Lock()
	delete(state.Cooldowns, actorID)
	state.mu.Unlock()
}
