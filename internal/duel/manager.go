package duel

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/moneefalasali/Shield-Spear/internal/bot"
	"github.com/moneefalasali/Shield-Spear/internal/metrics"
	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"
	"github.com/moneefalasali/Shield-Spear/internal/util"
	"github.com/moneefalasali/Shield-Spear/internal/ws"
)

const (
	codeLength = 8
	botPrefix  = "bot-"
)

// Manager drives the duel lifecycle: creation, joining, starting (with bot
// auto-spawn when under-populated) and ending. It owns the durable record;
// in-flight gameplay goes through the Engine.
type Manager struct {
	store    Store
	registry *Registry
	engine   *Engine
	hub      Broadcaster
}

func NewManager(store Store, registry *Registry, engine *Engine, hub Broadcaster) *Manager {
	return &Manager{store: store, registry: registry, engine: engine, hub: hub}
}

// Create opens a new waiting session. team is "" for cooperative play or
// "red"/"blue" for competitive mode; the creator joins immediately.
func (m *Manager) Create(creatorID, username, challengeID, team string) (*models.DuelSession, error) {
	if team != "" && team != models.TeamRed && team != models.TeamBlue {
		return nil, fmt.Errorf("invalid team %q", team)
	}
	if _, err := m.store.ChallengeByID(challengeID); err != nil {
		return nil, err
	}

	code, err := m.uniqueCode()
	if err != nil {
		return nil, err
	}

	sess := &models.DuelSession{
		CreatorID:   creatorID,
		ChallengeID: challengeID,
		Code:        code,
		CreatorTeam: team,
		Status:      models.DuelStatusWaiting,
		Participants: []models.Participant{
			{UserID: creatorID, Username: username, Team: team},
		},
	}
	if err := m.store.CreateSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Join adds a participant to a waiting session. Joining twice is a no-op
// that keeps the existing team assignment. In team mode the joiner lands on
// the side opposite the creator and a second participant auto-starts play.
func (m *Manager) Join(code, userID, username string) (*models.DuelSession, error) {
	sess, err := m.store.SessionByCode(code)
	if err != nil {
		return nil, err
	}
	switch sess.Status {
	case models.DuelStatusWaiting:
	case models.DuelStatusInProgress:
		return nil, ErrSessionStarted
	default:
		return nil, ErrSessionCompleted
	}

	team := ""
	if sess.TeamMode() {
		team = sess.OpposingTeam()
	}
	if sess.AddParticipant(models.Participant{UserID: userID, Username: username, Team: team}) {
		if err := m.store.SaveSession(sess); err != nil {
			return nil, err
		}
	}

	m.hub.Broadcast(code, ws.Message{
		Type: "user_joined",
		Data: map[string]interface{}{
			"username":     username,
			"participants": participantNames(sess),
		},
	})

	if sess.TeamMode() && len(sess.Participants) >= 2 {
		if err := m.start(sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// Start begins a waiting session; only the creator may start explicitly.
func (m *Manager) Start(code, callerID string) (*models.DuelSession, error) {
	sess, err := m.store.SessionByCode(code)
	if err != nil {
		return nil, err
	}
	if sess.CreatorID != callerID {
		return nil, ErrNotCreator
	}
	switch sess.Status {
	case models.DuelStatusWaiting:
	case models.DuelStatusInProgress:
		return nil, ErrSessionStarted
	default:
		return nil, ErrSessionCompleted
	}
	if err := m.start(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *Manager) start(sess *models.DuelSession) error {
	ch, err := m.store.ChallengeByID(sess.ChallengeID)
	if err != nil {
		return err
	}

	now := time.Now()
	sess.Status = models.DuelStatusInProgress
	sess.StartedAt = &now
	if err := m.store.SaveSession(sess); err != nil {
		sess.Status = models.DuelStatusWaiting
		sess.StartedAt = nil
		log.Printf("duel %s: start persist failed: %v", sess.Code, err)
		return err
	}

	// One attempt record per participant; a failed write skips that
	// participant but never blocks the start.
	attempts := make(map[string]string, len(sess.Participants))
	names := make(map[string]string, len(sess.Participants))
	for _, p := range sess.Participants {
		names[p.UserID] = p.Username
		attempt := models.ChallengeAttempt{
			UserID:      p.UserID,
			ChallengeID: sess.ChallengeID,
		}
		if err := m.store.CreateAttempt(&attempt); err != nil {
			log.Printf("duel %s: attempt create failed for %s: %v", sess.Code, p.UserID, err)
			continue
		}
		attempts[p.UserID] = attempt.ID
	}

	state := m.registry.GetOrCreate(sess.Code)
	state.mu.Lock()
	state.running.Store(true)
	for _, p := range sess.Participants {
		if _, ok := state.Scores[p.UserID]; !ok {
			state.Scores[p.UserID] = 0
		}
		if _, ok := state.HP[p.UserID]; !ok {
			state.HP[p.UserID] = 100
		}
	}

	// Under-populated sessions get a synthetic opponent so solo players
	// still have someone to fight.
	botID, botName := "", ""
	if humanCount(sess) < 2 {
		botID = botPrefix + strings.ToLower(prefix(sess.Code, 6))
		botName = "Bot-" + prefix(sess.Code, 4)
		state.Scores[botID] = 0
		state.HP[botID] = 100
		attempts[botID] = "bot-attempt-" + botID
		names[botID] = botName
		sess.AddParticipant(models.Participant{
			UserID:   botID,
			Username: botName,
			Team:     sess.OpposingTeam(),
		})
	}

	sess.HPMap = copyIntMap(state.HP)
	sess.Cooldowns = copyInt64Map(state.Cooldowns)
	state.mu.Unlock()

	if err := m.store.SaveSession(sess); err != nil {
		log.Printf("duel %s: seed snapshot write failed: %v", sess.Code, err)
	}

	metrics.ActiveDuels.Inc()

	m.hub.Broadcast(sess.Code, ws.Message{
		Type: "session_started",
		Data: map[string]interface{}{
			"session_code": sess.Code,
			"challenge_id": sess.ChallengeID,
			"mode":         sess.CreatorTeam,
			"attempts":     attempts,
			"participants": names,
		},
	})

	if botID != "" {
		go m.runBotLoop(sess.Code, botID, botName, ch, state)
	}
	return nil
}

// runBotLoop feeds bot actions through the same engine entry point humans
// use, until the session's running flag clears. A cooldown rejection
// retries the same scripted step next tick; any other failure stops the
// bot silently.
func (m *Manager) runBotLoop(code, botID, botName string, ch *models.Challenge, state *LiveState) {
	challengeType, err := scoring.ParseChallengeType(ch.ChallengeType)
	if err != nil {
		log.Printf("duel %s: bot cannot play misconfigured challenge: %v", code, err)
		return
	}
	opponent := bot.New(scoring.Difficulty(ch.Difficulty), scoring.RoleAttacker, nil)

	step := 0
	for state.Running() {
		action := opponent.NextAction(challengeType, step)
		err := m.engine.SubmitAction(code, botID, botName, action.Description, "")
		switch {
		case err == nil:
			metrics.BotActions.Inc()
			step++
		case errors.Is(err, ErrOnCooldown):
			// keep the same step, try again after the delay
		default:
			return
		}
		util.Sleep(opponent.ReactionDelay())
	}
}

// End completes a session on request. Any participant may end it. It takes
// the session's live-state lock so an action in flight finishes its whole
// snapshot first; the completed status written here can then never be
// overwritten by a stale in_progress snapshot.
func (m *Manager) End(code, callerID string) (*models.DuelSession, error) {
	state := m.registry.GetOrCreate(code)
	state.mu.Lock()
	defer state.mu.Unlock()

	sess, err := m.store.SessionByCode(code)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			m.registry.Remove(code)
		}
		return nil, err
	}
	if !sess.HasParticipant(callerID) {
		if state.untouched() {
			m.registry.Remove(code)
		}
		return nil, ErrNotParticipant
	}
	if sess.Status == models.DuelStatusCompleted {
		m.registry.Remove(code)
		return nil, ErrSessionCompleted
	}

	prevStatus := sess.Status
	prevCompleted := sess.CompletedAt
	now := time.Now()
	sess.Status = models.DuelStatusCompleted
	sess.CompletedAt = &now
	if err := m.store.SaveSession(sess); err != nil {
		sess.Status = prevStatus
		sess.CompletedAt = prevCompleted
		log.Printf("duel %s: end persist failed: %v", code, err)
		return nil, err
	}

	state.Stop()
	m.registry.Remove(code)
	if prevStatus == models.DuelStatusInProgress {
		metrics.ActiveDuels.Dec()
	}

	m.hub.Broadcast(code, ws.Message{
		Type: "session_ended",
		Data: map[string]interface{}{
			"results": sess.Results,
			"hp_map":  sess.HPMap,
			"mode":    sess.CreatorTeam,
		},
	})
	return sess, nil
}

// Snapshot combines the durable record with live numbers for UI polls.
type Snapshot struct {
	Session   *models.DuelSession `json:"session"`
	Scores    map[string]int      `json:"scores,omitempty"`
	HPMap     map[string]int      `json:"hp_map,omitempty"`
	Cooldowns map[string]int64    `json:"cooldowns,omitempty"`
	Log       []ActionRecord      `json:"log,omitempty"`
	Running   bool                `json:"running"`
}

func (m *Manager) Snapshot(code string) (*Snapshot, error) {
	sess, err := m.store.SessionByCode(code)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Session: sess}
	if state, ok := m.registry.Get(code); ok {
		state.mu.Lock()
		snap.Scores = copyIntMap(state.Scores)
		snap.HPMap = copyIntMap(state.HP)
		snap.Cooldowns = copyInt64Map(state.Cooldowns)
		snap.Log = append([]ActionRecord(nil), state.Log...)
		snap.Running = state.Running()
		state.mu.Unlock()
	} else {
		snap.HPMap = sess.HPMap
		snap.Cooldowns = sess.Cooldowns
	}
	return snap, nil
}

func (m *Manager) uniqueCode() (string, error) {
	for i := 0; i < 32; i++ {
		code := util.GenerateCode(codeLength)
		inUse, err := m.store.CodeInUse(code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique session code")
}

func humanCount(sess *models.DuelSession) int {
	n := 0
	for _, p := range sess.Participants {
		if strings.HasPrefix(p.UserID, botPrefix) {
			continue
		}
		n++
	}
	return n
}

func participantNames(sess *models.DuelSession) []string {
	names := make([]string, 0, len(sess.Participants))
	for _, p := range sess.Participants {
		names = append(names, p.Username)
	}
	return names
}

func prefix(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
