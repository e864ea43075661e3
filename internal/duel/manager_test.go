package duel

import (
	"strings"
	"testing"
	"time"

	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *fakeStore, *Registry, *recorderHub, *models.Challenge) {
	t.Helper()

	store := newFakeStore()
	hub := &recorderHub{}
	registry := NewRegistry()
	engine := NewEngine(store, registry, fixedEvaluator(scoring.Result{
		Success:  false,
		Score:    0,
		Feedback: "rejected",
	}), hub)
	manager := NewManager(store, registry, engine, hub)

	ch := store.addChallenge(&models.Challenge{
		Title:         "XSS Defense",
		Category:      models.CategoryBlue,
		Difficulty:    string(scoring.DifficultyEasy),
		ChallengeType: string(scoring.TypeXSS),
		MaxScore:      100,
	})
	return manager, store, registry, hub, ch
}

func TestManagerCreate(t *testing.T) {
	t.Run("Cooperative", func(t *testing.T) {
		manager, store, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		assert.Len(t, sess.Code, 8)
		assert.Equal(t, models.DuelStatusWaiting, sess.Status)
		assert.False(t, sess.TeamMode())
		require.Len(t, sess.Participants, 1)
		assert.Equal(t, "alice", sess.Participants[0].UserID)

		persisted, err := store.SessionByCode(sess.Code)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, persisted.ID)
	})

	t.Run("TeamMode", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamBlue)
		require.NoError(t, err)
		assert.True(t, sess.TeamMode())
		assert.Equal(t, models.TeamBlue, sess.Participants[0].Team)
	})

	t.Run("InvalidTeam", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		_, err := manager.Create("alice", "Alice", ch.ID, "purple")
		assert.Error(t, err)
	})

	t.Run("UnknownChallenge", func(t *testing.T) {
		manager, _, _, _, _ := newTestManager(t)

		_, err := manager.Create("alice", "Alice", "nope", "")
		assert.ErrorIs(t, err, ErrChallengeMissing)
	})
}

func TestManagerJoin(t *testing.T) {
	t.Run("CooperativeStaysWaiting", func(t *testing.T) {
		manager, _, _, hub, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		joined, err := manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusWaiting, joined.Status, "cooperative sessions wait for an explicit start")
		assert.Len(t, joined.Participants, 2)
		assert.Len(t, hub.ofType("user_joined"), 1)
	})

	t.Run("Idempotent", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)
		again, err := manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)
		assert.Len(t, again.Participants, 2)
	})

	t.Run("TeamModeAutoStarts", func(t *testing.T) {
		manager, _, registry, hub, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamRed)
		require.NoError(t, err)

		joined, err := manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusInProgress, joined.Status)
		assert.Equal(t, models.TeamBlue, joined.ParticipantTeam("bob"))
		require.NotNil(t, joined.StartedAt)
		assert.Len(t, hub.ofType("session_started"), 1)

		// two humans, no bot
		for _, p := range joined.Participants {
			assert.False(t, strings.HasPrefix(p.UserID, botPrefix))
		}

		state, ok := registry.Get(sess.Code)
		require.True(t, ok)
		state.mu.Lock()
		assert.Equal(t, 100, state.HP["alice"])
		assert.Equal(t, 100, state.HP["bob"])
		state.mu.Unlock()
	})

	t.Run("RejectsStartedSession", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamRed)
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		_, err = manager.Join(sess.Code, "carol", "Carol")
		assert.ErrorIs(t, err, ErrSessionStarted)
	})

	t.Run("RejectsCompletedSession", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)
		_, err = manager.End(sess.Code, "alice")
		require.NoError(t, err)

		_, err = manager.Join(sess.Code, "bob", "Bob")
		assert.ErrorIs(t, err, ErrSessionCompleted)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		manager, _, _, _, _ := newTestManager(t)

		_, err := manager.Join("NOPE1234", "bob", "Bob")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManagerStart(t *testing.T) {
	t.Run("NonCreatorForbidden", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		_, err = manager.Start(sess.Code, "bob")
		assert.ErrorIs(t, err, ErrNotCreator)
	})

	t.Run("SoloStartSpawnsBot", func(t *testing.T) {
		manager, _, registry, hub, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		started, err := manager.Start(sess.Code, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusInProgress, started.Status)

		require.Len(t, started.Participants, 2)
		botP := started.Participants[1]
		assert.True(t, strings.HasPrefix(botP.UserID, botPrefix))
		assert.True(t, strings.HasPrefix(botP.Username, "Bot-"))

		state, ok := registry.Get(sess.Code)
		require.True(t, ok)
		state.mu.Lock()
		assert.Equal(t, 100, state.HP[botP.UserID])
		state.mu.Unlock()

		startedMsgs := hub.ofType("session_started")
		require.Len(t, startedMsgs, 1)
		data := startedMsgs[0].Data.(map[string]interface{})
		attempts := data["attempts"].(map[string]string)
		assert.Contains(t, attempts, "alice")
		assert.Contains(t, attempts, botP.UserID)

		// shut the bot loop down
		_, err = manager.End(sess.Code, "alice")
		require.NoError(t, err)
		assert.False(t, state.Running())
	})

	t.Run("TwoHumansNoBot", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		started, err := manager.Start(sess.Code, "alice")
		require.NoError(t, err)
		assert.Len(t, started.Participants, 2)
		for _, p := range started.Participants {
			assert.False(t, strings.HasPrefix(p.UserID, botPrefix))
		}
	})

	t.Run("AlreadyStarted", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamRed)
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		_, err = manager.Start(sess.Code, "alice")
		assert.ErrorIs(t, err, ErrSessionStarted)
	})
}

func TestManagerEnd(t *testing.T) {
	t.Run("ParticipantsOnly", func(t *testing.T) {
		manager, _, registry, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		_, err = manager.End(sess.Code, "mallory")
		assert.ErrorIs(t, err, ErrNotParticipant)
		assert.Zero(t, registry.Len(), "a rejected End leaves no live state behind")
	})

	t.Run("CompletesAndCleansUp", func(t *testing.T) {
		manager, store, registry, hub, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamRed)
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		ended, err := manager.End(sess.Code, "bob")
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusCompleted, ended.Status)
		require.NotNil(t, ended.CompletedAt)
		assert.Len(t, hub.ofType("session_ended"), 1)

		_, ok := registry.Get(sess.Code)
		assert.False(t, ok)

		persisted, err := store.SessionByCode(sess.Code)
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusCompleted, persisted.Status)

		snap, err := manager.Snapshot(sess.Code)
		require.NoError(t, err)
		assert.False(t, snap.Running, "completed sessions never report as running")
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)
		_, err = manager.End(sess.Code, "alice")
		require.NoError(t, err)

		_, err = manager.End(sess.Code, "alice")
		assert.ErrorIs(t, err, ErrSessionCompleted)
	})

	t.Run("WaitsForInFlightAction", func(t *testing.T) {
		store := newFakeStore()
		hub := &recorderHub{}
		registry := NewRegistry()

		entered := make(chan struct{})
		release := make(chan struct{})
		engine := NewEngine(store, registry, scoring.EvaluatorFunc(
			func(scoring.ChallengeType, string, scoring.Difficulty) scoring.Result {
				close(entered)
				<-release
				return scoring.Result{Success: true, Score: 50}
			}), hub)
		manager := NewManager(store, registry, engine, hub)
		seedSession(t, store, "")

		actionDone := make(chan error, 1)
		go func() {
			actionDone <- engine.SubmitAction("TESTCODE", "alice", "Alice", "payload", "")
		}()
		<-entered

		endDone := make(chan error, 1)
		go func() {
			_, err := manager.End("TESTCODE", "bob")
			endDone <- err
		}()

		select {
		case <-endDone:
			t.Fatal("End completed while an action held the session lock")
		case <-time.After(50 * time.Millisecond):
		}

		close(release)
		require.NoError(t, <-actionDone)
		require.NoError(t, <-endDone)

		// the in-flight action's snapshot lands first; completed sticks
		persisted, err := store.SessionByCode("TESTCODE")
		require.NoError(t, err)
		assert.Equal(t, models.DuelStatusCompleted, persisted.Status)

		err = engine.SubmitAction("TESTCODE", "alice", "Alice", "again", "")
		assert.ErrorIs(t, err, ErrSessionCompleted)
		assert.Zero(t, registry.Len())
	})
}

func TestManagerSnapshot(t *testing.T) {
	t.Run("DurableFallback", func(t *testing.T) {
		manager, _, _, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, "")
		require.NoError(t, err)

		snap, err := manager.Snapshot(sess.Code)
		require.NoError(t, err)
		assert.Equal(t, sess.Code, snap.Session.Code)
		assert.False(t, snap.Running)
	})

	t.Run("LiveStateWins", func(t *testing.T) {
		manager, _, registry, _, ch := newTestManager(t)

		sess, err := manager.Create("alice", "Alice", ch.ID, models.TeamRed)
		require.NoError(t, err)
		_, err = manager.Join(sess.Code, "bob", "Bob")
		require.NoError(t, err)

		state, _ := registry.Get(sess.Code)
		state.mu.Lock()
		state.Scores["alice"] = 120
		state.mu.Unlock()

		snap, err := manager.Snapshot(sess.Code)
		require.NoError(t, err)
		assert.True(t, snap.Running)
		assert.Equal(t, 120, snap.Scores["alice"])
		assert.Equal(t, 100, snap.HPMap["bob"])
	})
}
