package duel

import (
	"fmt"
	"log"
	"time"

	"github.com/moneefalasali/Shield-Spear/internal/metrics"
	"github.com/moneefalasali/Shield-Spear/internal/models"
	"github.com/moneefalasali/Shield-Spear/internal/scoring"
	"github.com/moneefalasali/Shield-Spear/internal/ws"
)

const (
	// maxDamage caps HP loss per successful hit regardless of score.
	maxDamage = 20
	// missPenalty is the HP cost of a failed competitive action.
	missPenalty = 8
	// cooldownInterval is the hard floor between a participant's actions.
	cooldownInterval = 3 * time.Second
)

// Engine is the duel action evaluator: it turns one submitted payload into
// score/HP/cooldown mutations, durable snapshots and room broadcasts.
type Engine struct {
	store     Store
	registry  *Registry
	evaluator scoring.Evaluator
	hub       Broadcaster
}

func NewEngine(store Store, registry *Registry, evaluator scoring.Evaluator, hub Broadcaster) *Engine {
	return &Engine{store: store, registry: registry, evaluator: evaluator, hub: hub}
}

// SubmitAction evaluates and records one action for a session. Bots and
// humans enter through this same path. The whole operation is serialized
// per session; faults in one participant's action never corrupt the
// session for others.
func (e *Engine) SubmitAction(code, actorID, actorName, payload, targetID string) error {
	// Only sessions that are actually playable may materialize live state.
	// A straggler against a finished or unknown code must not resurrect a
	// registry entry after finish/End dropped it.
	state, ok := e.registry.Get(code)
	if !ok {
		sess, err := e.store.SessionByCode(code)
		if err != nil {
			return err
		}
		if sess.Status == models.DuelStatusCompleted {
			return ErrSessionCompleted
		}
		state = e.registry.GetOrCreate(code)
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	sess, err := e.store.SessionByCode(code)
	if err != nil {
		return err
	}
	if sess.Status == models.DuelStatusCompleted {
		return ErrSessionCompleted
	}

	ch, err := e.store.ChallengeByID(sess.ChallengeID)
	if err != nil {
		// A broken challenge reference kills the whole session's
		// viability, so everyone in the room hears about it.
		e.hub.Broadcast(code, ws.Message{
			Type: "error",
			Data: map[string]string{"message": ErrChallengeMissing.Error()},
		})
		return ErrChallengeMissing
	}
	challengeType, err := scoring.ParseChallengeType(ch.ChallengeType)
	if err != nil {
		e.hub.Broadcast(code, ws.Message{
			Type: "error",
			Data: map[string]string{"message": ErrChallengeMissing.Error()},
		})
		return fmt.Errorf("%w: %v", ErrChallengeMissing, err)
	}

	now := time.Now()
	if expiry, ok := state.Cooldowns[actorID]; ok && now.Unix() < expiry {
		return ErrOnCooldown
	}

	result, err := e.safeEvaluate(challengeType, payload, scoring.Difficulty(ch.Difficulty))
	if err != nil {
		log.Printf("duel %s: evaluator fault for %s: %v", code, actorID, err)
		return fmt.Errorf("failed to execute action: %w", err)
	}

	record := ActionRecord{
		ActorID:   actorID,
		ActorName: actorName,
		Payload:   payload,
		TargetID:  targetID,
		IsCorrect: result.Success,
		Score:     result.Score,
		Feedback:  result.Feedback,
		Timestamp: now,
	}

	// Attempt history is logged, not commit-critical: a write failure must
	// not abort the live gameplay path.
	completedAt := now
	attempt := models.ChallengeAttempt{
		UserID:      actorID,
		ChallengeID: sess.ChallengeID,
		UserInput:   payload,
		IsCorrect:   result.Success,
		Score:       result.Score,
		Feedback:    result.Feedback,
		IsCompleted: true,
		CompletedAt: &completedAt,
	}
	if err := e.store.CreateAttempt(&attempt); err != nil {
		log.Printf("duel %s: attempt write failed for %s: %v", code, actorID, err)
	}

	state.Scores[actorID] += result.Score
	state.Log = append(state.Log, record)
	if _, ok := state.HP[actorID]; !ok {
		state.HP[actorID] = 100
	}

	if sess.TeamMode() {
		applyDamage(sess, state, actorID, targetID, result)
	}

	state.Cooldowns[actorID] = now.Add(cooldownInterval).Unix()

	// Best-effort durable snapshot; live state stays authoritative when
	// the write fails.
	sess.HPMap = copyIntMap(state.HP)
	sess.Cooldowns = copyInt64Map(state.Cooldowns)
	if sess.Results == nil {
		sess.Results = make(map[string]models.ParticipantResult)
	}
	sess.Results[actorID] = models.ParticipantResult{
		Username:  actorName,
		IsCorrect: result.Success,
		Score:     state.Scores[actorID],
		Feedback:  result.Feedback,
		LastSeen:  now,
	}
	if err := e.store.SaveSession(sess); err != nil {
		log.Printf("duel %s: snapshot write failed: %v", code, err)
	}

	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	metrics.ActionsEvaluated.WithLabelValues(string(challengeType), outcome).Inc()

	scores := copyIntMap(state.Scores)
	hpMap := copyIntMap(state.HP)
	cooldowns := copyInt64Map(state.Cooldowns)

	e.hub.Broadcast(code, ws.Message{
		Type: "action_result",
		Data: map[string]interface{}{
			"record":    record,
			"scores":    scores,
			"results":   sess.Results,
			"hp_map":    hpMap,
			"cooldowns": cooldowns,
		},
	})
	e.hub.Broadcast(code, ws.Message{
		Type: "session_update",
		Data: map[string]interface{}{
			"scores":    scores,
			"recent":    record,
			"hp_map":    hpMap,
			"cooldowns": cooldowns,
		},
	})

	if losers := zeroHP(state.HP); len(losers) > 0 {
		e.finish(sess, state, losers)
	}

	return nil
}

// safeEvaluate shields the session from a misbehaving collaborator: a
// panic is converted into an error reported to the acting caller only.
func (e *Engine) safeEvaluate(t scoring.ChallengeType, input string, d scoring.Difficulty) (result scoring.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("evaluator panic: %v", r)
		}
	}()
	result = e.evaluator.Evaluate(t, input, d)
	return result, nil
}

// applyDamage implements the competitive rule: a successful action damages
// opposing targets by min(maxDamage, score); a failed one costs the actor
// a fixed penalty instead.
func applyDamage(sess *models.DuelSession, state *LiveState, actorID, targetID string, result scoring.Result) {
	actorTeam := sess.ParticipantTeam(actorID)

	var targets []string
	if targetID != "" && targetID != actorID && sess.HasParticipant(targetID) {
		targets = []string{targetID}
	} else {
		for _, p := range sess.Participants {
			if p.UserID == actorID {
				continue
			}
			if actorTeam != "" && p.Team != "" && p.Team == actorTeam {
				continue
			}
			targets = append(targets, p.UserID)
		}
	}

	if result.Success {
		dmg := result.Score
		if dmg > maxDamage {
			dmg = maxDamage
		}
		for _, tid := range targets {
			if _, ok := state.HP[tid]; !ok {
				state.HP[tid] = 100
			}
			state.HP[tid] -= dmg
			if state.HP[tid] < 0 {
				state.HP[tid] = 0
			}
		}
		return
	}

	state.HP[actorID] -= missPenalty
	if state.HP[actorID] < 0 {
		state.HP[actorID] = 0
	}
}

// finish transitions the session to completed after a knockout and stops
// any bot loops. Called with the session lock held.
func (e *Engine) finish(sess *models.DuelSession, state *LiveState, losers []string) {
	now := time.Now()
	sess.Status = models.DuelStatusCompleted
	sess.CompletedAt = &now
	if err := e.store.SaveSession(sess); err != nil {
		log.Printf("duel %s: completion write failed: %v", sess.Code, err)
	}

	e.hub.Broadcast(sess.Code, ws.Message{
		Type: "session_ended",
		Data: map[string]interface{}{
			"results": sess.Results,
			"hp_map":  copyIntMap(state.HP),
			"losers":  losers,
			"mode":    sess.CreatorTeam,
		},
	})

	state.Stop()
	e.registry.Remove(sess.Code)
	metrics.ActiveDuels.Dec()
}

func zeroHP(hp map[string]int) []string {
	var losers []string
	for id, v := range hp {
		if v <= 0 {
			losers = append(losers, id)
		}
	}
	return losers
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyInt64Map(m map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
