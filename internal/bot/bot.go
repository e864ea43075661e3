// Package bot implements the simulated opponent: a difficulty-parameterized
// policy that produces timed pseudo-actions for a challenge type. It keeps
// no state of its own; the caller threads the step index.
package bot

import (
	"math/rand"
	"time"

	"github.com/moneefalasali/Shield-Spear/internal/scoring"
)

type skill struct {
	reactionMin time.Duration
	reactionMax time.Duration
	successRate float64
	mistakeRate float64
	thinkMin    time.Duration
	thinkMax    time.Duration
}

var skillLevels = map[scoring.Difficulty]skill{
	scoring.DifficultyEasy: {
		reactionMin: 3 * time.Second,
		reactionMax: 6 * time.Second,
		successRate: 0.3,
		mistakeRate: 0.4,
		thinkMin:    2 * time.Second,
		thinkMax:    5 * time.Second,
	},
	scoring.DifficultyMedium: {
		reactionMin: 2 * time.Second,
		reactionMax: 4 * time.Second,
		successRate: 0.6,
		mistakeRate: 0.2,
		thinkMin:    1 * time.Second,
		thinkMax:    3 * time.Second,
	},
	scoring.DifficultyHard: {
		reactionMin: 1 * time.Second,
		reactionMax: 2 * time.Second,
		successRate: 0.85,
		mistakeRate: 0.05,
		thinkMin:    500 * time.Millisecond,
		thinkMax:    2 * time.Second,
	},
}

type Opponent struct {
	difficulty scoring.Difficulty
	role       scoring.Role
	skill      skill
	rnd        *rand.Rand
}

// New builds an opponent for the given tier and role. Unknown difficulties
// fall back to medium, as a misconfigured challenge should still yield a
// playable bot. rnd may be nil; a time-seeded source is used then.
func New(difficulty scoring.Difficulty, role scoring.Role, rnd *rand.Rand) *Opponent {
	sk, ok := skillLevels[difficulty]
	if !ok {
		difficulty = scoring.DifficultyMedium
		sk = skillLevels[difficulty]
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Opponent{
		difficulty: difficulty,
		role:       role,
		skill:      sk,
		rnd:        rnd,
	}
}

func (o *Opponent) Difficulty() scoring.Difficulty { return o.difficulty }
func (o *Opponent) Role() scoring.Role             { return o.role }

// NextAction selects the scripted move for the given step, clamped to the
// script's last entry, and samples its success by the tier's rate. Failed
// moves get a visible marker so humans can read the bot's stumble.
func (o *Opponent) NextAction(challengeType scoring.ChallengeType, step int) Action {
	byRole, ok := scripts[challengeType]
	if !ok {
		byRole = scripts[scoring.TypeServerConfig]
	}
	script := byRole[o.role]
	if len(script) == 0 {
		script = byRole[scoring.RoleAttacker]
	}

	if step < 0 {
		step = 0
	}
	if step >= len(script) {
		step = len(script) - 1
	}

	action := script[step]
	action.Success = o.rnd.Float64() < o.skill.successRate
	if !action.Success {
		action.Description += " (Failed)"
	}
	return action
}

// ReactionDelay samples how long the bot waits before its next move.
func (o *Opponent) ReactionDelay() time.Duration {
	return o.sampleRange(o.skill.reactionMin, o.skill.reactionMax)
}

// ThinkingTime samples how long the bot pretends to deliberate.
func (o *Opponent) ThinkingTime() time.Duration {
	return o.sampleRange(o.skill.thinkMin, o.skill.thinkMax)
}

// ShouldMakeMistake samples the tier's mistake rate. Callers may use it to
// inject extra randomness; core play does not depend on it.
func (o *Opponent) ShouldMakeMistake() bool {
	return o.rnd.Float64() < o.skill.mistakeRate
}

// HintResponse returns a canned reaction to seeing the player's move.
func (o *Opponent) HintResponse() string {
	return hintResponses[o.rnd.Intn(len(hintResponses))]
}

func (o *Opponent) sampleRange(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(o.rnd.Int63n(int64(max-min)))
}
