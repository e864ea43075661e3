package scoring

import "strings"

// Baseline is a deterministic stand-in collaborator used for wiring and
// tests. The production deployment plugs in the real keyword-matching
// evaluator behind the same interface.
type Baseline struct{}

func NewBaseline() Baseline { return Baseline{} }

func (Baseline) Evaluate(challengeType ChallengeType, input string, difficulty Difficulty) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{
			Feedback: "empty submission",
			Errors:   []string{"input must not be empty"},
		}
	}

	words := len(strings.Fields(trimmed))
	score := 40 + 10*words
	if score > 100 {
		score = 100
	}

	// Harder tiers demand more substance for the same raw input.
	switch difficulty {
	case DifficultyMedium:
		score = score * 85 / 100
	case DifficultyHard:
		score = score * 70 / 100
	}

	success := score >= 60
	feedback := "submission rejected: not convincing enough for " + string(challengeType)
	if success {
		feedback = "submission accepted for " + string(challengeType)
	}

	return Result{
		Success:  success,
		Score:    score,
		Feedback: feedback,
	}
}
