// Package scoring defines the challenge taxonomy and the contract of the
// external scoring collaborator that judges submitted payloads.
package scoring

import "fmt"

type ChallengeType string

const (
	TypeSQLInjection     ChallengeType = "sql_injection"
	TypeXSS              ChallengeType = "xss"
	TypeDoS              ChallengeType = "dos"
	TypePasswordStrength ChallengeType = "password_strength"
	TypeServerConfig     ChallengeType = "server_config"
	TypeCSRF             ChallengeType = "csrf"
	TypeCommandInjection ChallengeType = "command_injection"
)

// ChallengeTypes lists every supported type. Dispatch on challenge type is
// validated against this closed set instead of routing by raw strings.
var ChallengeTypes = []ChallengeType{
	TypeSQLInjection,
	TypeXSS,
	TypeDoS,
	TypePasswordStrength,
	TypeServerConfig,
	TypeCSRF,
	TypeCommandInjection,
}

func (t ChallengeType) Valid() bool {
	for _, known := range ChallengeTypes {
		if t == known {
			return true
		}
	}
	return false
}

func ParseChallengeType(s string) (ChallengeType, error) {
	t := ChallengeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown challenge type %q", s)
	}
	return t, nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

type Role string

const (
	RoleAttacker Role = "attacker"
	RoleDefender Role = "defender"
)

// Result is the collaborator's verdict on a single payload.
type Result struct {
	Success  bool     `json:"success"`
	Score    int      `json:"score"`
	Feedback string   `json:"feedback"`
	Errors   []string `json:"errors,omitempty"`
}

// Evaluator judges a free-text payload against a challenge type. It must be
// pure, fast and side-effect free.
type Evaluator interface {
	Evaluate(challengeType ChallengeType, input string, difficulty Difficulty) Result
}

type EvaluatorFunc func(ChallengeType, string, Difficulty) Result

func (f EvaluatorFunc) Evaluate(t ChallengeType, input string, d Difficulty) Result {
	return f(t, input, d)
}
