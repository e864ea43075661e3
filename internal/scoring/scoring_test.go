package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChallengeType(t *testing.T) {
	t.Run("Known", func(t *testing.T) {
		for _, ct := range ChallengeTypes {
			parsed, err := ParseChallengeType(string(ct))
			require.NoError(t, err)
			assert.Equal(t, ct, parsed)
			assert.True(t, ct.Valid())
		}
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := ParseChallengeType("quantum_hacking")
		assert.Error(t, err)
		assert.False(t, ChallengeType("quantum_hacking").Valid())
	})
}

func TestDifficultyValid(t *testing.T) {
	assert.True(t, DifficultyEasy.Valid())
	assert.True(t, DifficultyMedium.Valid())
	assert.True(t, DifficultyHard.Valid())
	assert.False(t, Difficulty("nightmare").Valid())
}

func TestBaselineEvaluate(t *testing.T) {
	b := NewBaseline()

	t.Run("EmptyInputFails", func(t *testing.T) {
		result := b.Evaluate(TypeSQLInjection, "   ", DifficultyEasy)
		assert.False(t, result.Success)
		assert.Zero(t, result.Score)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("WordCountDrivesScore", func(t *testing.T) {
		result := b.Evaluate(TypeXSS, "inject script payload", DifficultyEasy)
		assert.Equal(t, 70, result.Score)
		assert.True(t, result.Success)
	})

	t.Run("ScoreCapsAtHundred", func(t *testing.T) {
		result := b.Evaluate(TypeXSS, "one two three four five six seven eight nine ten", DifficultyEasy)
		assert.Equal(t, 100, result.Score)
	})

	t.Run("HarderTiersScaleDown", func(t *testing.T) {
		input := "inject script payload"
		easy := b.Evaluate(TypeXSS, input, DifficultyEasy)
		medium := b.Evaluate(TypeXSS, input, DifficultyMedium)
		hard := b.Evaluate(TypeXSS, input, DifficultyHard)

		assert.Equal(t, 70, easy.Score)
		assert.Equal(t, 59, medium.Score)
		assert.Equal(t, 49, hard.Score)
		assert.True(t, easy.Success)
		assert.False(t, medium.Success)
		assert.False(t, hard.Success)
	})
}

func TestEvaluatorFunc(t *testing.T) {
	called := false
	var e Evaluator = EvaluatorFunc(func(ChallengeType, string, Difficulty) Result {
		called = true
		return Result{Success: true, Score: 42}
	})

	result := e.Evaluate(TypeDoS, "x", DifficultyEasy)
	assert.True(t, called)
	assert.Equal(t, 42, result.Score)
}
