package quiz

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civichub/pkg/models"
)

func testPool() []models.QuizQuestion {
	return []models.QuizQuestion{
		{ID: "q1", Prompt: "P1", Options: []string{"a", "b", "c", "d"}, Answer: 2},
		{ID: "q2", Prompt: "P2", Options: []string{"a", "b", "c", "d"}, Answer: 0},
		{ID: "q3", Prompt: "P3", Options: []string{"a", "b", "c", "d"}, Answer: 3},
		{ID: "q4", Prompt: "P4", Options: []string{"a", "b", "c", "d"}, Answer: 1},
	}
}

func TestGenerateSampleSize(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	out := Generate(testPool(), 2, rng)
	assert.Len(t, out, 2)

	out = Generate(testPool(), 10, rng)
	assert.Len(t, out, 4, "n larger than the pool returns the whole pool")

	assert.Nil(t, Generate(testPool(), 0, rng))
	assert.Nil(t, Generate(nil, 3, rng))
}

func TestGenerateNoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	out := Generate(testPool(), 4, rng)
	seen := make(map[string]bool)
	for _, q := range out {
		assert.False(t, seen[q.ID], "question %s sampled twice", q.ID)
		seen[q.ID] = true
	}
}

func TestGenerateRemapsAnswerIndex(t *testing.T) {
	pool := testPool()

	// the shuffled answer index must still point at the original correct
	// option, whatever order the options landed in
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		out := Generate(pool, len(pool), rng)

		byID := make(map[string]models.QuizQuestion)
		for _, q := range pool {
			byID[q.ID] = q
		}
		for _, q := range out {
			orig := byID[q.ID]
			require.True(t, q.Answer >= 0 && q.Answer < len(q.Options))
			assert.Equal(t, orig.Options[orig.Answer], q.Options[q.Answer],
				"seed %d question %s", seed, q.ID)
		}
	}
}

func TestGenerateDoesNotMutatePool(t *testing.T) {
	pool := testPool()
	rng := rand.New(rand.NewSource(7))

	Generate(pool, len(pool), rng)

	assert.Equal(t, testPool(), pool)
}

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	a := Generate(testPool(), 3, rand.New(rand.NewSource(99)))
	b := Generate(testPool(), 3, rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}
