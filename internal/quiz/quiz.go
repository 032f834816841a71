// Package quiz builds randomized quizzes from the static question pool.
package quiz

import (
	"math/rand"

	"civichub/pkg/models"
)

// Generate samples n questions from the pool without replacement, shuffles
// each question's options and remaps its correct-answer index to match.
// The pool itself is never mutated. Pass a seeded rand for deterministic
// output; n larger than the pool returns the whole pool (shuffled).
func Generate(pool []models.QuizQuestion, n int, rng *rand.Rand) []models.QuizQuestion {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}

	picks := rng.Perm(len(pool))[:n]

	out := make([]models.QuizQuestion, 0, n)
	for _, pi := range picks {
		q := pool[pi]

		options := make([]string, len(q.Options))
		copy(options, q.Options)
		order := rng.Perm(len(options))

		shuffled := make([]string, len(options))
		answer := q.Answer
		for dst, src := range order {
			shuffled[dst] = options[src]
			if src == q.Answer {
				answer = dst
			}
		}

		q.Options = shuffled
		q.Answer = answer
		out = append(out, q)
	}
	return out
}
