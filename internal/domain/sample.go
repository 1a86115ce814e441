package domain

import (
	"fmt"
	"math/rand"
	"slices"
)

// Sample draws n questions matching difficulty from pool in random order. Each
// drawn question gets its own shuffled copy of the options.
func Sample(pool []Question, difficulty Difficulty, n int, rnd *rand.Rand) ([]Question, error) {
	matching := make([]Question, 0, len(pool))
	for _, q := range pool {
		if difficulty.Matches(q.Difficulty) {
			matching = append(matching, q)
		}
	}
	if len(matching) < n {
		return nil, fmt.Errorf("%w: want %d %s questions, have %d", ErrInsufficientQuestions, n, difficulty, len(matching))
	}

	rnd.Shuffle(len(matching), func(i, j int) {
		matching[i], matching[j] = matching[j], matching[i]
	})
	drawn := matching[:n]
	for i := range drawn {
		opts := slices.Clone(drawn[i].Options)
		rnd.Shuffle(len(opts), func(a, b int) {
			opts[a], opts[b] = opts[b], opts[a]
		})
		drawn[i].Options = opts
	}
	return drawn, nil
}
