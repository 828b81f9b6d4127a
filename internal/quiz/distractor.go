package quiz

import (
	"fmt"
	"math/rand/v2"
)

// widenAfter is the number of consecutive collisions tolerated before the
// distractor offset window grows. Answers near zero can exhaust the base
// window (only a handful of positive values exist in it), so the search must
// widen rather than spin.
const widenAfter = 24

// Distractors returns four distinct door options for a correct math answer:
// the answer itself plus three wrong values near it, in random order. Wrong
// values are always positive and never equal the answer.
func Distractors(correct int, rng *rand.Rand) []string {
	picked := map[int]bool{correct: true}
	options := []int{correct}

	spread := 0
	misses := 0
	for len(options) < 4 {
		// Base window is [-5, 4] around the answer, widened by ±5 each
		// time the search stalls.
		lo := -5 - spread
		hi := 4 + spread
		candidate := correct + lo + rng.IntN(hi-lo+1)
		if candidate <= 0 || picked[candidate] {
			misses++
			if misses >= widenAfter {
				spread += 5
				misses = 0
			}
			continue
		}
		picked[candidate] = true
		options = append(options, candidate)
	}

	shuffle(options, rng)
	out := make([]string, len(options))
	for i, v := range options {
		out[i] = fmt.Sprintf("%d", v)
	}
	return out
}
