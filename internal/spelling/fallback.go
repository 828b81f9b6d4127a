package spelling

import (
	"math/rand/v2"
	"strings"
)

// Fallback builds misspellings with simple letter edits: swap two adjacent
// letters, drop a letter, insert a random letter. It needs no network and
// always returns at least one entry for a non-empty word.
func Fallback(word string, rng *rand.Rand) []string {
	seen := map[string]bool{strings.ToLower(word): true}
	var out []string
	add := func(s string) {
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	if len(word) > 3 {
		i := rng.IntN(len(word) - 1)
		add(word[:i] + string(word[i+1]) + string(word[i]) + word[i+2:])
	}
	if len(word) > 2 {
		i := rng.IntN(len(word))
		add(word[:i] + word[i+1:])
	}
	i := rng.IntN(len(word) + 1)
	letter := string(rune('a' + rng.IntN(26)))
	add(word[:i] + letter + word[i:])

	if len(out) > MaxMisspellings {
		out = out[:MaxMisspellings]
	}
	return out
}
