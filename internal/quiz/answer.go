package quiz

import (
	"strconv"
	"strings"
)

// CheckAnswer compares a picked door option against the question's answer.
// Returns true if the pick is correct.
//
// Normalization rules:
// - Whitespace is trimmed
// - Spelling comparison is case-insensitive
// - Math values compare numerically, so "07" matches "7"
func CheckAnswer(pick string, q *Question) bool {
	pick = strings.TrimSpace(pick)
	if pick == "" || pick == TimedOutAnswer {
		return false
	}

	if q.Mode == ModeMath {
		got, err := strconv.Atoi(pick)
		if err != nil {
			return false
		}
		want, err := strconv.Atoi(strings.TrimSpace(q.Answer))
		if err != nil {
			return false
		}
		return got == want
	}

	return strings.EqualFold(pick, strings.TrimSpace(q.Answer))
}
