package quiz

import (
	"fmt"
	"math/rand/v2"
)

// Generate produces exactly TotalRooms questions for the given set. It never
// fails: empty or underspecified sets degrade to built-in content instead of
// erroring, so a game can always start.
func Generate(set *QuestionSet, rng *rand.Rand) []Question {
	if set.Mode == ModeSpelling {
		return generateSpelling(set, rng)
	}
	return generateMath(set, rng)
}

func generateMath(set *QuestionSet, rng *rand.Rand) []Question {
	pool := make([]Equation, 0, len(set.CustomEquations)+len(set.TimesTables)*12)
	pool = append(pool, set.CustomEquations...)

	for _, table := range set.TimesTables {
		for i := 1; i <= 12; i++ {
			pool = append(pool, Equation{
				Prompt: fmt.Sprintf("%d x %d = ?", table, i),
				Answer: table * i,
			})
		}
	}

	// Too few configured problems: oversample random arithmetic so the
	// shuffle below has variety to draw from.
	if len(pool) < TotalRooms && len(set.Operations) > 0 {
		for len(pool) < TotalRooms*2 {
			pool = append(pool, randomEquation(set.Operations, rng))
		}
	}

	// Nothing configured at all: fall back to a basic mix.
	if len(pool) == 0 {
		fallback := []Operation{OpAddition, OpMultiplication}
		questions := make([]Question, 0, TotalRooms)
		for i := 0; i < TotalRooms; i++ {
			eq := randomEquation(fallback, rng)
			questions = append(questions, mathQuestion(eq, rng))
		}
		return questions
	}

	shuffle(pool, rng)
	questions := make([]Question, 0, TotalRooms)
	for i := 0; i < TotalRooms; i++ {
		eq := pool[i%len(pool)]
		questions = append(questions, mathQuestion(eq, rng))
	}
	return questions
}

// mathQuestion wraps an equation with freshly generated distractor doors.
// Distractors are recomputed per instance so a repeated equation does not
// repeat its wrong options.
func mathQuestion(eq Equation, rng *rand.Rand) Question {
	return Question{
		Mode:    ModeMath,
		Prompt:  eq.Prompt,
		Answer:  fmt.Sprintf("%d", eq.Answer),
		Options: Distractors(eq.Answer, rng),
	}
}

// randomEquation synthesizes one arithmetic problem for an operation chosen
// uniformly from ops. Ranges guarantee non-negative integer results; division
// is constructed from divisor and quotient so it is always exact.
func randomEquation(ops []Operation, rng *rand.Rand) Equation {
	const difficulty = 2
	maxNum := 10 + difficulty*5

	switch ops[rng.IntN(len(ops))] {
	case OpSubtraction:
		a := rng.IntN(maxNum) + 1
		b := rng.IntN(a) + 1
		return Equation{Prompt: fmt.Sprintf("%d - %d = ?", a, b), Answer: a - b}
	case OpMultiplication:
		a := rng.IntN(10+difficulty) + 2
		b := rng.IntN(10) + 1
		return Equation{Prompt: fmt.Sprintf("%d x %d = ?", a, b), Answer: a * b}
	case OpDivision:
		divisor := rng.IntN(9) + 2
		quotient := rng.IntN(9+difficulty) + 1
		return Equation{Prompt: fmt.Sprintf("%d ÷ %d = ?", divisor*quotient, divisor), Answer: quotient}
	case OpExponentiation:
		base := rng.IntN(4) + 2
		exp := rng.IntN(2) + 2
		answer := base
		for i := 1; i < exp; i++ {
			answer *= base
		}
		return Equation{Prompt: fmt.Sprintf("%d^%d = ?", base, exp), Answer: answer}
	case OpSquareRoot:
		root := rng.IntN(11) + 2
		return Equation{Prompt: fmt.Sprintf("√%d = ?", root*root), Answer: root}
	default: // OpAddition
		a := rng.IntN(maxNum) + 1
		b := rng.IntN(maxNum) + 1
		return Equation{Prompt: fmt.Sprintf("%d + %d = ?", a, b), Answer: a + b}
	}
}

func generateSpelling(set *QuestionSet, rng *rand.Rand) []Question {
	words := set.Words
	if len(words) == 0 {
		words = DefaultWords
	}

	shuffled := make([]Word, len(words))
	copy(shuffled, words)
	shuffle(shuffled, rng)

	questions := make([]Question, 0, TotalRooms)
	for i := 0; i < TotalRooms; i++ {
		questions = append(questions, spellingQuestion(shuffled[i%len(shuffled)], rng))
	}
	return questions
}

func spellingQuestion(w Word, rng *rand.Rand) Question {
	incorrect := w.Incorrect
	if len(incorrect) > 3 {
		incorrect = incorrect[:3]
	}
	options := make([]string, 0, len(incorrect)+1)
	options = append(options, w.Correct)
	options = append(options, incorrect...)
	shuffle(options, rng)

	return Question{
		Mode:    ModeSpelling,
		Prompt:  "Which is the correct spelling?",
		Answer:  w.Correct,
		Options: options,
	}
}

func shuffle[T any](s []T, rng *rand.Rand) {
	rng.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
