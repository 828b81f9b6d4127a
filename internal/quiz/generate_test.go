package quiz

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestGenerate_AlwaysTotalRooms(t *testing.T) {
	sets := []QuestionSet{
		{Mode: ModeMath},
		{Mode: ModeMath, TimesTables: []int{2}},
		{Mode: ModeMath, CustomEquations: []Equation{{Prompt: "1 + 1 = ?", Answer: 2}}},
		{Mode: ModeMath, Operations: []Operation{OpDivision}},
		{Mode: ModeSpelling},
		{Mode: ModeSpelling, Words: []Word{{Correct: "cat", Incorrect: []string{"kat"}}}},
	}
	for i, set := range sets {
		qs := Generate(&set, testRNG(uint64(i)))
		if len(qs) != TotalRooms {
			t.Errorf("set %d: got %d questions, want %d", i, len(qs), TotalRooms)
		}
	}
}

func TestGenerate_TimesTablesOnly(t *testing.T) {
	set := &QuestionSet{Mode: ModeMath, TimesTables: []int{2}}
	for _, q := range Generate(set, testRNG(7)) {
		answer, err := strconv.Atoi(q.Answer)
		if err != nil {
			t.Fatalf("non-numeric answer %q: %v", q.Answer, err)
		}
		if answer%2 != 0 || answer < 2 || answer > 24 {
			t.Errorf("answer %d not in the 2 times table (2..24)", answer)
		}
		if !strings.HasPrefix(q.Prompt, "2 x ") {
			t.Errorf("prompt %q does not come from the 2 times table", q.Prompt)
		}
	}
}

func TestGenerate_OptionsContainAnswerOnce(t *testing.T) {
	sets := []QuestionSet{
		{Mode: ModeMath, Operations: []Operation{OpAddition, OpSubtraction, OpMultiplication, OpDivision, OpExponentiation, OpSquareRoot}},
		{Mode: ModeSpelling},
	}
	for _, set := range sets {
		for _, q := range Generate(&set, testRNG(11)) {
			count := 0
			for _, opt := range q.Options {
				if opt == q.Answer {
					count++
				}
			}
			if count != 1 {
				t.Errorf("%q: answer appears %d times in options %v", q.Prompt, count, q.Options)
			}
			if len(q.Options) > 4 {
				t.Errorf("%q: %d options, want at most 4", q.Prompt, len(q.Options))
			}
		}
	}
}

func TestGenerate_MathOptionsPositiveAndDistinct(t *testing.T) {
	set := &QuestionSet{Mode: ModeMath, Operations: []Operation{OpSubtraction}}
	for _, q := range Generate(set, testRNG(3)) {
		seen := map[string]bool{}
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("%q: duplicate option %q", q.Prompt, opt)
			}
			seen[opt] = true
			n, err := strconv.Atoi(opt)
			if err != nil {
				t.Fatalf("%q: non-numeric option %q", q.Prompt, opt)
			}
			if n <= 0 {
				t.Errorf("%q: non-positive option %d", q.Prompt, n)
			}
		}
		if len(q.Options) != 4 {
			t.Errorf("%q: got %d options, want 4", q.Prompt, len(q.Options))
		}
	}
}

func TestGenerate_DivisionIsExact(t *testing.T) {
	set := &QuestionSet{Mode: ModeMath, Operations: []Operation{OpDivision}}
	for _, q := range Generate(set, testRNG(5)) {
		var dividend, divisor int
		if err := parsePrompt(q.Prompt, "÷", &dividend, &divisor); err != nil {
			t.Fatalf("cannot parse %q: %v", q.Prompt, err)
		}
		if dividend%divisor != 0 {
			t.Errorf("%q: %d is not divisible by %d", q.Prompt, dividend, divisor)
		}
		if want := strconv.Itoa(dividend / divisor); q.Answer != want {
			t.Errorf("%q: answer %q, want %q", q.Prompt, q.Answer, want)
		}
	}
}

// parsePrompt splits "<a> <op> <b> = ?" into its two operands.
func parsePrompt(prompt, op string, a, b *int) error {
	body := strings.TrimSuffix(prompt, " = ?")
	parts := strings.Split(body, " "+op+" ")
	if len(parts) != 2 {
		return strconv.ErrSyntax
	}
	var err error
	if *a, err = strconv.Atoi(parts[0]); err != nil {
		return err
	}
	*b, err = strconv.Atoi(parts[1])
	return err
}

func TestGenerate_SquareRootAnswers(t *testing.T) {
	set := &QuestionSet{Mode: ModeMath, Operations: []Operation{OpSquareRoot}}
	for _, q := range Generate(set, testRNG(13)) {
		root, err := strconv.Atoi(q.Answer)
		if err != nil {
			t.Fatalf("non-numeric answer %q", q.Answer)
		}
		if root < 2 || root > 12 {
			t.Errorf("root %d out of range 2..12", root)
		}
		want := "√" + strconv.Itoa(root*root) + " = ?"
		if q.Prompt != want {
			t.Errorf("prompt %q, want %q", q.Prompt, want)
		}
	}
}

func TestGenerate_EmptyMathFallsBack(t *testing.T) {
	set := &QuestionSet{Mode: ModeMath}
	for _, q := range Generate(set, testRNG(17)) {
		if !strings.Contains(q.Prompt, "+") && !strings.Contains(q.Prompt, "x") {
			t.Errorf("fallback prompt %q is neither addition nor multiplication", q.Prompt)
		}
	}
}

func TestGenerate_EmptySpellingUsesDefaults(t *testing.T) {
	set := &QuestionSet{Mode: ModeSpelling}
	known := map[string]bool{}
	for _, w := range DefaultWords {
		known[w.Correct] = true
	}
	for _, q := range Generate(set, testRNG(19)) {
		if !known[q.Answer] {
			t.Errorf("answer %q is not a default word", q.Answer)
		}
		if q.Prompt != "Which is the correct spelling?" {
			t.Errorf("unexpected prompt %q", q.Prompt)
		}
	}
}

func TestGenerate_CustomEquationsPreferred(t *testing.T) {
	eqs := make([]Equation, 0, 12)
	for i := 1; i <= 12; i++ {
		eqs = append(eqs, Equation{Prompt: strconv.Itoa(i) + " + 0 = ?", Answer: i})
	}
	set := &QuestionSet{Mode: ModeMath, CustomEquations: eqs}
	for _, q := range Generate(set, testRNG(23)) {
		if !strings.HasSuffix(q.Prompt, " + 0 = ?") {
			t.Errorf("prompt %q is not one of the custom equations", q.Prompt)
		}
	}
}

func TestDistractors_SmallAnswerWidens(t *testing.T) {
	// Answer 1 leaves only four positive values in the base window, and
	// collisions must eventually widen the search instead of spinning.
	for seed := uint64(0); seed < 20; seed++ {
		opts := Distractors(1, testRNG(seed))
		if len(opts) != 4 {
			t.Fatalf("seed %d: got %d options", seed, len(opts))
		}
		seen := map[string]bool{}
		found := false
		for _, opt := range opts {
			if seen[opt] {
				t.Errorf("seed %d: duplicate option %q", seed, opt)
			}
			seen[opt] = true
			if opt == "1" {
				found = true
			}
			if n, _ := strconv.Atoi(opt); n <= 0 {
				t.Errorf("seed %d: non-positive option %q", seed, opt)
			}
		}
		if !found {
			t.Errorf("seed %d: answer missing from %v", seed, opts)
		}
	}
}

func TestCheckAnswer(t *testing.T) {
	math := &Question{Mode: ModeMath, Answer: "7"}
	spelling := &Question{Mode: ModeSpelling, Answer: "friend"}

	tests := []struct {
		name string
		q    *Question
		pick string
		want bool
	}{
		{"exact math", math, "7", true},
		{"padded math", math, " 07 ", true},
		{"wrong math", math, "8", false},
		{"non-numeric math", math, "seven", false},
		{"timed out", math, TimedOutAnswer, false},
		{"empty", math, "", false},
		{"exact spelling", spelling, "friend", true},
		{"case-insensitive spelling", spelling, "Friend", true},
		{"wrong spelling", spelling, "freind", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.pick, tt.q); got != tt.want {
			t.Errorf("%s: CheckAnswer(%q) = %v, want %v", tt.name, tt.pick, got, tt.want)
		}
	}
}

func TestMustAnswerCorrectly(t *testing.T) {
	var s QuestionSet
	if !s.MustAnswerCorrectly() {
		t.Error("default policy should require correct answers")
	}
	f := false
	s.RequireCorrect = &f
	if s.MustAnswerCorrectly() {
		t.Error("explicit false should disable the requirement")
	}
}
