package quiz

// TotalRooms is the fixed number of rooms (questions) in every maze run.
const TotalRooms = 10

// TimedOutAnswer is the sentinel recorded when a countdown expires before
// the player picks a door. It is never a correct answer.
const TimedOutAnswer = "Timed Out"

// Mode selects which kind of questions a set produces.
type Mode string

const (
	ModeMath     Mode = "Math"
	ModeSpelling Mode = "Spelling"
)

// Operation is a math operation a set may draw random problems from.
type Operation string

const (
	OpAddition       Operation = "+"
	OpSubtraction    Operation = "-"
	OpMultiplication Operation = "x"
	OpDivision       Operation = "÷"
	OpExponentiation Operation = "^"
	OpSquareRoot     Operation = "√"
)

// Equation is a teacher-authored math problem with a fixed integer answer.
type Equation struct {
	Prompt string `json:"prompt"`
	Answer int    `json:"answer"`
}

// Word pairs a correct spelling with its pre-generated misspellings.
type Word struct {
	Correct   string   `json:"correct"`
	Incorrect []string `json:"incorrect"`
}

// QuestionSet is a teacher-authored configuration describing how questions
// are generated for one game. Mode is immutable and decides which of the
// variant fields are populated; the other variant's fields stay zero.
type QuestionSet struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Mode Mode   `json:"mode"`

	// CountdownSeconds, when > 0, arms a per-room countdown.
	CountdownSeconds int `json:"countdown_seconds,omitempty"`

	// RequireCorrect controls whether a wrong answer blocks progress.
	// nil means the default policy (true).
	RequireCorrect *bool `json:"require_correct,omitempty"`

	// Math variant.
	TimesTables     []int       `json:"times_tables,omitempty"`
	Operations      []Operation `json:"operations,omitempty"`
	CustomEquations []Equation  `json:"custom_equations,omitempty"`

	// Spelling variant.
	Words []Word `json:"words,omitempty"`
}

// MustAnswerCorrectly resolves the retry policy, defaulting to true.
func (s *QuestionSet) MustAnswerCorrectly() bool {
	if s.RequireCorrect == nil {
		return true
	}
	return *s.RequireCorrect
}

// Question is one generated room: a prompt, the canonical answer and the
// shuffled door options. Options contains Answer exactly once and holds at
// most four entries.
type Question struct {
	Mode    Mode     `json:"mode"`
	Prompt  string   `json:"prompt"`
	Answer  string   `json:"answer"`
	Options []string `json:"options"`
}

// Result records the outcome of a single room. UserAnswer is the picked
// option text or TimedOutAnswer.
type Result struct {
	Question   Question `json:"question"`
	UserAnswer string   `json:"user_answer"`
	Correct    bool     `json:"correct"`
}
