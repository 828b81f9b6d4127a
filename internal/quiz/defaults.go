package quiz

// DefaultWords backs spelling games whose set has no word list configured.
var DefaultWords = []Word{
	{Correct: "beautiful", Incorrect: []string{"beutiful", "beatiful", "beauitful"}},
	{Correct: "because", Incorrect: []string{"becuase", "becasue", "becouse"}},
}

// DefaultQuestionSets returns the built-in sets seeded into a fresh store so
// the first game can start before any teacher has configured anything.
func DefaultQuestionSets() []QuestionSet {
	return []QuestionSet{
		{
			ID:          "math-default-easy",
			Name:        "Easy Math Mix",
			Mode:        ModeMath,
			TimesTables: []int{2, 5, 10},
			Operations:  []Operation{OpAddition, OpSubtraction},
		},
		{
			ID:   "spelling-default-easy",
			Name: "Common Words",
			Mode: ModeSpelling,
			Words: []Word{
				{Correct: "friend", Incorrect: []string{"freind", "frend", "frind"}},
				{Correct: "accommodate", Incorrect: []string{"acommodate", "accomodate", "acomodate"}},
				{Correct: "which", Incorrect: []string{"wich", "whitch", "whihc"}},
				{Correct: "believe", Incorrect: []string{"beleive", "belive", "beleev"}},
				{Correct: "separate", Incorrect: []string{"seperate", "seprate", "separat"}},
				{Correct: "necessary", Incorrect: []string{"neccessary", "necesary", "nessasary"}},
				{Correct: "tomorrow", Incorrect: []string{"tommorow", "tomorow", "tommorrow"}},
				{Correct: "business", Incorrect: []string{"buisness", "busness", "businiss"}},
				{Correct: "receive", Incorrect: []string{"recieve", "receeve", "reseive"}},
				{Correct: "government", Incorrect: []string{"goverment", "governmint", "guvernment"}},
			},
		},
	}
}
