package setup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmaze/dungeonmaze/internal/quiz"
)

// parseTables reads a comma-separated list of times tables ("2, 5, 10").
func parseTables(s string) ([]int, error) {
	var out []int
	for _, part := range splitList(s) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		if n < 1 || n > 12 {
			return nil, fmt.Errorf("times table %d out of range 1-12", n)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseOperations reads a list of operation symbols. Common keyboard
// spellings (* and /) map to the display symbols.
func parseOperations(s string) ([]quiz.Operation, error) {
	var out []quiz.Operation
	for _, part := range splitList(s) {
		switch strings.ToLower(part) {
		case "+", "add":
			out = append(out, quiz.OpAddition)
		case "-", "sub":
			out = append(out, quiz.OpSubtraction)
		case "x", "*", "mul":
			out = append(out, quiz.OpMultiplication)
		case "÷", "/", "div":
			out = append(out, quiz.OpDivision)
		case "^", "pow":
			out = append(out, quiz.OpExponentiation)
		case "√", "sqrt":
			out = append(out, quiz.OpSquareRoot)
		default:
			return nil, fmt.Errorf("unknown operation %q", part)
		}
	}
	return out, nil
}

// parseEquations reads semicolon-separated "prompt = answer" pairs, e.g.
// "7 + 3 = 10; 6 x 4 = 24".
func parseEquations(s string) ([]quiz.Equation, error) {
	var out []quiz.Equation
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		eq := strings.LastIndex(part, "=")
		if eq < 0 {
			return nil, fmt.Errorf("%q is missing '= answer'", part)
		}
		prompt := strings.TrimSpace(part[:eq])
		answer, err := strconv.Atoi(strings.TrimSpace(part[eq+1:]))
		if err != nil {
			return nil, fmt.Errorf("%q has a non-numeric answer", part)
		}
		if prompt == "" {
			return nil, fmt.Errorf("%q is missing the question", part)
		}
		out = append(out, quiz.Equation{Prompt: prompt, Answer: answer})
	}
	return out, nil
}

// parseWords reads a comma-separated word list.
func parseWords(s string) []string {
	return splitList(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	}) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// The formatters render stored config back into editable text.

func tablesString(tables []int) string {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ", ")
}

func operationsString(ops []quiz.Operation) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ", ")
}

func equationsString(eqs []quiz.Equation) string {
	parts := make([]string, len(eqs))
	for i, eq := range eqs {
		parts[i] = fmt.Sprintf("%s = %d", eq.Prompt, eq.Answer)
	}
	return strings.Join(parts, "; ")
}

func wordsString(words []quiz.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Correct
	}
	return strings.Join(parts, ", ")
}
