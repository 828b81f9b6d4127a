package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaze/dungeonmaze/internal/quiz"
)

func TestParseTables(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{"comma separated", "2, 5,10", []int{2, 5, 10}, false},
		{"empty", "", nil, false},
		{"non-numeric", "2, thirteen", nil, true},
		{"out of range", "13", nil, true},
		{"zero", "0", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTables(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperations(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []quiz.Operation
		wantErr bool
	}{
		{"symbols", "+, *, /", []quiz.Operation{quiz.OpAddition, quiz.OpMultiplication, quiz.OpDivision}, false},
		{"names", "add, sub, mul", []quiz.Operation{quiz.OpAddition, quiz.OpSubtraction, quiz.OpMultiplication}, false},
		{"power and root", "^ √", []quiz.Operation{quiz.OpExponentiation, quiz.OpSquareRoot}, false},
		{"empty", "", nil, false},
		{"unknown", "%", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOperations(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEquations(t *testing.T) {
	got, err := parseEquations("7 + 3 = 10; 6 x 4 = 24;")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, quiz.Equation{Prompt: "7 + 3", Answer: 10}, got[0])
	assert.Equal(t, quiz.Equation{Prompt: "6 x 4", Answer: 24}, got[1])

	_, err = parseEquations("7 + 3")
	assert.Error(t, err, "missing '= answer'")
	_, err = parseEquations("7 + 3 = ten")
	assert.Error(t, err, "non-numeric answer")
}

func TestRoundTripFormatting(t *testing.T) {
	tables := []int{2, 5, 10}
	back, err := parseTables(tablesString(tables))
	require.NoError(t, err)
	assert.Equal(t, tables, back)

	ops := []quiz.Operation{quiz.OpAddition, quiz.OpSquareRoot}
	opsBack, err := parseOperations(operationsString(ops))
	require.NoError(t, err)
	assert.Equal(t, ops, opsBack)

	eqs := []quiz.Equation{{Prompt: "7 + 3", Answer: 10}}
	eqsBack, err := parseEquations(equationsString(eqs))
	require.NoError(t, err)
	assert.Equal(t, eqs, eqsBack)
}

func TestParseWords(t *testing.T) {
	got := parseWords("beautiful, because  necessary")
	assert.Equal(t, []string{"beautiful", "because", "necessary"}, got)
}
