// Package spelling generates practice misspellings for the word lists in
// spelling question sets. It asks the configured LLM provider first and
// degrades to programmatic letter edits when the provider is unavailable.
package spelling

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/dmaze/dungeonmaze/internal/llm"
)

// MaxMisspellings is the most wrong spellings offered per word. The door
// grid holds four options: the correct word plus up to three of these.
const MaxMisspellings = 3

// Service produces misspellings for correctly spelled words.
type Service struct {
	provider llm.Provider
	rng      *rand.Rand
}

// New creates a Service backed by the given provider.
func New(provider llm.Provider, rng *rand.Rand) *Service {
	return &Service{provider: provider, rng: rng}
}

// misspellingsSchema is the structured output contract for the LLM.
func misspellingsSchema() *llm.Schema {
	return &llm.Schema{
		Name:        "misspellings",
		Description: "Common misspellings of a given word",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"misspellings": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":        "string",
						"description": "A common misspelling of the word.",
					},
				},
			},
			"required": []any{"misspellings"},
		},
	}
}

type misspellingsResponse struct {
	Misspellings []string `json:"misspellings"`
}

// Misspellings returns up to MaxMisspellings distinct wrong spellings of
// word, never including the correct spelling itself. Provider failures fall
// back to programmatic edits, so the result is always usable.
func (s *Service) Misspellings(ctx context.Context, word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	if s.provider == nil {
		return Fallback(word, s.rng)
	}

	generated, err := s.generate(ctx, word)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: misspelling generation failed for %q, using fallback: %v\n", word, err)
		return Fallback(word, s.rng)
	}
	if len(generated) == 0 {
		return Fallback(word, s.rng)
	}
	return generated
}

func (s *Service) generate(ctx context.Context, word string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "misspellings")

	prompt := fmt.Sprintf(
		"Generate three common, distinct misspellings for the word %q. "+
			"Do not include the correct spelling in the output.", word)

	resp, err := s.provider.Generate(ctx, llm.Request{
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    misspellingsSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		return nil, err
	}

	var parsed misspellingsResponse
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("decode misspellings: %w", err)
	}

	return filter(word, parsed.Misspellings), nil
}

// filter drops the correct spelling, empties and duplicates, and caps the
// list at MaxMisspellings.
func filter(word string, candidates []string) []string {
	seen := map[string]bool{strings.ToLower(word): true}
	var out []string
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
		if len(out) == MaxMisspellings {
			break
		}
	}
	return out
}
