package narrate

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiSampleRate is the fixed output rate of the Gemini TTS models:
// 24 kHz mono 16-bit PCM.
const geminiSampleRate = 24000

const defaultGeminiTTSModel = "gemini-2.5-flash-preview-tts"

// GeminiSynthesizer produces speech with the Gemini TTS API.
type GeminiSynthesizer struct {
	client *genai.Client
	model  string
	voice  string
}

// NewGeminiSynthesizer creates a synthesizer using the given API key.
// model may be empty to use the default TTS model.
func NewGeminiSynthesizer(ctx context.Context, apiKey, model string) (*GeminiSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	if model == "" {
		model = defaultGeminiTTSModel
	}
	return &GeminiSynthesizer{client: client, model: model, voice: "Kore"}, nil
}

func (g *GeminiSynthesizer) Synthesize(ctx context.Context, text string) (*Clip, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.voice},
			},
		},
	}
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: text}}},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate speech: %w", err)
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &Clip{PCM: part.InlineData.Data, SampleRate: geminiSampleRate}, nil
			}
		}
	}
	return nil, fmt.Errorf("no audio in Gemini response")
}
