package narrate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

const translateTTSURL = "https://translate.google.com/translate_tts"

// TranslateSynthesizer uses the keyless Google Translate TTS endpoint. It
// needs no credential, which makes it the fallback when no Gemini key is
// configured.
type TranslateSynthesizer struct {
	client *http.Client
	lang   string
}

// NewTranslateSynthesizer creates a keyless synthesizer for English speech.
func NewTranslateSynthesizer() *TranslateSynthesizer {
	return &TranslateSynthesizer{
		client: &http.Client{Timeout: 10 * time.Second},
		lang:   "en",
	}
}

func (t *TranslateSynthesizer) Synthesize(ctx context.Context, text string) (*Clip, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", t.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, translateTTSURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch speech: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch speech: status %d", resp.StatusCode)
	}

	return decodeMP3(resp.Body)
}

// decodeMP3 decodes an MP3 stream to a mono PCM clip. go-mp3 always emits
// 16-bit stereo, so the channels are averaged down.
func decodeMP3(r io.Reader) (*Clip, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}
	stereo, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("read mp3 samples: %w", err)
	}
	return &Clip{
		PCM:        downmixStereo(stereo),
		SampleRate: dec.SampleRate(),
	}, nil
}
