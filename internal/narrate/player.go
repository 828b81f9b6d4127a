package narrate

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer plays clips through the system audio device. The device is
// opened once at the Gemini TTS rate; clips at other rates are resampled.
type OtoPlayer struct {
	ctx        *oto.Context
	sampleRate int
}

// NewOtoPlayer opens the audio device. It blocks briefly until the device
// is ready.
func NewOtoPlayer() (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   geminiSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	select {
	case <-ready:
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("audio device not ready")
	}
	return &OtoPlayer{ctx: ctx, sampleRate: geminiSampleRate}, nil
}

func (p *OtoPlayer) Play(clip *Clip) (Playback, error) {
	pcm := clip.PCM
	if clip.SampleRate != p.sampleRate {
		pcm = resample(pcm, clip.SampleRate, p.sampleRate)
	}
	pl := p.ctx.NewPlayer(bytes.NewReader(pcm))
	pl.Play()
	return &otoPlayback{player: pl}, nil
}

// Close releases playback resources. The oto context itself has no close;
// it lives for the process.
func (p *OtoPlayer) Close() error {
	return nil
}

type otoPlayback struct {
	player *oto.Player
}

func (o *otoPlayback) Pause()  { o.player.Pause() }
func (o *otoPlayback) Resume() { o.player.Play() }
func (o *otoPlayback) Stop()   { o.player.Close() }
