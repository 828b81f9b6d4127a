// Package narrate reads spelling words aloud. Text is synthesized to audio
// by a Synthesizer (Gemini TTS, with a keyless Google Translate fallback)
// and played through a Player. At most one utterance is ever in flight.
package narrate

import (
	"context"
	"fmt"
	"sync"
)

// Clip is decoded audio ready for playback: 16-bit little-endian signed
// mono PCM.
type Clip struct {
	PCM        []byte
	SampleRate int
}

// Synthesizer turns text into an audio clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*Clip, error)
}

// Playback controls one playing clip.
type Playback interface {
	Pause()
	Resume()
	Stop()
}

// Player starts playback of clips.
type Player interface {
	Play(clip *Clip) (Playback, error)
	Close() error
}

// Narrator coordinates speech for the game screen. It tracks the player's
// manual pause separately from the game pause so that pausing the game and
// resuming it brings the audio back only when the player had not muted it
// themselves.
type Narrator struct {
	synth  Synthesizer
	player Player

	mu           sync.Mutex
	current      Playback
	manualPaused bool
	gamePaused   bool
}

// New creates a Narrator.
func New(synth Synthesizer, player Player) *Narrator {
	return &Narrator{synth: synth, player: player}
}

// Speak synthesizes text and plays it, halting any previous utterance
// first. A new utterance clears the manual pause. When the game is paused
// the clip starts suspended and resumes with the game.
func (n *Narrator) Speak(ctx context.Context, text string) error {
	clip, err := n.synth.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesize: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current != nil {
		n.current.Stop()
		n.current = nil
	}

	pb, err := n.player.Play(clip)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	n.current = pb
	n.manualPaused = false
	if n.gamePaused {
		pb.Pause()
	}
	return nil
}

// PauseUtterance suspends the current utterance at the player's request.
func (n *Narrator) PauseUtterance() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.manualPaused = true
	if n.current != nil {
		n.current.Pause()
	}
}

// ResumeUtterance resumes a manually paused utterance. While the game is
// paused the audio stays suspended; only the remembered manual state changes.
func (n *Narrator) ResumeUtterance() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.manualPaused = false
	if n.current != nil && !n.gamePaused {
		n.current.Resume()
	}
}

// SetGamePaused suspends audio with the game and restores it on resume,
// honoring a manual pause taken before or during the game pause.
func (n *Narrator) SetGamePaused(paused bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gamePaused = paused
	if n.current == nil {
		return
	}
	if paused {
		n.current.Pause()
	} else if !n.manualPaused {
		n.current.Resume()
	}
}

// Stop halts the current utterance and forgets it.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil {
		n.current.Stop()
		n.current = nil
	}
	n.manualPaused = false
}

// Close stops playback and releases the audio device.
func (n *Narrator) Close() error {
	n.Stop()
	return n.player.Close()
}
