package narrate

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
)

type fakeSynth struct {
	err   error
	calls []string
}

func (f *fakeSynth) Synthesize(_ context.Context, text string) (*Clip, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return &Clip{PCM: make([]byte, 16), SampleRate: geminiSampleRate}, nil
}

type fakePlayback struct {
	paused  bool
	stopped bool
}

func (f *fakePlayback) Pause()  { f.paused = true }
func (f *fakePlayback) Resume() { f.paused = false }
func (f *fakePlayback) Stop()   { f.stopped = true }

type fakePlayer struct {
	playbacks []*fakePlayback
}

func (f *fakePlayer) Play(*Clip) (Playback, error) {
	pb := &fakePlayback{}
	f.playbacks = append(f.playbacks, pb)
	return pb, nil
}

func (f *fakePlayer) Close() error { return nil }

func newTestNarrator() (*Narrator, *fakeSynth, *fakePlayer) {
	synth := &fakeSynth{}
	player := &fakePlayer{}
	return New(synth, player), synth, player
}

func TestSpeak_HaltsPreviousUtterance(t *testing.T) {
	n, _, player := newTestNarrator()
	ctx := context.Background()

	if err := n.Speak(ctx, "beautiful"); err != nil {
		t.Fatalf("first speak: %v", err)
	}
	if err := n.Speak(ctx, "because"); err != nil {
		t.Fatalf("second speak: %v", err)
	}

	if len(player.playbacks) != 2 {
		t.Fatalf("%d playbacks, want 2", len(player.playbacks))
	}
	if !player.playbacks[0].stopped {
		t.Error("first utterance still running after second Speak")
	}
	if player.playbacks[1].stopped || player.playbacks[1].paused {
		t.Error("second utterance is not playing")
	}
}

func TestSpeak_SynthFailure(t *testing.T) {
	n, synth, player := newTestNarrator()
	synth.err = errors.New("boom")

	if err := n.Speak(context.Background(), "word"); err == nil {
		t.Fatal("expected error from failed synthesis")
	}
	if len(player.playbacks) != 0 {
		t.Error("playback started despite synthesis failure")
	}
}

func TestManualPauseResume(t *testing.T) {
	n, _, player := newTestNarrator()
	_ = n.Speak(context.Background(), "word")
	pb := player.playbacks[0]

	n.PauseUtterance()
	if !pb.paused {
		t.Error("utterance not paused")
	}
	n.ResumeUtterance()
	if pb.paused {
		t.Error("utterance not resumed")
	}
}

func TestGamePause_RemembersManualPause(t *testing.T) {
	n, _, player := newTestNarrator()
	_ = n.Speak(context.Background(), "word")
	pb := player.playbacks[0]

	// Player muted the word, then paused the game.
	n.PauseUtterance()
	n.SetGamePaused(true)
	if !pb.paused {
		t.Fatal("audio running while game paused")
	}

	// Resuming the game must not unmute a manually paused utterance.
	n.SetGamePaused(false)
	if !pb.paused {
		t.Error("game resume overrode the manual pause")
	}

	n.ResumeUtterance()
	if pb.paused {
		t.Error("manual resume did not restart audio")
	}
}

func TestGamePause_ResumesUnmutedAudio(t *testing.T) {
	n, _, player := newTestNarrator()
	_ = n.Speak(context.Background(), "word")
	pb := player.playbacks[0]

	n.SetGamePaused(true)
	if !pb.paused {
		t.Fatal("audio running while game paused")
	}
	n.SetGamePaused(false)
	if pb.paused {
		t.Error("audio did not resume with the game")
	}
}

func TestResumeDuringGamePause_StaysSilent(t *testing.T) {
	n, _, player := newTestNarrator()
	_ = n.Speak(context.Background(), "word")
	pb := player.playbacks[0]

	n.PauseUtterance()
	n.SetGamePaused(true)

	// Unmuting during the game pause only updates the remembered state.
	n.ResumeUtterance()
	if !pb.paused {
		t.Fatal("audio resumed while the game is paused")
	}
	n.SetGamePaused(false)
	if pb.paused {
		t.Error("audio did not resume after game unpause")
	}
}

func TestSpeakWhileGamePaused_StartsSuspended(t *testing.T) {
	n, _, player := newTestNarrator()
	n.SetGamePaused(true)
	_ = n.Speak(context.Background(), "word")

	if !player.playbacks[0].paused {
		t.Error("utterance started audibly during game pause")
	}
}

func TestStop_ReleasesUtterance(t *testing.T) {
	n, _, player := newTestNarrator()
	_ = n.Speak(context.Background(), "word")

	n.Stop()
	if !player.playbacks[0].stopped {
		t.Error("Stop did not halt the utterance")
	}
	// Stop with nothing playing is a no-op.
	n.Stop()
}

func pcm16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return out
}

func TestDownmixStereo(t *testing.T) {
	// Two frames: (100, 200) and (-100, 100).
	stereo := pcm16(100, 200, -100, 100)
	mono := downmixStereo(stereo)
	if len(mono) != 4 {
		t.Fatalf("mono length %d, want 4", len(mono))
	}
	if got := int16(binary.LittleEndian.Uint16(mono[0:])); got != 150 {
		t.Errorf("frame 0 = %d, want 150", got)
	}
	if got := int16(binary.LittleEndian.Uint16(mono[2:])); got != 0 {
		t.Errorf("frame 1 = %d, want 0", got)
	}
}

func TestResample(t *testing.T) {
	src := pcm16(0, 100, 200, 300)

	same := resample(src, 24000, 24000)
	if len(same) != len(src) {
		t.Errorf("same-rate resample changed length: %d", len(same))
	}

	double := resample(src, 12000, 24000)
	if len(double) != 16 {
		t.Errorf("doubled length = %d bytes, want 16", len(double))
	}
	// Interpolated midpoint between 0 and 100.
	if got := int16(binary.LittleEndian.Uint16(double[2:])); got != 50 {
		t.Errorf("interpolated sample = %d, want 50", got)
	}

	half := resample(src, 24000, 12000)
	if len(half) != 4 {
		t.Errorf("halved length = %d bytes, want 4", len(half))
	}
}
