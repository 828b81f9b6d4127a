package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaze/dungeonmaze/internal/narrate"
)

// speakCmd exercises the TTS pipeline outside the game, for checking
// audio setup.
var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Read text aloud through the configured voice",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		text := strings.Join(args, " ")

		player, err := narrate.NewOtoPlayer()
		if err != nil {
			return fmt.Errorf("open audio device: %w", err)
		}
		defer player.Close()

		clip, err := buildSynthesizer(ctx).Synthesize(ctx, text)
		if err != nil {
			return fmt.Errorf("synthesize: %w", err)
		}

		pb, err := player.Play(clip)
		if err != nil {
			return fmt.Errorf("play: %w", err)
		}
		defer pb.Stop()

		// Playback is asynchronous; wait out the clip (16-bit mono PCM)
		// plus a small tail before closing the device.
		samples := len(clip.PCM) / 2
		dur := time.Duration(samples) * time.Second / time.Duration(clip.SampleRate)
		time.Sleep(dur + 300*time.Millisecond)
		return nil
	},
}
