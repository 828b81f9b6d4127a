package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaze/dungeonmaze/internal/app"
	"github.com/dmaze/dungeonmaze/internal/llm"
	"github.com/dmaze/dungeonmaze/internal/narrate"
	"github.com/dmaze/dungeonmaze/internal/spelling"
	"github.com/dmaze/dungeonmaze/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.SeedDefaultSets(ctx); err != nil {
		return fmt.Errorf("seed question sets: %w", err)
	}
	passcode, err := st.EnsureTeacher(ctx)
	if err != nil {
		return fmt.Errorf("ensure teacher account: %w", err)
	}
	if passcode != "" {
		fmt.Fprintf(os.Stderr, "Created the Teacher account. Passcode: %s\n", passcode)
		fmt.Fprintln(os.Stderr, "Write it down; it is only shown once.")
	}

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))

	provider := discoverProvider(ctx, st)
	spell := spelling.New(provider, rng)

	narrator := buildNarrator(ctx)
	if narrator != nil {
		defer narrator.Close()
	}

	return app.Run(ctx, app.Options{
		Store:    st,
		Narrator: narrator,
		Spell:    spell,
		RNG:      rng,
	})
}

// discoverProvider configures an LLM provider from the environment. An
// explicit DMAZE_LLM_PROVIDER wins; otherwise standard API key variables are
// probed. Returns nil when nothing is configured, which drops spelling sets
// back to built-in misspellings.
func discoverProvider(ctx context.Context, st *store.Store) llm.Provider {
	var cfg llm.Config
	if os.Getenv("DMAZE_LLM_PROVIDER") != "" {
		cfg = llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			return nil
		}
	} else {
		var ok bool
		cfg, ok = llm.DiscoverConfig()
		if !ok {
			fmt.Fprintln(os.Stderr, "No LLM API key found; spelling sets will use built-in misspellings.")
			return nil
		}
	}

	provider, err := llm.NewProvider(ctx, cfg, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider setup failed:", err)
		return nil
	}
	return provider
}

// buildSynthesizer picks a speech synthesizer: Gemini TTS when a key is
// available, the keyless Google Translate voice otherwise.
func buildSynthesizer(ctx context.Context) narrate.Synthesizer {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		g, err := narrate.NewGeminiSynthesizer(ctx, key, os.Getenv("DMAZE_TTS_MODEL"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "Gemini TTS setup failed, using fallback voice:", err)
		} else {
			return g
		}
	}
	return narrate.NewTranslateSynthesizer()
}

// buildNarrator opens the audio device and wires the synthesizer to it.
// Returns nil when audio is unavailable, which runs the game silently.
func buildNarrator(ctx context.Context) *narrate.Narrator {
	player, err := narrate.NewOtoPlayer()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Audio unavailable, spelling words will not be read aloud:", err)
		return nil
	}
	return narrate.New(buildSynthesizer(ctx), player)
}
