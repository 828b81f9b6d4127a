package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmaze/dungeonmaze/internal/spelling"
)

// misspellCmd exercises the misspelling generator outside the game, for
// checking LLM setup.
var misspellCmd = &cobra.Command{
	Use:   "misspell [word...]",
	Short: "Print generated misspellings for each word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
		spell := spelling.New(discoverProvider(ctx, st), rng)

		for _, word := range args {
			fmt.Printf("%s:\n", word)
			for _, m := range spell.Misspellings(ctx, word) {
				fmt.Printf("  %s\n", m)
			}
		}
		return nil
	},
}
