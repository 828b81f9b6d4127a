package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play and LLM usage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		runs, err := st.SessionCount(ctx)
		if err != nil {
			return err
		}
		llmStats, err := st.LLMRequestStats(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Completed runs:  %d\n", runs)
		fmt.Printf("LLM requests:    %d (%d failed)\n", llmStats.Requests, llmStats.Failures)
		fmt.Printf("LLM tokens:      %d in / %d out\n", llmStats.InputTokens, llmStats.OutputTokens)
		return nil
	},
}
