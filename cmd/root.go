package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmaze/dungeonmaze/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "dungeonmaze",
	Short: "Educational maze quiz game for kids",
	Long:  "Dungeon Maze — a terminal game where kids escape a ten-room dungeon by answering math and spelling questions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	godotenv.Load()

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DMAZE_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(misspellCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then DMAZE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
