package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "smartquiz",
	Short: "Timed multiple-choice quizzes in your terminal",
	Long: "SmartQuiz runs short timed quizzes, awards badges for strong runs, " +
		"and keeps a history of your recent sessions.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (overrides SMARTQUIZ_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SMARTQUIZ_DB)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep history in memory only for this run")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then the configured path, then the default data directory.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
