package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/app"
	"github.com/abhisek/smartquiz/internal/bank"
	"github.com/abhisek/smartquiz/internal/session"
	"github.com/abhisek/smartquiz/internal/timer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Player name (defaults to the last player)")
	cmd.Flags().String("category", "", "Question category (math, science, history, or all)")
	cmd.Flags().Int("count", 0, "Number of questions per quiz")
	cmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

// runPlay builds the controller and launches the terminal UI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := loadDeps(cmd, true)
	if err != nil {
		return err
	}
	defer d.Close()

	name, _ := cmd.Flags().GetString("name")
	category, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")
	noSplash, _ := cmd.Flags().GetBool("no-splash")
	if category == "" {
		category = d.cfg.Quiz.DefaultCategory
	}
	if count == 0 {
		count = d.cfg.Quiz.DefaultCount
	}
	if count < 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}

	// The UI ticks this timer once per second from its own event loop.
	clock := timer.NewManual()
	ctrl := session.NewController(session.Options{
		Questions:         d.bank,
		Timer:             clock,
		History:           d.history,
		TimeLimit:         d.cfg.Quiz.TimeLimit,
		QuickBonusPercent: d.cfg.Quiz.QuickBonusPercent,
		Logger:            d.logger,
	})

	d.logger.Info("starting terminal UI", "bank_size", d.bank.Len())
	return app.Run(ctx, app.Options{
		Controller: ctrl,
		Clock:      clock,
		Categories: d.categories(),
		Category:   bank.Category(category),
		Count:      count,
		Player:     name,
		Explainer:  d.explainer(ctx, cmd.ErrOrStderr()),
		SkipSplash: noSplash,
	})
}
