package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/badges"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear past quiz results",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent quiz results, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		entries := d.history.LoadAll(cmd.Context())
		if len(entries) == 0 {
			fmt.Fprintln(out, "No quizzes played yet.")
			return nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}

		fmt.Fprintf(out, "%-16s  %-16s  %7s  %s\n", "Date", "Player", "Score", "Badges")
		fmt.Fprintln(out, strings.Repeat("─", 70))
		for _, e := range entries {
			player := e.Player
			if len(player) > 16 {
				player = player[:13] + "..."
			}
			labels := make([]string, len(e.Badges))
			for i, name := range e.Badges {
				labels[i] = badges.Badge(name).Icon() + " " + name
			}
			fmt.Fprintf(out, "%-16s  %-16s  %7s  %s\n",
				e.Date.Local().Format("2006-01-02 15:04"),
				player,
				fmt.Sprintf("%d/%d", e.Score, e.Total),
				strings.Join(labels, ", "),
			)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded quiz results",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.history.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 10, "Maximum number of results to show (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
}
