package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/smartquiz/internal/bank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions in the active bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		d, err := loadDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		cat := bank.Category(category)
		if cat == "" {
			cat = bank.CategoryAll
		}
		questions := d.bank.ListByCategory(cat)
		if len(questions) == 0 {
			return fmt.Errorf("no questions found for category %q", category)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%4s  %-10s  %-48s  %s\n", "ID", "Category", "Prompt", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, q := range questions {
			prompt := q.Prompt
			if len(prompt) > 48 {
				prompt = prompt[:45] + "..."
			}
			fmt.Fprintf(out, "%4d  %-10s  %-48s  %s\n", q.ID, q.Category.DisplayName(), prompt, q.CorrectChoice())
		}

		fmt.Fprintf(out, "\n%d questions\n", len(questions))
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("category", "", "Filter by category (math, science, history)")
}
