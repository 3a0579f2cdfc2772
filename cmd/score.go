package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/sppa/internal/scoring"
	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <rating>...",
	Short: "Score one round of ratings without running an interview",
	Long: "Score one round of ratings given in task order (see `sppa tasks <level>`).\n" +
		"Ratings are ranks 0-3 or labels such as breakdown, partial, minimal, fully.",
	Example: "  sppa score --level 1 3 0 3 0 3 0 3 0 3",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levelArg, _ := cmd.Flags().GetString("level")
		level, err := parseLevel(levelArg)
		if err != nil {
			return err
		}

		tasks, err := tasklist.Generate(level)
		if err != nil {
			return err
		}
		if len(args) != len(tasks) {
			return fmt.Errorf("%s has %d tasks, got %d ratings", level, len(tasks), len(args))
		}
		for i, a := range args {
			r, err := tasklist.ParseRating(a)
			if err != nil {
				return fmt.Errorf("task %d: %w", i+1, err)
			}
			tasks[i].Rating = r
			tasks[i].Status = tasklist.StatusDone
		}

		for i, t := range tasks {
			fmt.Printf("%2d. %-40s  %s  %s\n", i+1, t.Name, t.Level, t.Rating)
		}
		fmt.Println(strings.Repeat("─", 60))

		if tasklist.AllBreakdown(tasks) {
			fmt.Println("Every task was rated Total Breakdown; the examiner must retest or accept Level 0.")
			return nil
		}

		result, rule, err := scoring.Explain(level, tasks)
		if err != nil {
			return err
		}
		if rule == "" {
			rule = "none"
		}
		fmt.Printf("Outcome: %s\n", result.Outcome)
		fmt.Printf("Rule:    %s\n", rule)
		fmt.Printf("Reason:  %s\n", result.Reason)
		if l, ok := result.Outcome.PromotionLevel(); ok {
			fmt.Printf("The interview would continue with a round at %s.\n", l)
		}
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringP("level", "l", "1", "Working level of the round (1, 2 or 3)")
}
