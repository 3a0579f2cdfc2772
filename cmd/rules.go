package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/scoring"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [level]",
	Short: "Show the scoring decision tables",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		levels := catalog.Levels()
		if len(args) == 1 {
			level, err := parseLevel(args[0])
			if err != nil {
				return err
			}
			levels = []catalog.Level{level}
		}

		for i, level := range levels {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("Testing at %s (first match wins)\n", level)
			fmt.Println(strings.Repeat("─", 72))
			rules := scoring.Rules(level)
			for n, r := range rules {
				fmt.Printf("%d. %-30s  -> %s\n", n+1, r.Name, r.Outcome)
				fmt.Printf("   %s\n", r.Reason)
			}
			// A rule that matches an empty tally is a catch-all.
			if len(rules) == 0 || !rules[len(rules)-1].When(scoring.Tally{Level: level}) {
				fmt.Printf("   otherwise -> %s\n", scoring.Invalid)
			}
		}
		return nil
	},
}
