package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/spf13/cobra"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks [level]",
	Short: "Show the task catalog or the task sequence for a level",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		showInstr, _ := cmd.Flags().GetBool("instructions")

		if len(args) == 0 {
			for _, d := range catalog.Tasks() {
				fmt.Println(d.Name)
				if showInstr && d.Instruction != "" {
					fmt.Printf("    %s\n", d.Instruction)
				}
			}
			return nil
		}

		level, err := parseLevel(args[0])
		if err != nil {
			return err
		}
		tasks, err := tasklist.Generate(level)
		if err != nil {
			return err
		}

		fmt.Printf("Task sequence at %s (%d tasks)\n", level, len(tasks))
		fmt.Println(strings.Repeat("─", 60))
		for i, t := range tasks {
			kind := "base"
			if t.Level > level {
				kind = "stretch"
			}
			fmt.Printf("%2d. %-40s  %s  %s\n", i+1, t.Name, t.Level, kind)
			if showInstr && t.Instruction() != "" {
				fmt.Printf("    %s\n", t.Instruction())
			}
		}
		return nil
	},
}

func parseLevel(s string) (catalog.Level, error) {
	v := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "level")
	n, err := strconv.Atoi(strings.TrimSpace(v))
	level := catalog.Level(n)
	if err != nil || !level.Valid() {
		return 0, fmt.Errorf("invalid level %q (want 1, 2 or 3)", s)
	}
	return level, nil
}

func init() {
	tasksCmd.Flags().BoolP("instructions", "i", false, "Show the examiner instruction for each task")
}
