package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/store"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events [session]",
	Short: "Show the interview event log",
	Long: "Show the interview event log, oldest first. The session may be given as a\n" +
		"saved interview ID or as the interview UUID; without it every event is shown.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		sessionID := ""
		if len(args) == 1 {
			sessionID = args[0]
			if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
				d, err := getSession(cmd, s.SessionRepo(), id)
				if err != nil {
					return err
				}
				sessionID = d.UUID
			}
		}

		events, err := s.EventRepo().QuerySessionEvents(ctx, sessionID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No session events found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-8s  %-16s  %-10s  %-7s  %-7s  %s\n",
			"Seq", "Timestamp", "Session", "Action", "Phase", "Level", "Outcome", "Detail")
		fmt.Println(strings.Repeat("─", 100))
		for _, e := range events {
			level := "-"
			if e.Level > 0 {
				level = catalog.Level(e.Level).String()
			}
			fmt.Printf("%-6d  %-19s  %-8s  %-16s  %-10s  %-7s  %-7s  %s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(e.SessionID, 8),
				e.Action,
				e.Phase,
				level,
				e.Outcome,
				e.Detail,
			)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().IntP("limit", "n", 100, "Number of events to show")
}
