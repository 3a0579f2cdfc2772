package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/sppa/internal/catalog"
	"github.com/abhisek/sppa/internal/store"
	"github.com/abhisek/sppa/internal/tasklist"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Browse saved interviews",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved interviews, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		language, _ := cmd.Flags().GetString("language")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		sessions, err := s.SessionRepo().ListSessions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No saved interviews.")
			return nil
		}

		fmt.Printf("%-5s  %-10s  %-16s  %-24s  %-7s  %s\n",
			"ID", "Date", "Language", "Learner", "Start", "Final")
		fmt.Println(strings.Repeat("─", 80))
		for _, d := range sessions {
			if language != "" && !strings.EqualFold(d.Language, language) {
				continue
			}
			fmt.Printf("%-5d  %-10s  %-16s  %-24s  %-7s  %s\n",
				d.ID,
				d.InterviewDate.Format("2006-01-02"),
				truncate(d.Language, 16),
				truncate(learnerLabel(d), 24),
				catalog.Level(d.InitialLevel),
				d.FinalLevel,
			)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an interview with its rated tasks and annotations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.SessionRepo()
		d, err := getSession(cmd, repo, id)
		if err != nil {
			return err
		}
		anns, err := repo.Annotations(ctx, id)
		if err != nil {
			return fmt.Errorf("load annotations: %w", err)
		}
		byPos := make(map[int]store.AnnotationData, len(anns))
		for _, a := range anns {
			byPos[a.Position] = a
		}

		fmt.Printf("ID:          %d\n", d.ID)
		fmt.Printf("UUID:        %s\n", d.UUID)
		fmt.Printf("Date:        %s\n", d.InterviewDate.Format("January 02, 2006"))
		fmt.Printf("Language:    %s\n", d.Language)
		if l := learnerLabel(*d); l != "" {
			fmt.Printf("Learner:     %s\n", l)
		}
		fmt.Printf("Start level: %s\n", catalog.Level(d.InitialLevel))
		fmt.Printf("End level:   %s\n", catalog.Level(d.CurrentLevel))
		fmt.Printf("Final level: %s\n", d.FinalLevel)
		fmt.Printf("Reasoning:   %s\n", d.FinalReasoning)

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		for _, t := range d.Tasks {
			r := tasklist.Rating(t.Rating)
			fmt.Printf("%2d. %-40s  %s  %s\n", t.Position+1, t.Name, catalog.Level(t.Level), r)
			a := byPos[t.Position]
			if a.Topic != "" {
				fmt.Printf("    Topic:   %s\n", a.Topic)
			}
			if a.Prompt != "" {
				fmt.Printf("    Prompt:  %s\n", a.Prompt)
			}
			if a.Comment != "" {
				fmt.Printf("    Comment: %s\n", a.Comment)
			}
		}
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved interview",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		err = s.SessionRepo().DeleteSession(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("session %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		fmt.Printf("Deleted session %d.\n", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid ID %q", s)
	}
	return id, nil
}

func getSession(cmd *cobra.Command, repo store.SessionRepo, id int64) (*store.SessionData, error) {
	d, err := repo.GetSession(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("session %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return d, nil
}

func learnerLabel(d store.SessionData) string {
	switch {
	case d.LearnerName != "" && d.LearnerID != "":
		return fmt.Sprintf("%s (%s)", d.LearnerName, d.LearnerID)
	case d.LearnerName != "":
		return d.LearnerName
	default:
		return d.LearnerID
	}
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of interviews to show")
	sessionsListCmd.Flags().StringP("language", "l", "", "Only show interviews for this language")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
