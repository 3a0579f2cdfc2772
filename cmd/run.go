package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/sppa/internal/app"
	"github.com/abhisek/sppa/internal/llm"
	"github.com/abhisek/sppa/internal/prompts"
	"github.com/abhisek/sppa/internal/screen"
	"github.com/abhisek/sppa/internal/session"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	env := &screen.Env{
		Journal:      session.NewJournal(eventRepo),
		Sessions:     st.SessionRepo(),
		ReportDir:    cfg.Report.Dir,
		ReportFormat: cfg.Report.Format,
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, eventRepo)
	switch {
	case errors.Is(err, llm.ErrDisabled):
	case err != nil:
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Prompt suggestions will be unavailable.")
	default:
		env.Prompts = prompts.New(provider, prompts.DefaultConfig())
	}

	return app.Run(app.Options{Env: env})
}
