package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/sppa/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Export the report for a saved interview",
	Long: "Export the report for a saved interview. The file is written to the configured\n" +
		"report directory unless --out is given; --out - prints the report instead.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.SessionRepo()
		d, err := getSession(cmd, repo, id)
		if err != nil {
			return err
		}
		anns, err := repo.Annotations(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("load annotations: %w", err)
		}
		doc := report.Build(*d, anns)

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.Report.Format
		}
		out, _ := cmd.Flags().GetString("out")

		if out == "-" {
			r, err := report.Lookup(format)
			if err != nil {
				return err
			}
			return r.Render(os.Stdout, doc)
		}

		dir := cfg.Report.Dir
		if out != "" {
			dir = out
		}
		path, err := report.WriteFile(dir, format, doc)
		if err != nil {
			return err
		}
		fmt.Println("Report written to", path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("format", "f", "", fmt.Sprintf("Report format (%s)", strings.Join(report.Formats(), ", ")))
	reportCmd.Flags().StringP("out", "o", "", "Output directory, or - for stdout")
}
