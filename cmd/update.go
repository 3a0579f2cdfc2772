package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/sppa/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update sppa to the latest release",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("version")
		force, _ := cmd.Flags().GetBool("force")
		major, _ := cmd.Flags().GetBool("major")

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
			if err != nil {
				return fmt.Errorf("check for updates: %w", err)
			}
			switch {
			case res.MajorChange:
				fmt.Printf("sppa %s is available (running %s) and changes the major version; install it with --major after finishing open interviews: %s\n",
					res.LatestVersion, version, res.ReleaseURL)
			case res.UpdateAvailable:
				fmt.Printf("sppa %s is available (running %s): %s\n", res.LatestVersion, version, res.ReleaseURL)
			default:
				fmt.Printf("Running %s; latest release is %s.\n", version, res.LatestVersion)
			}
			return nil
		}

		in := &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
			AllowMajor:     major,
		}
		if !force {
			s, _, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			in.Guard = &selfupdate.Guard{Events: s.EventRepo(), Sessions: s.SessionRepo()}
		}

		err := checker.Update(ctx, in, func(p selfupdate.UpdateProgress) {
			fmt.Println(p.Message)
		})

		if err == nil {
			return nil
		}

		if errors.Is(err, selfupdate.ErrDevBuild) {
			fmt.Println("Cannot update a development build. Install a release build first.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrAlreadyLatest) {
			fmt.Println("Already running the latest version.")
			return nil
		}
		if errors.Is(err, selfupdate.ErrInterviewOpen) {
			return fmt.Errorf("%w\n\nFinish and save the interview first, or pass --force", err)
		}
		if errors.Is(err, selfupdate.ErrMajorUpgrade) {
			return fmt.Errorf("%w\n\nBack up the database, then rerun with --major", err)
		}
		if os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo sppa update", err)
		}

		return err
	},
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether a newer release exists")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
	updateCmd.Flags().Bool("major", false, "Allow moving to a new major version")
	updateCmd.Flags().Bool("force", false, "Update even if an interview is still in progress")
}
