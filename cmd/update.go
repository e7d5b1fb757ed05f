package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/viva/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update viva to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly, _ := cmd.Flags().GetBool("check"); checkOnly {
			return runCheck(ctx, checker)
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
		}, func(p selfupdate.UpdateProgress) {
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
		if os.IsPermission(err) {
			return fmt.Errorf("%w\n\nTry running: sudo viva update", err)
		}

		return err
	},
}

// runCheck reports whether a newer release exists without installing it.
func runCheck(ctx context.Context, checker *selfupdate.Checker) error {
	result, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if errors.Is(err, selfupdate.ErrDevBuild) {
		fmt.Println("Development build; release checks are skipped.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}

	if !result.UpdateAvailable {
		fmt.Printf("Already running the latest version (%s).\n", result.CurrentVersion)
		return nil
	}

	fmt.Printf("Update available: %s -> %s\n", result.CurrentVersion, result.LatestVersion)
	if result.ReleaseURL != "" {
		fmt.Println("Release notes:", result.ReleaseURL)
	}
	fmt.Println("Run 'viva update' to install it.")
	return nil
}

func init() {
	updateCmd.Flags().Bool("check", false, "Check for a newer release without installing it")
}
