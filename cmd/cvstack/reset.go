package main

import (
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var resetNoConfirmFlag bool

var resetCmd = &cobra.Command{
	Use:   "reset [-n]",
	Short: "Delete all tracked jobs",
	Run:   runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetNoConfirmFlag, "no-confirm", "n", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	if !resetNoConfirmFlag {
		confirmed, err := prompt.Confirm("This will delete every tracked job. Continue?")
		faults.Check(err, "resetJobs:confirm")
		if !confirmed {
			ui.Warnf("Aborting reset operation.")
			return
		}
	}

	deleted, err := store.DeleteAll(ctx)
	faults.Check(err, "resetJobs:deleteAll")
	ui.Infof("Deleted %d job(s)", deleted)
}
