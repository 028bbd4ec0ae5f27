package main

import (
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var starIDFlag int64

var starCmd = &cobra.Command{
	Use:   "star [-i id]",
	Short: "Toggle a job's starred flag",
	Args:  cobra.NoArgs,
	Run:   runStar,
}

func init() {
	starCmd.Flags().Int64VarP(&starIDFlag, "id", "i", 0, "id of the job to star or unstar")
	rootCmd.AddCommand(starCmd)
}

func runStar(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	id := starIDFlag
	if id == 0 {
		jobs, err := store.List(ctx, sqlite.Filter{})
		faults.Check(err, "starJob:list")
		if len(jobs) == 0 {
			ui.Warnf("No jobs found for the selected filters")
			return
		}
		job, err := prompt.SelectJob("Which job do you want to star?", jobs)
		faults.Check(err, "starJob:select")
		id = job.JobID
	}

	starred, err := store.ToggleStarred(ctx, id)
	faults.Check(err, "starJob:toggle")
	if starred {
		ui.Infof("%s Job %d starred", ui.IconStar, id)
	} else {
		ui.Infof("Job %d unstarred", id)
	}
}
