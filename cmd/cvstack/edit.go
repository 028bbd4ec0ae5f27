package main

import (
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var (
	editIDFlag     int64
	editStatusFlag bool
)

var editCmd = &cobra.Command{
	Use:   "edit [-i id]",
	Short: "Edit a tracked job's details or status",
	Long:  "Opens a prefilled form to edit a tracked job. With --status, pick a new\napplication status instead. Without an id, pick from all tracked jobs.",
	Args:  cobra.NoArgs,
	Run:   runEdit,
}

func init() {
	editCmd.Flags().Int64VarP(&editIDFlag, "id", "i", 0, "id of the job to edit")
	editCmd.Flags().BoolVarP(&editStatusFlag, "status", "s", false, "change the application status")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	var (
		job *types.JobApplication
		err error
	)
	if editIDFlag > 0 {
		job, err = store.Get(ctx, editIDFlag)
		faults.Check(err, "editJob:get")
	} else {
		jobs, err := store.List(ctx, sqlite.Filter{})
		faults.Check(err, "editJob:list")
		if len(jobs) == 0 {
			ui.Warnf("No jobs found for the selected filters")
			return
		}
		job, err = prompt.SelectJob("Which job do you want to edit?", jobs)
		faults.Check(err, "editJob:select")
	}

	if editStatusFlag {
		status, err := prompt.SelectStatus("New application status", job.ApplicationStatus)
		faults.Check(err, "editJob:selectStatus")
		if status == job.ApplicationStatus {
			ui.Infof("No changes made")
			return
		}
		faults.Check(store.UpdateStatus(ctx, job.JobID, status), "editJob:updateStatus")
		ui.Infof("Status updated to %s", status)
		return
	}

	update, err := prompt.EditJob(job)
	faults.Check(err, "editJob:form")
	if update.IsEmpty() {
		ui.Infof("No changes made")
		return
	}
	faults.Check(store.UpdateDetails(ctx, job.JobID, *update), "editJob:update")
	ui.Infof("Job updated successfully")
}
