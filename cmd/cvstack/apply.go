package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
	"github.com/udbhavbalaji/cvstack/internal/validate"
)

var (
	applyURLFlag string
	applyIDFlag  int64
)

var applyCmd = &cobra.Command{
	Use:   "apply [-u url | -i id]",
	Short: "Mark a job as applied",
	Long: "Records how you applied to a job and moves it to APPLIED. With a URL for\n" +
		"an untracked posting, scrapes and adds it first. Without arguments, pick\n" +
		"from the jobs you haven't applied to yet.",
	Args: cobra.NoArgs,
	Run:  runApply,
}

func init() {
	applyCmd.Flags().StringVarP(&applyURLFlag, "url", "u", "", "posting URL of the job you applied to")
	applyCmd.Flags().Int64VarP(&applyIDFlag, "id", "i", 0, "id of the tracked job you applied to")
	applyCmd.MarkFlagsMutuallyExclusive("url", "id")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	var (
		job *types.JobApplication
		err error
	)
	switch {
	case applyIDFlag > 0:
		job, err = store.Get(ctx, applyIDFlag)
		faults.Check(err, "applyJob:get")
	case applyURLFlag != "":
		jobID, err := validate.ParseJobURL(applyURLFlag)
		faults.Check(err, "applyJob:parseURL")
		_, exists, err := store.Exists(ctx, jobID)
		faults.Check(err, "applyJob:exists")
		if exists {
			job, err = store.Get(ctx, jobID)
			faults.Check(err, "applyJob:get")
		} else {
			job = fetchJob(ctx, applyURLFlag, jobID)
			faults.Check(store.Insert(ctx, job), "applyJob:insert")
		}
	default:
		notApplied := types.StatusNotApplied
		jobs, err := store.List(ctx, sqlite.Filter{Status: &notApplied})
		faults.Check(err, "applyJob:list")
		if len(jobs) == 0 {
			ui.Warnf("No jobs found for the selected filters")
			return
		}
		job, err = prompt.SelectJob("Which job did you apply to?", jobs)
		faults.Check(err, "applyJob:select")
	}

	if job.ApplicationStatus != types.StatusNotApplied {
		faults.Terminate(faults.NewCLI(
			fmt.Sprintf("Job with id %d already exists. Current status: %s", job.JobID, job.ApplicationStatus),
			"applyJob"))
		return
	}

	details, err := prompt.ApplicationInfo(job.ApplicationLink)
	faults.Check(err, "applyJob:details")

	applied := types.StatusApplied
	dateApplied := time.Now().UTC().Format(time.RFC3339)
	update := types.UpdateDetails{
		ApplicationStatus: &applied,
		Referral:          &details.Referral,
		AppMethod:         &details.AppMethod,
		ApplicationLink:   &details.Link,
		DateApplied:       &dateApplied,
	}
	faults.Check(store.UpdateDetails(ctx, job.JobID, update), "applyJob:update")

	green := color.New(color.FgGreen).SprintFunc()
	fmt.Printf("%s Marked %q at %s as APPLIED\n", green(ui.IconPass), job.Title, job.CompanyName)
}
