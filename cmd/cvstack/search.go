package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Pick a tracked job and act on it",
	Long: "Interactively picks one tracked job, narrowed by an optional title or\n" +
		"company query, prints its detail table, and offers follow-up actions:\n" +
		"copy its id or application link, or edit its details in place.",
	Args: cobra.ArbitraryArgs,
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	query := strings.TrimSpace(strings.Join(args, " "))

	var (
		jobs []types.JobApplication
		err  error
	)
	if query == "" {
		jobs, err = store.List(ctx, sqlite.Filter{})
		faults.Check(err, "searchJobs:list")
	} else {
		jobs, err = store.Search(ctx, query)
		faults.Check(err, "searchJobs:search")
	}
	if len(jobs) == 0 {
		ui.Warnf("No jobs found for the selected filters")
		return
	}

	job, err := prompt.SelectJob("Select a job", jobs)
	faults.Check(err, "searchJobs:select")
	fmt.Println(ui.RenderJobDetail(job))

	action, err := prompt.SelectAction("What do you want to do?")
	faults.Check(err, "searchJobs:action")

	if payload, ok := clipboardPayload(job, action); ok {
		faults.Check(clipboard.WriteAll(payload), "searchJobs:copy")
		ui.Infof("Copied %s to clipboard", payload)
		return
	}

	if action == prompt.ActionEdit {
		update, err := prompt.EditJob(job)
		faults.Check(err, "searchJobs:form")
		if update.IsEmpty() {
			ui.Infof("No changes made")
			return
		}
		faults.Check(store.UpdateDetails(ctx, job.JobID, *update), "searchJobs:update")
		ui.Infof("Job updated successfully")
	}
}

// clipboardPayload resolves a copy action to the text it should place on
// the clipboard. Non-copy actions return false.
func clipboardPayload(j *types.JobApplication, action prompt.SearchAction) (string, bool) {
	switch action {
	case prompt.ActionCopyID:
		return strconv.FormatInt(j.JobID, 10), true
	case prompt.ActionCopyLink:
		return j.ApplicationLink, true
	default:
		return "", false
	}
}
