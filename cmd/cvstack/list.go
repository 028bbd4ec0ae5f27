package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var (
	listStatusFlag      string
	listCompanyFlag     string
	listStarFlag        bool
	listDetailFlag      bool
	listSearchFlag      string
	listArrangementFlag string
	listTypeFlag        string
	listCountryFlag     string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked jobs",
	Long: "Lists tracked jobs newest first, narrowed by any combination of filters.\n" +
		"With --detailed, shows the full detail table for each match. With\n" +
		"--search, picks one matching job interactively and shows its detail table.",
	Args:    cobra.NoArgs,
	Run:     runList,
}

func init() {
	listCmd.Flags().StringVarP(&listStatusFlag, "status", "s", "", "filter by application status")
	listCmd.Flags().BoolVar(&listStarFlag, "star", false, "only starred jobs")
	listCmd.Flags().BoolVarP(&listDetailFlag, "detailed", "d", false, "show the full detail table per job")
	listCmd.Flags().StringVar(&listSearchFlag, "search", "", "match title or company against a query")
	listCmd.Flags().StringVar(&listCompanyFlag, "company", "", "filter by company name")
	listCmd.Flags().StringVar(&listArrangementFlag, "arrangement", "", "filter by work arrangement (on-site, hybrid, remote)")
	listCmd.Flags().StringVar(&listTypeFlag, "type", "", "filter by job type (full-time, part-time, contract, internship)")
	listCmd.Flags().StringVar(&listCountryFlag, "country", "", "filter by country")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	if listSearchFlag != "" {
		jobs, err := store.Search(ctx, listSearchFlag)
		faults.Check(err, "listJobs:search")
		jobs = applyLocalFilters(jobs)
		if len(jobs) == 0 {
			ui.Warnf("No jobs found for the selected filters")
			return
		}
		job, err := prompt.SelectJob("Select a job", jobs)
		faults.Check(err, "listJobs:select")
		fmt.Println(ui.RenderJobDetail(job))
		return
	}

	filter, err := buildListFilter()
	faults.Check(err, "listJobs:filter")
	jobs, err := store.List(ctx, filter)
	faults.Check(err, "listJobs:list")

	if len(jobs) == 0 {
		ui.Warnf("No jobs found for the selected filters")
		return
	}

	if listDetailFlag {
		for i := range jobs {
			fmt.Println(ui.RenderJobDetail(&jobs[i]))
		}
		return
	}
	fmt.Println(ui.RenderJobList(jobs))
}

func buildListFilter() (sqlite.Filter, error) {
	var f sqlite.Filter
	if listStatusFlag != "" {
		status, ok := types.ParseStatus(listStatusFlag)
		if !ok {
			return f, faults.NewCLI("Invalid status: "+listStatusFlag, "listJobs:filter")
		}
		f.Status = &status
	}
	if listCompanyFlag != "" {
		f.Company = &listCompanyFlag
	}
	if listStarFlag {
		starred := true
		f.Starred = &starred
	}
	if listArrangementFlag != "" {
		arrangement := types.WorkArrangement(listArrangementFlag)
		if !arrangement.IsValid() {
			return f, faults.NewCLI("Invalid work arrangement: "+listArrangementFlag, "listJobs:filter")
		}
		f.Arrangement = &arrangement
	}
	if listTypeFlag != "" {
		jobType := types.JobType(listTypeFlag)
		if !jobType.IsValid() {
			return f, faults.NewCLI("Invalid job type: "+listTypeFlag, "listJobs:filter")
		}
		f.JobType = &jobType
	}
	if listCountryFlag != "" {
		f.Country = &listCountryFlag
	}
	return f, nil
}

// applyLocalFilters narrows search results by the status and star flags,
// which combine with --search in memory rather than in SQL.
func applyLocalFilters(jobs []types.JobApplication) []types.JobApplication {
	if listStatusFlag == "" && !listStarFlag {
		return jobs
	}
	var status types.ApplicationStatus
	if listStatusFlag != "" {
		parsed, ok := types.ParseStatus(listStatusFlag)
		if !ok {
			faults.Terminate(faults.NewCLI("Invalid status: "+listStatusFlag, "listJobs:filter"))
			return nil
		}
		status = parsed
	}

	out := jobs[:0]
	for _, j := range jobs {
		if status != "" && j.ApplicationStatus != status {
			continue
		}
		if listStarFlag && !j.Starred {
			continue
		}
		out = append(out, j)
	}
	return out
}
