package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/stats"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var (
	statsDetailFlag bool
	statsTopFlag    int
)

var statsCmd = &cobra.Command{
	Use:   "stats [-d] [-t n]",
	Short: "Show aggregate stats over tracked jobs",
	Run:   runStats,
}

func init() {
	statsCmd.Flags().BoolVarP(&statsDetailFlag, "detailed", "d", false, "include company, country and method breakdowns")
	statsCmd.Flags().IntVarP(&statsTopFlag, "top", "t", stats.DefaultTopSkills, "how many top skills to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	jobs, err := store.List(ctx, sqlite.Filter{})
	faults.Check(err, "statsJobs:list")
	if len(jobs) == 0 {
		ui.Warnf("No jobs found for the selected filters")
		return
	}

	summary := stats.Compute(jobs, time.Now(), statsTopFlag)
	fmt.Println(stats.Render(summary, statsDetailFlag))
}
