package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Stop tracking a job",
	Args:  cobra.MaximumNArgs(1),
	Run:   runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	if len(args) == 0 {
		faults.Terminate(faults.NewCLI("Missing required argument: id", "deleteJob"))
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		faults.Terminate(faults.NewCLI("Invalid job id: "+args[0], "deleteJob"))
		return
	}

	job, err := store.Get(ctx, id)
	faults.Check(err, "deleteJob:get")
	confirmed, err := prompt.Confirm(fmt.Sprintf("Delete %q at %s?", job.Title, job.CompanyName))
	faults.Check(err, "deleteJob:confirm")
	if !confirmed {
		ui.Warnf("Aborting delete operation.")
		return
	}

	faults.Check(store.Delete(ctx, id), "deleteJob:delete")
	ui.Infof("Job %d deleted", id)
}
