// cvstack is a personal job application tracker.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/config"
	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/setup"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var (
	verboseFlag bool
	quietFlag   bool

	// store is opened in the root PersistentPreRun and closed in
	// PersistentPostRun. Commands that skip setup never touch it.
	store *sqlite.Store
)

var rootCmd = &cobra.Command{
	Use:     "cvstack",
	Aliases: []string{"cvs"},
	Short:   "Track your job applications from the terminal",
	Long:    banner + "\ncvstack tracks job applications: scrape a posting, extract its details,\nand follow it through the application lifecycle.",
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
			store = nil
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(ui.RenderAccent(banner))
		cmd.Help()
	},
}

// PersistentPreRun is assigned in init to avoid an initialization cycle:
// its closure calls skipsSetup, which refers back to rootCmd.
func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ui.SetVerbose(verboseFlag)
		ui.SetQuiet(quietFlag)

		if logDir, err := config.LogDir(); err == nil {
			faults.SetLogDir(logDir)
		}

		if skipsSetup(cmd) {
			return
		}

		ctx := cmd.Context()
		faults.Check(setup.Ensure(ctx), "root:setup")

		dbPath, err := config.DatabasePath()
		faults.Check(err, "root:dbPath")
		store, err = sqlite.New(ctx, dbPath)
		faults.Check(err, "root:openStore")
	}
}

// skipsSetup reports whether a command runs without a provisioned
// environment.
func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion":
			return true
		}
	}
	return cmd == rootCmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress informational output")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
