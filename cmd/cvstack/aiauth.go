package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/udbhavbalaji/cvstack/internal/config"
	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

var aiAuthCmd = &cobra.Command{
	Use:   "ai-auth",
	Short: "Store your Anthropic API key",
	Long:  "Prompts for an Anthropic API key and writes it to the cvstack env file.\nThe ANTHROPIC_API_KEY environment variable always takes precedence.",
	Run:   runAIAuth,
}

func init() {
	rootCmd.AddCommand(aiAuthCmd)
}

func runAIAuth(cmd *cobra.Command, args []string) {
	key, err := prompt.Password("Anthropic API key")
	faults.Check(err, "aiAuth:prompt")
	key = strings.TrimSpace(key)
	if key == "" {
		faults.Terminate(faults.NewCLI("API key cannot be empty", "aiAuth"))
		return
	}

	faults.Check(config.WriteAPIKey(key), "aiAuth:write")
	ui.Infof("API key saved")
}
