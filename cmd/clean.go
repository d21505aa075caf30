package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and saved UI state",
	Long: `Removes parley's debug log files and forgets the last opened conversation.
Theme, timezone and other settings are kept.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin, cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	fmt.Fprintln(out, "This will clean:")
	fmt.Fprintln(out, "  - All log files in /tmp")
	if id := cfg.GetLastConversationID(); id != "" {
		fmt.Fprintf(out, "  - Last opened conversation (%s)\n", id)
	}

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, out, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg.SetLastConversationID("")
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}

	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, out io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
