package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/app"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List keyboard shortcuts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), app.ShortcutHelp())
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
