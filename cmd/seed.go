package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/chat"
)

var forceSeed bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create and check conversation seed files",
	Long: `Seed files are YAML lists of conversations and messages loaded at startup
with --seed or the seed_path config key. Message times are either absolute
("timestamp") or relative to today ("day" offset plus "time" of day).`,
}

var seedInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write the built-in conversations as a seed template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedInit(cmd.OutOrStdout(), args[0])
	},
}

var seedValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Load a seed file and report what it contains",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeedValidate(cmd.OutOrStdout(), args[0], time.Now())
	},
}

func init() {
	seedInitCmd.Flags().BoolVarP(&forceSeed, "force", "f", false, "Overwrite an existing file")
	seedCmd.AddCommand(seedInitCmd, seedValidateCmd)
	rootCmd.AddCommand(seedCmd)
}

func runSeedInit(out io.Writer, path string) error {
	if !forceSeed {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := chat.WriteSeed(path, chat.DefaultSeedFile()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote seed template to %s\n", path)
	return nil
}

func runSeedValidate(out io.Writer, path string, now time.Time) error {
	convs, err := chat.LoadSeed(path, now)
	if err != nil {
		return err
	}

	messages, unread, reactions := 0, 0, 0
	for _, c := range convs {
		messages += len(c.Messages)
		unread += c.Unread
		for _, m := range c.Messages {
			reactions += len(m.Reactions)
		}
	}

	fmt.Fprintf(out, "%s is valid\n", path)
	fmt.Fprintf(out, "  %s conversation(s), %s message(s), %s unread, %s reaction(s)\n",
		humanize.Comma(int64(len(convs))),
		humanize.Comma(int64(messages)),
		humanize.Comma(int64(unread)),
		humanize.Comma(int64(reactions)),
	)
	for _, c := range convs {
		last := "empty"
		if m, ok := c.Last(); ok {
			last = "last " + humanize.RelTime(m.Timestamp, now, "ago", "from now")
		}
		fmt.Fprintf(out, "  - %s (%d messages, %s)\n", c.Name, len(c.Messages), last)
	}
	return nil
}
