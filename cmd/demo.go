package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/demo"
	"github.com/zhubert/parley/internal/demo/scenarios"
)

var (
	demoOutput     string
	demoWidth      int
	demoHeight     int
	demoCaptureAll bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Generate demo recordings of Parley",
	Long: `Generate demo recordings of Parley for documentation and presentations.
Scenarios run against the built-in conversations with a fixed clock, so the
output is the same on every run.

Available subcommands:
  list      - List available demo scenarios
  run       - Run a scenario and output to stdout (for testing)
  cast      - Generate an asciinema cast file`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Available demo scenarios:")
		fmt.Fprintln(out)
		for _, s := range scenarios.All() {
			fmt.Fprintf(out, "  %-15s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario and output to stdout (for testing)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemoRun(cmd.OutOrStdout(), args[0])
	},
}

var demoCastCmd = &cobra.Command{
	Use:   "cast <scenario>",
	Short: "Generate an asciinema cast file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemoCast(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{demoRunCmd, demoCastCmd} {
		cmd.Flags().IntVarP(&demoWidth, "width", "w", 120, "Terminal width")
		cmd.Flags().IntVarP(&demoHeight, "height", "H", 40, "Terminal height")
		cmd.Flags().BoolVar(&demoCaptureAll, "capture-all", false, "Capture frame after every key (for debugging)")
	}
	demoCastCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Output file (default <scenario>.cast)")

	demoCmd.AddCommand(demoListCmd, demoRunCmd, demoCastCmd)
	rootCmd.AddCommand(demoCmd)
}

// getScenario returns a copy of the named scenario sized by the flags.
func getScenario(name string) (*demo.Scenario, error) {
	found := scenarios.Get(name)
	if found == nil {
		return nil, fmt.Errorf("unknown scenario %q\nRun 'parley demo list' to see available scenarios", name)
	}

	scenario := *found
	if demoWidth > 0 {
		scenario.Width = demoWidth
	}
	if demoHeight > 0 {
		scenario.Height = demoHeight
	}
	return &scenario, nil
}

func executeScenario(scenario *demo.Scenario) ([]demo.Frame, error) {
	execCfg := demo.DefaultExecutorConfig()
	execCfg.CaptureEveryStep = demoCaptureAll

	frames, err := demo.NewExecutor(execCfg).Run(scenario)
	if err != nil {
		return nil, fmt.Errorf("error running scenario: %w", err)
	}
	return frames, nil
}

func runDemoRun(out io.Writer, name string) error {
	scenario, err := getScenario(name)
	if err != nil {
		return err
	}

	frames, err := executeScenario(scenario)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Captured %d frames\n", len(frames))
	for i, f := range frames {
		fmt.Fprintf(out, "\n=== Frame %d (delay: %v) ===\n", i, f.Delay)
		if f.Annotation != "" {
			fmt.Fprintf(out, "Annotation: %s\n", f.Annotation)
		}
		fmt.Fprintln(out, f.Content)
	}
	return nil
}

func runDemoCast(out io.Writer, name string) error {
	scenario, err := getScenario(name)
	if err != nil {
		return err
	}

	frames, err := executeScenario(scenario)
	if err != nil {
		return err
	}

	outputFile := demoOutput
	if outputFile == "" {
		outputFile = scenario.Name + ".cast"
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer f.Close()

	if err := demo.GenerateASCIICast(f, scenario, frames); err != nil {
		return fmt.Errorf("error generating cast file: %w", err)
	}

	fmt.Fprintf(out, "Generated %s (%d frames)\n", outputFile, len(frames))
	fmt.Fprintf(out, "Play with: asciinema play %s\n", outputFile)
	return nil
}
