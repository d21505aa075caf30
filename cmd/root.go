package cmd

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	seedPath              string
	themeName             string
	timezone              string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Terminal messenger with reactions, replies and a message action sheet",
	Long: `Parley is a terminal chat client. Conversations are local and the other
side is simulated: sent messages get delivered and read, ctrl+t makes the
other person type a reply, ctrl+r drops a message in right away.

Select a message and press enter for the action sheet: quick reactions,
reply, copy and more.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.Flags().StringVar(&seedPath, "seed", "", "YAML seed file with conversations (overrides seed_path in config)")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "Color theme for this run (saved on exit)")
	rootCmd.Flags().StringVar(&timezone, "tz", "", "IANA timezone for timestamps and date separators")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("parley %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("parley %s\n", version)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	store, err := loadStore(cfg, time.Now())
	if err != nil {
		return err
	}

	m := app.New(cfg, store)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// applyFlags layers command-line overrides on top of the loaded config.
func applyFlags(cfg *config.Config) error {
	if themeName != "" {
		if !ui.IsTheme(themeName) {
			return fmt.Errorf("unknown theme %q (available: %v)", themeName, ui.ThemeNames())
		}
		cfg.SetTheme(themeName)
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", timezone, err)
		}
		cfg.SetTimezone(timezone)
	}
	if seedPath != "" {
		cfg.SetSeedPath(seedPath)
	}
	return nil
}

// loadStore builds the message store from the configured seed, or the
// built-in conversations when there is none.
func loadStore(cfg *config.Config, now time.Time) (*chat.Store, error) {
	convs := chat.DefaultSeed(now)
	if path := cfg.GetSeedPath(); path != "" {
		loaded, err := chat.LoadSeed(path, now)
		if err != nil {
			return nil, fmt.Errorf("error loading seed: %w", err)
		}
		convs = loaded
	}
	return chat.NewStore(convs, chat.WithUserID(cfg.GetUserID())), nil
}
