package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/parley/internal/config"
)

func TestDebugFlagDefaultTrue(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("debug")
	if flag == nil {
		t.Fatal("--debug flag not found")
	}
	if flag.DefValue != "true" {
		t.Errorf("--debug default = %q, want %q", flag.DefValue, "true")
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestInitConfig_DefaultDebugEnabled(t *testing.T) {
	// Save and restore package state
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = false

	// Should not panic
	initConfig()
}

func TestInitConfig_QuietOverridesDebug(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() { debugMode, quietMode = origDebug, origQuiet }()

	debugMode = true
	quietMode = true

	// Should not panic - quiet should take precedence
	initConfig()
}

func TestVersionTemplate(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer SetVersionInfo(origV, origC, origD)

	SetVersionInfo("1.2.0", "none", "unknown")
	if got := versionTemplate(); got != "parley 1.2.0\n" {
		t.Errorf("versionTemplate() = %q", got)
	}
	SetVersionInfo("1.2.0", "abc123", "2025-06-19")
	if got := versionTemplate(); !strings.Contains(got, "commit: abc123") {
		t.Errorf("versionTemplate() = %q, want commit line", got)
	}
}

// withFlags sets the run flags for one test.
func withFlags(t *testing.T, theme, tz, seed string) {
	t.Helper()
	origTheme, origTZ, origSeed := themeName, timezone, seedPath
	t.Cleanup(func() { themeName, timezone, seedPath = origTheme, origTZ, origSeed })
	themeName, timezone, seedPath = theme, tz, seed
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		theme   string
		tz      string
		wantErr string
	}{
		{"no flags", "", "", ""},
		{"valid theme and zone", "nord", "Europe/Warsaw", ""},
		{"unknown theme", "neon", "", "unknown theme"},
		{"unknown zone", "", "Mars/Olympus", "unknown timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFlags(t, tt.theme, tt.tz, "")
			cfg := config.New()
			err := applyFlags(cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.theme != "" && cfg.GetTheme() != tt.theme {
				t.Errorf("theme = %q", cfg.GetTheme())
			}
			if tt.tz != "" && cfg.Location().String() != tt.tz {
				t.Errorf("location = %s", cfg.Location())
			}
		})
	}
}

func TestLoadStore_BuiltIn(t *testing.T) {
	withFlags(t, "", "", "")
	store, err := loadStore(config.New(), time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Conversation("anna"); err != nil {
		t.Errorf("built-in conversations missing: %v", err)
	}
}

func TestLoadStore_FromSeedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `conversations:
  - id: ops
    name: Ops
    messages:
      - id: 1
        text: deploy is green
        day: 0
        time: "08:00"
`
	if err := os.WriteFile(path, []byte(seed), 0644); err != nil {
		t.Fatal(err)
	}
	withFlags(t, "", "", path)
	cfg := config.New()
	if err := applyFlags(cfg); err != nil {
		t.Fatal(err)
	}
	store, err := loadStore(cfg, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	msgs, err := store.Messages("ops")
	if err != nil || len(msgs) != 1 || msgs[0].Text != "deploy is green" {
		t.Fatalf("messages = %+v, err = %v", msgs, err)
	}
	if _, err := store.Conversation("anna"); err == nil {
		t.Error("seed should replace the built-in conversations")
	}
}

func TestLoadStore_BadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("conversations: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.New()
	cfg.SetSeedPath(path)
	if _, err := loadStore(cfg, time.Now()); err == nil {
		t.Error("expected an error for a seed without conversations")
	}
	cfg.SetSeedPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if _, err := loadStore(cfg, time.Now()); err == nil {
		t.Error("expected an error for a missing seed")
	}
}

func TestLoadStore_UsesConfiguredUser(t *testing.T) {
	cfg := config.New()
	store, err := loadStore(cfg, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if store.UserID() != cfg.GetUserID() {
		t.Errorf("store user = %q, config user = %q", store.UserID(), cfg.GetUserID())
	}
}
