package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rivo/uniseg"
	perrors "github.com/zhubert/parley/internal/errors"
)

// Composer row limits
const (
	DefaultComposerMinRows = 1
	DefaultComposerMaxRows = 5
	// MaxComposerRows caps user configuration so the composer can't swallow the thread
	MaxComposerRows = 12
)

// DefaultUserID identifies the local user in reactions and seeds
const DefaultUserID = "me"

// DefaultQuickReactions are shown in the emoji bar of the message action sheet
var DefaultQuickReactions = []string{"❤️", "😂", "😮", "😢", "😡", "👍"}

// Config holds the application configuration
type Config struct {
	UserID               string   `json:"user_id"`
	DisplayName          string   `json:"display_name,omitempty"`
	Theme                string   `json:"theme,omitempty"`                 // UI theme name (e.g., "dark-purple", "nord")
	Timezone             string   `json:"timezone,omitempty"`              // IANA zone for date separators; empty means the process zone
	NotificationsEnabled bool     `json:"notifications_enabled,omitempty"` // Desktop notifications for incoming messages
	SeedPath             string   `json:"seed_path,omitempty"`             // YAML seed used instead of the built-in conversations
	ComposerMinRows      int      `json:"composer_min_rows,omitempty"`
	ComposerMaxRows      int      `json:"composer_max_rows,omitempty"`
	QuickReactions       []string `json:"quick_reactions,omitempty"`
	LastConversationID   string   `json:"last_conversation_id,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDirEnv overrides the config directory (used by tests and scripts)
const configDirEnv = "PARLEY_CONFIG_DIR"

// configDir returns the path to the config directory
func configDir() (string, error) {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// New returns a config populated with defaults and no backing file.
func New() *Config {
	cfg := &Config{}
	cfg.ensureInitialized()
	return cfg
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	cfg := New()
	cfg.filePath = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	// Fill defaults for anything the file left out. Must run before Validate.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills zero values with defaults.
//
// Not thread-safe: only called from New/Load before the Config is shared.
func (c *Config) ensureInitialized() {
	if c.UserID == "" {
		c.UserID = DefaultUserID
	}
	if c.ComposerMinRows == 0 {
		c.ComposerMinRows = DefaultComposerMinRows
	}
	if c.ComposerMaxRows == 0 {
		c.ComposerMaxRows = DefaultComposerMaxRows
	}
	if len(c.QuickReactions) == 0 {
		c.QuickReactions = append([]string(nil), DefaultQuickReactions...)
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return perrors.ConfigInvalid(fmt.Sprintf("unknown timezone %q", c.Timezone))
		}
	}

	if c.ComposerMinRows < 1 {
		return perrors.ConfigInvalid(fmt.Sprintf("composer_min_rows must be at least 1, got %d", c.ComposerMinRows))
	}
	if c.ComposerMaxRows < c.ComposerMinRows {
		return perrors.ConfigInvalid(fmt.Sprintf("composer_max_rows (%d) is below composer_min_rows (%d)", c.ComposerMaxRows, c.ComposerMinRows))
	}
	if c.ComposerMaxRows > MaxComposerRows {
		return perrors.ConfigInvalid(fmt.Sprintf("composer_max_rows must be at most %d, got %d", MaxComposerRows, c.ComposerMaxRows))
	}

	seen := make(map[string]bool)
	for _, r := range c.QuickReactions {
		if uniseg.GraphemeClusterCount(r) != 1 {
			return perrors.ConfigInvalid(fmt.Sprintf("quick reaction %q is not a single emoji", r))
		}
		if seen[r] {
			return perrors.ConfigInvalid(fmt.Sprintf("duplicate quick reaction %q", r))
		}
		seen[r] = true
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.filePath
	if path == "" {
		p, err := configPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return perrors.ConfigSaveFailed(path, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(path, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(path, err)
	}
	return nil
}

// GetUserID returns the local user's id
func (c *Config) GetUserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.UserID
}

// GetDisplayName returns the local user's display name, falling back to "You"
func (c *Config) GetDisplayName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.DisplayName == "" {
		return "You"
	}
	return c.DisplayName
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// Location returns the zone used for calendar-day grouping. An empty or
// unknown timezone falls back to the process zone.
func (c *Config) Location() *time.Location {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SetTimezone sets the IANA zone name used for grouping
func (c *Config) SetTimezone(tz string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Timezone = tz
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetSeedPath returns the configured seed file, if any
func (c *Config) GetSeedPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SeedPath
}

// SetSeedPath sets the seed file to load on startup
func (c *Config) SetSeedPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SeedPath = path
}

// ComposerRows returns the min and max composer heights in rows
func (c *Config) ComposerRows() (min, max int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ComposerMinRows, c.ComposerMaxRows
}

// GetQuickReactions returns a copy of the quick reaction emoji
func (c *Config) GetQuickReactions() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.QuickReactions))
	copy(out, c.QuickReactions)
	return out
}

// GetLastConversationID returns the conversation that was open at last exit
func (c *Config) GetLastConversationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastConversationID
}

// SetLastConversationID remembers the open conversation
func (c *Config) SetLastConversationID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastConversationID = id
}
