package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for global shortcuts; keys that only
// mean something inside one pane are handled by that pane.
type Shortcut struct {
	Key                  string                 // The key binding (e.g., "q", "ctrl+t")
	DisplayKey           string                 // Display name in help (e.g., "ctrl-t"); defaults to Key
	Description          string                 // Human-readable description
	Category             string                 // Section for help grouping
	RequiresConversation bool                   // A conversation must be open
	RequiresList         bool                   // Only while the list has focus (printable keys)
	Handler              func(m *Model) tea.Cmd // Action to perform
	Condition            func(m *Model) bool    // Optional extra condition
}

// Categories for organizing shortcuts in help output
const (
	CategoryNavigation = "Navigation"
	CategorySimulation = "Simulation"
	CategoryGeneral    = "General"
)

var categoryOrder = []string{
	CategoryNavigation,
	CategorySimulation,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of global shortcuts.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         keys.Tab,
		DisplayKey:  "Tab",
		Description: "Next pane",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) tea.Cmd { return m.cycleFocus(1) },
	},
	{
		Key:         keys.ShiftTab,
		DisplayKey:  "Shift+Tab",
		Description: "Previous pane",
		Category:    CategoryNavigation,
		Handler:     func(m *Model) tea.Cmd { return m.cycleFocus(-1) },
	},

	// Simulation
	{
		Key:                  keys.CtrlT,
		DisplayKey:           "ctrl-t",
		Description:          "Other side starts typing, then replies",
		Category:             CategorySimulation,
		RequiresConversation: true,
		Handler:              func(m *Model) tea.Cmd { return m.simulateTyping() },
	},
	{
		Key:         keys.CtrlR,
		DisplayKey:  "ctrl-r",
		Description: "Receive a message now",
		Category:    CategorySimulation,
		Handler:     func(m *Model) tea.Cmd { return m.receiveNow() },
	},
	{
		Key:                  keys.CtrlO,
		DisplayKey:           "ctrl-o",
		Description:          "Send an attachment",
		Category:             CategorySimulation,
		RequiresConversation: true,
		Handler:              func(m *Model) tea.Cmd { return m.openAttachmentMenu() },
	},

	// General
	{
		Key:         keys.CtrlE,
		DisplayKey:  "ctrl-e",
		Description: "Next color theme",
		Category:    CategoryGeneral,
		Handler:     shortcutTheme,
	},
	{
		Key:          "q",
		Description:  "Quit",
		Category:     CategoryGeneral,
		RequiresList: true,
		Handler:      func(m *Model) tea.Cmd { return m.quit() },
	},
}

// displayOnlyShortcuts are pane-local keys listed for help only.
var displayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Move through conversations or messages", Category: CategoryNavigation},
	{DisplayKey: "/", Description: "Filter conversations", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open conversation / Message actions / Send", Category: CategoryNavigation},
	{DisplayKey: "e", Description: "React with any emoji", Category: CategoryNavigation},
	{DisplayKey: "r", Description: "Show who reacted", Category: CategoryNavigation},
	{DisplayKey: "shift+enter", Description: "New line in the composer", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Close overlay / Cancel reply / Back", Category: CategoryNavigation},
}

// isShortcutApplicable checks the guards of s against the current state.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresList && m.focus != FocusList {
		return false
	}
	if s.RequiresConversation && m.thread.ConversationID() == "" {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (cmd, true) if the shortcut was found and its guards passed,
// (nil, false) if the key should go to the focused pane instead.
func (m *Model) ExecuteShortcut(key string) (tea.Cmd, bool) {
	// In search mode every key edits the filter.
	if m.focus == FocusList && m.list.IsSearchMode() {
		return nil, false
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			logger.WithComponent("shortcuts").Debug("guard failed", "key", key, "focus", m.focus.String())
			return nil, false
		}
		logger.WithComponent("shortcuts").Debug("executing", "key", key)
		return s.Handler(m), true
	}
	return nil, false
}

// cycleFocus moves focus delta panes along list, thread, composer.
func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := []Focus{FocusList, FocusThread, FocusComposer}
	if m.thread.ConversationID() == "" {
		return m.setFocus(FocusList)
	}
	next := (int(m.focus) + delta + len(order)) % len(order)
	return m.setFocus(order[next])
}

func shortcutTheme(m *Model) tea.Cmd {
	name := m.nextTheme()
	m.applyTheme(name)
	return m.ShowFlashInfo("Theme: " + string(name))
}

// ShortcutHelp renders every shortcut grouped by category, for the
// keys command.
func ShortcutHelp() string {
	var b strings.Builder
	all := append(append([]Shortcut{}, ShortcutRegistry...), displayOnlyShortcuts...)
	for i, category := range categoryOrder {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(category + "\n")
		for _, s := range all {
			if s.Category != category {
				continue
			}
			display := s.DisplayKey
			if display == "" {
				display = s.Key
			}
			fmt.Fprintf(&b, "  %-14s %s\n", display, s.Description)
		}
	}
	return b.String()
}
