package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/notification"
)

// testNow is the fixed clock for every app test.
var testNow = time.Date(2025, time.June, 19, 12, 0, 0, 0, time.UTC)

// testConfig creates a config backed by a temp directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("PARLEY_CONFIG_DIR", t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.SetTimezone("UTC")
	return cfg
}

// testStore creates a store over the built-in conversations.
func testStore() *chat.Store {
	return chat.NewStore(chat.DefaultSeed(testNow), chat.WithClock(func() time.Time { return testNow }))
}

// testModel creates a test Model with the given config.
func testModel(t *testing.T, cfg *config.Config) *Model {
	t.Helper()
	return New(cfg, testStore(), WithClock(func() time.Time { return testNow }))
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(t *testing.T, width, height int) *Model {
	t.Helper()
	m := testModel(t, testConfig(t))
	return setSize(m, width, height)
}

// openAnna opens the first conversation from the list.
func openAnna(t *testing.T) *Model {
	t.Helper()
	m := testModelWithSize(t, 120, 40)
	m = sendKey(m, keys.Enter)
	if m.OpenConversationID() != "anna" {
		t.Fatalf("open conversation = %q, want anna", m.OpenConversationID())
	}
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+c", "up", "down"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlE:
		return tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	default:
		// Regular character - set both Code and Text
		r := []rune(key)
		if len(r) == 1 {
			return tea.KeyPressMsg{Code: r[0], Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the updated model.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// sendKeyCmd sends a key press and returns the resulting command.
func sendKeyCmd(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		m = sendKey(m, string(ch))
	}
	return m
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) *Model {
	result, _ := m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return result.(*Model)
}

// send delivers msg to the model and returns the updated model.
func send(m *Model, msg tea.Msg) *Model {
	result, _ := m.Update(msg)
	return result.(*Model)
}

// lastMessage returns the newest message of convID.
func lastMessage(t *testing.T, m *Model, convID string) chat.Message {
	t.Helper()
	conv, err := m.store.Conversation(convID)
	if err != nil {
		t.Fatalf("conversation %s: %v", convID, err)
	}
	last, ok := conv.Last()
	if !ok {
		t.Fatalf("conversation %s is empty", convID)
	}
	return last
}

// fakeClipboard records writes instead of touching the system clipboard.
type fakeClipboard struct {
	text []byte
}

func (f *fakeClipboard) Init() error       { return nil }
func (f *fakeClipboard) Write(text []byte) { f.text = append([]byte(nil), text...) }
func (f *fakeClipboard) Read() []byte      { return f.text }

// useFakeClipboard swaps in a fakeClipboard for the test.
func useFakeClipboard(t *testing.T) *fakeClipboard {
	t.Helper()
	fc := &fakeClipboard{}
	clipboard.SetBackend(fc)
	t.Cleanup(clipboard.ResetBackend)
	return fc
}

type sentNotification struct {
	title, message string
}

// captureNotifications records desktop notifications for the test.
func captureNotifications(t *testing.T) *[]sentNotification {
	t.Helper()
	var sent []sentNotification
	notification.SetNotifier(func(title, message string, _ any) error {
		sent = append(sent, sentNotification{title, message})
		return nil
	})
	t.Cleanup(notification.ResetNotifier)
	return &sent
}
