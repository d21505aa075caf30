package ui

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FooterMode selects which bindings the footer advertises.
type FooterMode int

const (
	ModeList FooterMode = iota
	ModeSearch
	ModeThread
	ModeComposer
	ModeActionSheet
	ModeEmojiPicker
	ModeReactionDetails
	ModeAttachmentMenu
)

var modeBindings = map[FooterMode][]KeyBinding{
	ModeList: {
		{Key: "↑/↓", Desc: "navigate"},
		{Key: "enter", Desc: "open"},
		{Key: "/", Desc: "search"},
		{Key: "tab", Desc: "switch pane"},
		{Key: "q", Desc: "quit"},
	},
	ModeSearch: {
		{Key: "type", Desc: "filter"},
		{Key: "enter", Desc: "open"},
		{Key: "esc", Desc: "clear"},
	},
	ModeThread: {
		{Key: "↑/↓", Desc: "select"},
		{Key: "enter", Desc: "actions"},
		{Key: "e", Desc: "react"},
		{Key: "r", Desc: "reactions"},
		{Key: "G", Desc: "latest"},
		{Key: "tab", Desc: "compose"},
	},
	ModeComposer: {
		{Key: "enter", Desc: "send"},
		{Key: "shift+enter", Desc: "newline"},
		{Key: "ctrl+o", Desc: "attach"},
		{Key: "ctrl+t", Desc: "simulate reply"},
		{Key: "tab", Desc: "switch pane"},
	},
	ModeActionSheet: {
		{Key: "←/→", Desc: "emoji"},
		{Key: "↑/↓", Desc: "action"},
		{Key: "enter", Desc: "choose"},
		{Key: "esc", Desc: "close"},
	},
	ModeEmojiPicker: {
		{Key: "arrows", Desc: "move"},
		{Key: "enter", Desc: "react"},
		{Key: "esc", Desc: "close"},
	},
	ModeReactionDetails: {
		{Key: "↑/↓", Desc: "emoji"},
		{Key: "x", Desc: "remove mine"},
		{Key: "esc", Desc: "close"},
	},
	ModeAttachmentMenu: {
		{Key: "↑/↓", Desc: "choose"},
		{Key: "enter", Desc: "attach"},
		{Key: "esc", Desc: "cancel"},
	},
}

// FlashType is the severity of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash stays when no duration is given.
const DefaultFlashDuration = FlashDuration

// FlashMessage is a transient status line that replaces the bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the flash has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	styles       Styles
	width        int
	mode         FooterMode
	replying     bool
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter(styles Styles) *Footer {
	return &Footer{styles: styles}
}

// SetStyles swaps the style set after a theme change.
func (f *Footer) SetStyles(styles Styles) {
	f.styles = styles
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetMode sets the binding set shown.
func (f *Footer) SetMode(mode FooterMode) {
	f.mode = mode
}

// Mode returns the current binding set.
func (f *Footer) Mode() FooterMode {
	return f.mode
}

// SetReplying adds the cancel-reply binding in composer mode.
func (f *Footer) SetReplying(replying bool) {
	f.replying = replying
}

// SetFlash shows text for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows text for d.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// HasFlash reports whether a flash is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// Flash returns the flash being shown, or nil.
func (f *Footer) Flash() *FlashMessage {
	return f.flashMessage
}

// ClearFlash removes the flash.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// ClearIfExpired removes an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the bindings for the current mode.
func (f *Footer) Bindings() []KeyBinding {
	bindings := modeBindings[f.mode]
	if f.mode == ModeComposer && f.replying {
		bindings = append([]KeyBinding{{Key: "esc", Desc: "cancel reply"}}, bindings...)
	}
	return bindings
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return f.styles.Footer.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		parts = append(parts, f.styles.FooterKey.Render(b.Key)+f.styles.FooterDesc.Render(": "+b.Desc))
	}
	content := strings.Join(parts, "  "+f.styles.FooterSep.Render("|")+"  ")
	// Padding(0, 1) takes two cells.
	content = ansi.Truncate(content, max(f.width-2, 0), "…")
	return f.styles.Footer.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var style lipgloss.Style
	icon := "•"
	switch f.flashMessage.Type {
	case FlashError:
		style, icon = f.styles.FlashError, "✗"
	case FlashWarning:
		style, icon = f.styles.FlashError.Foreground(lipgloss.Color(f.styles.Theme.Warning)), "!"
	case FlashSuccess:
		style, icon = f.styles.Flash.Foreground(lipgloss.Color(f.styles.Theme.Online)), "✓"
	default:
		style = f.styles.Flash
	}
	return style.Render(icon + " " + f.flashMessage.Text)
}
