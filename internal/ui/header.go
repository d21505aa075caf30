package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const appTitle = " parley"

// Header is the top bar: app title on the left, the open conversation and
// its presence on the right.
type Header struct {
	styles Styles
	width  int
	name   string
	online bool
	typing bool
	unread int
}

// NewHeader creates a new header
func NewHeader(styles Styles) *Header {
	return &Header{styles: styles}
}

// SetStyles swaps the style set after a theme change.
func (h *Header) SetStyles(styles Styles) {
	h.styles = styles
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversation sets the conversation shown on the right.
func (h *Header) SetConversation(name string, online bool) {
	h.name = name
	h.online = online
}

// SetTyping toggles the "typing…" presence label.
func (h *Header) SetTyping(typing bool) {
	h.typing = typing
}

// SetUnread sets the unread total shown next to the title.
func (h *Header) SetUnread(n int) {
	h.unread = n
}

func (h *Header) presence() string {
	switch {
	case h.name == "":
		return ""
	case h.typing:
		return "typing…"
	case h.online:
		return "online"
	}
	return ""
}

// View renders the header
func (h *Header) View() string {
	title := appTitle
	if h.unread > 0 {
		title += fmt.Sprintf(" (%d)", h.unread)
	}

	var right string
	p := h.presence()
	if h.name != "" {
		right = h.name
		if p != "" {
			right += " · " + p
		}
		right += " "
	}

	padding := max(h.width-runewidth.StringWidth(title)-runewidth.StringWidth(right), 0)
	content := title + strings.Repeat(" ", padding) + right
	mutedFrom := -1
	if p != "" {
		mutedFrom = len([]rune(content)) - len([]rune(p)) - 1
	}
	return h.renderGradient(content, len([]rune(appTitle)), mutedFrom)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient paints content over a primary-to-background gradient. The
// first boldRunes runes are bold; runes from mutedFrom on use the muted color.
func (h *Header) renderGradient(content string, boldRunes, mutedFrom int) string {
	if content == "" {
		return ""
	}

	theme := h.styles.Theme
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	onlineColor := lipgloss.Color(theme.Online)

	runes := []rune(content)
	width := len(runes)
	var b strings.Builder
	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(hexColor(cr, cg, cb))).
			Bold(i < boldRunes)
		switch {
		case mutedFrom >= 0 && i >= mutedFrom && h.online && !h.typing:
			style = style.Foreground(onlineColor)
		case mutedFrom >= 0 && i >= mutedFrom:
			style = style.Foreground(mutedColor)
		default:
			style = style.Foreground(textColor)
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

func hexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
