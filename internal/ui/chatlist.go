package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
)

// rowHeight is the number of lines per conversation row.
const rowHeight = 2

// SummarySource returns conversation rows matching a filter, most recent first.
type SummarySource func(filter string) []chat.Summary

// ChatList is the conversation list pane with a "/" search mode.
type ChatList struct {
	styles  Styles
	source  SummarySource
	now     func() time.Time
	width   int
	height  int
	focused bool

	rows         []chat.Summary
	selectedIdx  int
	scrollOffset int

	searchMode  bool
	searchInput textinput.Model
}

// NewChatList creates a list that reads its rows from source.
func NewChatList(styles Styles, source SummarySource) *ChatList {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SearchCharLimit
	ti.Prompt = ""

	l := &ChatList{
		styles:      styles,
		source:      source,
		now:         time.Now,
		searchInput: ti,
	}
	l.Refresh()
	return l
}

// SetClock overrides time.Now for relative timestamps.
func (l *ChatList) SetClock(now func() time.Time) {
	l.now = now
}

// SetStyles swaps the style set after a theme change.
func (l *ChatList) SetStyles(styles Styles) {
	l.styles = styles
}

// SetSize sets the outer dimensions, borders included.
func (l *ChatList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.searchInput.SetWidth(max(width-BorderSize-4, 1))
}

// SetFocused sets whether the list has keyboard focus.
func (l *ChatList) SetFocused(focused bool) {
	l.focused = focused
}

// IsFocused returns whether the list has keyboard focus.
func (l *ChatList) IsFocused() bool {
	return l.focused
}

// Refresh re-reads rows from the source, keeping the selected
// conversation selected if it is still listed.
func (l *ChatList) Refresh() {
	selected := l.SelectedID()
	l.rows = l.source(l.query())
	l.selectedIdx = 0
	for i, r := range l.rows {
		if r.ID == selected {
			l.selectedIdx = i
			break
		}
	}
}

func (l *ChatList) query() string {
	if !l.searchMode {
		return ""
	}
	return l.searchInput.Value()
}

// Rows returns the rows currently shown.
func (l *ChatList) Rows() []chat.Summary {
	return l.rows
}

// SelectedID returns the highlighted conversation, or "" if the list is empty.
func (l *ChatList) SelectedID() string {
	if l.selectedIdx < 0 || l.selectedIdx >= len(l.rows) {
		return ""
	}
	return l.rows[l.selectedIdx].ID
}

// Select highlights the conversation with id, if listed.
func (l *ChatList) Select(id string) {
	for i, r := range l.rows {
		if r.ID == id {
			l.selectedIdx = i
			return
		}
	}
}

// EnterSearchMode activates search mode
func (l *ChatList) EnterSearchMode() tea.Cmd {
	l.searchMode = true
	l.searchInput.SetValue("")
	cmd := l.searchInput.Focus()
	l.Refresh()
	return cmd
}

// ExitSearchMode deactivates search mode and clears the filter
func (l *ChatList) ExitSearchMode() {
	l.searchMode = false
	l.searchInput.Blur()
	l.searchInput.SetValue("")
	l.Refresh()
}

// IsSearchMode returns whether search mode is active
func (l *ChatList) IsSearchMode() bool {
	return l.searchMode
}

// SearchQuery returns the current search query
func (l *ChatList) SearchQuery() string {
	return l.searchInput.Value()
}

// Update handles key presses while focused. It returns the id of a
// conversation when the user opens one.
func (l *ChatList) Update(msg tea.Msg) (opened string, cmd tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !l.focused {
		return "", nil
	}

	if l.searchMode {
		switch key.String() {
		case keys.Escape:
			l.ExitSearchMode()
			return "", nil
		case keys.Enter:
			id := l.SelectedID()
			if id != "" {
				l.ExitSearchMode()
				l.Select(id)
			}
			return id, nil
		case keys.Up:
			l.move(-1)
			return "", nil
		case keys.Down, keys.CtrlN:
			l.move(1)
			return "", nil
		}
		l.searchInput, cmd = l.searchInput.Update(msg)
		l.Refresh()
		l.scrollOffset = 0
		logger.WithComponent("chatlist").Debug("filter applied", "query", l.searchInput.Value(), "matches", len(l.rows))
		return "", cmd
	}

	switch key.String() {
	case keys.Up, "k":
		l.move(-1)
	case keys.Down, "j":
		l.move(1)
	case keys.Home, "g":
		l.selectedIdx = 0
	case keys.End, "G":
		l.selectedIdx = max(len(l.rows)-1, 0)
	case keys.Enter:
		return l.SelectedID(), nil
	case "/":
		return "", l.EnterSearchMode()
	}
	return "", nil
}

func (l *ChatList) move(delta int) {
	l.selectedIdx = min(max(l.selectedIdx+delta, 0), max(len(l.rows)-1, 0))
}

// RelativeTime formats t for a list row: "now", "5 minutes ago", "2 days ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	if now.Sub(t) < time.Minute {
		return "now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

func (l *ChatList) renderRow(r chat.Summary, width int, selected bool) string {
	avatar := Avatar{Name: r.Name, Glyph: r.Avatar, Size: AvatarSmall}.Render(l.styles)
	online := " "
	if r.IsOnline {
		online = l.styles.OnlineDot.Render("●")
	}
	when := l.styles.ListTime.Render(RelativeTime(r.Time, l.now()))

	// Row padding takes two cells; the avatar column three.
	textWidth := max(width-2-3, 4)
	nameWidth := max(textWidth-ansi.StringWidth(when)-2, 1)
	name := l.styles.ListName.Render(ansi.Truncate(r.Name, nameWidth, "…"))
	top := avatar + online + name
	top += strings.Repeat(" ", max(width-2-lipgloss.Width(top)-lipgloss.Width(when), 1)) + when

	preview := r.LastMessage
	if r.LastIsMe {
		preview = "You: " + preview
	}
	preview = strings.Join(strings.Fields(preview), " ")
	badge := ""
	if r.UnreadCount > 0 {
		badge = l.styles.UnreadBadge.Render(humanize.Comma(int64(r.UnreadCount)))
	}
	previewWidth := max(textWidth-lipgloss.Width(badge)-1, 1)
	bottom := "   " + l.styles.ListPreview.Render(ansi.Truncate(preview, previewWidth, "…"))
	if badge != "" {
		bottom += strings.Repeat(" ", max(width-2-lipgloss.Width(bottom)-lipgloss.Width(badge), 1)) + badge
	}

	style := l.styles.ListItem
	if selected {
		style = l.styles.ListSelected
	}
	return style.Width(width).Render(top + "\n" + bottom)
}

// View renders the list panel.
func (l *ChatList) View() string {
	style := l.styles.Panel
	if l.focused {
		style = l.styles.PanelFocused
	}
	innerWidth := max(l.width-BorderSize, 1)
	innerHeight := max(l.height-BorderSize, 1)

	var lines []string
	if l.searchMode {
		lines = append(lines, lipgloss.NewStyle().Foreground(l.styles.Secondary).Bold(true).Render("/")+" "+l.searchInput.View())
		innerHeight--
	}

	if len(l.rows) == 0 {
		empty := "No conversations."
		if l.searchMode && l.searchInput.Value() != "" {
			empty = "No matches."
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(l.styles.Muted).Italic(true).Render(empty))
	} else {
		visible := max(innerHeight/rowHeight, 1)
		if l.selectedIdx < l.scrollOffset {
			l.scrollOffset = l.selectedIdx
		}
		if l.selectedIdx >= l.scrollOffset+visible {
			l.scrollOffset = l.selectedIdx - visible + 1
		}
		end := min(l.scrollOffset+visible, len(l.rows))
		for i := l.scrollOffset; i < end; i++ {
			lines = append(lines, l.renderRow(l.rows[i], innerWidth, i == l.selectedIdx))
		}
	}

	return style.Width(l.width).Height(l.height).Render(strings.Join(lines, "\n"))
}
