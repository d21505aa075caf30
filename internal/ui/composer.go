package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
)

// composerPadding is the horizontal padding inside the composer border.
const composerPadding = 2

// Composer is the message input below the thread. It grows with its
// content between a minimum and maximum number of rows and shows a reply
// preview bar while a reply is pending.
type Composer struct {
	styles  Styles
	input   textarea.Model
	width   int
	focused bool

	minRows int
	maxRows int

	replyTo *chat.ReplyRef
}

// NewComposer creates a composer that grows between minRows and maxRows.
func NewComposer(styles Styles, minRows, maxRows int) *Composer {
	ti := textarea.New()
	ti.Placeholder = "Message..."
	ti.CharLimit = 0
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Enter sends; these insert a line break instead.
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.AltEnter, "ctrl+j")

	minRows = max(minRows, 1)
	c := &Composer{
		styles:  styles,
		input:   ti,
		minRows: minRows,
		maxRows: max(maxRows, minRows),
	}
	c.applyStyles()
	c.input.SetHeight(c.minRows)
	return c
}

func (c *Composer) applyStyles() {
	st := c.input.Styles()
	plain := textarea.StyleState{
		Base:        lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle().Foreground(c.styles.Text),
		CursorLine:  lipgloss.NewStyle().Foreground(c.styles.Text),
		Placeholder: lipgloss.NewStyle().Foreground(c.styles.Muted).Italic(true),
		Prompt:      lipgloss.NewStyle(),
		EndOfBuffer: lipgloss.NewStyle(),
	}
	st.Focused = plain
	st.Blurred = plain
	st.Blurred.Text = st.Blurred.Text.Foreground(c.styles.Muted)
	st.Blurred.CursorLine = st.Blurred.Text
	c.input.SetStyles(st)
}

// SetStyles swaps the style set after a theme change.
func (c *Composer) SetStyles(styles Styles) {
	c.styles = styles
	c.applyStyles()
}

// SetWidth sets the outer width, border included.
func (c *Composer) SetWidth(width int) {
	c.width = width
	c.input.SetWidth(c.textWidth())
	c.resize()
}

func (c *Composer) textWidth() int {
	return max(c.width-BorderSize-composerPadding, 1)
}

// SetFocused focuses or blurs the text input.
func (c *Composer) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// IsFocused returns the focus state
func (c *Composer) IsFocused() bool {
	return c.focused
}

// Value returns the current draft.
func (c *Composer) Value() string {
	return c.input.Value()
}

// SetValue replaces the draft.
func (c *Composer) SetValue(s string) {
	c.input.SetValue(s)
	c.resize()
}

// Reset clears the draft and any pending reply.
func (c *Composer) Reset() {
	c.input.Reset()
	c.replyTo = nil
	c.resize()
}

// SetReplyTo attaches the next message to ref. Passing nil cancels.
func (c *Composer) SetReplyTo(ref *chat.ReplyRef) {
	c.replyTo = ref
}

// ReplyTo returns the pending reply target, or nil.
func (c *Composer) ReplyTo() *chat.ReplyRef {
	return c.replyTo
}

// IsReplying reports whether a reply preview is showing.
func (c *Composer) IsReplying() bool {
	return c.replyTo != nil
}

// CancelReply drops the pending reply and keeps the draft.
func (c *Composer) CancelReply() {
	c.replyTo = nil
}

// Rows is the current height of the text area in rows.
func (c *Composer) Rows() int {
	return c.input.Height()
}

// Height is the total height of the composer, reply bar included.
func (c *Composer) Height() int {
	h := c.Rows() + ComposerChromeHeight
	if c.replyTo != nil {
		h += ReplyBarHeight
	}
	return h
}

// visualRows counts the rows the draft occupies once soft-wrapped.
func (c *Composer) visualRows() int {
	w := c.textWidth()
	rows := 0
	for _, line := range strings.Split(c.input.Value(), "\n") {
		// The cursor needs a cell past the last character.
		rows += max((ansi.StringWidth(line)+1+w-1)/w, 1)
	}
	return rows
}

func (c *Composer) resize() {
	rows := min(max(c.visualRows(), c.minRows), c.maxRows)
	if rows != c.input.Height() {
		c.input.SetHeight(rows)
	}
}

// Update handles typing while focused. It returns the trimmed draft when
// the user presses enter on a non-blank message; the caller sends it and
// calls Reset. Esc cancels a pending reply.
func (c *Composer) Update(msg tea.Msg) (submitted string, cmd tea.Cmd) {
	if !c.focused {
		return "", nil
	}
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Enter:
			return strings.TrimSpace(c.input.Value()), nil
		case keys.Escape:
			c.CancelReply()
			return "", nil
		}
	}
	c.input, cmd = c.input.Update(msg)
	c.resize()
	return "", cmd
}

func (c *Composer) renderReplyBar() string {
	ref := c.replyTo
	name := ref.SenderName
	if ref.IsMe {
		name = "yourself"
	}
	// ReplyBar draws a border and padding of one cell each.
	inner := max(c.width-2, 1)
	cancel := c.styles.Meta.Render("esc ✕")
	title := lipgloss.NewStyle().Foreground(c.styles.Primary).Bold(true).
		Render(ansi.Truncate("↩ Replying to "+name, max(inner-lipgloss.Width(cancel)-1, 1), "…"))
	title += strings.Repeat(" ", max(inner-lipgloss.Width(title)-lipgloss.Width(cancel), 1)) + cancel
	text := ansi.Truncate(strings.Join(strings.Fields(ref.Text), " "), inner, "…")
	return c.styles.ReplyBar.Render(title + "\n" + text)
}

// View renders the reply bar, if any, above the bordered input.
func (c *Composer) View() string {
	style := c.styles.Composer
	if c.focused {
		style = c.styles.ComposerFocused
	}
	box := style.Width(c.width).Render(c.input.View())
	if c.replyTo == nil {
		return box
	}
	return lipgloss.JoinVertical(lipgloss.Left, c.renderReplyBar(), box)
}
