package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
)

// DetailsResult is what the user did in the reaction details panel.
type DetailsResult struct {
	Closed bool
	// Remove is the emoji whose own reaction should be removed.
	Remove string
}

// ReactionDetails lists who reacted with each emoji on one message.
type ReactionDetails struct {
	styles  Styles
	message chat.Message
	userID  string
	cursor  int
}

// NewReactionDetails opens the panel on m's reactions.
func NewReactionDetails(styles Styles, m chat.Message, userID string) *ReactionDetails {
	return &ReactionDetails{styles: styles, message: m, userID: userID}
}

// Message returns the message being inspected.
func (d *ReactionDetails) Message() chat.Message {
	return d.message
}

// SetMessage refreshes the reactions after a change, keeping the cursor
// on the same emoji when it still exists.
func (d *ReactionDetails) SetMessage(m chat.Message) {
	current, _ := d.Selected()
	d.message = m
	d.cursor = 0
	for i, r := range m.Reactions {
		if r.Emoji == current.Emoji {
			d.cursor = i
			break
		}
	}
}

// Empty reports whether the message has no reactions left.
func (d *ReactionDetails) Empty() bool {
	return len(d.message.Reactions) == 0
}

// Selected returns the reaction under the cursor.
func (d *ReactionDetails) Selected() (chat.Reaction, bool) {
	if d.cursor < 0 || d.cursor >= len(d.message.Reactions) {
		return chat.Reaction{}, false
	}
	return d.message.Reactions[d.cursor], true
}

// Update handles navigation and removal.
func (d *ReactionDetails) Update(msg tea.Msg) DetailsResult {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return DetailsResult{}
	}
	switch key.String() {
	case keys.Escape, "q":
		return DetailsResult{Closed: true}
	case keys.Up, "k", keys.Left, "h":
		d.cursor = max(d.cursor-1, 0)
	case keys.Down, "j", keys.Right, "l":
		d.cursor = min(d.cursor+1, max(len(d.message.Reactions)-1, 0))
	case "x", keys.Backspace:
		if r, ok := d.Selected(); ok && r.HasUser(d.userID) {
			return DetailsResult{Remove: r.Emoji}
		}
	}
	return DetailsResult{}
}

// displayName turns a user id into a label for the list.
func (d *ReactionDetails) displayName(id string) string {
	if id == d.userID {
		return "You"
	}
	r, size := utf8.DecodeRuneInString(id)
	return string(unicode.ToUpper(r)) + id[size:]
}

// View renders emoji tabs and the users of the selected one.
func (d *ReactionDetails) View() string {
	title := d.styles.ModalTitle.Render("Reactions")
	if d.Empty() {
		body := lipgloss.JoinVertical(lipgloss.Left, title, d.styles.Meta.Render("No reactions."))
		return d.styles.Popover.Padding(0, 1).Width(ModalWidth).Render(body)
	}

	tabs := make([]string, 0, len(d.message.Reactions))
	for i, r := range d.message.Reactions {
		style := d.styles.PopoverItem
		if i == d.cursor {
			style = d.styles.PopoverSelected
		}
		tabs = append(tabs, style.Render(ReactionChipText(r)))
	}

	sel, _ := d.Selected()
	users := make([]string, 0, len(sel.Users))
	for _, u := range sel.Users {
		line := "  " + d.displayName(u)
		if u == d.userID {
			line = lipgloss.NewStyle().Foreground(d.styles.Primary).Bold(true).Render(line) +
				d.styles.Meta.Render("  x to remove")
		}
		users = append(users, line)
	}

	count := d.styles.Meta.Render(fmt.Sprintf("%s reacted by %d", sel.Emoji, sel.Count))
	help := d.styles.ModalHelp.Render("↑/↓ emoji · x remove mine · esc close")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(tabs, " "),
		"",
		count,
		strings.Join(users, "\n"),
		help,
	)
	return d.styles.Popover.Padding(0, 1).Width(ModalWidth).Render(body)
}
