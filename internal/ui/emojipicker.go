package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/keys"
)

// PickerEmoji is the full reaction set offered by the emoji picker.
var PickerEmoji = []string{
	"😀", "😃", "😄", "😁", "😆", "😅", "🤣", "😂",
	"🙂", "😉", "😊", "😇", "🥰", "😍", "🤩", "😘",
	"😋", "😛", "😜", "🤪", "🤗", "🤔", "🤨", "😐",
	"😏", "😒", "🙄", "😬", "😌", "😔", "😪", "😴",
	"😎", "🤓", "😕", "😟", "😮", "😲", "😳", "🥺",
	"😢", "😭", "😱", "😤", "😡", "🤯", "🥳", "🤠",
	"👍", "👎", "👏", "🙌", "🙏", "🤝", "💪", "👀",
	"❤️", "🧡", "💛", "💚", "💙", "💜", "🖤", "💔",
	"🔥", "✨", "🎉", "💯", "✅", "❌", "⭐", "☕",
}

// pickerColumns is the grid width in emoji.
const pickerColumns = 8

// EmojiPicker is a grid of emoji navigated with the arrow keys.
type EmojiPicker struct {
	styles  Styles
	emoji   []string
	cursor  int
	columns int
}

// NewEmojiPicker creates a picker over PickerEmoji.
func NewEmojiPicker(styles Styles) *EmojiPicker {
	return &EmojiPicker{
		styles:  styles,
		emoji:   PickerEmoji,
		columns: pickerColumns,
	}
}

// Selected returns the emoji under the cursor.
func (p *EmojiPicker) Selected() string {
	return p.emoji[p.cursor]
}

// Update moves the cursor. It returns the chosen emoji on enter, or
// closed on esc.
func (p *EmojiPicker) Update(msg tea.Msg) (picked string, closed bool) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return "", false
	}
	n := len(p.emoji)
	switch key.String() {
	case keys.Escape, "q":
		return "", true
	case keys.Enter, keys.Space:
		return p.Selected(), false
	case keys.Left, "h":
		p.cursor = max(p.cursor-1, 0)
	case keys.Right, "l":
		p.cursor = min(p.cursor+1, n-1)
	case keys.Up, "k":
		if p.cursor-p.columns >= 0 {
			p.cursor -= p.columns
		}
	case keys.Down, "j":
		if p.cursor+p.columns < n {
			p.cursor += p.columns
		}
	case keys.Home:
		p.cursor = 0
	case keys.End:
		p.cursor = n - 1
	}
	return "", false
}

// View renders the picker panel.
func (p *EmojiPicker) View() string {
	var rows []string
	for start := 0; start < len(p.emoji); start += p.columns {
		var row strings.Builder
		for i := start; i < min(start+p.columns, len(p.emoji)); i++ {
			style := p.styles.PopoverItem
			if i == p.cursor {
				style = p.styles.PopoverSelected
			}
			row.WriteString(style.Render(p.emoji[i]))
		}
		rows = append(rows, row.String())
	}

	title := p.styles.ModalTitle.Render("Add reaction")
	help := p.styles.ModalHelp.Render("arrows move · enter react · esc close")
	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n"), help)
	return p.styles.Popover.Padding(0, 1).Render(body)
}
