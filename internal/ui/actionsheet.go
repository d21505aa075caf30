package ui

import (
	"math"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/popover"
)

// Action is an entry of the message action menu.
type Action int

const (
	ActionNone Action = iota
	ActionReply
	ActionCopy
	ActionTranslate
	ActionMore
)

// Label is the menu text for a.
func (a Action) Label() string {
	switch a {
	case ActionReply:
		return "Reply"
	case ActionCopy:
		return "Copy"
	case ActionTranslate:
		return "Translate"
	case ActionMore:
		return "More"
	}
	return ""
}

// Icon is the glyph shown before the label.
func (a Action) Icon() string {
	switch a {
	case ActionReply:
		return "↩"
	case ActionCopy:
		return "⧉"
	case ActionTranslate:
		return "⇄"
	case ActionMore:
		return "⋯"
	}
	return " "
}

// ActionsFor lists the menu entries for m. Only incoming messages can be
// replied to.
func ActionsFor(m chat.Message) []Action {
	if m.IsMe {
		return []Action{ActionCopy, ActionTranslate, ActionMore}
	}
	return []Action{ActionReply, ActionCopy, ActionTranslate, ActionMore}
}

// moreEmoji is the last slot of the emoji bar; it opens the picker.
const moreEmoji = "+"

// SheetResult is what the user chose in the action sheet. At most one of
// React, OpenPicker and Action is set.
type SheetResult struct {
	Closed     bool
	React      string
	OpenPicker bool
	Action     Action
}

// Done reports whether the sheet should close.
func (r SheetResult) Done() bool {
	return r.Closed || r.React != "" || r.OpenPicker || r.Action != ActionNone
}

// ActionSheet is the long-press popover for one message: an emoji bar of
// quick reactions, the message itself and an action menu. Where the three
// panels go comes from popover.Place.
type ActionSheet struct {
	styles  Styles
	message chat.Message
	preview string
	userID  string

	emoji     []string
	emojiIdx  int
	actions   []Action
	actionIdx int
	inMenu    bool

	viewport  popover.Size
	placement popover.Placement
	frame     int
}

// NewActionSheet lays out the sheet for m. anchor is the bubble's box in
// viewport cells, or nil when it is off screen.
func NewActionSheet(styles Styles, m chat.Message, preview string, quick []string, userID string, anchor *popover.Rect, viewport popover.Size) *ActionSheet {
	a := &ActionSheet{
		styles:   styles,
		message:  m,
		preview:  preview,
		userID:   userID,
		emoji:    append(append([]string{}, quick...), moreEmoji),
		actions:  ActionsFor(m),
		viewport: viewport,
	}
	a.placement = popover.Place(anchor, viewport, popover.CellConfig(viewport))
	if a.placement.Animation() == popover.AnimateLift {
		a.frame = FadeFrames
	}
	return a
}

// Message returns the message the sheet was opened on.
func (a *ActionSheet) Message() chat.Message {
	return a.message
}

// Placement returns the computed panel positions.
func (a *ActionSheet) Placement() popover.Placement {
	return a.placement
}

// Actions returns the menu entries.
func (a *ActionSheet) Actions() []Action {
	return a.actions
}

// Fading reports whether the fade-in is still running.
func (a *ActionSheet) Fading() bool {
	return a.frame < FadeFrames
}

// Init starts the fade-in for centered placements.
func (a *ActionSheet) Init() tea.Cmd {
	if a.Fading() {
		return FadeTick()
	}
	return nil
}

// Update handles keys and fade ticks.
func (a *ActionSheet) Update(msg tea.Msg) (SheetResult, tea.Cmd) {
	switch msg := msg.(type) {
	case FadeTickMsg:
		if !a.Fading() {
			return SheetResult{}, nil
		}
		a.frame++
		if a.Fading() {
			return SheetResult{}, FadeTick()
		}

	case tea.KeyPressMsg:
		switch k := msg.String(); k {
		case keys.Escape, "q":
			return SheetResult{Closed: true}, nil
		case keys.Left, "h":
			a.inMenu = false
			a.emojiIdx = max(a.emojiIdx-1, 0)
		case keys.Right, "l":
			a.inMenu = false
			a.emojiIdx = min(a.emojiIdx+1, len(a.emoji)-1)
		case keys.Up, "k":
			a.inMenu = true
			a.actionIdx = max(a.actionIdx-1, 0)
		case keys.Down, "j":
			a.inMenu = true
			a.actionIdx = min(a.actionIdx+1, len(a.actions)-1)
		case keys.Enter, keys.Space:
			if a.inMenu {
				return SheetResult{Action: a.actions[a.actionIdx]}, nil
			}
			return a.chooseEmoji(a.emojiIdx), nil
		default:
			// Digits pick a quick reaction directly.
			if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
				if i := int(k[0] - '1'); i < len(a.emoji) {
					return a.chooseEmoji(i), nil
				}
			}
		}
	}
	return SheetResult{}, nil
}

func (a *ActionSheet) chooseEmoji(i int) SheetResult {
	if a.emoji[i] == moreEmoji {
		return SheetResult{OpenPicker: true}
	}
	return SheetResult{React: a.emoji[i]}
}

func (a *ActionSheet) panelStyle() lipgloss.Style {
	border := a.styles.Theme.Primary
	if a.Fading() {
		border = fadeColor(a.styles.Theme.Bg, a.styles.Theme.Primary, a.frame)
	}
	return a.styles.Popover.BorderForeground(lipgloss.Color(border))
}

func (a *ActionSheet) renderEmojiBar() string {
	own := map[string]bool{}
	for _, r := range a.message.Reactions {
		if r.HasUser(a.userID) {
			own[r.Emoji] = true
		}
	}
	slots := make([]string, 0, len(a.emoji))
	for i, e := range a.emoji {
		style := a.styles.PopoverItem
		switch {
		case i == a.emojiIdx && !a.inMenu:
			style = a.styles.PopoverSelected
		case own[e]:
			style = style.Underline(true)
		}
		slots = append(slots, style.Render(e))
	}
	size := popover.CellEmojiBar
	return a.panelStyle().
		Width(int(size.Width)).
		Height(int(size.Height)).
		AlignHorizontal(lipgloss.Center).
		Render(strings.Join(slots, ""))
}

func (a *ActionSheet) renderMenu() string {
	size := popover.CellActionMenu
	inner := int(size.Width) - BorderSize
	rows := make([]string, 0, len(a.actions))
	for i, act := range a.actions {
		style := a.styles.PopoverItem
		if i == a.actionIdx && a.inMenu {
			style = a.styles.PopoverSelected
		}
		rows = append(rows, style.Width(inner).Render(act.Icon()+" "+act.Label()))
	}
	return a.panelStyle().
		Width(int(size.Width)).
		Height(int(size.Height)).
		Render(strings.Join(rows, "\n"))
}

// Layers returns the preview, emoji bar and menu ready to composite over
// the thread viewport.
func (a *ActionSheet) Layers() []Layer {
	p := a.placement
	cell := func(v float64) int { return int(math.Round(v)) }
	return []Layer{
		{View: a.preview, X: cell(p.PreviewLeft), Y: cell(p.PreviewTop)},
		{View: a.renderEmojiBar(), X: cell(p.EmojiBar.Left), Y: cell(p.EmojiBar.Top)},
		{View: a.renderMenu(), X: cell(p.ActionMenu.Left), Y: cell(p.ActionMenu.Top)},
	}
}

// View draws the sheet over base, the rendered thread viewport.
func (a *ActionSheet) View(base string) string {
	return Composite(base, int(a.viewport.Width), int(a.viewport.Height), a.Layers()...)
}
