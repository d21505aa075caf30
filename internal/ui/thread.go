package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/popover"
	"github.com/zhubert/parley/internal/timeline"
)

// bubblePos is where a rendered message starts in the content.
type bubblePos struct {
	top    int
	layout BubbleLayout
}

// Thread is the scrollable message view of one conversation: date
// separators, bubbles, a selection cursor, a typing indicator and a
// jump-to-latest pill when scrolled up.
type Thread struct {
	styles   Styles
	viewport viewport.Model
	width    int
	height   int
	focused  bool

	convID     string
	convName   string
	showSender bool
	messages   []chat.Message
	items      []timeline.Item
	positions  map[int]bubblePos

	loc    *time.Location
	now    func() time.Time
	userID string

	// selected indexes messages; -1 means no selection.
	selected int

	typing      bool
	typingName  string
	typingFrame int

	unseenBelow int
}

// NewThread creates an empty thread view.
func NewThread(styles Styles) *Thread {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3
	return &Thread{
		styles:    styles,
		viewport:  vp,
		loc:       time.Local,
		now:       time.Now,
		selected:  -1,
		positions: map[int]bubblePos{},
	}
}

// SetStyles swaps the style set after a theme change.
func (t *Thread) SetStyles(styles Styles) {
	t.styles = styles
	t.render()
}

// SetLocation sets the zone used for day separators and times.
func (t *Thread) SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.Local
	}
	t.loc = loc
	t.render()
}

// SetClock overrides time.Now for "Today"/"Yesterday".
func (t *Thread) SetClock(now func() time.Time) {
	t.now = now
}

// SetUserID marks which reactions are the viewer's.
func (t *Thread) SetUserID(id string) {
	t.userID = id
}

// SetSize sets the viewport dimensions.
func (t *Thread) SetSize(width, height int) {
	atBottom := t.viewport.AtBottom()
	t.width = width
	t.height = max(height, 1)
	t.viewport.SetWidth(width)
	t.viewport.SetHeight(t.height)
	t.render()
	if atBottom {
		t.viewport.GotoBottom()
	}
	logger.WithComponent("thread").Debug("thread resized", "width", width, "height", t.height)
}

// SetFocused sets the focus state
func (t *Thread) SetFocused(focused bool) {
	t.focused = focused
}

// IsFocused returns the focus state
func (t *Thread) IsFocused() bool {
	return t.focused
}

// ConversationID returns the open conversation, or "".
func (t *Thread) ConversationID() string {
	return t.convID
}

// SetConversation opens c, scrolled to the latest message.
func (t *Thread) SetConversation(c chat.Conversation) {
	t.convID = c.ID
	t.convName = c.Name
	t.selected = -1
	t.unseenBelow = 0
	t.typing = false

	senders := map[string]bool{}
	for _, m := range c.Messages {
		if !m.IsMe {
			senders[m.SenderName] = true
		}
	}
	t.showSender = len(senders) > 1

	t.setMessages(c.Messages)
	t.viewport.GotoBottom()
}

// SetMessages replaces the messages of the open conversation. A thread
// scrolled to the bottom stays there; otherwise new incoming messages are
// counted for the jump pill.
func (t *Thread) SetMessages(msgs []chat.Message) {
	atBottom := t.viewport.AtBottom()
	var selectedID int
	if m, ok := t.SelectedMessage(); ok {
		selectedID = m.ID
	}

	if !atBottom {
		known := make(map[int]bool, len(t.messages))
		for _, m := range t.messages {
			known[m.ID] = true
		}
		for _, m := range msgs {
			if !known[m.ID] && !m.IsMe {
				t.unseenBelow++
			}
		}
	}

	for _, m := range msgs {
		if !m.IsMe && m.SenderName != t.convName && m.SenderName != "" {
			t.showSender = true
		}
	}

	t.setMessages(msgs)
	if selectedID != 0 {
		t.SelectMessage(selectedID)
	}
	if atBottom {
		t.viewport.GotoBottom()
	}
}

func (t *Thread) setMessages(msgs []chat.Message) {
	t.messages = msgs
	t.items = timeline.Group(msgs, t.now(), t.loc)
	if t.selected >= len(msgs) {
		t.selected = -1
	}
	t.render()
}

// SetTyping shows or hides the typing indicator for name.
func (t *Thread) SetTyping(typing bool, name string) {
	atBottom := t.viewport.AtBottom()
	t.typing = typing
	t.typingName = name
	t.typingFrame = 0
	t.render()
	if atBottom {
		t.viewport.GotoBottom()
	}
}

// IsTyping reports whether the typing indicator is showing.
func (t *Thread) IsTyping() bool {
	return t.typing
}

// SelectedMessage returns the message under the selection cursor.
func (t *Thread) SelectedMessage() (chat.Message, bool) {
	if t.selected < 0 || t.selected >= len(t.messages) {
		return chat.Message{}, false
	}
	return t.messages[t.selected], true
}

// SelectMessage moves the cursor to the message with id.
func (t *Thread) SelectMessage(id int) bool {
	for i, m := range t.messages {
		if m.ID == id {
			t.selected = i
			t.render()
			t.ensureSelectedVisible()
			return true
		}
	}
	return false
}

// ClearSelection drops the cursor.
func (t *Thread) ClearSelection() {
	if t.selected != -1 {
		t.selected = -1
		t.render()
	}
}

// MoveSelection moves the cursor by delta messages. Moving up with no
// selection picks the latest message; moving down past it clears the
// selection and returns to the bottom.
func (t *Thread) MoveSelection(delta int) {
	if len(t.messages) == 0 {
		return
	}
	switch {
	case t.selected < 0 && delta < 0:
		t.selected = len(t.messages) - 1
	case t.selected < 0:
		return
	default:
		t.selected += delta
	}
	if t.selected >= len(t.messages) {
		t.selected = -1
		t.render()
		t.ScrollToBottom()
		return
	}
	t.selected = max(t.selected, 0)
	t.render()
	t.ensureSelectedVisible()
}

func (t *Thread) ensureSelectedVisible() {
	m, ok := t.SelectedMessage()
	if !ok {
		return
	}
	pos, ok := t.positions[m.ID]
	if !ok {
		return
	}
	top := pos.top
	bottom := pos.top + pos.layout.Height
	offset := t.viewport.YOffset()
	switch {
	case top < offset:
		t.viewport.SetYOffset(top)
	case bottom > offset+t.height:
		t.viewport.SetYOffset(max(bottom-t.height, top))
	}
	t.clearUnseenAtBottom()
}

// ScrollToBottom jumps to the latest message.
func (t *Thread) ScrollToBottom() {
	t.viewport.GotoBottom()
	t.unseenBelow = 0
}

// AtBottom reports whether the latest message is in view.
func (t *Thread) AtBottom() bool {
	return t.viewport.AtBottom()
}

// UnseenBelow is the number of incoming messages that arrived while
// scrolled up.
func (t *Thread) UnseenBelow() int {
	return t.unseenBelow
}

func (t *Thread) clearUnseenAtBottom() {
	if t.viewport.AtBottom() {
		t.unseenBelow = 0
	}
}

// AnchorRect is the selected bubble's box in viewport cells, or nil if
// nothing is selected or the bubble is scrolled out of view.
func (t *Thread) AnchorRect() *popover.Rect {
	m, ok := t.SelectedMessage()
	if !ok {
		return nil
	}
	pos, ok := t.positions[m.ID]
	if !ok {
		return nil
	}
	y := pos.top + pos.layout.BoxY - t.viewport.YOffset()
	if y+pos.layout.BoxHeight <= 0 || y >= t.height {
		return nil
	}
	return &popover.Rect{
		X:      float64(pos.layout.BoxX),
		Y:      float64(y),
		Width:  float64(pos.layout.BoxWidth),
		Height: float64(pos.layout.BoxHeight),
	}
}

// SelectedBubble renders the selected message alone, for overlay previews.
func (t *Thread) SelectedBubble() string {
	m, ok := t.SelectedMessage()
	if !ok {
		return ""
	}
	layout := RenderBubble(m, t.styles, t.bubbleOptions(false))
	lines := strings.Split(layout.View, "\n")
	box := lines[layout.BoxY : layout.BoxY+layout.BoxHeight]
	for i, l := range box {
		box[i] = ansi.Cut(l, layout.BoxX, layout.BoxX+layout.BoxWidth)
	}
	return strings.Join(box, "\n")
}

// Update handles navigation keys and mouse wheel scrolling.
func (t *Thread) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case TypingTickMsg:
		if !t.typing {
			return nil
		}
		t.typingFrame++
		atBottom := t.viewport.AtBottom()
		t.render()
		if atBottom {
			t.viewport.GotoBottom()
		}
		return TypingTick()

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		t.viewport, cmd = t.viewport.Update(msg)
		t.clearUnseenAtBottom()
		return cmd

	case tea.KeyPressMsg:
		if !t.focused {
			return nil
		}
		switch msg.String() {
		case keys.Up, "k":
			t.MoveSelection(-1)
		case keys.Down, "j":
			t.MoveSelection(1)
		case keys.PgUp:
			t.viewport.PageUp()
		case keys.PgDown:
			t.viewport.PageDown()
			t.clearUnseenAtBottom()
		case keys.Home, "g":
			t.viewport.GotoTop()
		case keys.End, "G":
			t.ClearSelection()
			t.ScrollToBottom()
		}
	}
	return nil
}

func (t *Thread) bubbleOptions(selected bool) BubbleOptions {
	return BubbleOptions{
		Width:      t.width,
		Selected:   selected,
		Loc:        t.loc,
		UserID:     t.userID,
		ShowSender: t.showSender,
	}
}

// render rebuilds the viewport content and the bubble positions.
func (t *Thread) render() {
	if t.width <= 0 {
		return
	}
	clear(t.positions)

	if len(t.items) == 0 && !t.typing {
		empty := lipgloss.NewStyle().Foreground(t.styles.Muted).Italic(true).Render("No messages yet. Say hi!")
		t.viewport.SetContent(lipgloss.Place(t.width, t.height, lipgloss.Center, lipgloss.Center, empty))
		return
	}

	selectedID := 0
	if m, ok := t.SelectedMessage(); ok {
		selectedID = m.ID
	}

	var lines []string
	for _, it := range t.items {
		if it.Kind() == timeline.KindSeparator {
			lines = append(lines, "", RenderSeparator(*it.Separator, t.width, t.styles), "")
			continue
		}
		m := it.Message
		layout := RenderBubble(*m, t.styles, t.bubbleOptions(m.ID == selectedID))
		t.positions[m.ID] = bubblePos{top: len(lines), layout: layout}
		lines = append(lines, strings.Split(layout.View, "\n")...)
		lines = append(lines, "")
	}
	if t.typing {
		lines = append(lines, renderTypingIndicator(t.typingName, t.typingFrame, t.styles))
	}
	t.viewport.SetContent(strings.Join(lines, "\n"))
}

func (t *Thread) jumpPill() string {
	label := "↓ latest"
	if t.unseenBelow > 0 {
		label = fmt.Sprintf("↓ %d new", t.unseenBelow)
	}
	return t.styles.JumpPill.Render(label)
}

// View renders the viewport with the jump pill over its last line.
func (t *Thread) View() string {
	view := t.viewport.View()
	if t.viewport.AtBottom() || len(t.messages) == 0 {
		return view
	}
	lines := strings.Split(view, "\n")
	lines[len(lines)-1] = lipgloss.PlaceHorizontal(t.width, lipgloss.Right, t.jumpPill()+" ")
	return strings.Join(lines, "\n")
}
