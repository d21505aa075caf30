package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// Focus represents which pane receives keys
type Focus int

const (
	FocusList Focus = iota
	FocusThread
	FocusComposer
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusList:
		return "list"
	case FocusThread:
		return "thread"
	case FocusComposer:
		return "composer"
	default:
		return "unknown"
	}
}

// Simulation timing. The other side of a conversation is simulated:
// sent messages are delivered and read after fixed delays, and ctrl+t
// makes the other person type for a while before replying.
const (
	DefaultDeliveredAfter = 1 * time.Second
	DefaultReadAfter      = 3 * time.Second
	DefaultTypingFor      = 2500 * time.Millisecond
)

// StatusTickMsg advances an outgoing message's delivery status.
type StatusTickMsg struct {
	ConversationID string
	MessageID      int
	Status         chat.Status
}

// TypingDoneMsg ends a simulated typing session with a reply.
type TypingDoneMsg struct {
	ConversationID string
	Sender         string
}

// ReceiveMsg delivers an incoming message from outside the app, as if the
// other side had sent it.
type ReceiveMsg struct {
	ConversationID string
	Sender         string // empty means the conversation name
	Text           string
}

// Model is the main Bubble Tea model
type Model struct {
	config *config.Config
	store  *chat.Store
	styles ui.Styles
	layout ui.ViewContext
	now    func() time.Time

	header   *ui.Header
	footer   *ui.Footer
	list     *ui.ChatList
	thread   *ui.Thread
	composer *ui.Composer

	// Exactly one overlay is open at a time; the matching pointer is set.
	overlay  ui.Overlay
	sheet    *ui.ActionSheet
	picker   *ui.EmojiPicker
	details  *ui.ReactionDetails
	attach   *ui.AttachmentMenu
	targetID int // message the picker or details panel acts on

	width  int
	height int
	focus  Focus

	// typing maps a conversation to the name shown typing in it.
	typing    map[string]string
	replyIdx  int
	themeName ui.ThemeName

	deliveredAfter time.Duration
	readAfter      time.Duration
	typingFor      time.Duration
}

// Option configures a Model.
type Option func(*Model)

// WithClock overrides time.Now for the list and thread.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithDelays overrides the simulated delivery, read and typing delays.
func WithDelays(delivered, read, typing time.Duration) Option {
	return func(m *Model) {
		m.deliveredAfter = delivered
		m.readAfter = read
		m.typingFor = typing
	}
}

// New creates the app model over store.
func New(cfg *config.Config, store *chat.Store, opts ...Option) *Model {
	m := &Model{
		config:         cfg,
		store:          store,
		now:            time.Now,
		focus:          FocusList,
		typing:         map[string]string{},
		deliveredAfter: DefaultDeliveredAfter,
		readAfter:      DefaultReadAfter,
		typingFor:      DefaultTypingFor,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.themeName = ui.DefaultTheme
	if ui.IsTheme(cfg.GetTheme()) {
		m.themeName = ui.ThemeName(cfg.GetTheme())
	}
	m.styles = ui.NewStyles(ui.GetTheme(m.themeName))

	m.header = ui.NewHeader(m.styles)
	m.footer = ui.NewFooter(m.styles)

	m.list = ui.NewChatList(m.styles, store.Summaries)
	m.list.SetClock(m.now)
	m.list.SetFocused(true)

	m.thread = ui.NewThread(m.styles)
	m.thread.SetClock(m.now)
	m.thread.SetLocation(cfg.Location())
	m.thread.SetUserID(store.UserID())

	minRows, maxRows := cfg.ComposerRows()
	m.composer = ui.NewComposer(m.styles, minRows, maxRows)

	if id := cfg.GetLastConversationID(); id != "" {
		if _, err := store.Conversation(id); err == nil {
			m.openConversation(id)
			m.setFocus(FocusList)
		}
	}
	m.header.SetUnread(store.TotalUnread())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Focus returns the focused pane.
func (m *Model) Focus() Focus {
	return m.focus
}

// Overlay returns the open overlay.
func (m *Model) Overlay() ui.Overlay {
	return m.overlay
}

// OpenConversationID returns the conversation shown in the thread, or "".
func (m *Model) OpenConversationID() string {
	return m.thread.ConversationID()
}

// IsTyping reports whether the other side of convID is typing.
func (m *Model) IsTyping(convID string) bool {
	_, ok := m.typing[convID]
	return ok
}

// setFocus moves keyboard focus and updates the footer.
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f != FocusList && m.thread.ConversationID() == "" {
		f = FocusList
	}
	if m.focus != f {
		logger.WithComponent("app").Debug("focus changed", "from", m.focus.String(), "to", f.String())
	}
	m.focus = f
	m.list.SetFocused(f == FocusList)
	m.thread.SetFocused(f == FocusThread)
	return m.composer.SetFocused(f == FocusComposer)
}

// openConversation shows id in the thread and marks it read.
func (m *Model) openConversation(id string) {
	conv, err := m.store.Conversation(id)
	if err != nil {
		logger.WithComponent("app").Warn("open failed", "conversation", id, "error", err)
		return
	}
	if err := m.store.MarkRead(id); err != nil {
		logger.WithConversation(id).Warn("mark read failed", "error", err)
	}
	conv.Unread = 0

	m.closeOverlay()
	if m.thread.ConversationID() != id {
		m.composer.Reset()
	}
	m.thread.SetConversation(conv)
	name, typing := m.typing[id]
	m.thread.SetTyping(typing, name)
	m.header.SetConversation(conv.Name, conv.IsOnline)
	m.header.SetTyping(typing)
	m.list.Refresh()
	m.list.Select(id)
	m.config.SetLastConversationID(id)
	m.updateSizes()
	logger.WithConversation(id).Info("conversation opened", "messages", len(conv.Messages))
}

// refreshConversation re-reads convID after a change. The open thread is
// updated in place; other conversations only change the list.
func (m *Model) refreshConversation(convID string) {
	if convID == m.thread.ConversationID() {
		msgs, err := m.store.Messages(convID)
		if err == nil {
			m.thread.SetMessages(msgs)
		}
	}
	m.list.Refresh()
	m.header.SetUnread(m.store.TotalUnread())
}

// applyTheme switches every component to name and persists the choice.
func (m *Model) applyTheme(name ui.ThemeName) {
	m.themeName = name
	m.styles = ui.NewStyles(ui.GetTheme(name))
	m.header.SetStyles(m.styles)
	m.footer.SetStyles(m.styles)
	m.list.SetStyles(m.styles)
	m.thread.SetStyles(m.styles)
	m.composer.SetStyles(m.styles)
	m.config.SetTheme(string(name))
	logger.WithComponent("app").Info("theme changed", "theme", string(name))
}

// nextTheme returns the theme after the current one.
func (m *Model) nextTheme() ui.ThemeName {
	names := ui.ThemeNames()
	for i, n := range names {
		if n == m.themeName {
			return names[(i+1)%len(names)]
		}
	}
	return ui.DefaultTheme
}
