package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/ui"
)

// cannedReplies are what the simulated other side says, in rotation.
var cannedReplies = []string{
	"Sounds good!",
	"Haha, totally 😂",
	"Give me a minute, I'm on the tram.",
	"Wait, really?",
	"Let me check and get back to you.",
	"👍",
	"Can you send me the details?",
	"See you there!",
}

// sendMessage sends the composer's text, as a reply if one is pending.
func (m *Model) sendMessage(text string) tea.Cmd {
	convID := m.thread.ConversationID()
	msg, err := m.store.Send(convID, text, m.composer.ReplyTo())
	if err != nil {
		return m.ShowError(err)
	}
	m.composer.Reset()
	m.afterSend(convID)
	return m.statusTicks(convID, msg.ID)
}

// sendAttachment sends att as an outgoing message without text.
func (m *Model) sendAttachment(att chat.Attachment) tea.Cmd {
	convID := m.thread.ConversationID()
	msg, err := m.store.SendAttachment(convID, att, "")
	if err != nil {
		return m.ShowError(err)
	}
	m.afterSend(convID)
	return tea.Batch(
		m.statusTicks(convID, msg.ID),
		m.ShowFlashSuccess("Sent "+att.Kind.Label()),
	)
}

func (m *Model) afterSend(convID string) {
	m.refreshConversation(convID)
	m.thread.ClearSelection()
	m.thread.ScrollToBottom()
	m.updateSizes()
}

// statusTicks schedules the delivered and read updates for a sent message.
func (m *Model) statusTicks(convID string, msgID int) tea.Cmd {
	tick := func(after time.Duration, status chat.Status) tea.Cmd {
		return tea.Tick(after, func(time.Time) tea.Msg {
			return StatusTickMsg{ConversationID: convID, MessageID: msgID, Status: status}
		})
	}
	return tea.Batch(
		tick(m.deliveredAfter, chat.StatusDelivered),
		tick(m.readAfter, chat.StatusRead),
	)
}

func (m *Model) handleStatusTick(msg StatusTickMsg) tea.Cmd {
	changed, err := m.store.UpdateStatus(msg.ConversationID, msg.MessageID, msg.Status)
	if err != nil {
		logger.WithConversation(msg.ConversationID).Warn("status update failed", "message", msg.MessageID, "error", err)
		return nil
	}
	if changed {
		m.refreshConversation(msg.ConversationID)
	}
	return nil
}

// typingSender picks who replies in convID: the author of the latest
// incoming message, or the conversation name.
func (m *Model) typingSender(convID string) string {
	conv, err := m.store.Conversation(convID)
	if err != nil {
		return ""
	}
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if msg := conv.Messages[i]; !msg.IsMe && msg.SenderName != "" {
			return msg.SenderName
		}
	}
	return conv.Name
}

// simulateTyping shows the other side typing in the open conversation and
// schedules their reply.
func (m *Model) simulateTyping() tea.Cmd {
	convID := m.thread.ConversationID()
	if convID == "" {
		return m.ShowFlashWarning("Open a conversation first")
	}
	if _, busy := m.typing[convID]; busy {
		return nil
	}
	sender := m.typingSender(convID)
	m.typing[convID] = sender
	m.thread.SetTyping(true, sender)
	m.header.SetTyping(true)
	logger.WithConversation(convID).Debug("typing started", "sender", sender)

	return tea.Batch(
		tea.Tick(m.typingFor, func(time.Time) tea.Msg {
			return TypingDoneMsg{ConversationID: convID, Sender: sender}
		}),
		ui.TypingTick(),
	)
}

func (m *Model) handleTypingDone(msg TypingDoneMsg) tea.Cmd {
	delete(m.typing, msg.ConversationID)
	if msg.ConversationID == m.thread.ConversationID() {
		m.thread.SetTyping(false, "")
		m.header.SetTyping(false)
	}
	return m.receive(msg.ConversationID, m.nextReply(), msg.Sender)
}

func (m *Model) nextReply() string {
	text := cannedReplies[m.replyIdx%len(cannedReplies)]
	m.replyIdx++
	return text
}

// receive delivers an incoming message. The open conversation is read on
// arrival; other conversations collect unread messages and notify.
func (m *Model) receive(convID, text, sender string) tea.Cmd {
	msg, err := m.store.Receive(convID, text, sender)
	if err != nil {
		return m.ShowError(err)
	}
	open := convID == m.thread.ConversationID()
	if open {
		if err := m.store.MarkRead(convID); err != nil {
			logger.WithConversation(convID).Warn("mark read failed", "error", err)
		}
	}
	m.refreshConversation(convID)

	if open || !m.config.GetNotificationsEnabled() {
		return nil
	}
	return notifyCmd(msg.SenderName, msg.Preview())
}

// receiveNow delivers a canned reply at once to the highlighted (list) or
// open (thread, composer) conversation.
func (m *Model) receiveNow() tea.Cmd {
	convID := m.thread.ConversationID()
	if m.focus == FocusList {
		convID = m.list.SelectedID()
	}
	if convID == "" {
		return nil
	}
	return m.receive(convID, m.nextReply(), m.typingSender(convID))
}

// notifyCmd sends a desktop notification off the event loop.
func notifyCmd(sender, text string) tea.Cmd {
	return func() tea.Msg {
		_ = notification.IncomingMessage(sender, text)
		return nil
	}
}
