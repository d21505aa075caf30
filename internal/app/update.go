package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKeyPress(msg)

	case tea.MouseWheelMsg:
		if m.overlay == ui.OverlayNone {
			return m, m.thread.Update(msg)
		}
		return m, nil

	case StatusTickMsg:
		return m, m.handleStatusTick(msg)

	case TypingDoneMsg:
		return m, m.handleTypingDone(msg)

	case ReceiveMsg:
		return m, m.receive(msg.ConversationID, msg.Text, msg.Sender)

	case ui.TypingTickMsg:
		return m, m.thread.Update(msg)

	case ui.FadeTickMsg:
		if m.overlay == ui.OverlayActionSheet {
			_, cmd := m.sheet.Update(msg)
			return m, cmd
		}
		return m, nil

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()
	}

	// Everything else (cursor blink, form internals) goes to the focused input.
	var cmd tea.Cmd
	switch {
	case m.overlay == ui.OverlayAttachmentMenu:
		_, _, cmd = m.attach.Update(msg)
	case m.focus == FocusComposer:
		_, cmd = m.composer.Update(msg)
	case m.focus == FocusList && m.list.IsSearchMode():
		_, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// handleKeyPress handles all keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	logger.WithComponent("app").Debug("key", "key", key, "focus", m.focus.String(), "overlay", m.overlay.String())

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m.quit()
	}

	if m.overlay != ui.OverlayNone {
		return m.handleOverlayKey(msg)
	}

	if cmd, handled := m.ExecuteShortcut(key); handled {
		return cmd
	}

	switch m.focus {
	case FocusList:
		return m.handleListKey(msg)
	case FocusThread:
		return m.handleThreadKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyPressMsg) tea.Cmd {
	opened, cmd := m.list.Update(msg)
	if opened == "" {
		return cmd
	}
	m.openConversation(opened)
	return tea.Batch(cmd, m.setFocus(FocusComposer))
}

func (m *Model) handleThreadKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case keys.Enter, keys.Space:
		if _, ok := m.thread.SelectedMessage(); !ok {
			m.thread.MoveSelection(-1)
		}
		return m.openActionSheet()
	case "e":
		if sel, ok := m.thread.SelectedMessage(); ok {
			m.openEmojiPicker(sel.ID)
		}
		return nil
	case "r":
		if sel, ok := m.thread.SelectedMessage(); ok && len(sel.Reactions) > 0 {
			m.openReactionDetails(sel)
		}
		return nil
	case keys.Escape:
		if _, ok := m.thread.SelectedMessage(); ok {
			m.thread.ClearSelection()
			m.thread.ScrollToBottom()
			return nil
		}
		return m.setFocus(FocusList)
	}
	return m.thread.Update(msg)
}

func (m *Model) handleComposerKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == keys.Escape && !m.composer.IsReplying() {
		return m.setFocus(FocusThread)
	}
	text, cmd := m.composer.Update(msg)
	if text != "" {
		cmd = tea.Batch(cmd, m.sendMessage(text))
	}
	// The draft may have grown a row or the reply bar closed.
	m.updateSizes()
	return cmd
}

// quit saves the config and exits.
func (m *Model) quit() tea.Cmd {
	if err := m.config.Save(); err != nil {
		logger.WithComponent("app").Error("failed to save config", "error", err)
	}
	return tea.Quit
}
