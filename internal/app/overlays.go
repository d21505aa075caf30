package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/dustin/go-humanize"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/timeline"
	"github.com/zhubert/parley/internal/ui"
)

// closeOverlay hides whichever overlay is open.
func (m *Model) closeOverlay() {
	if m.overlay != ui.OverlayNone {
		logger.WithComponent("app").Debug("overlay closed", "overlay", m.overlay.String())
	}
	m.overlay = ui.OverlayNone
	m.sheet = nil
	m.picker = nil
	m.details = nil
	m.attach = nil
	m.targetID = 0
}

// openActionSheet opens the sheet on the selected message.
func (m *Model) openActionSheet() tea.Cmd {
	sel, ok := m.thread.SelectedMessage()
	if !ok {
		return nil
	}
	m.closeOverlay()
	m.sheet = ui.NewActionSheet(
		m.styles,
		sel,
		m.thread.SelectedBubble(),
		m.config.GetQuickReactions(),
		m.store.UserID(),
		m.thread.AnchorRect(),
		m.threadViewport(),
	)
	m.overlay = ui.OverlayActionSheet
	p := m.sheet.Placement()
	logger.WithComponent("app").Debug("action sheet opened",
		"message", sel.ID,
		"edgeCase", p.IsEdgeCase,
		"animation", p.Animation().String(),
	)
	return m.sheet.Init()
}

func (m *Model) openEmojiPicker(msgID int) {
	m.closeOverlay()
	m.picker = ui.NewEmojiPicker(m.styles)
	m.targetID = msgID
	m.overlay = ui.OverlayEmojiPicker
}

func (m *Model) openReactionDetails(msg chat.Message) {
	m.closeOverlay()
	m.details = ui.NewReactionDetails(m.styles, msg, m.store.UserID())
	m.targetID = msg.ID
	m.overlay = ui.OverlayReactionDetails
}

func (m *Model) openAttachmentMenu() tea.Cmd {
	if m.thread.ConversationID() == "" {
		return nil
	}
	m.closeOverlay()
	m.attach = ui.NewAttachmentMenu(m.styles)
	m.overlay = ui.OverlayAttachmentMenu
	return nil
}

// handleOverlayKey routes keys to the open overlay and acts on its result.
func (m *Model) handleOverlayKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.overlay {
	case ui.OverlayActionSheet:
		res, cmd := m.sheet.Update(msg)
		if !res.Done() {
			return cmd
		}
		target := m.sheet.Message()
		m.closeOverlay()
		switch {
		case res.React != "":
			return m.toggleReaction(target.ID, res.React)
		case res.OpenPicker:
			m.openEmojiPicker(target.ID)
		case res.Action != ui.ActionNone:
			return m.runAction(res.Action, target)
		}
		return nil

	case ui.OverlayEmojiPicker:
		picked, closed := m.picker.Update(msg)
		target := m.targetID
		if closed {
			m.closeOverlay()
		}
		if picked != "" {
			m.closeOverlay()
			return m.toggleReaction(target, picked)
		}
		return nil

	case ui.OverlayReactionDetails:
		res := m.details.Update(msg)
		switch {
		case res.Closed:
			m.closeOverlay()
		case res.Remove != "":
			return m.removeOwnReaction(m.targetID, res.Remove)
		}
		return nil

	case ui.OverlayAttachmentMenu:
		att, closed, cmd := m.attach.Update(msg)
		if closed {
			m.closeOverlay()
		}
		if att != nil {
			m.closeOverlay()
			return tea.Batch(cmd, m.sendAttachment(*att))
		}
		return cmd
	}
	return nil
}

// toggleReaction adds or removes the local user's emoji on a message in
// the open conversation.
func (m *Model) toggleReaction(msgID int, emoji string) tea.Cmd {
	convID := m.thread.ConversationID()
	added, err := m.store.ToggleReaction(convID, msgID, emoji, m.store.UserID())
	if err != nil {
		return m.ShowError(err)
	}
	m.refreshConversation(convID)
	m.thread.SelectMessage(msgID)
	if added {
		return m.ShowFlashSuccess("Reacted " + emoji)
	}
	return m.ShowFlashInfo("Removed " + emoji)
}

func (m *Model) removeOwnReaction(msgID int, emoji string) tea.Cmd {
	convID := m.thread.ConversationID()
	if _, err := m.store.RemoveReaction(convID, msgID, emoji, m.store.UserID()); err != nil {
		m.closeOverlay()
		return m.ShowError(err)
	}
	m.refreshConversation(convID)
	updated, err := m.store.Message(convID, msgID)
	if err != nil || len(updated.Reactions) == 0 {
		m.closeOverlay()
	} else {
		m.details.SetMessage(updated)
	}
	return m.ShowFlashInfo("Removed " + emoji)
}

// runAction performs a menu entry of the action sheet.
func (m *Model) runAction(action ui.Action, msg chat.Message) tea.Cmd {
	logger.WithConversation(m.thread.ConversationID()).Debug("action", "action", action.Label(), "message", msg.ID)
	switch action {
	case ui.ActionReply:
		ref := msg.Ref()
		m.composer.SetReplyTo(&ref)
		cmd := m.setFocus(FocusComposer)
		m.updateSizes()
		return cmd

	case ui.ActionCopy:
		text := msg.Text
		if text == "" {
			text = msg.Preview()
		}
		if err := clipboard.WriteText(text); err != nil {
			return m.ShowError(err)
		}
		return m.ShowFlashSuccess("Copied to clipboard")

	case ui.ActionTranslate:
		return m.ShowFlashInfo("Translation is not available offline")

	case ui.ActionMore:
		return m.ShowFlashInfo(messageInfo(msg, m.config.Location(), m.now()))
	}
	return nil
}

// messageInfo summarizes a message for the More action.
func messageInfo(msg chat.Message, loc *time.Location, now time.Time) string {
	when := "unknown time"
	if !msg.Timestamp.IsZero() {
		when = timeline.MessageTime(msg.Timestamp, loc) + " (" + humanize.RelTime(msg.Timestamp, now, "ago", "from now") + ")"
	}
	if msg.IsMe {
		return fmt.Sprintf("Sent %s · %s", when, msg.Status)
	}
	return fmt.Sprintf("From %s · %s", msg.SenderName, when)
}
