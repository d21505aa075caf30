package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/popover"
	"github.com/zhubert/parley/internal/ui"
)

// updateSizes recomputes the layout and resizes every component.
func (m *Model) updateSizes() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.layout.UpdateTerminalSize(m.width, m.height)
	ctx := m.layout

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.list.SetSize(ctx.ListWidth, ctx.ContentHeight)

	inner := ctx.InnerWidth(ctx.ThreadWidth)
	m.composer.SetWidth(inner)
	m.thread.SetSize(inner, ctx.ThreadViewportHeight(m.composer.Rows(), m.composer.IsReplying()))
}

// threadViewport is the thread's size in cells, for popover placement.
func (m *Model) threadViewport() popover.Size {
	ctx := m.layout
	return popover.Size{
		Width:  float64(ctx.InnerWidth(ctx.ThreadWidth)),
		Height: float64(ctx.ThreadViewportHeight(m.composer.Rows(), m.composer.IsReplying())),
	}
}

// updateFooterContext picks the key help for the current focus and overlay.
func (m *Model) updateFooterContext() {
	if mode, ok := m.overlay.FooterMode(); ok {
		m.footer.SetMode(mode)
		m.footer.SetReplying(false)
		return
	}
	switch {
	case m.focus == FocusList && m.list.IsSearchMode():
		m.footer.SetMode(ui.ModeSearch)
	case m.focus == FocusList:
		m.footer.SetMode(ui.ModeList)
	case m.focus == FocusThread:
		m.footer.SetMode(ui.ModeThread)
	default:
		m.footer.SetMode(ui.ModeComposer)
	}
	m.footer.SetReplying(m.composer.IsReplying())
}

// threadPaneView renders the thread, its overlay and the composer inside
// a bordered panel.
func (m *Model) threadPaneView() string {
	ctx := m.layout
	style := m.styles.Panel
	if m.focus != FocusList {
		style = m.styles.PanelFocused
	}

	if m.thread.ConversationID() == "" {
		hint := lipgloss.NewStyle().Foreground(m.styles.Muted).Italic(true).
			Render("Select a conversation to start chatting.")
		return style.Width(ctx.ThreadWidth).Height(ctx.ContentHeight).
			Render(lipgloss.Place(ctx.InnerWidth(ctx.ThreadWidth), ctx.InnerHeight(ctx.ContentHeight), lipgloss.Center, lipgloss.Center, hint))
	}

	threadView := m.thread.View()
	vp := m.threadViewport()
	w, h := int(vp.Width), int(vp.Height)
	switch m.overlay {
	case ui.OverlayActionSheet:
		threadView = m.sheet.View(threadView)
	case ui.OverlayEmojiPicker:
		threadView = centered(threadView, m.picker.View(), w, h)
	case ui.OverlayReactionDetails:
		threadView = centered(threadView, m.details.View(), w, h)
	case ui.OverlayAttachmentMenu:
		threadView = centered(threadView, m.attach.View(), w, h)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, threadView, m.composer.View())
	return style.Width(ctx.ThreadWidth).Height(ctx.ContentHeight).Render(content)
}

func centered(base, panel string, width, height int) string {
	x, y := ui.Center(panel, width, height)
	return ui.Composite(base, width, height, ui.Layer{View: panel, X: x, Y: y})
}

// RenderToString renders the current view as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	m.updateFooterContext()

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), m.threadPaneView())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panels, m.footer.View())
}

// View renders the app. This is the core Bubble Tea view function.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.SetContent(m.RenderToString())
	return v
}
