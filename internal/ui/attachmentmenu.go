package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/keys"
)

// attachmentLabelLimit caps the optional name or caption.
const attachmentLabelLimit = 60

// AttachmentMenu picks what to attach: a kind and an optional label.
type AttachmentMenu struct {
	styles Styles
	form   *huh.Form

	kind  chat.AttachmentKind
	label string
}

// NewAttachmentMenu builds the picker form.
func NewAttachmentMenu(styles Styles) *AttachmentMenu {
	m := &AttachmentMenu{styles: styles, kind: chat.AttachPhoto}

	options := make([]huh.Option[chat.AttachmentKind], len(chat.AttachmentKinds))
	for i, k := range chat.AttachmentKinds {
		options[i] = huh.NewOption(k.Icon()+" "+k.Label(), k)
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewSelect[chat.AttachmentKind]().
			Title("Attach").
			Options(options...).
			Height(len(options)).
			Value(&m.kind),
		huh.NewInput().
			Title("Name or question").
			Description("Optional").
			CharLimit(attachmentLabelLimit).
			Value(&m.label),
	)).
		WithTheme(formTheme(styles)).
		WithShowHelp(false).
		WithWidth(ModalWidth - 4)

	m.form.Init()
	return m
}

// Kind returns the highlighted attachment kind.
func (m *AttachmentMenu) Kind() chat.AttachmentKind {
	return m.kind
}

// Update forwards input to the form. Enter returns the attachment to
// send; esc closes without one.
func (m *AttachmentMenu) Update(msg tea.Msg) (att *chat.Attachment, closed bool, cmd tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Escape:
			return nil, true, nil
		case keys.Enter:
			a := chat.SimulatedAttachment(m.kind, strings.TrimSpace(m.label))
			return &a, false, nil
		}
	}
	m.form, cmd = formUpdate(m.form, msg)
	return nil, false, cmd
}

// View renders the picker panel.
func (m *AttachmentMenu) View() string {
	title := m.styles.ModalTitle.Render("Attachment")
	help := m.styles.ModalHelp.Render("↑/↓ choose · tab label · enter attach · esc cancel")
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.form.View(), help)
	return m.styles.Popover.Padding(0, 1).Width(ModalWidth).Render(body)
}
