package app

import (
	tea "charm.land/bubbletea/v2"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowError flashes err. Bad input and missing messages are warnings,
// everything else (clipboard, disk) is an error.
func (m *Model) ShowError(err error) tea.Cmd {
	switch perrors.GetKind(err) {
	case perrors.KindInvalid, perrors.KindNotFound:
		return m.ShowFlashWarning(perrors.Message(err))
	}
	return m.ShowFlashError(perrors.Message(err))
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashWarning displays a warning flash message
func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
