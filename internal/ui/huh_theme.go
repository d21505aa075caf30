package ui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/parley/internal/keys"
)

// formUpdate forwards msg to form, keeping enter and esc for the caller.
func formUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			return form, nil
		}
	}
	m, cmd := form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

// formTheme returns a huh theme built from s.
func formTheme(s Styles) huh.Theme {
	inverse := lipgloss.Color(s.Theme.TextInverse)
	warning := lipgloss.Color(s.Theme.Warning)
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		t := huh.ThemeBase(isDark)

		t.Focused.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(s.Primary)
		t.Focused.Card = t.Focused.Base
		t.Focused.Title = lipgloss.NewStyle().Foreground(s.Text).Bold(true)
		t.Focused.Description = lipgloss.NewStyle().Foreground(s.Muted).Italic(true)
		t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(warning).SetString(" *")
		t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(warning)

		t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(s.Primary).SetString("> ")
		t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(s.Primary).MarginLeft(1).SetString("→")
		t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(s.Primary).MarginRight(1).SetString("←")
		t.Focused.Option = lipgloss.NewStyle().Foreground(s.Text)
		t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(s.Secondary)

		t.Focused.FocusedButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(inverse).
			Background(s.Primary)
		t.Focused.BlurredButton = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			Foreground(s.Muted)

		t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(s.Primary)
		t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(s.Muted)
		t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(s.Primary)
		t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(s.Text)

		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = lipgloss.NewStyle().Foreground(s.Secondary).Bold(true)
		t.Group.Description = lipgloss.NewStyle().Foreground(s.Muted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles
		return t
	})
}
