package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Styles is every lipgloss style the components render with, derived from
// one Theme. It is a plain value: copy it into components, rebuild it with
// NewStyles to switch themes.
type Styles struct {
	Theme Theme

	Primary   color.Color
	Secondary color.Color
	Text      color.Color
	Muted     color.Color
	Border    color.Color

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	Footer     lipgloss.Style
	FooterKey  lipgloss.Style
	FooterDesc lipgloss.Style
	FooterSep  lipgloss.Style
	Flash      lipgloss.Style
	FlashError lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListName     lipgloss.Style
	ListPreview  lipgloss.Style
	ListTime     lipgloss.Style
	UnreadBadge  lipgloss.Style
	OnlineDot    lipgloss.Style

	Avatar lipgloss.Style

	BubbleMe        lipgloss.Style
	BubbleThem      lipgloss.Style
	BubbleSelected  lipgloss.Style
	Sender          lipgloss.Style
	Meta            lipgloss.Style
	ReadTicks       lipgloss.Style
	ReplyQuote      lipgloss.Style
	ReactionChip    lipgloss.Style
	ReactionChipOwn lipgloss.Style
	Attachment      lipgloss.Style
	InlineCode      lipgloss.Style
	CodeBlock       lipgloss.Style

	Separator lipgloss.Style
	Typing    lipgloss.Style
	JumpPill  lipgloss.Style

	Composer        lipgloss.Style
	ComposerFocused lipgloss.Style
	ReplyBar        lipgloss.Style

	Popover         lipgloss.Style
	PopoverItem     lipgloss.Style
	PopoverSelected lipgloss.Style
	PopoverDanger   lipgloss.Style

	ModalTitle lipgloss.Style
	ModalHelp  lipgloss.Style
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)
	text := lipgloss.Color(t.Text)
	muted := lipgloss.Color(t.TextMuted)
	border := lipgloss.Color(t.Border)
	selected := lipgloss.Color(t.GetBgSelected())
	inverse := lipgloss.Color(t.TextInverse)
	warning := lipgloss.Color(t.Warning)
	errColor := lipgloss.Color(t.Error)
	codeBg := lipgloss.Color(t.CodeBg)

	s := Styles{
		Theme:     t,
		Primary:   primary,
		Secondary: secondary,
		Text:      text,
		Muted:     muted,
		Border:    border,
	}

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(text).Background(primary).Padding(0, 1)
	s.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(text)

	s.Footer = lipgloss.NewStyle().Foreground(muted).Padding(0, 1)
	s.FooterKey = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	s.FooterDesc = lipgloss.NewStyle().Foreground(muted)
	s.FooterSep = lipgloss.NewStyle().Foreground(border)
	s.Flash = lipgloss.NewStyle().Foreground(secondary).Italic(true)
	s.FlashError = lipgloss.NewStyle().Foreground(errColor).Bold(true)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primary)

	s.ListItem = lipgloss.NewStyle().Padding(0, 1)
	s.ListSelected = lipgloss.NewStyle().Background(selected).Foreground(text).Bold(true).Padding(0, 1)
	s.ListName = lipgloss.NewStyle().Bold(true).Foreground(text)
	s.ListPreview = lipgloss.NewStyle().Foreground(muted)
	s.ListTime = lipgloss.NewStyle().Foreground(muted).Italic(true)
	s.UnreadBadge = lipgloss.NewStyle().Bold(true).Foreground(inverse).Background(lipgloss.Color(t.Unread)).Padding(0, 1)
	s.OnlineDot = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Online))

	s.Avatar = lipgloss.NewStyle().Bold(true).Foreground(inverse).Background(secondary).Align(lipgloss.Center)

	s.BubbleMe = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BubbleMeText)).
		Background(lipgloss.Color(t.BubbleMe)).
		Padding(0, 1)
	s.BubbleThem = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.BubbleThemText)).
		Background(lipgloss.Color(t.BubbleThem)).
		Padding(0, 1)
	s.BubbleSelected = lipgloss.NewStyle().Foreground(primary).Bold(true)
	s.Sender = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	s.Meta = lipgloss.NewStyle().Foreground(muted)
	s.ReadTicks = lipgloss.NewStyle().Foreground(secondary)
	s.ReplyQuote = lipgloss.NewStyle().
		Foreground(muted).
		Italic(true).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(secondary).
		PaddingLeft(1)
	s.ReactionChip = lipgloss.NewStyle().Foreground(text).Border(lipgloss.RoundedBorder(), false, true).BorderForeground(border)
	s.ReactionChipOwn = s.ReactionChip.BorderForeground(primary).Bold(true)
	s.Attachment = lipgloss.NewStyle().Foreground(warning)
	s.InlineCode = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Code)).Background(codeBg)
	s.CodeBlock = lipgloss.NewStyle().Background(codeBg)

	s.Separator = lipgloss.NewStyle().Foreground(muted).Align(lipgloss.Center)
	s.Typing = lipgloss.NewStyle().Foreground(muted).Italic(true)
	s.JumpPill = lipgloss.NewStyle().Foreground(inverse).Background(primary).Bold(true).Padding(0, 1)

	s.Composer = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	s.ComposerFocused = s.Composer.BorderForeground(primary)
	s.ReplyBar = lipgloss.NewStyle().
		Foreground(muted).
		BorderLeft(true).
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(primary).
		PaddingLeft(1)

	s.Popover = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primary).
		Background(lipgloss.Color(t.Bg)).
		Foreground(text)
	s.PopoverItem = lipgloss.NewStyle().Foreground(text).Padding(0, 1)
	s.PopoverSelected = lipgloss.NewStyle().Foreground(text).Background(selected).Bold(true).Padding(0, 1)
	s.PopoverDanger = lipgloss.NewStyle().Foreground(errColor).Padding(0, 1)

	s.ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(primary).MarginBottom(1)
	s.ModalHelp = lipgloss.NewStyle().Foreground(muted).Italic(true).MarginTop(1)
	return s
}

// DefaultStyles is NewStyles for the default theme.
func DefaultStyles() Styles {
	return NewStyles(GetTheme(DefaultTheme))
}
