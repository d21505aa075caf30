package ui

import (
	"hash/fnv"
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// AvatarSize picks one of the three avatar renderings.
type AvatarSize int

const (
	AvatarSmall  AvatarSize = iota // glyph only, chat list rows
	AvatarMedium                   // one line tile, thread header
	AvatarLarge                    // three line tile, reaction details
)

var avatarPalette = []string{"#7C3AED", "#06B6D4", "#F59E0B", "#10B981", "#EF4444", "#EC4899", "#3B82F6"}

// Avatar is a conversation or sender avatar: its emoji glyph when set,
// otherwise initials on a color picked from the name.
type Avatar struct {
	Name   string
	Glyph  string
	Online bool
	Size   AvatarSize
}

// Initials returns up to two uppercase initials of name.
func Initials(name string) string {
	var out []rune
	for _, f := range strings.Fields(name) {
		r := []rune(f)[0]
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, unicode.ToUpper(r))
		}
		if len(out) == 2 {
			break
		}
	}
	if len(out) == 0 {
		return "?"
	}
	return string(out)
}

func avatarColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}

func (a Avatar) label() string {
	if a.Glyph != "" {
		return a.Glyph
	}
	return Initials(a.Name)
}

// Width is the rendered width in cells, excluding the online dot.
func (a Avatar) Width() int {
	switch a.Size {
	case AvatarMedium:
		return 4
	case AvatarLarge:
		return 8
	}
	return 2
}

// Render draws the avatar with styles.
func (a Avatar) Render(styles Styles) string {
	label := a.label()
	style := styles.Avatar
	if a.Glyph == "" {
		style = style.Background(lipgloss.Color(avatarColor(a.Name)))
	} else {
		style = style.UnsetBackground()
	}

	var out string
	switch a.Size {
	case AvatarSmall:
		out = style.Render(runewidth.FillRight(runewidth.Truncate(label, 2, ""), 2))
	case AvatarMedium:
		out = style.Width(a.Width()).Render(label)
	case AvatarLarge:
		out = style.Width(a.Width()).Height(3).AlignVertical(lipgloss.Center).Render(label)
	}

	if a.Online {
		dot := styles.OnlineDot.Render("●")
		if a.Size == AvatarLarge {
			return lipgloss.JoinHorizontal(lipgloss.Bottom, out, dot)
		}
		return out + dot
	}
	return out
}
