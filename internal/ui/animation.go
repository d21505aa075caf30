package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// TypingTickMsg advances the typing indicator.
type TypingTickMsg time.Time

// FadeTickMsg advances an overlay fade-in.
type FadeTickMsg time.Time

// FlashTickMsg checks whether the footer flash has expired.
type FlashTickMsg time.Time

// typingFrames pulse the three dots of the typing indicator.
var typingFrames = []string{"●··", "·●·", "··●", "·●·"}

// TypingTick returns a command that sends a typing tick after a delay
func TypingTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// FadeTick returns a command that sends the next fade frame
func FadeTick() tea.Cmd {
	return tea.Tick(AnimationTick, func(t time.Time) tea.Msg {
		return FadeTickMsg(t)
	})
}

// FlashTick returns a command that re-checks the flash once a second
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// renderTypingIndicator draws an incoming "bubble" with pulsing dots.
func renderTypingIndicator(name string, frame int, s Styles) string {
	dots := typingFrames[frame%len(typingFrames)]
	bubble := s.BubbleThem.Render(dots)
	label := ""
	if name != "" {
		label = " " + s.Typing.Render(name+" is typing")
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Center, bubble, label)
}

// fadeColor blends from the background toward fg over FadeFrames frames,
// returning fg once the fade completes.
func fadeColor(bg, fg string, frame int) string {
	if frame >= FadeFrames || frame < 0 {
		return fg
	}
	t := float64(frame+1) / float64(FadeFrames+1)
	br, bgc, bb := parseHexColor(bg)
	fr, fgc, fb := parseHexColor(fg)
	mix := func(a, b int) int { return int(float64(a)*(1-t) + float64(b)*t) }
	return hexColor(mix(br, fr), mix(bgc, fgc), mix(bb, fb))
}
