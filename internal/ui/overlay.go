package ui

import (
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
)

// Overlay identifies which popover, if any, is drawn over the thread.
// The app model owns the value; components never open themselves.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayActionSheet
	OverlayEmojiPicker
	OverlayReactionDetails
	OverlayAttachmentMenu
)

func (o Overlay) String() string {
	switch o {
	case OverlayActionSheet:
		return "action-sheet"
	case OverlayEmojiPicker:
		return "emoji-picker"
	case OverlayReactionDetails:
		return "reaction-details"
	case OverlayAttachmentMenu:
		return "attachment-menu"
	}
	return "none"
}

// FooterMode is the key help to show while o is open.
func (o Overlay) FooterMode() (FooterMode, bool) {
	switch o {
	case OverlayActionSheet:
		return ModeActionSheet, true
	case OverlayEmojiPicker:
		return ModeEmojiPicker, true
	case OverlayReactionDetails:
		return ModeReactionDetails, true
	case OverlayAttachmentMenu:
		return ModeAttachmentMenu, true
	}
	return ModeList, false
}

// Layer is a rendered block drawn at a cell offset.
type Layer struct {
	View string
	X, Y int
}

// Composite draws layers in order over base, clipping everything to
// width x height.
func Composite(base string, width, height int, layers ...Layer) string {
	if width <= 0 || height <= 0 {
		return base
	}
	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(base).Draw(scr, area)

	for _, l := range layers {
		if l.View == "" {
			continue
		}
		w, h := lipgloss.Width(l.View), lipgloss.Height(l.View)
		// Keep the layer on screen; it is clipped only if larger than the area.
		x := min(max(l.X, 0), max(width-w, 0))
		y := min(max(l.Y, 0), max(height-h, 0))
		rect := uv.Rect(x, y, min(w, width-x), min(h, height-y))
		uv.NewStyledString(l.View).Draw(scr, rect)
	}
	return scr.Render()
}

// Center returns the offset that centers view in width x height.
func Center(view string, width, height int) (x, y int) {
	return max((width-lipgloss.Width(view))/2, 0), max((height-lipgloss.Height(view))/2, 0)
}
