package ui

import "github.com/zhubert/parley/internal/logger"

// ViewContext holds the layout calculations for one terminal size.
// The app owns a value of it and recomputes it on every resize.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	ListWidth     int
	ThreadWidth   int
}

// NewViewContext computes the layout for a width x height terminal.
func NewViewContext(width, height int) ViewContext {
	var v ViewContext
	v.UpdateTerminalSize(width, height)
	return v
}

// UpdateTerminalSize recalculates all dimensions when terminal size changes.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.ListWidth = max(width/ListWidthRatio, MinListWidth)
	v.ThreadWidth = width - v.ListWidth

	logger.WithComponent("ui").Debug("terminal size updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"listWidth", v.ListWidth,
		"threadWidth", v.ThreadWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func (v ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}

// ThreadViewportHeight is the room left for messages once the composer
// (composerRows lines of text) and an optional reply bar are placed.
func (v ViewContext) ThreadViewportHeight(composerRows int, replying bool) int {
	h := v.InnerHeight(v.ContentHeight) - composerRows - ComposerChromeHeight
	if replying {
		h -= ReplyBarHeight
	}
	return max(h, 1)
}
