// Package popover computes where the message action sheet's three panels
// go: the emoji bar, a preview of the selected message, and the action menu.
//
// Place is a pure function. The same anchor, viewport and config always
// produce the same placement.
package popover

import "math"

// Rect is the on-screen box of the selected message bubble.
type Rect struct {
	X, Y, Width, Height float64
}

// Size is a width and height, used for the viewport and panels.
type Size struct {
	Width, Height float64
}

// Point is a panel's top-left corner.
type Point struct {
	Top, Left float64
}

// Config holds panel sizes and layout thresholds.
type Config struct {
	EmojiBar   Size
	ActionMenu Size

	// Padding keeps panels off the viewport edges.
	Padding float64
	// Spacing separates panels from the preview.
	Spacing float64

	// Anchors within CenterThreshold of ReferenceHeight, or above
	// TopThreshold, use the centered stack.
	ReferenceHeight float64
	CenterThreshold float64
	TopThreshold    float64
}

// DefaultConfig returns the layout constants in device points.
func DefaultConfig() Config {
	return Config{
		EmojiBar:        Size{Width: 320, Height: 60},
		ActionMenu:      Size{Width: 200, Height: 160},
		Padding:         20,
		Spacing:         8,
		ReferenceHeight: 844,
		CenterThreshold: 300,
		TopThreshold:    200,
	}
}

// Terminal panel sizes in cells.
var (
	CellEmojiBar   = Size{Width: 30, Height: 3}
	CellActionMenu = Size{Width: 20, Height: 6}
)

// CellConfig adapts the layout to a terminal viewport measured in cells.
// Panel sizes are fixed in cells; the vertical thresholds keep their
// proportion to the reference height, which becomes the viewport height.
func CellConfig(viewport Size) Config {
	def := DefaultConfig()
	scale := viewport.Height / def.ReferenceHeight
	return Config{
		EmojiBar:        CellEmojiBar,
		ActionMenu:      CellActionMenu,
		Padding:         1,
		Spacing:         0,
		ReferenceHeight: viewport.Height,
		CenterThreshold: def.CenterThreshold * scale,
		TopThreshold:    def.TopThreshold * scale,
	}
}

// Animation is how the preview should appear.
type Animation int

const (
	// AnimateLift keeps the preview at the anchor and lifts it in place.
	AnimateLift Animation = iota
	// AnimateFadeIn fades the preview in at its final centered slot.
	AnimateFadeIn
)

func (a Animation) String() string {
	if a == AnimateFadeIn {
		return "fade-in"
	}
	return "lift"
}

// Placement is the computed position of all three panels.
type Placement struct {
	PreviewTop  float64
	PreviewLeft float64
	EmojiBar    Point
	ActionMenu  Point
	IsEdgeCase  bool
}

// Animation selects the preview animation for this placement.
func (p Placement) Animation() Animation {
	if p.IsEdgeCase {
		return AnimateFadeIn
	}
	return AnimateLift
}

// IsEdgeCase reports whether an anchor at y needs the centered stack.
func (c Config) IsEdgeCase(y float64) bool {
	return math.Abs(y-c.ReferenceHeight) < c.CenterThreshold || y < c.TopThreshold
}

// Place positions the panels for anchor inside viewport. A nil anchor gets
// a fixed centered layout and is reported as an edge case.
func Place(anchor *Rect, viewport Size, cfg Config) Placement {
	if anchor == nil {
		return centerFallback(viewport, cfg)
	}

	var p Placement
	p.PreviewLeft = anchor.X
	p.IsEdgeCase = cfg.IsEdgeCase(anchor.Y)

	if p.IsEdgeCase {
		total := cfg.EmojiBar.Height + cfg.Spacing + anchor.Height + cfg.Spacing + cfg.ActionMenu.Height
		start := viewport.Height/2 - total/2

		p.EmojiBar.Top = start
		p.PreviewTop = start + cfg.EmojiBar.Height + cfg.Spacing
		p.ActionMenu.Top = p.PreviewTop + anchor.Height + cfg.Spacing
	} else {
		p.PreviewTop = anchor.Y
		bottom := anchor.Y + anchor.Height

		p.ActionMenu.Top = bottom + cfg.Spacing
		menuBelow := true
		if p.ActionMenu.Top+cfg.ActionMenu.Height > viewport.Height-cfg.Padding {
			p.ActionMenu.Top = anchor.Y - cfg.ActionMenu.Height - cfg.Spacing
			menuBelow = false
		}

		p.EmojiBar.Top = anchor.Y - cfg.EmojiBar.Height - cfg.Spacing
		if p.EmojiBar.Top < cfg.Padding {
			// Below the anchor, and below the menu when the menu is there too.
			if menuBelow {
				bottom = p.ActionMenu.Top + cfg.ActionMenu.Height
			}
			p.EmojiBar.Top = bottom + cfg.Spacing
		}
	}

	p.EmojiBar.Left = clampLeft(anchor.X, cfg.EmojiBar.Width, viewport.Width, cfg.Padding)
	p.ActionMenu.Left = clampLeft(anchor.X, cfg.ActionMenu.Width, viewport.Width, cfg.Padding)
	return p
}

// clampLeft keeps a panel inside [padding, width-panel-padding]. When the
// panel is wider than the room available, the left padding wins.
func clampLeft(x, panel, width, padding float64) float64 {
	if x+panel > width-padding {
		x = width - panel - padding
	}
	if x < padding {
		x = padding
	}
	return x
}

func centerFallback(viewport Size, cfg Config) Placement {
	def := DefaultConfig()
	// Offsets are defined in device points; scale them for other units.
	scale := 1.0
	if cfg.ReferenceHeight > 0 && cfg.ReferenceHeight != def.ReferenceHeight {
		scale = cfg.ReferenceHeight / def.ReferenceHeight
	}

	emoji := Point{
		Top:  viewport.Height/2 - 200*scale,
		Left: viewport.Width/2 - cfg.EmojiBar.Width/2,
	}
	menu := Point{
		Top:  viewport.Height/2 + 50*scale,
		Left: viewport.Width/2 - cfg.ActionMenu.Width/2,
	}
	return Placement{
		PreviewTop:  emoji.Top + cfg.EmojiBar.Height + cfg.Spacing,
		PreviewLeft: emoji.Left,
		EmojiBar:    emoji,
		ActionMenu:  menu,
		IsEdgeCase:  true,
	}
}
