package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// ListWidthRatio is the denominator for the chat list width (1/3 of total width)
	ListWidthRatio = 3

	// MinListWidth keeps names and badges readable on narrow terminals
	MinListWidth = 24

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 60
	MinTerminalHeight = 16

	// ComposerChromeHeight is the composer border
	ComposerChromeHeight = 2

	// ReplyBarHeight is the reply preview above the composer
	ReplyBarHeight = 2

	// BubbleWidthRatio is the share of the thread width a bubble may take, in percent
	BubbleWidthRatio = 75

	// MinBubbleWidth is the narrowest wrap width for bubble text
	MinBubbleWidth = 12

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Animation timing
const (
	// AnimationTick is the frame interval for overlay and typing animations
	AnimationTick = 80 * time.Millisecond

	// FadeFrames is how many ticks a fade-in takes
	FadeFrames = 4

	// FlashDuration is how long a footer flash stays visible
	FlashDuration = 3 * time.Second
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 44

	// SearchCharLimit is the character limit for the chat list search input
	SearchCharLimit = 64
)
