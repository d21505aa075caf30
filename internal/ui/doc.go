// Package ui provides the terminal components of parley.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────┬───────────────────────────────────┤
//	│                 │ Thread                            │
//	│   ChatList      │                                   │
//	│   (1/3 width)   ├───────────────────────────────────┤
//	│                 │ Composer (grows with the draft)   │
//	├─────────────────┴───────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// ViewContext computes these sizes for one terminal size. The app owns it
// and recomputes it on resize.
//
// # Styling
//
// Components never look up a theme. The app builds a Styles value with
// NewStyles and hands it to each component; switching themes means
// building a new Styles and calling SetStyles everywhere.
//
// # Overlays
//
// ActionSheet, EmojiPicker, ReactionDetails and AttachmentMenu are drawn
// over the thread with Composite. Which one is open is an Overlay value
// held by the app; each component only reports what the user chose.
package ui
