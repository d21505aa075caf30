package ui

import (
	"strings"
	"testing"
)

func TestComposite(t *testing.T) {
	base := strings.Join([]string{
		"..........",
		"..........",
		"..........",
	}, "\n")

	got := stripANSI(Composite(base, 10, 3, Layer{View: "ab\ncd", X: 3, Y: 1}))
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	if lines[0] != ".........." {
		t.Errorf("line 0 = %q, base should be untouched", lines[0])
	}
	if lines[1] != "...ab....." {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != "...cd....." {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestComposite_ClampsIntoArea(t *testing.T) {
	base := "......\n......"
	got := strings.Split(stripANSI(Composite(base, 6, 2, Layer{View: "xy", X: 10, Y: 5})), "\n")
	if got[1] != "....xy" {
		t.Errorf("layer should be pulled back on screen, got %q", got[1])
	}
}

func TestComposite_LayerOrder(t *testing.T) {
	got := stripANSI(Composite("....", 4, 1,
		Layer{View: "aaa", X: 0},
		Layer{View: "b", X: 1},
	))
	if got != "aba." {
		t.Errorf("later layers draw on top, got %q", got)
	}
}

func TestCenter(t *testing.T) {
	x, y := Center("abcd\nefgh", 10, 6)
	if x != 3 || y != 2 {
		t.Errorf("Center = (%d, %d), want (3, 2)", x, y)
	}
	x, y = Center(strings.Repeat("x", 20), 10, 1)
	if x != 0 || y != 0 {
		t.Errorf("oversized view should pin to the corner, got (%d, %d)", x, y)
	}
}

func TestOverlay_FooterMode(t *testing.T) {
	tests := []struct {
		o    Overlay
		mode FooterMode
		ok   bool
	}{
		{OverlayNone, ModeList, false},
		{OverlayActionSheet, ModeActionSheet, true},
		{OverlayEmojiPicker, ModeEmojiPicker, true},
		{OverlayReactionDetails, ModeReactionDetails, true},
		{OverlayAttachmentMenu, ModeAttachmentMenu, true},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			mode, ok := tt.o.FooterMode()
			if mode != tt.mode || ok != tt.ok {
				t.Errorf("FooterMode() = %v, %v", mode, ok)
			}
		})
	}
}
