package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
)

func typeInto(c *Composer, s string) {
	for _, r := range s {
		c.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func newTestComposer(minRows, maxRows int) *Composer {
	c := NewComposer(DefaultStyles(), minRows, maxRows)
	c.SetWidth(40)
	c.SetFocused(true)
	return c
}

func TestComposer_SubmitOnEnter(t *testing.T) {
	c := newTestComposer(1, 5)
	typeInto(c, "  hello  ")

	got, _ := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if got != "hello" {
		t.Errorf("submitted = %q, want %q", got, "hello")
	}
	if c.Value() == "" {
		t.Error("the caller resets the draft, not Update")
	}
	c.Reset()
	if c.Value() != "" {
		t.Error("Reset should clear the draft")
	}
}

func TestComposer_BlankNotSubmitted(t *testing.T) {
	c := newTestComposer(1, 5)
	typeInto(c, "   ")
	if got, _ := c.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); got != "" {
		t.Errorf("blank draft submitted as %q", got)
	}
}

func TestComposer_NewlineKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
	}{
		{"shift+enter", tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}},
		{"alt+enter", tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}},
		{"ctrl+j", tea.KeyPressMsg{Code: 'j', Mod: tea.ModCtrl}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestComposer(1, 5)
			typeInto(c, "a")
			if got, _ := c.Update(tt.msg); got != "" {
				t.Fatalf("%s should not submit", tt.name)
			}
			typeInto(c, "b")
			if c.Value() != "a\nb" {
				t.Errorf("value = %q, want a line break", c.Value())
			}
		})
	}
}

func TestComposer_AutoGrow(t *testing.T) {
	c := newTestComposer(1, 3)
	if c.Rows() != 1 {
		t.Fatalf("rows = %d, want the minimum", c.Rows())
	}

	c.SetValue("one\ntwo")
	if c.Rows() != 2 {
		t.Errorf("rows = %d, want 2", c.Rows())
	}

	c.SetValue("1\n2\n3\n4\n5\n6")
	if c.Rows() != 3 {
		t.Errorf("rows = %d, want the maximum 3", c.Rows())
	}

	// Soft wrapping counts too: 36 text cells per row at width 40.
	c.SetValue(strings.Repeat("x", 50))
	if c.Rows() != 2 {
		t.Errorf("rows = %d, want 2 for a wrapped line", c.Rows())
	}

	c.Reset()
	if c.Rows() != 1 {
		t.Errorf("rows after reset = %d", c.Rows())
	}
}

func TestComposer_ReplyBar(t *testing.T) {
	c := newTestComposer(1, 5)
	base := c.Height()

	ref := chat.ReplyRef{ID: 9, Text: "What time shall we meet?", SenderName: "Anna"}
	c.SetReplyTo(&ref)
	if !c.IsReplying() {
		t.Fatal("reply should be pending")
	}
	if c.Height() != base+ReplyBarHeight {
		t.Errorf("height = %d, want %d", c.Height(), base+ReplyBarHeight)
	}
	plain := stripANSI(c.View())
	if !strings.Contains(plain, "Replying to Anna") || !strings.Contains(plain, "What time shall we meet?") {
		t.Errorf("reply bar missing:\n%s", plain)
	}

	typeInto(c, "draft")
	c.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if c.IsReplying() {
		t.Error("esc should cancel the reply")
	}
	if c.Value() != "draft" {
		t.Error("cancelling a reply keeps the draft")
	}
	if c.Height() != base {
		t.Errorf("height = %d after cancel, want %d", c.Height(), base)
	}
}

func TestComposer_ResetClearsReply(t *testing.T) {
	c := newTestComposer(1, 5)
	c.SetReplyTo(&chat.ReplyRef{ID: 1, Text: "hi", IsMe: true})
	if !strings.Contains(stripANSI(c.View()), "Replying to yourself") {
		t.Error("replying to an own message")
	}
	c.Reset()
	if c.ReplyTo() != nil {
		t.Error("Reset should drop the reply")
	}
}

func TestComposer_IgnoresInputWhenBlurred(t *testing.T) {
	c := newTestComposer(1, 5)
	c.SetFocused(false)
	typeInto(c, "abc")
	if c.Value() != "" {
		t.Errorf("blurred composer accepted %q", c.Value())
	}
}

func TestComposer_ViewWidth(t *testing.T) {
	c := newTestComposer(2, 5)
	for _, l := range strings.Split(c.View(), "\n") {
		if w := len([]rune(stripANSI(l))); w != 40 {
			t.Errorf("line width = %d, want 40: %q", w, stripANSI(l))
		}
	}
	if got := len(strings.Split(c.View(), "\n")); got != c.Height() {
		t.Errorf("view has %d lines, Height says %d", got, c.Height())
	}
}
