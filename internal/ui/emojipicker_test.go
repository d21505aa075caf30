package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/chat"
)

func TestPickerEmoji_AreSingleGraphemes(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range PickerEmoji {
		if err := chat.ValidateEmoji(e); err != nil {
			t.Errorf("%q: %v", e, err)
		}
		if seen[e] {
			t.Errorf("%q listed twice", e)
		}
		seen[e] = true
	}
}

func TestEmojiPicker_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyPressMsg
		want string
	}{
		{"start", nil, PickerEmoji[0]},
		{"right", []tea.KeyPressMsg{{Code: tea.KeyRight}}, PickerEmoji[1]},
		{"left clamps", []tea.KeyPressMsg{{Code: tea.KeyLeft}}, PickerEmoji[0]},
		{"down one row", []tea.KeyPressMsg{{Code: tea.KeyDown}}, PickerEmoji[pickerColumns]},
		{"up clamps", []tea.KeyPressMsg{{Code: tea.KeyUp}}, PickerEmoji[0]},
		{"end", []tea.KeyPressMsg{{Code: tea.KeyEnd}}, PickerEmoji[len(PickerEmoji)-1]},
		{"down at bottom stays", []tea.KeyPressMsg{{Code: tea.KeyEnd}, {Code: tea.KeyDown}}, PickerEmoji[len(PickerEmoji)-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewEmojiPicker(DefaultStyles())
			for _, k := range tt.keys {
				p.Update(k)
			}
			if p.Selected() != tt.want {
				t.Errorf("selected = %q, want %q", p.Selected(), tt.want)
			}
		})
	}
}

func TestEmojiPicker_PickAndClose(t *testing.T) {
	p := NewEmojiPicker(DefaultStyles())
	p.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	picked, closed := p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != PickerEmoji[1] || closed {
		t.Errorf("enter = %q, %v", picked, closed)
	}
	if _, closed := p.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); !closed {
		t.Error("esc should close")
	}
}

func TestEmojiPicker_View(t *testing.T) {
	plain := stripANSI(NewEmojiPicker(DefaultStyles()).View())
	if !strings.Contains(plain, "Add reaction") {
		t.Error("missing title")
	}
	for _, e := range []string{"😀", "👍", "☕"} {
		if !strings.Contains(plain, e) {
			t.Errorf("missing %q", e)
		}
	}
}
