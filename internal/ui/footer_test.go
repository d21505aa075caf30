package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFooter_SetFlash(t *testing.T) {
	footer := NewFooter(DefaultStyles())

	footer.SetFlash("Test error message", FlashError)

	if footer.flashMessage == nil {
		t.Fatal("Expected flash message to be set")
	}
	if footer.flashMessage.Text != "Test error message" {
		t.Errorf("Expected text 'Test error message', got %q", footer.flashMessage.Text)
	}
	if footer.flashMessage.Type != FlashError {
		t.Errorf("Expected type FlashError, got %v", footer.flashMessage.Type)
	}
	if footer.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("Expected duration %v, got %v", DefaultFlashDuration, footer.flashMessage.Duration)
	}
}

func TestFooter_SetFlashWithDuration(t *testing.T) {
	footer := NewFooter(DefaultStyles())
	footer.SetFlashWithDuration("Custom duration", FlashInfo, 10*time.Second)

	if footer.flashMessage == nil || footer.flashMessage.Duration != 10*time.Second {
		t.Errorf("flash = %+v", footer.flashMessage)
	}
}

func TestFooter_ClearFlash(t *testing.T) {
	footer := NewFooter(DefaultStyles())
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false initially")
	}

	footer.SetFlash("Test message", FlashInfo)
	if !footer.HasFlash() {
		t.Error("Expected HasFlash() to return true")
	}

	footer.ClearFlash()
	if footer.HasFlash() {
		t.Error("Expected HasFlash() to return false after ClearFlash()")
	}
}

func TestFlashMessage_IsExpired(t *testing.T) {
	fresh := &FlashMessage{Text: "Test", CreatedAt: time.Now(), Duration: 5 * time.Second}
	if fresh.IsExpired() {
		t.Error("New message should not be expired")
	}

	old := &FlashMessage{Text: "Test", CreatedAt: time.Now().Add(-10 * time.Second), Duration: 5 * time.Second}
	if !old.IsExpired() {
		t.Error("Old message should be expired")
	}
}

func TestFooter_ClearIfExpired(t *testing.T) {
	footer := NewFooter(DefaultStyles())

	footer.SetFlash("Not expired", FlashInfo)
	if footer.ClearIfExpired() {
		t.Error("Should not clear non-expired message")
	}

	footer.SetFlashWithDuration("Expired", FlashInfo, time.Nanosecond)
	time.Sleep(time.Millisecond)
	if !footer.ClearIfExpired() {
		t.Error("Should clear expired message")
	}
	if footer.HasFlash() {
		t.Error("Flash should be gone")
	}
}

func TestFooter_ViewByMode(t *testing.T) {
	tests := []struct {
		mode    FooterMode
		want    []string
		notWant []string
	}{
		{ModeList, []string{"open", "search", "quit"}, []string{"send"}},
		{ModeSearch, []string{"filter", "clear"}, []string{"quit"}},
		{ModeThread, []string{"actions", "react"}, []string{"send"}},
		{ModeComposer, []string{"send", "newline", "attach"}, []string{"cancel reply"}},
		{ModeActionSheet, []string{"emoji", "close"}, nil},
		{ModeEmojiPicker, []string{"react"}, nil},
		{ModeReactionDetails, []string{"remove mine"}, nil},
		{ModeAttachmentMenu, []string{"attach", "cancel"}, nil},
	}
	for _, tt := range tests {
		footer := NewFooter(DefaultStyles())
		footer.SetWidth(200)
		footer.SetMode(tt.mode)
		view := stripANSI(footer.View())
		for _, w := range tt.want {
			if !strings.Contains(view, w) {
				t.Errorf("mode %d: view %q missing %q", tt.mode, view, w)
			}
		}
		for _, w := range tt.notWant {
			if strings.Contains(view, w) {
				t.Errorf("mode %d: view %q should not contain %q", tt.mode, view, w)
			}
		}
	}
}

func TestFooter_ReplyingAddsCancel(t *testing.T) {
	footer := NewFooter(DefaultStyles())
	footer.SetWidth(200)
	footer.SetMode(ModeComposer)
	footer.SetReplying(true)
	if view := stripANSI(footer.View()); !strings.Contains(view, "esc: cancel reply") {
		t.Errorf("view = %q", view)
	}
	// The shared table must not grow.
	if n := len(modeBindings[ModeComposer]); n != 5 {
		t.Errorf("composer bindings = %d, want 5", n)
	}
}

func TestFooter_FlashReplacesBindings(t *testing.T) {
	footer := NewFooter(DefaultStyles())
	footer.SetWidth(120)
	footer.SetFlash("Copied", FlashSuccess)
	view := stripANSI(footer.View())
	if !strings.Contains(view, "✓ Copied") || strings.Contains(view, "quit") {
		t.Errorf("view = %q", view)
	}
}

func TestFooter_TruncatesToWidth(t *testing.T) {
	footer := NewFooter(DefaultStyles())
	footer.SetWidth(30)
	footer.SetMode(ModeComposer)
	for _, line := range strings.Split(stripANSI(footer.View()), "\n") {
		if w := len([]rune(line)); w > 30 {
			t.Errorf("line %q is %d wide", line, w)
		}
	}
}
