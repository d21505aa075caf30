package notification

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

// mockNotification records calls to the notification function
type mockNotification struct {
	calls []struct {
		title   string
		message string
	}
	err error
}

func (m *mockNotification) notify(title, message string, icon any) error {
	m.calls = append(m.calls, struct {
		title   string
		message string
	}{title, message})
	return m.err
}

func TestSend(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		message     string
		mockErr     error
		expectError bool
	}{
		{"successful notification", "Test Title", "Test Message", nil, false},
		{"notification error", "Test Title", "Test Message", errors.New("notification failed"), true},
		{"empty message", "Title", "", nil, false},
		{"unicode content", "通知", "🎉 Notification with emoji", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockNotification{err: tt.mockErr}
			SetNotifier(mock.notify)
			defer ResetNotifier()

			err := Send(tt.title, tt.message)

			if tt.expectError && err == nil {
				t.Error("expected error but got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			if mock.calls[0].title != tt.title || mock.calls[0].message != tt.message {
				t.Errorf("call = %+v", mock.calls[0])
			}
		})
	}
}

func TestIncomingMessage(t *testing.T) {
	mock := &mockNotification{}
	SetNotifier(mock.notify)
	defer ResetNotifier()

	if err := IncomingMessage("Sarah", "Running late,\n\nsee you soon"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mock.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(mock.calls))
	}
	call := mock.calls[0]
	if call.title != "Parley: Sarah" {
		t.Errorf("title = %q", call.title)
	}
	if call.message != "Running late, see you soon" {
		t.Errorf("message = %q", call.message)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"collapses whitespace", "a \n\t b", "a b"},
		{"trims", "  hi  ", "hi"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreview_Truncates(t *testing.T) {
	got := Preview(strings.Repeat("word ", 40))
	if w := runewidth.StringWidth(got); w > maxPreviewWidth {
		t.Errorf("preview width = %d, want <= %d", w, maxPreviewWidth)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated preview should end with ellipsis, got %q", got)
	}
}
