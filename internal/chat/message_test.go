package chat

import (
	"strings"
	"testing"
)

func TestAttachmentSummary(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		want string
	}{
		{"named with size", Attachment{Kind: AttachDocument, Name: "notes.pdf", Size: 48213}, "📄 notes.pdf (48 kB)"},
		{"label fallback", Attachment{Kind: AttachPoll}, "📊 Poll"},
		{"no size", Attachment{Kind: AttachLocation, Name: "Home"}, "📍 Home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.att.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSimulatedAttachment(t *testing.T) {
	for _, kind := range AttachmentKinds {
		a := SimulatedAttachment(kind, "")
		if a.Kind != kind {
			t.Errorf("%s: kind = %s", kind, a.Kind)
		}
		if a.Name == "" {
			t.Errorf("%s: expected a default name", kind)
		}
	}

	if a := SimulatedAttachment(AttachDocument, "plan.txt"); a.Name != "plan.txt" {
		t.Errorf("label should rename documents, got %q", a.Name)
	}
	a := SimulatedAttachment(AttachPoll, "Pizza or sushi?")
	if a.Detail != "Pizza or sushi?" || a.Name != "Poll" {
		t.Errorf("label should become the poll question, got %+v", a)
	}
	if !strings.HasPrefix(a.Summary(), AttachPoll.Icon()) {
		t.Errorf("summary %q should start with the poll icon", a.Summary())
	}
}
