// Package notification sends desktop notifications for incoming messages.
// It uses the beeep library on macOS, Linux, and Windows.
package notification

import (
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/muesli/reflow/truncate"

	"github.com/zhubert/parley/internal/logger"
)

// AppName is the title prefix for every notification
const AppName = "Parley"

// maxPreviewWidth bounds the message preview shown in a notification body
const maxPreviewWidth = 80

// NotifyFunc matches beeep.Notify
type NotifyFunc func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier NotifyFunc = beeep.Notify
)

// SetNotifier replaces the notification backend. Used by tests.
func SetNotifier(fn NotifyFunc) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores beeep.Notify.
func ResetNotifier() {
	SetNotifier(beeep.Notify)
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	mu.Lock()
	fn := notifier
	mu.Unlock()

	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title)
	// Empty icon lets beeep pick the platform default
	err := fn(title, message, "")
	if err != nil {
		log.Warn("failed to send", "error", err)
	}
	return err
}

// IncomingMessage notifies that sender wrote text. Long text is truncated.
func IncomingMessage(sender, text string) error {
	return Send(AppName+": "+sender, Preview(text))
}

// Preview collapses text to a single line no wider than maxPreviewWidth cells.
func Preview(text string) string {
	line := []rune{}
	space := false
	for _, r := range text {
		if r == '\n' || r == '\t' || r == ' ' {
			if !space && len(line) > 0 {
				line = append(line, ' ')
			}
			space = true
			continue
		}
		space = false
		line = append(line, r)
	}
	out := string(line)
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return truncate.StringWithTail(out, maxPreviewWidth, "…")
}
