// Package errors provides structured error types for parley.
// These errors carry the operation that failed and a category, so the UI can
// decide how loudly to surface them.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindPermission
	KindIO
	KindConfig
	KindSeed
	KindClipboard
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindPermission:
		return "permission denied"
	case KindIO:
		return "I/O error"
	case KindConfig:
		return "configuration error"
	case KindSeed:
		return "seed error"
	case KindClipboard:
		return "clipboard error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for parley.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the part of err worth showing in the footer: the
// context or cause without the operation prefix.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Context != "" {
			return e.Context
		}
		return e.Err.Error()
	}
	return err.Error()
}

// Conversation errors
func ConversationNotFound(id string) error {
	return E(Op("chat.Conversation"), KindNotFound, fmt.Sprintf("conversation %s not found", id))
}

func MessageNotFound(conversationID string, messageID int) error {
	return E(Op("chat.Message"), KindNotFound, fmt.Sprintf("message %d not found in conversation %s", messageID, conversationID))
}

func EmptyMessage() error {
	return E(Op("chat.Send"), KindInvalid, "message text is empty")
}

func InvalidEmoji(emoji string) error {
	return E(Op("chat.React"), KindInvalid, fmt.Sprintf("%q is not a single emoji", emoji))
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}

// Seed errors
func SeedLoadFailed(path string, err error) error {
	return E(Op("chat.LoadSeed"), KindSeed, fmt.Sprintf("failed to load seed from %s", path), err)
}

func SeedInvalid(reason string) error {
	return E(Op("chat.ValidateSeed"), KindInvalid, reason)
}

// Clipboard errors
func ClipboardUnavailable(err error) error {
	return E(Op("clipboard.Init"), KindClipboard, "system clipboard unavailable", err)
}
