// Package clipboard copies message text to and from the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// Backend is the subset of the system clipboard parley uses.
type Backend interface {
	Init() error
	Write(text []byte)
	Read() []byte
}

type systemBackend struct{}

func (systemBackend) Init() error       { return clipboard.Init() }
func (systemBackend) Write(text []byte) { clipboard.Write(clipboard.FmtText, text) }
func (systemBackend) Read() []byte      { return clipboard.Read(clipboard.FmtText) }

var (
	mu          sync.Mutex
	backend     Backend = systemBackend{}
	initialized bool
)

// SetBackend replaces the clipboard implementation. Used by tests.
func SetBackend(b Backend) {
	mu.Lock()
	defer mu.Unlock()
	backend = b
	initialized = false
}

// ResetBackend restores the system clipboard.
func ResetBackend() {
	SetBackend(systemBackend{})
}

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	log := logger.WithComponent("clipboard")
	if err := backend.Init(); err != nil {
		log.Warn("failed to initialize", "error", err)
		return perrors.ClipboardUnavailable(err)
	}
	initialized = true
	log.Debug("initialized")
	return nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return err
	}
	backend.Write([]byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard. An empty clipboard is not an error.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()

	if err := initLocked(); err != nil {
		return "", err
	}
	return string(backend.Read()), nil
}
