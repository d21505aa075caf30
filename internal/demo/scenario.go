// Package demo provides infrastructure for generating demos of Parley.
// Scenarios drive the real app model with scripted keys and simulated
// incoming messages, so recordings are deterministic and need no terminal.
package demo

import (
	"strconv"
	"time"

	"github.com/zhubert/parley/internal/chat"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepTypeText types a string character by character.
	StepTypeText
	// StepStatus advances the newest outgoing message of the open
	// conversation to a delivery status.
	StepStatus
	// StepIncoming delivers a message from the other side.
	StepIncoming
	// StepTypingDone ends simulated typing in the open conversation with
	// the next canned reply.
	StepTypingDone
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next frame.
	StepAnnotate
)

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string

	// For StepTypeText and StepIncoming
	Text string

	// For StepWait
	Duration time.Duration

	// For StepStatus
	Status chat.Status

	// For StepIncoming; an empty conversation means the open one
	ConversationID string
	Sender         string

	// For StepAnnotate
	Annotation string
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 120)
	Height      int // Terminal height (default 40)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the initial state for a demo.
type ScenarioSetup struct {
	// Seed holds the conversations; nil means the built-in ones.
	Seed *chat.SeedFile

	// Theme name; empty means the default theme.
	Theme string

	// Now anchors relative seed times and the clock. Zero means a fixed
	// mid-day time so recordings don't change from run to run.
	Now time.Time
}

// defaultNow is the demo clock when a setup doesn't pick one.
var defaultNow = time.Date(2025, time.June, 19, 12, 0, 0, 0, time.UTC)

// DefaultSetup returns a minimal setup for demos.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{Now: defaultNow}
}

// Validate checks that the scenario is valid and fills in defaults.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 120
	}
	if s.Height <= 0 {
		s.Height = 40
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Now.IsZero() {
		s.Setup.Now = defaultNow
	}
	for i, step := range s.Steps {
		switch {
		case step.Type == StepKey && step.Key == "":
			return &ValidationError{Field: "Steps", Message: stepMessage(i, "key step without a key")}
		case step.Type == StepIncoming && step.Text == "":
			return &ValidationError{Field: "Steps", Message: stepMessage(i, "incoming step without text")}
		}
	}
	return nil
}

func stepMessage(i int, msg string) string {
	return "step " + strconv.Itoa(i) + ": " + msg
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Type creates a text typing step.
func Type(text string) Step {
	return Step{
		Type: StepTypeText,
		Text: text,
	}
}

// TypeWithDesc creates a text typing step with a description.
func TypeWithDesc(text, description string) Step {
	return Step{
		Type:        StepTypeText,
		Text:        text,
		Description: description,
	}
}

// Delivered marks the newest outgoing message delivered.
func Delivered() Step {
	return Step{Type: StepStatus, Status: chat.StatusDelivered}
}

// Read marks the newest outgoing message read.
func Read() Step {
	return Step{Type: StepStatus, Status: chat.StatusRead}
}

// Incoming delivers text from sender into the open conversation.
func Incoming(sender, text string) Step {
	return Step{
		Type:   StepIncoming,
		Sender: sender,
		Text:   text,
	}
}

// IncomingTo delivers text from sender into conversationID.
func IncomingTo(conversationID, sender, text string) Step {
	return Step{
		Type:           StepIncoming,
		ConversationID: conversationID,
		Sender:         sender,
		Text:           text,
	}
}

// TypingDone stops the typing indicator and delivers the reply.
func TypingDone() Step {
	return Step{Type: StepTypingDone}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
