package demo

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/ui"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key and character
	CaptureEveryStep bool

	// TypeDelay is the delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// TypingFrameInterval paces typing indicator frames during waits (default: 400ms)
	TypingFrameInterval time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep:    false,
		TypeDelay:           50 * time.Millisecond,
		KeyDelay:            100 * time.Millisecond,
		TypingFrameInterval: 400 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	store  *chat.Store
	frames []Frame

	currentAnnotation string
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if err := e.setup(scenario); err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}

	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup builds an in-memory store and model for the scenario. Nothing is
// read from or written to the user's config directory.
func (e *Executor) setup(scenario *Scenario) error {
	now := scenario.Setup.Now
	clock := func() time.Time { return now }

	convs := chat.DefaultSeed(now)
	if scenario.Setup.Seed != nil {
		resolved, err := scenario.Setup.Seed.Resolve(now)
		if err != nil {
			return err
		}
		convs = resolved
	}

	cfg := config.New()
	cfg.SetTimezone(now.Location().String())
	if scenario.Setup.Theme != "" {
		if !ui.IsTheme(scenario.Setup.Theme) {
			return fmt.Errorf("unknown theme %q", scenario.Setup.Theme)
		}
		cfg.SetTheme(scenario.Setup.Theme)
	}
	cfg.SetNotificationsEnabled(false)

	e.store = chat.NewStore(convs, chat.WithClock(clock), chat.WithUserID(cfg.GetUserID()))
	e.model = app.New(cfg, e.store, app.WithClock(clock))
	e.frames = []Frame{}
	e.currentAnnotation = ""
	e.update(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})
	return nil
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		// Animate the typing dots while the other side is typing
		interval := e.config.TypingFrameInterval
		if e.model.IsTyping(e.model.OpenConversationID()) && interval > 0 && step.Duration >= interval {
			e.captureAnimatedFrames(index, step.Duration, interval)
		} else {
			e.captureFrame(index, step.Duration)
		}

	case StepKey:
		e.sendKey(step.Key)
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			e.sendKey(string(ch))
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}

	case StepStatus:
		convID := e.model.OpenConversationID()
		if convID == "" {
			return fmt.Errorf("no open conversation for status change")
		}
		msgID, err := e.lastOutgoing(convID)
		if err != nil {
			return err
		}
		e.update(app.StatusTickMsg{ConversationID: convID, MessageID: msgID, Status: step.Status})
		e.captureFrame(index, 300*time.Millisecond)

	case StepIncoming:
		convID := step.ConversationID
		if convID == "" {
			convID = e.model.OpenConversationID()
		}
		if convID == "" {
			return fmt.Errorf("no conversation for incoming message")
		}
		if _, err := e.store.Conversation(convID); err != nil {
			return err
		}
		e.update(app.ReceiveMsg{ConversationID: convID, Sender: step.Sender, Text: step.Text})
		e.captureFrame(index, 300*time.Millisecond)

	case StepTypingDone:
		convID := e.model.OpenConversationID()
		if !e.model.IsTyping(convID) {
			return fmt.Errorf("nobody is typing")
		}
		e.update(app.TypingDoneMsg{ConversationID: convID})
		e.captureFrame(index, 300*time.Millisecond)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)
	}

	return nil
}

// lastOutgoing returns the id of the newest message sent by the user.
func (e *Executor) lastOutgoing(convID string) (int, error) {
	msgs, err := e.store.Messages(convID)
	if err != nil {
		return 0, err
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsMe {
			return msgs[i].ID, nil
		}
	}
	return 0, fmt.Errorf("no outgoing message in %s", convID)
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	frame := Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	}
	e.frames = append(e.frames, frame)

	// Clear annotation after use
	e.currentAnnotation = ""
}

// captureAnimatedFrames spreads totalDuration over several frames, ticking
// the typing indicator between them.
func (e *Executor) captureAnimatedFrames(stepIndex int, totalDuration, frameInterval time.Duration) {
	numFrames := max(int(totalDuration/frameInterval), 1)
	delayPerFrame := totalDuration / time.Duration(numFrames)

	for range numFrames {
		e.update(ui.TypingTickMsg(time.Now()))
		e.captureFrame(stepIndex, delayPerFrame)
	}
}

// sendKey sends a key press to the model. Commands it returns are dropped:
// timers like delivery ticks are replaced by explicit steps.
func (e *Executor) sendKey(key string) {
	e.update(keyPress(key))
}

func (e *Executor) update(msg tea.Msg) {
	result, _ := e.model.Update(msg)
	e.model = result.(*app.Model)
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape, "escape":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.Space, " ":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlE:
		return tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}
	case keys.CtrlO:
		return tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	default:
		r := []rune(key)
		if len(r) == 1 {
			return tea.KeyPressMsg{Code: r[0], Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
