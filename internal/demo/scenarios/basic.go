// Package scenarios contains built-in demo scenarios for Parley.
package scenarios

import (
	"time"

	"github.com/zhubert/parley/internal/demo"
	"github.com/zhubert/parley/internal/keys"
)

// Basic demonstrates a short conversation with Anna:
// - Opening the conversation from the list
// - Sending a message and watching it get delivered and read
// - Anna typing and replying
// - Replying to her message from the action sheet
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Send a message, watch it get read, reply to an answer",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		// Conversation list with unread badges
		demo.Wait(1 * time.Second),
		demo.Capture(),

		demo.KeyWithDesc(keys.Enter, "Open Anna"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),

		demo.Type("Let's grab dinner before, the place on the corner?"),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),

		demo.Key(keys.Enter),
		demo.Wait(500 * time.Millisecond),
		demo.Delivered(),
		demo.Wait(800 * time.Millisecond),
		demo.Read(),

		// Anna types an answer
		demo.KeyWithDesc(keys.CtrlT, "Simulate typing"),
		demo.Wait(2 * time.Second),
		demo.TypingDone(),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Select her answer and reply to it
		demo.KeyWithDesc(keys.Escape, "Focus thread"),
		demo.Key(keys.Up),
		demo.Wait(400 * time.Millisecond),
		demo.Capture(),

		demo.KeyWithDesc(keys.Enter, "Open action sheet"),
		demo.Wait(600 * time.Millisecond),
		demo.Capture(),

		demo.Key(keys.Down),
		demo.Key(keys.Up),
		demo.KeyWithDesc(keys.Enter, "Reply"),
		demo.Wait(400 * time.Millisecond),

		demo.Type("Great, see you at 18:00"),
		demo.Wait(300 * time.Millisecond),
		demo.Capture(),

		demo.Key(keys.Enter),
		demo.Wait(500 * time.Millisecond),
		demo.Delivered(),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		// Final pause
		demo.Wait(2 * time.Second),
	},
}

// Reactions demonstrates the action sheet and reactions:
// - Quick reactions from the sheet
// - The full emoji picker
// - The reaction details panel
// - A group message arriving in another conversation
var Reactions = &demo.Scenario{
	Name:        "reactions",
	Description: "React with quick reactions and the picker, inspect reactions",
	Width:       120,
	Height:      40,
	Setup:       demo.DefaultSetup(),
	Steps: []demo.Step{
		demo.Wait(1 * time.Second),
		demo.KeyWithDesc(keys.Enter, "Open Anna"),
		demo.KeyWithDesc(keys.Escape, "Focus thread"),
		demo.Wait(500 * time.Millisecond),
		demo.Capture(),

		// Select Anna's question and open the sheet
		demo.Key(keys.Up),
		demo.Key(keys.Up),
		demo.Wait(400 * time.Millisecond),
		demo.Key(keys.Enter),
		demo.Wait(600 * time.Millisecond),
		demo.Annotate("Quick reactions"),
		demo.Capture(),

		demo.KeyWithDesc("1", "React with the first quick reaction"),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// Open the sheet again and go to the picker
		demo.Key(keys.Enter),
		demo.Wait(400 * time.Millisecond),
		demo.KeyWithDesc("7", "Open emoji picker"),
		demo.Wait(600 * time.Millisecond),
		demo.Annotate("Emoji picker"),
		demo.Capture(),

		demo.Key(keys.Right),
		demo.Key(keys.Right),
		demo.Wait(300 * time.Millisecond),
		demo.Key(keys.Enter),
		demo.Wait(800 * time.Millisecond),
		demo.Capture(),

		// Show who reacted
		demo.KeyWithDesc("r", "Reaction details"),
		demo.Wait(600 * time.Millisecond),
		demo.Annotate("Who reacted"),
		demo.Capture(),

		demo.Key(keys.Escape),
		demo.Wait(400 * time.Millisecond),

		// Meanwhile the climbing group keeps talking
		demo.IncomingTo("climbing", "Tomek", "Wall is booked for Saturday 10:00"),
		demo.Wait(1 * time.Second),
		demo.Capture(),

		demo.Wait(2 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Reactions,
	}
}

// Get returns a scenario by name, or nil if not found.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			return s
		}
	}
	return nil
}
