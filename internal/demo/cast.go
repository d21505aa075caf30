package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// castHeader is the first line of an asciicast v2 recording.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// clearScreen homes the cursor and clears the screen before each frame.
const clearScreen = "\x1b[H\x1b[2J"

// GenerateASCIICast writes frames as an asciicast v2 recording, playable
// with asciinema or convertible to a GIF with agg. Annotations become
// marker events.
func GenerateASCIICast(w io.Writer, scenario *Scenario, frames []Frame) error {
	header := castHeader{
		Version:   2,
		Width:     scenario.Width,
		Height:    scenario.Height,
		Timestamp: scenario.Setup.Now.Unix(),
		Title:     scenario.Name,
		Env:       map[string]string{"TERM": "xterm-256color", "SHELL": "/bin/sh"},
	}
	if scenario.Description != "" {
		header.Title = scenario.Name + ": " + scenario.Description
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var elapsed time.Duration
	for i, f := range frames {
		elapsed += f.Delay
		at := elapsed.Seconds()
		if f.Annotation != "" {
			if err := enc.Encode([]any{at, "m", f.Annotation}); err != nil {
				return fmt.Errorf("writing marker %d: %w", i, err)
			}
		}
		data := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{at, "o", data}); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	return nil
}
