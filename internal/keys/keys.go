// Package keys provides string constants for Bubble Tea v2 key press events.
//
// The values are derived from tea.KeyPressMsg{...}.String() so they always
// match what Update receives. Single-character keys like "q" or "/" are
// written inline where they are handled.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Left   = tea.KeyPressMsg{Code: tea.KeyLeft}.String()   // "left"
	Right  = tea.KeyPressMsg{Code: tea.KeyRight}.String()  // "right"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter      = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                      // "enter"
	ShiftEnter = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}).String() // "shift+enter"
	AltEnter   = (tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModAlt}).String()   // "alt+enter"
	Tab        = tea.KeyPressMsg{Code: tea.KeyTab}.String()                        // "tab"
	ShiftTab   = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String()   // "shift+tab"
	Space      = tea.KeyPressMsg{Code: tea.KeySpace}.String()                      // "space"
	Backspace  = tea.KeyPressMsg{Code: tea.KeyBackspace}.String()                  // "backspace"
	Escape     = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                     // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlE = (tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}).String() // "ctrl+e"
	CtrlO = (tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}).String() // "ctrl+o"
	CtrlR = (tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}).String() // "ctrl+r"
	CtrlT = (tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}).String() // "ctrl+t"
	CtrlN = (tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}).String() // "ctrl+n"
)
