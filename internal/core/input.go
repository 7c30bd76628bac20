package core

// Action represents a semantic game action, abstracted from physical keys
// and pointer events.
type Action int

const (
	ActionNone       Action = iota
	ActionThrust            // Space, Up, W, mouse press - thrust on
	ActionRelease           // mouse release, hold window expiry - thrust off
	ActionConfirm           // Enter - start from the title screen
	ActionRestart           // R - back to the title screen after a crash
	ActionPause             // P, Escape - pause/unpause
	ActionQuit              // Q, Ctrl+C - exit
	ActionScreenshot        // Ctrl+S - dump the screen to a text file
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionThrust:
		return "Thrust"
	case ActionRelease:
		return "Release"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionScreenshot:
		return "Screenshot"
	default:
		return "Unknown"
	}
}
