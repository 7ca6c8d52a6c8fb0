package core

// Action represents the result of a node execution that determines flow control.
type Action string

// Common actions used throughout the engine.
const (
	ActionDefault Action = "default"
	ActionEnd     Action = "end"
	ActionFailure Action = "failure"

	// Pipeline routing actions
	ActionContinue Action = "continue"
	ActionRevise   Action = "revise"
)
