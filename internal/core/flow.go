package core

import (
	"context"
	"log/slog"
)

// maxFlowIterations is a safety cap on the number of node transitions per
// Run call. It guards against misconfigured successor graphs whose routing
// never reaches a terminal node. Hitting it is a programmer error, reported
// as ActionFailure rather than spinning forever.
const maxFlowIterations = 50

// Flow orchestrates the execution of connected workflows using action-based
// routing. It implements the Workflow interface, allowing flows to be nested.
type Flow[State any] struct {
	startNode  Workflow[State]
	log        *slog.Logger
	successors map[Action]Workflow[State]
}

// NewFlow creates a new Flow with the given start node.
func NewFlow[State any](startNode Workflow[State], log *slog.Logger) *Flow[State] {
	if log == nil {
		log = slog.Default()
	}
	return &Flow[State]{
		startNode:  startNode,
		log:        log,
		successors: make(map[Action]Workflow[State]),
	}
}

// Run implements Workflow.Run — executes the chain of workflows until no
// successor matches the returned action.
func (f *Flow[State]) Run(ctx context.Context, state *State) Action {
	current := f.startNode
	if current == nil {
		f.log.Error("flow started with no start node")
		return ActionFailure
	}

	var lastAction Action
	for i := 0; current != nil; i++ {
		if i >= maxFlowIterations {
			f.log.Error("flow iteration cap reached, aborting", "cap", maxFlowIterations)
			return ActionFailure
		}

		if err := ctx.Err(); err != nil {
			f.log.Warn("flow cancelled", "error", err)
			return ActionFailure
		}

		action := current.Run(ctx, state)
		lastAction = action

		// Look for a successor on the current node first, then flow-level.
		next := current.GetSuccessor(action)
		if next == nil {
			next = f.GetSuccessor(action)
		}
		current = next
	}
	return lastAction
}

// AddSuccessor connects a flow-level successor for a given action.
func (f *Flow[State]) AddSuccessor(successor Workflow[State], action ...Action) Workflow[State] {
	if successor == nil {
		return successor
	}
	if len(action) == 0 {
		f.successors[ActionDefault] = successor
	} else {
		f.successors[action[0]] = successor
	}
	return successor
}

// GetSuccessor returns the flow-level successor for the given action.
func (f *Flow[State]) GetSuccessor(action Action) Workflow[State] {
	return f.successors[action]
}
