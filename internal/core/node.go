package core

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/contentforge/content-forge/internal/retry"
)

// Node wraps a BaseNode implementation with retry logic and successor
// routing. It implements the Workflow interface.
//
// When Prep emits several work items and Parallel() was called, Exec runs
// the items concurrently; Post always runs after every item has finished,
// so it acts as the fan-in join barrier.
type Node[State any, PrepResult any, ExecResult any] struct {
	name       string
	node       BaseNode[State, PrepResult, ExecResult]
	policy     retry.Policy
	parallel   bool
	log        *slog.Logger
	successors map[Action]Workflow[State]
}

// NewNode creates a new Node wrapping the given BaseNode implementation.
// The retry policy applies per Exec work item.
func NewNode[State any, PrepResult any, ExecResult any](
	name string,
	basenode BaseNode[State, PrepResult, ExecResult],
	policy retry.Policy,
	log *slog.Logger,
) *Node[State, PrepResult, ExecResult] {
	if log == nil {
		log = slog.Default()
	}
	return &Node[State, PrepResult, ExecResult]{
		name:       name,
		node:       basenode,
		policy:     policy,
		log:        log.With("stage", name),
		successors: make(map[Action]Workflow[State]),
	}
}

// Parallel makes Exec run its work items concurrently. Returns the node for
// chaining.
func (n *Node[State, PrepResult, ExecResult]) Parallel() *Node[State, PrepResult, ExecResult] {
	n.parallel = true
	return n
}

// Name returns the node's stage name.
func (n *Node[State, PrepResult, ExecResult]) Name() string { return n.name }

// execOne runs a single work item through the retry wrapper, converting an
// exhausted or permanent failure into the node's fallback result.
func (n *Node[State, PrepResult, ExecResult]) execOne(ctx context.Context, item PrepResult) ExecResult {
	result, err := retry.Do(ctx, n.name, n.policy, n.log, func(ctx context.Context) (ExecResult, error) {
		return n.node.Exec(ctx, item)
	})
	if err != nil {
		n.log.Warn("stage work item failed", "error", err)
		return n.node.ExecFallback(err)
	}
	return result
}

// Run implements Workflow.Run — executes the full Prep → Exec → Post lifecycle.
func (n *Node[State, PrepResult, ExecResult]) Run(ctx context.Context, state *State) Action {
	prepRes := n.node.Prep(state)
	if len(prepRes) == 0 {
		return n.node.Post(state, prepRes)
	}

	execResults := make([]ExecResult, len(prepRes))
	if n.parallel && len(prepRes) > 1 {
		// One branch failing must not cancel its siblings, so a bare Group
		// is used rather than errgroup.WithContext.
		var g errgroup.Group
		for i, item := range prepRes {
			i, item := i, item
			g.Go(func() error {
				execResults[i] = n.execOne(ctx, item)
				return nil
			})
		}
		g.Wait() //nolint:errcheck // goroutines never return errors
	} else {
		for i, item := range prepRes {
			execResults[i] = n.execOne(ctx, item)
		}
	}

	return n.node.Post(state, prepRes, execResults...)
}

// AddSuccessor connects a successor workflow for a given action.
func (n *Node[State, PrepResult, ExecResult]) AddSuccessor(
	workflow Workflow[State], action ...Action,
) Workflow[State] {
	if workflow == nil {
		return workflow
	}
	if len(action) == 0 {
		n.successors[ActionDefault] = workflow
	} else {
		n.successors[action[0]] = workflow
	}
	return workflow
}

// GetSuccessor returns the successor for the given action.
func (n *Node[State, PrepResult, ExecResult]) GetSuccessor(action Action) Workflow[State] {
	return n.successors[action]
}
