package core_test

import (
	"context"
	"testing"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/retry"
)

// actionNode returns a fixed sequence of actions, one per Run call.
type actionNode struct {
	actions []core.Action
	runs    int
}

func (a *actionNode) Prep(_ *testState) []string { return []string{"x"} }

func (a *actionNode) Exec(_ context.Context, item string) (string, error) { return item, nil }

func (a *actionNode) ExecFallback(_ error) string { return "" }

func (a *actionNode) Post(_ *testState, _ []string, _ ...string) core.Action {
	action := a.actions[a.runs%len(a.actions)]
	a.runs++
	return action
}

func newActionNode(name string, actions ...core.Action) (*core.Node[testState, string, string], *actionNode) {
	impl := &actionNode{actions: actions}
	return core.NewNode[testState, string, string](name, impl, retry.Policy{}, nil), impl
}

func TestFlow_Run_LinearChain(t *testing.T) {
	first, firstImpl := newActionNode("first", core.ActionContinue)
	second, secondImpl := newActionNode("second", core.ActionEnd)
	first.AddSuccessor(second, core.ActionContinue)

	flow := core.NewFlow[testState](first, nil)
	action := flow.Run(context.Background(), &testState{})

	if action != core.ActionEnd {
		t.Errorf("expected ActionEnd, got %q", action)
	}
	if firstImpl.runs != 1 || secondImpl.runs != 1 {
		t.Errorf("expected each node to run once, got %d and %d", firstImpl.runs, secondImpl.runs)
	}
}

func TestFlow_Run_ConditionalRouting(t *testing.T) {
	// Node alternates revise/end; the revise edge loops back to itself.
	node, impl := newActionNode("loop", core.ActionRevise, core.ActionRevise, core.ActionEnd)
	node.AddSuccessor(node, core.ActionRevise)

	flow := core.NewFlow[testState](node, nil)
	action := flow.Run(context.Background(), &testState{})

	if action != core.ActionEnd {
		t.Errorf("expected ActionEnd, got %q", action)
	}
	if impl.runs != 3 {
		t.Errorf("expected 3 runs through the cycle, got %d", impl.runs)
	}
}

func TestFlow_Run_FlowLevelSuccessor(t *testing.T) {
	first, _ := newActionNode("first", core.ActionContinue)
	second, secondImpl := newActionNode("second", core.ActionEnd)

	// No node-level successor; the flow-level one should catch the action.
	flow := core.NewFlow[testState](first, nil)
	flow.AddSuccessor(second, core.ActionContinue)
	flow.Run(context.Background(), &testState{})

	if secondImpl.runs != 1 {
		t.Errorf("expected flow-level successor to run, got %d runs", secondImpl.runs)
	}
}

func TestFlow_Run_IterationCapAbortsCycles(t *testing.T) {
	// A node that always routes back to itself can never terminate; the
	// flow must abort with ActionFailure instead of spinning forever.
	node, _ := newActionNode("spin", core.ActionRevise)
	node.AddSuccessor(node, core.ActionRevise)

	flow := core.NewFlow[testState](node, nil)
	action := flow.Run(context.Background(), &testState{})

	if action != core.ActionFailure {
		t.Errorf("expected ActionFailure from iteration cap, got %q", action)
	}
}

func TestFlow_Run_NoStartNode(t *testing.T) {
	flow := core.NewFlow[testState](nil, nil)
	if action := flow.Run(context.Background(), &testState{}); action != core.ActionFailure {
		t.Errorf("expected ActionFailure, got %q", action)
	}
}

func TestFlow_Run_CancelledContext(t *testing.T) {
	node, impl := newActionNode("first", core.ActionContinue)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flow := core.NewFlow[testState](node, nil)
	if action := flow.Run(ctx, &testState{}); action != core.ActionFailure {
		t.Errorf("expected ActionFailure on cancelled context, got %q", action)
	}
	if impl.runs != 0 {
		t.Errorf("expected no node runs after cancellation, got %d", impl.runs)
	}
}
