package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/retry"
	"github.com/contentforge/content-forge/internal/schema"
)

// Policies carries the per-stage retry budgets. Budgets differ by cost and
// criticality: question generation is the most failure-prone (count and
// diversity self-checks), while the reviewer is kept low to bound the total
// latency of the revision loop.
type Policies struct {
	Parse     retry.Policy
	Questions retry.Policy
	Pages     retry.Policy
	Reviewer  retry.Policy
}

// DefaultPolicies returns the standard per-stage budgets.
func DefaultPolicies() Policies {
	reviewer := retry.DefaultPolicy(2)
	reviewer.InitialDelay = 500 * time.Millisecond
	return Policies{
		Parse:     retry.DefaultPolicy(3),
		Questions: retry.DefaultPolicy(5),
		Pages:     retry.DefaultPolicy(3),
		Reviewer:  reviewer,
	}
}

// BuildFlow assembles the content pipeline graph:
//
//	parse ──(continue)──► questions ──► pages (parallel fan-out/fan-in) ──► review
//	  │ (end: no product)                      ▲                             │
//	  └──────────► END                         └────────(revise)────────────┘
//
// The reviewer ends the flow on approval or once the revision cap is hit.
func BuildFlow(provider llm.Provider, log *slog.Logger, pol Policies) core.Workflow[State] {
	parse := core.NewNode[State, parsePrep, parseResult](
		"parse", NewParseNode(log), pol.Parse, log)
	questions := core.NewNode[State, questionPrep, questionResult](
		"questions", NewQuestionNode(provider), pol.Questions, log)
	pages := core.NewNode[State, pageJob, pageResult](
		"pages", NewPagesNode(provider), pol.Pages, log).Parallel()
	review := core.NewNode[State, reviewPrep, schema.ReviewVerdict](
		"review", NewReviewNode(provider), pol.Reviewer, log)

	parse.AddSuccessor(questions, core.ActionContinue)
	questions.AddSuccessor(pages, core.ActionContinue)
	pages.AddSuccessor(review, core.ActionContinue)
	review.AddSuccessor(questions, core.ActionRevise)

	return core.NewFlow[State](parse, log)
}

// Execute runs the pipeline to completion with the default retry policies.
// Stage failures are contained in state (null artifacts, LastError); the
// returned error is non-nil only for engine-level configuration problems or
// context cancellation.
func Execute(ctx context.Context, provider llm.Provider, state *State) error {
	flow := BuildFlow(provider, state.log(), DefaultPolicies())
	if action := flow.Run(ctx, state); action == core.ActionFailure {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fmt.Errorf("pipeline aborted: misconfigured workflow graph")
	}
	return nil
}
