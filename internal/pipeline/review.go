package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/schema"
	"github.com/contentforge/content-forge/internal/validate"
)

// syntheticRejection is the feedback used when the reviewer itself keeps
// failing. Treating reviewer exhaustion as a rejection keeps the revision
// loop making progress toward its cap instead of stalling.
const syntheticRejection = "reviewer error, retry"

// ReviewNode is the accept/reject state machine closing the revision loop.
//
// A cheap heuristic gate runs first: an undersized FAQ page or an answer
// with external-provenance phrasing is rejected without spending a service
// call. Everything else is delegated to the generation service, which
// returns a structured verdict over all three artifacts.
type ReviewNode struct {
	provider llm.Provider
}

func NewReviewNode(provider llm.Provider) *ReviewNode {
	return &ReviewNode{provider: provider}
}

type reviewPrep struct {
	FAQ          *schema.FAQPage
	Landing      *schema.LandingPage
	Comparison   *schema.ComparisonPage
	GateFeedback string // non-empty = heuristic gate already rejected
}

func (n *ReviewNode) Prep(state *State) []reviewPrep {
	prep := reviewPrep{
		FAQ:        state.FAQPage,
		Landing:    state.LandingPage,
		Comparison: state.ComparisonPage,
	}
	prep.GateFeedback = heuristicGate(state.FAQPage)
	return []reviewPrep{prep}
}

// heuristicGate returns rejection feedback when the FAQ page fails the
// cheap checks, or "" to proceed to the service review.
func heuristicGate(faq *schema.FAQPage) string {
	if faq == nil {
		return ""
	}
	if len(faq.FAQs) < schema.MinFAQEntries {
		return fmt.Sprintf("FAQ page has only %d questions; generate at least %d high-quality FAQs",
			len(faq.FAQs), schema.MinFAQEntries)
	}
	for i, item := range faq.FAQs {
		if validate.HasProvenance(item.Answer) {
			return fmt.Sprintf("FAQ #%d appears to contain external search content; all content must be generated from the product data only", i+1)
		}
	}
	return ""
}

func (n *ReviewNode) Exec(ctx context.Context, prep reviewPrep) (schema.ReviewVerdict, error) {
	if prep.GateFeedback != "" {
		return schema.ReviewVerdict{Approved: false, Feedback: prep.GateFeedback}, nil
	}

	verdict, err := generate[schema.ReviewVerdict](ctx, n.provider, "reviewer",
		reviewerSystemPrompt(),
		reviewerUserPrompt(prep.FAQ, prep.Landing, prep.Comparison))
	if err != nil {
		return schema.ReviewVerdict{}, err
	}
	if err := verdict.Validate(); err != nil {
		// A rejection without feedback is a malformed service response,
		// worth another attempt rather than an unguided revision cycle.
		return schema.ReviewVerdict{}, &llm.ServiceError{Op: "reviewer", Err: err}
	}
	return verdict, nil
}

// ExecFallback converts reviewer retry exhaustion into a synthetic
// rejection so the loop still advances.
func (n *ReviewNode) ExecFallback(_ error) schema.ReviewVerdict {
	return schema.ReviewVerdict{Approved: false, Feedback: syntheticRejection}
}

func (n *ReviewNode) Post(state *State, _ []reviewPrep, results ...schema.ReviewVerdict) core.Action {
	if len(results) == 0 {
		return core.ActionEnd
	}
	verdict := results[0]

	if verdict.Approved {
		state.ReviewFeedback = ""
		state.log().Info("content approved by reviewer", "revisions", state.RevisionCount)
		return core.ActionEnd
	}

	state.RevisionCount++
	if state.RevisionCount >= MaxRevisions {
		state.ReviewFeedback = ""
		state.log().Warn("revision cap reached, accepting current artifacts",
			"revisions", state.RevisionCount,
			"feedback", verdict.Feedback)
		return core.ActionEnd
	}

	state.ReviewFeedback = verdict.Feedback
	state.log().Info("content rejected by reviewer, revising",
		"revision", state.RevisionCount,
		"feedback", verdict.Feedback)
	return core.ActionRevise
}
