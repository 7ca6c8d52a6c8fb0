package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/schema"
	"github.com/contentforge/content-forge/internal/util"
)

// QuestionNode generates the customer question set feeding the FAQ page.
// It self-validates minimum count and category diversity before returning
// success: an under-delivering response is a retryable failure that burns
// the stage's retry budget, not a warning.
type QuestionNode struct {
	provider llm.Provider
}

func NewQuestionNode(provider llm.Provider) *QuestionNode {
	return &QuestionNode{provider: provider}
}

type questionPrep struct {
	Product  *schema.ProductRecord
	Tone     string
	Feedback string // unresolved review feedback from the previous cycle
}

type questionResult struct {
	Items []schema.QuestionItem
	Err   error
}

func (n *QuestionNode) Prep(state *State) []questionPrep {
	return []questionPrep{{
		Product:  state.Product,
		Tone:     state.Tone,
		Feedback: state.ReviewFeedback,
	}}
}

func (n *QuestionNode) Exec(ctx context.Context, prep questionPrep) (questionResult, error) {
	list, err := generate[schema.QuestionList](ctx, n.provider, "questions",
		questionsSystemPrompt(prep.Tone),
		questionsUserPrompt(prep.Product, prep.Feedback))
	if err != nil {
		return questionResult{}, err
	}

	// Self-check. Deliberately returned as plain errors (never wrapping the
	// validation type) so the retry wrapper treats an under-delivering
	// service response as transient and requests a fresh one.
	items := list.Questions
	for i := range items {
		if verr := items[i].Validate(); verr != nil {
			return questionResult{}, fmt.Errorf("question #%d rejected: %s",
				i+1, util.TruncateRunes(verr.Error(), 120))
		}
	}
	if len(items) < schema.MinFAQEntries {
		return questionResult{}, fmt.Errorf("question set has %d items, need at least %d",
			len(items), schema.MinFAQEntries)
	}
	if n := schema.DistinctCategories(items); n < schema.MinQuestionCategories {
		return questionResult{}, fmt.Errorf("question set spans %d categories, need at least %d",
			n, schema.MinQuestionCategories)
	}

	return questionResult{Items: items}, nil
}

func (n *QuestionNode) ExecFallback(err error) questionResult {
	return questionResult{Err: err}
}

func (n *QuestionNode) Post(state *State, _ []questionPrep, results ...questionResult) core.Action {
	if len(results) == 0 || results[0].Err != nil {
		state.Questions = nil
		if len(results) > 0 {
			state.setError(fmt.Sprintf("question generation failed: %v", results[0].Err))
		}
		state.log().Warn("question generation failed, pages will degrade", "error", state.LastError)
		return core.ActionContinue
	}

	state.Questions = results[0].Items
	state.log().Info("questions generated",
		"count", len(state.Questions),
		"categories", schema.DistinctCategories(state.Questions))
	return core.ActionContinue
}
