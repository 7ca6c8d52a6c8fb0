package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/schema"
)

// ArtifactKind names one of the three fan-out page generators.
type ArtifactKind string

const (
	KindFAQ        ArtifactKind = "faq_page"
	KindLanding    ArtifactKind = "landing_page"
	KindComparison ArtifactKind = "comparison_page"
)

// PagesNode fans out to the three page generators. Prep snapshots the state
// as of the end of question generation into three independent jobs; Exec
// runs them (in parallel when the node is marked Parallel) with no shared
// mutable data; Post is the fan-in barrier that merges the disjoint artifact
// keys back into state.
//
// A failed branch leaves its artifact key nil and records the error without
// blocking the other branches or the join.
type PagesNode struct {
	provider llm.Provider
}

func NewPagesNode(provider llm.Provider) *PagesNode {
	return &PagesNode{provider: provider}
}

type pageJob struct {
	Kind      ArtifactKind
	Product   *schema.ProductRecord
	Questions []schema.QuestionItem
	Tone      string
}

type pageResult struct {
	FAQ        *schema.FAQPage
	Landing    *schema.LandingPage
	Comparison *schema.ComparisonPage
	Err        error
}

func (n *PagesNode) Prep(state *State) []pageJob {
	jobs := make([]pageJob, 0, 3)
	for _, kind := range []ArtifactKind{KindFAQ, KindLanding, KindComparison} {
		jobs = append(jobs, pageJob{
			Kind:      kind,
			Product:   state.Product,
			Questions: state.Questions,
			Tone:      state.Tone,
		})
	}
	return jobs
}

func (n *PagesNode) Exec(ctx context.Context, job pageJob) (pageResult, error) {
	switch job.Kind {
	case KindFAQ:
		page, err := generateFAQPage(ctx, n.provider, job)
		return pageResult{FAQ: page}, err
	case KindLanding:
		page, err := generateLandingPage(ctx, n.provider, job)
		return pageResult{Landing: page}, err
	case KindComparison:
		page, err := generateComparisonPage(ctx, n.provider, job)
		return pageResult{Comparison: page}, err
	}
	return pageResult{}, fmt.Errorf("unknown artifact kind %q", job.Kind)
}

func (n *PagesNode) ExecFallback(err error) pageResult {
	return pageResult{Err: err}
}

func (n *PagesNode) Post(state *State, jobs []pageJob, results ...pageResult) core.Action {
	for i, res := range results {
		kind := jobs[i].Kind
		if res.Err != nil {
			state.setError(fmt.Sprintf("%s generation failed: %v", kind, res.Err))
			state.log().Warn("page generation failed", "artifact", string(kind), "error", res.Err)
		}
		switch kind {
		case KindFAQ:
			state.FAQPage = res.FAQ
		case KindLanding:
			state.LandingPage = res.Landing
		case KindComparison:
			state.ComparisonPage = res.Comparison
		}
	}

	state.log().Info("page fan-in complete",
		"faq", state.FAQPage != nil,
		"landing", state.LandingPage != nil,
		"comparison", state.ComparisonPage != nil)
	return core.ActionContinue
}
