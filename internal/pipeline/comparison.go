package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/retry"
	"github.com/contentforge/content-forge/internal/schema"
)

// generateComparisonPage produces the competitor comparison artifact.
// A product with no competitor data cannot be compared; that branch fails
// up front, leaving a null artifact — a valid partial-success outcome.
func generateComparisonPage(ctx context.Context, provider llm.Provider, job pageJob) (*schema.ComparisonPage, error) {
	if job.Product == nil {
		return nil, retry.MarkPermanent(fmt.Errorf("no product available"))
	}
	if len(job.Product.Competitors) == 0 {
		return nil, retry.MarkPermanent(fmt.Errorf("no competitor data available"))
	}

	page, err := generate[schema.ComparisonPage](ctx, provider, string(KindComparison),
		comparisonSystemPrompt(job.Tone),
		comparisonUserPrompt(job.Product))
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return &page, nil
}
