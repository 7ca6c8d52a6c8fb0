package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/retry"
	"github.com/contentforge/content-forge/internal/schema"
)

// generateLandingPage produces the product landing page artifact.
func generateLandingPage(ctx context.Context, provider llm.Provider, job pageJob) (*schema.LandingPage, error) {
	if job.Product == nil {
		return nil, retry.MarkPermanent(fmt.Errorf("no product available"))
	}

	page, err := generate[schema.LandingPage](ctx, provider, string(KindLanding),
		landingSystemPrompt(job.Tone),
		landingUserPrompt(job.Product))
	if err != nil {
		return nil, err
	}

	// The service occasionally omits the price display; it is derivable
	// from the product record, so fill it rather than reject.
	if page.PriceDisplay == "" {
		page.PriceDisplay = fmt.Sprintf("%.2f %s", job.Product.Price, job.Product.Currency)
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}
	return &page, nil
}
