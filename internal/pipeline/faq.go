package pipeline

import (
	"context"
	"fmt"

	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/retry"
	"github.com/contentforge/content-forge/internal/schema"
)

// generateFAQPage turns the question set into a structured FAQ page.
// Validation failures come back permanent: regenerating from an unchanged
// request is the revision loop's job, not the retry wrapper's.
func generateFAQPage(ctx context.Context, provider llm.Provider, job pageJob) (*schema.FAQPage, error) {
	if job.Product == nil {
		return nil, retry.MarkPermanent(fmt.Errorf("no product available"))
	}
	if len(job.Questions) == 0 {
		return nil, retry.MarkPermanent(fmt.Errorf("no question set available"))
	}

	page, err := generate[schema.FAQPage](ctx, provider, string(KindFAQ),
		faqSystemPrompt(job.Tone),
		faqUserPrompt(job.Product, job.Questions))
	if err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return &page, nil
}
