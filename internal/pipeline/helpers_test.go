package pipeline

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/contentforge/content-forge/internal/llm"
	"github.com/contentforge/content-forge/internal/retry"
	"github.com/contentforge/content-forge/internal/schema"
)

// fastPolicy is a retry budget with no delays, for tests that exercise
// exhaustion without sleeping.
func fastPolicy(maxRetries int) retry.Policy {
	return retry.Policy{MaxRetries: maxRetries}
}

func testProduct() *schema.ProductRecord {
	return &schema.ProductRecord{
		ID:          "SKU-1",
		Name:        "GlowBoost",
		Category:    "Skincare",
		Price:       49.99,
		Currency:    "USD",
		Features:    []string{"Vitamin C", "Hyaluronic Acid", "SPF 30"},
		Specs:       map[string]string{"volume": "50ml"},
		Description: "A daily brightening serum that hydrates deeply and protects skin from UV damage.",
		Competitors: []map[string]any{{"name": "Comp B", "price": 39.99}},
	}
}

func testQuestions(n int) []schema.QuestionItem {
	categories := []string{"Usage", "Safety", "Purchase", "Informational"}
	items := make([]schema.QuestionItem, n)
	for i := range items {
		items[i] = schema.QuestionItem{
			Category: categories[i%len(categories)],
			Question: fmt.Sprintf("What about aspect %d of the product?", i+1),
			Answer:   fmt.Sprintf("A complete and reassuring answer about aspect %d of the product.", i+1),
		}
	}
	return items
}

func testFAQPage(n int) *schema.FAQPage {
	return &schema.FAQPage{
		Title:       "GlowBoost: Your Questions Answered",
		Description: "Everything customers ask about GlowBoost.",
		FAQs:        testQuestions(n),
		Disclaimer:  "Specifications are subject to change.",
	}
}

func testLandingPage() *schema.LandingPage {
	return &schema.LandingPage{
		HeroHeadline:      "Glow Brighter Every Day",
		HeroSubheadline:   "A serum that brightens, hydrates, and protects.",
		PriceDisplay:      "49.99 USD",
		Features:          []string{"Vitamin C", "Hyaluronic Acid", "SPF 30"},
		Benefits:          []string{"Brightens skin tone", "Deep hydration", "UV protection"},
		SpecsDisplay:      map[string]string{"Volume": "50ml"},
		UsageInstructions: "Apply two pumps every morning.",
		CTAText:           "Buy Now",
	}
}

func testComparisonPage() *schema.ComparisonPage {
	return &schema.ComparisonPage{
		Title: "GlowBoost vs. the Competition",
		Table: []schema.ComparisonRow{
			{Feature: "Price", ProductValue: "49.99 USD", CompetitorValue: "39.99 USD"},
			{Feature: "SPF", ProductValue: "SPF 30", CompetitorValue: "None"},
		},
		Summary: "GlowBoost bundles brightening and sun protection in one step.",
	}
}

// yamlResponse marshals v into the fenced block shape the decoder expects.
func yamlResponse(t *testing.T, v any) llm.Message {
	t.Helper()
	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return llm.Message{Role: llm.RoleAssistant, Content: "```yaml\n" + string(out) + "```"}
}

// countingProvider wraps a CallFunc and counts calls, goroutine-safe because
// the page fan-out calls it concurrently.
type countingProvider struct {
	mu    sync.Mutex
	calls int
	fn    func(ctx context.Context, messages []llm.Message) (llm.Message, error)
}

func (p *countingProvider) CallLLM(ctx context.Context, messages []llm.Message) (llm.Message, error) {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return p.fn(ctx, messages)
}

func (p *countingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// systemPrompt extracts the system message from a request.
func systemPrompt(messages []llm.Message) string {
	for _, m := range messages {
		if m.Role == llm.RoleSystem {
			return m.Content
		}
	}
	return ""
}
