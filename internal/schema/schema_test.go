package schema_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/contentforge/content-forge/internal/schema"
)

func validProduct() *schema.ProductRecord {
	return &schema.ProductRecord{
		ID:          "123",
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

func validQuestions(n int) []schema.QuestionItem {
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

func validFAQPage() *schema.FAQPage {
	return &schema.FAQPage{
		Title:       "GlowBoost: Your Questions Answered",
		Description: "Everything customers ask about GlowBoost.",
		FAQs:        validQuestions(15),
		Disclaimer:  "Specifications are subject to change.",
	}
}

func validLandingPage() *schema.LandingPage {
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

func validComparisonPage() *schema.ComparisonPage {
	return &schema.ComparisonPage{
		Title: "GlowBoost vs. the Competition",
		Table: []schema.ComparisonRow{
			{Feature: "Price", ProductValue: "49.99 USD", CompetitorValue: "39.99 USD"},
			{Feature: "SPF", ProductValue: "SPF 30", CompetitorValue: "None"},
		},
		Summary: "GlowBoost bundles brightening and sun protection in one step.",
	}
}

func TestProductRecord_Validate(t *testing.T) {
	if err := validProduct().Validate(nil); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*schema.ProductRecord)
	}{
		{"short name", func(p *schema.ProductRecord) { p.Name = "X" }},
		{"too few features", func(p *schema.ProductRecord) { p.Features = p.Features[:2] }},
		{"duplicate features", func(p *schema.ProductRecord) { p.Features = []string{"SPF 30", "SPF 30", "Vitamin C"} }},
		{"short description", func(p *schema.ProductRecord) { p.Description = "too short" }},
		{"padded description", func(p *schema.ProductRecord) { p.Description = "short" + strings.Repeat(" \n", 60) }},
		{"placeholder description", func(p *schema.ProductRecord) {
			p.Description = "TODO write something compelling about this product before the launch deadline."
		}},
		{"provenance description", func(p *schema.ProductRecord) {
			p.Description = "According to a web search, this serum outperforms every rival on the market today."
		}},
		{"zero price", func(p *schema.ProductRecord) { p.Price = 0 }},
		{"bad currency", func(p *schema.ProductRecord) { p.Currency = "DOLLARS" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProduct()
			tc.mutate(p)
			if err := p.Validate(nil); err == nil {
				t.Error("expected rejection")
			}
		})
	}
}

func TestQuestionItem_Validate(t *testing.T) {
	q := schema.QuestionItem{
		Category: "Usage",
		Question: "How do I use it?",
		Answer:   "Apply two pumps to clean skin every morning.",
	}
	if err := q.Validate(); err != nil {
		t.Fatalf("valid question rejected: %v", err)
	}

	short := q
	short.Answer = "Yes."
	if err := short.Validate(); err == nil {
		t.Error("expected rejection for short answer")
	}

	sourced := q
	sourced.Answer = "Retrieved from the vendor knowledge base: apply twice daily."
	if err := sourced.Validate(); err == nil {
		t.Error("expected rejection for provenance phrasing")
	}
}

func TestFAQPage_Validate(t *testing.T) {
	if err := validFAQPage().Validate(); err != nil {
		t.Fatalf("valid FAQ page rejected: %v", err)
	}

	undersized := validFAQPage()
	undersized.FAQs = undersized.FAQs[:10]
	if err := undersized.Validate(); err == nil {
		t.Error("expected rejection below 15 questions")
	}

	narrow := validFAQPage()
	for i := range narrow.FAQs {
		narrow.FAQs[i].Category = "Usage"
	}
	if err := narrow.Validate(); err == nil {
		t.Error("expected rejection for low category diversity")
	}
}

func TestLandingPage_Validate(t *testing.T) {
	if err := validLandingPage().Validate(); err != nil {
		t.Fatalf("valid landing page rejected: %v", err)
	}

	longHeadline := validLandingPage()
	longHeadline.HeroHeadline = strings.Repeat("Glow ", 25)
	if err := longHeadline.Validate(); err == nil {
		t.Error("expected rejection for headline over 100 chars")
	}

	dupBenefits := validLandingPage()
	dupBenefits.Benefits = []string{"Hydration", "Hydration", "Protection"}
	if err := dupBenefits.Validate(); err == nil {
		t.Error("expected rejection for duplicate benefits")
	}
}

func TestComparisonPage_Validate(t *testing.T) {
	if err := validComparisonPage().Validate(); err != nil {
		t.Fatalf("valid comparison page rejected: %v", err)
	}

	oneRow := validComparisonPage()
	oneRow.Table = oneRow.Table[:1]
	if err := oneRow.Validate(); err == nil {
		t.Error("expected rejection below 2 rows")
	}

	dupFeature := validComparisonPage()
	dupFeature.Table[1].Feature = "Price"
	if err := dupFeature.Validate(); err == nil {
		t.Error("expected rejection for duplicate feature names")
	}

	empty := validComparisonPage()
	empty.Table[0].CompetitorValue = ""
	if err := empty.Validate(); err == nil {
		t.Error("expected rejection for empty values")
	}
}

func TestReviewVerdict_Validate(t *testing.T) {
	ok := schema.ReviewVerdict{Approved: true}
	if err := ok.Validate(); err != nil {
		t.Errorf("approval without feedback rejected: %v", err)
	}
	bad := schema.ReviewVerdict{Approved: false}
	if err := bad.Validate(); err == nil {
		t.Error("rejection without feedback should fail validation")
	}
}

// Validation is idempotent: a valid artifact stays valid on re-validation.
func TestValidate_Idempotent(t *testing.T) {
	p := validProduct()
	for i := 0; i < 2; i++ {
		if err := p.Validate(nil); err != nil {
			t.Fatalf("pass %d: %v", i+1, err)
		}
	}
	f := validFAQPage()
	for i := 0; i < 2; i++ {
		if err := f.Validate(); err != nil {
			t.Fatalf("pass %d: %v", i+1, err)
		}
	}
}

func TestDistinctCategories(t *testing.T) {
	if n := schema.DistinctCategories(validQuestions(8)); n != 4 {
		t.Errorf("expected 4 categories, got %d", n)
	}
	if n := schema.DistinctCategories(nil); n != 0 {
		t.Errorf("expected 0 categories, got %d", n)
	}
}
