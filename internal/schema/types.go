// Package schema defines the typed artifacts flowing through the content
// pipeline. Every type validates itself on construction: shape bounds first
// (presence, length, range), then the cross-field quality rules from the
// validate package. Artifacts are immutable values after validation —
// revision replaces them wholesale.
package schema

import (
	"log/slog"

	"github.com/contentforge/content-forge/internal/util"
	"github.com/contentforge/content-forge/internal/validate"
)

// ProductRecord is the normalized product created once by the parse stage
// and read-only afterwards.
type ProductRecord struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Category    string            `json:"category" yaml:"category"`
	Price       float64           `json:"price" yaml:"price"`
	Currency    string            `json:"currency" yaml:"currency"`
	Features    []string          `json:"features" yaml:"features"`
	Specs       map[string]string `json:"specs" yaml:"specs"`
	Description string            `json:"description" yaml:"description"`
	Competitors []map[string]any  `json:"competitors" yaml:"competitors"`
}

// Validate applies shape then quality checks. Price and currency warnings
// (not failures) are logged through log, which may be nil.
func (p *ProductRecord) Validate(log *slog.Logger) error {
	// Shape tier.
	if len(p.Name) < 2 {
		return validate.Shapef("product name too short: %q", p.Name)
	}
	if len(p.Category) < 2 {
		return validate.Shapef("product category too short: %q", p.Category)
	}
	if len(p.Features) < 3 {
		return validate.Shapef("product needs at least 3 features, got %d", len(p.Features))
	}
	if len(util.CollapseSpace(p.Description)) < 50 {
		return validate.Shapef("product description too short (%d chars, minimum 50)", len(p.Description))
	}
	if err := validate.CheckCurrency(log, p.Currency); err != nil {
		return err
	}
	if err := validate.CheckPrice(log, p.Price, p.Currency); err != nil {
		return err
	}

	// Quality tier.
	if err := validate.CheckUnique("features", p.Features); err != nil {
		return err
	}
	for i, f := range p.Features {
		if len(f) < 3 {
			return validate.Qualityf("feature #%d is too short: %q", i+1, f)
		}
		if err := validate.CheckProvenance("feature", f); err != nil {
			return err
		}
	}
	if err := validate.CheckPlaceholders("product description", p.Description); err != nil {
		return err
	}
	return validate.CheckProvenance("product description", p.Description)
}

// QuestionItem is a single generated customer question. The category set is
// open: Usage, Safety, Purchase, Informational, and whatever else the
// generator produces.
type QuestionItem struct {
	Category string `json:"category" yaml:"category"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Validate applies shape then quality checks to one question.
func (q *QuestionItem) Validate() error {
	if q.Category == "" {
		return validate.Shapef("question category is empty")
	}
	if len(q.Question) < 5 {
		return validate.Shapef("question text too short: %q", q.Question)
	}
	if len(q.Answer) < 20 {
		return validate.Shapef("answer too short (%d chars, minimum 20) for question %q",
			len(q.Answer), util.TruncateRunes(q.Question, 40))
	}
	return validate.CheckProvenance("answer", q.Answer)
}

// QuestionList is the wire shape the generation service returns for the
// question stage.
type QuestionList struct {
	Questions []QuestionItem `json:"questions" yaml:"questions"`
}

// DistinctCategories counts unique categories across a question set.
func DistinctCategories(items []QuestionItem) int {
	seen := make(map[string]bool, len(items))
	for _, q := range items {
		seen[q.Category] = true
	}
	return len(seen)
}

// MinFAQEntries is the minimum number of questions for both the question
// stage's self-check and the FAQ page itself.
const MinFAQEntries = 15

// MinQuestionCategories is the minimum category diversity for a question set.
const MinQuestionCategories = 3

// FAQPage is the generated FAQ artifact.
type FAQPage struct {
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	FAQs        []QuestionItem `json:"faqs" yaml:"faqs"`
	Disclaimer  string         `json:"disclaimer" yaml:"disclaimer"`
}

// Validate applies shape then quality checks to the whole page.
func (f *FAQPage) Validate() error {
	if err := checkHeadline("FAQ title", f.Title); err != nil {
		return err
	}
	if len(f.Description) < 10 {
		return validate.Shapef("FAQ description too short: %q", f.Description)
	}
	if len(f.FAQs) < MinFAQEntries {
		return validate.Shapef("FAQ page must contain at least %d questions, got %d", MinFAQEntries, len(f.FAQs))
	}
	if f.Disclaimer == "" {
		return validate.Shapef("FAQ disclaimer is empty")
	}
	for i := range f.FAQs {
		if err := f.FAQs[i].Validate(); err != nil {
			return validate.Qualityf("FAQ #%d: %v", i+1, err)
		}
	}
	if n := DistinctCategories(f.FAQs); n < MinQuestionCategories {
		return validate.Qualityf("FAQ page should span at least %d categories, got %d", MinQuestionCategories, n)
	}
	return nil
}

// LandingPage is the generated product landing page artifact.
type LandingPage struct {
	HeroHeadline      string            `json:"hero_headline" yaml:"hero_headline"`
	HeroSubheadline   string            `json:"hero_subheadline" yaml:"hero_subheadline"`
	PriceDisplay      string            `json:"price_display" yaml:"price_display"`
	Features          []string          `json:"features_list" yaml:"features_list"`
	Benefits          []string          `json:"benefits_list" yaml:"benefits_list"`
	SpecsDisplay      map[string]string `json:"specs_display" yaml:"specs_display"`
	UsageInstructions string            `json:"usage_instructions" yaml:"usage_instructions"`
	CTAText           string            `json:"cta_text" yaml:"cta_text"`
}

// Validate applies shape then quality checks.
func (l *LandingPage) Validate() error {
	if err := checkHeadline("hero headline", l.HeroHeadline); err != nil {
		return err
	}
	if l.HeroSubheadline == "" {
		return validate.Shapef("hero subheadline is empty")
	}
	if l.PriceDisplay == "" {
		return validate.Shapef("price display is empty")
	}
	if len(l.Features) < 3 {
		return validate.Shapef("landing page needs at least 3 features, got %d", len(l.Features))
	}
	if len(l.Benefits) < 3 {
		return validate.Shapef("landing page needs at least 3 benefits, got %d", len(l.Benefits))
	}
	if len(l.UsageInstructions) < 10 {
		return validate.Shapef("usage instructions too short: %q", l.UsageInstructions)
	}
	if l.CTAText == "" {
		return validate.Shapef("call-to-action text is empty")
	}
	if err := validate.CheckUnique("landing features", l.Features); err != nil {
		return err
	}
	if err := validate.CheckUnique("landing benefits", l.Benefits); err != nil {
		return err
	}
	for _, text := range []struct{ field, value string }{
		{"hero subheadline", l.HeroSubheadline},
		{"usage instructions", l.UsageInstructions},
	} {
		if err := validate.CheckProvenance(text.field, text.value); err != nil {
			return err
		}
		if err := validate.CheckPlaceholders(text.field, text.value); err != nil {
			return err
		}
	}
	return nil
}

// ComparisonRow is one feature comparison between the product and a
// competitor.
type ComparisonRow struct {
	Feature         string `json:"feature" yaml:"feature"`
	ProductValue    string `json:"product_value" yaml:"product_value"`
	CompetitorValue string `json:"competitor_value" yaml:"competitor_value"`
}

// ComparisonPage is the generated competitor comparison artifact.
type ComparisonPage struct {
	Title   string          `json:"title" yaml:"title"`
	Table   []ComparisonRow `json:"comparison_table" yaml:"comparison_table"`
	Summary string          `json:"summary" yaml:"summary"`
}

// Validate applies shape then quality checks.
func (c *ComparisonPage) Validate() error {
	if len(c.Title) < 5 {
		return validate.Shapef("comparison title too short: %q", c.Title)
	}
	if len(c.Table) < 2 {
		return validate.Shapef("comparison table must have at least 2 rows, got %d", len(c.Table))
	}
	if len(c.Summary) < 10 {
		return validate.Shapef("comparison summary too short: %q", c.Summary)
	}
	names := make([]string, len(c.Table))
	for i, row := range c.Table {
		if row.ProductValue == "" || row.CompetitorValue == "" {
			return validate.Qualityf("comparison row #%d has empty values", i+1)
		}
		names[i] = row.Feature
	}
	if err := validate.CheckUnique("comparison features", names); err != nil {
		return err
	}
	return validate.CheckProvenance("comparison summary", c.Summary)
}

// ReviewVerdict is the reviewer stage's accept/reject decision.
type ReviewVerdict struct {
	Approved bool   `json:"approved" yaml:"approved"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// Validate ensures a rejection always carries feedback.
func (v *ReviewVerdict) Validate() error {
	if !v.Approved && v.Feedback == "" {
		return validate.Shapef("rejected verdict must carry feedback")
	}
	return nil
}

// checkHeadline enforces the shared 10-100 character headline bound plus
// provenance and placeholder rules.
func checkHeadline(field, text string) error {
	n := len(text)
	if n < 10 {
		return validate.Shapef("%s too short (%d chars, minimum 10)", field, n)
	}
	if n > 100 {
		return validate.Shapef("%s too long (%d chars, maximum 100)", field, n)
	}
	if err := validate.CheckProvenance(field, text); err != nil {
		return err
	}
	return validate.CheckPlaceholders(field, text)
}
