package pipeline

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/contentforge/content-forge/internal/schema"
)

// Prompt builders for the generation stages. Every prompt requests exactly
// one fenced ```yaml block so responses decode through a single path.

const yamlFenceInstruction = "Respond with exactly one fenced ```yaml code block and nothing else."

func questionsSystemPrompt(tone string) string {
	return fmt.Sprintf(`You are a Product Content Strategist generating customer questions for a product.

Tone: %s

Requirements:
- Generate at least %d question/answer pairs.
- Cover at least %d distinct categories from: Usage, Safety, Purchase, Informational, Comparison.
- Every answer must be at least 20 characters and written from the product data alone.
- Never cite external searches, websites, or sources.

%s
The YAML must have this shape:
questions:
  - category: Usage
    question: "..."
    answer: "..."`, tone, schema.MinFAQEntries, schema.MinQuestionCategories, yamlFenceInstruction)
}

func questionsUserPrompt(product *schema.ProductRecord, feedback string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s\nCategory: %s\nDescription: %s\nFeatures: %s\n",
		product.Name, product.Category, product.Description, strings.Join(product.Features, ", "))
	if len(product.Specs) > 0 {
		b.WriteString("Specs:\n")
		for k, v := range product.Specs {
			fmt.Fprintf(&b, "  %s: %s\n", k, v)
		}
	}
	if feedback != "" {
		fmt.Fprintf(&b, "\nA previous attempt was rejected by review. Address this feedback:\n%s\n", feedback)
	}
	return b.String()
}

func faqSystemPrompt(tone string) string {
	return fmt.Sprintf(`You are a Content Strategist. Create a structured FAQ page from the provided questions.

Tone: %s

Guidelines:
- Title should be SEO-friendly, between 10 and 100 characters.
- Keep all provided questions; organize them logically.
- Ensure answers are concise and reassuring.
- Add a standard disclaimer at the end.

%s
The YAML must have the fields: title, description, faqs (list of category/question/answer), disclaimer.`, tone, yamlFenceInstruction)
}

func faqUserPrompt(product *schema.ProductRecord, questions []schema.QuestionItem) string {
	qs, _ := yaml.Marshal(questions)
	return fmt.Sprintf("Product: %s\nQuestions:\n%s", product.Name, string(qs))
}

func landingSystemPrompt(tone string) string {
	return fmt.Sprintf(`You are a Copywriting Expert. Create a high-converting product landing page.

Tone: %s

Tasks:
1. Write a catchy hero headline (10-100 characters) and subheadline.
2. Convert technical features into at least 3 distinct consumer benefits.
3. Format specifications clearly.
4. Write clear usage instructions.
5. Create a compelling call to action.

%s
The YAML must have the fields: hero_headline, hero_subheadline, price_display, features_list, benefits_list, specs_display (mapping), usage_instructions, cta_text.`, tone, yamlFenceInstruction)
}

func landingUserPrompt(product *schema.ProductRecord) string {
	specs, _ := yaml.Marshal(product.Specs)
	return fmt.Sprintf("Product: %s\nDescription: %s\nPrice: %.2f %s\nFeatures: %s\nSpecs:\n%s",
		product.Name, product.Description, product.Price, product.Currency,
		strings.Join(product.Features, ", "), string(specs))
}

func comparisonSystemPrompt(tone string) string {
	return fmt.Sprintf(`You are a Market Analyst. Create a competitor comparison page.

Tone: %s

Compare the main product against its competitors on price, key features,
ingredients or materials, and primary benefit. Use at least 2 rows with
unique feature names and non-empty values for both sides. Write a summary
explaining why the main product is the superior choice.

%s
The YAML must have the fields: title, comparison_table (list of feature/product_value/competitor_value), summary.`, tone, yamlFenceInstruction)
}

func comparisonUserPrompt(product *schema.ProductRecord) string {
	prod, _ := yaml.Marshal(product)
	comps, _ := yaml.Marshal(product.Competitors)
	return fmt.Sprintf("Main product:\n%s\nCompetitors:\n%s", string(prod), string(comps))
}

func reviewerSystemPrompt() string {
	return fmt.Sprintf(`You are a Quality Assurance Editor. Review the generated content with strict criteria.

CRITICAL requirements:
1. The FAQ page MUST have at least %d high-quality, diverse questions covering several categories.
2. The landing page must have a compelling hero section with a clear value proposition.
3. The comparison page must compare against at least one competitor with meaningful data.
4. All content must be generated from the product data - no external search results or citations.
5. Answers must be comprehensive (minimum 20 characters each).
6. No placeholder text, generic responses, or low-quality content.

If the content passes, set approved to true. If not, provide specific,
actionable feedback for improvement.

%s
The YAML must have the fields: approved (bool), feedback (string).`, schema.MinFAQEntries, yamlFenceInstruction)
}

func reviewerUserPrompt(faq *schema.FAQPage, landing *schema.LandingPage, comparison *schema.ComparisonPage) string {
	render := func(b *strings.Builder, name string, v any, present bool) {
		if !present {
			fmt.Fprintf(b, "%s: (not generated)\n", name)
			return
		}
		out, err := yaml.Marshal(v)
		if err != nil {
			fmt.Fprintf(b, "%s: (unrenderable)\n", name)
			return
		}
		fmt.Fprintf(b, "%s:\n%s", name, string(out))
	}
	var b strings.Builder
	render(&b, "FAQ page", faq, faq != nil)
	render(&b, "Landing page", landing, landing != nil)
	render(&b, "Comparison page", comparison, comparison != nil)
	return b.String()
}
