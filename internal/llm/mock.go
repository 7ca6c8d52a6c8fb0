package llm

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CallFunc adapts a plain function to the Provider interface. Tests use it
// to script service behavior without a transport.
type CallFunc func(ctx context.Context, messages []Message) (Message, error)

// CallLLM implements Provider.
func (f CallFunc) CallLLM(ctx context.Context, messages []Message) (Message, error) {
	return f(ctx, messages)
}

// Mock is a deterministic offline provider. It inspects the system prompt to
// figure out which artifact is being requested and answers with a canned,
// schema-valid fenced YAML block. Selectable with `forge --offline`, so the
// whole pipeline runs end-to-end without an API key.
type Mock struct{}

// CallLLM implements Provider with canned responses.
func (Mock) CallLLM(_ context.Context, messages []Message) (Message, error) {
	if len(messages) == 0 {
		return Message{}, &ServiceError{Op: "mock", Err: fmt.Errorf("no messages to send")}
	}
	system := messages[0].Content

	var payload any
	switch {
	case strings.Contains(system, "customer questions"):
		payload = map[string]any{"questions": mockQuestions()}
	case strings.Contains(system, "FAQ page"):
		payload = map[string]any{
			"title":       "GlowBoost Serum: Your Questions Answered",
			"description": "Everything customers ask about GlowBoost, answered in one place.",
			"faqs":        mockQuestions(),
			"disclaimer":  "Product specifications and prices are subject to change. Please verify with the manufacturer.",
		}
	case strings.Contains(system, "landing page"):
		payload = map[string]any{
			"hero_headline":    "Glow Brighter Every Single Day",
			"hero_subheadline": "A daily serum that brightens, hydrates, and protects.",
			"price_display":    "49.99 USD",
			"features_list":    []string{"Vitamin C", "Hyaluronic Acid", "SPF 30"},
			"benefits_list": []string{
				"Brightens and evens skin tone",
				"Deeply hydrates and plumps",
				"Protects against UV damage",
			},
			"specs_display":      map[string]string{"Volume": "50ml"},
			"usage_instructions": "Apply two pumps to clean skin every morning before sunscreen.",
			"cta_text":           "Get Your Glow",
		}
	case strings.Contains(system, "comparison page"):
		payload = map[string]any{
			"title": "GlowBoost vs. the Competition",
			"comparison_table": []map[string]string{
				{"feature": "Price", "product_value": "49.99 USD", "competitor_value": "39.99 USD"},
				{"feature": "Key Actives", "product_value": "Vitamin C + SPF 30", "competitor_value": "Vitamin C only"},
				{"feature": "Hydration", "product_value": "Hyaluronic acid base", "competitor_value": "Glycerin base"},
			},
			"summary": "GlowBoost bundles brightening, hydration, and sun protection in one step, which the competitor splits across two products.",
		}
	case strings.Contains(system, "Quality Assurance Editor"):
		payload = map[string]any{"approved": true, "feedback": ""}
	default:
		return Message{}, &ServiceError{Op: "mock", Err: fmt.Errorf("unrecognized request")}
	}

	out, err := yaml.Marshal(payload)
	if err != nil {
		return Message{}, &ServiceError{Op: "mock", Err: err}
	}
	return Message{
		Role:    RoleAssistant,
		Content: "```yaml\n" + string(out) + "```\n",
	}, nil
}

// mockQuestions returns 16 questions over 4 categories, enough to satisfy
// the question stage's count and diversity self-checks.
func mockQuestions() []map[string]string {
	base := []map[string]string{
		{"category": "Usage", "question": "How do I use GlowBoost?", "answer": "Apply two pumps to clean, dry skin every morning before sunscreen or makeup."},
		{"category": "Usage", "question": "Can I use it at night?", "answer": "Yes, GlowBoost works morning and night, though the SPF benefit matters most during the day."},
		{"category": "Usage", "question": "How does Vitamin C help?", "answer": "Vitamin C brightens the complexion and helps even out skin tone with daily use."},
		{"category": "Usage", "question": "How does Hyaluronic Acid help?", "answer": "Hyaluronic Acid draws moisture into the skin, plumping fine lines and keeping skin hydrated."},
		{"category": "Safety", "question": "Is GlowBoost safe for daily use?", "answer": "Yes, it is dermatologically tested and formulated for daily application on all skin types."},
		{"category": "Safety", "question": "Are there any side effects?", "answer": "No common side effects have been reported. A patch test is recommended for sensitive skin."},
		{"category": "Safety", "question": "Is it safe during pregnancy?", "answer": "Please consult your healthcare provider before adding new skincare products during pregnancy."},
		{"category": "Safety", "question": "Is it suitable for sensitive skin?", "answer": "The formula is gentle and fragrance-free, making it a good fit for most sensitive skin."},
		{"category": "Purchase", "question": "Where can I buy GlowBoost?", "answer": "GlowBoost is available on our official website and through select retail partners."},
		{"category": "Purchase", "question": "What is the return policy?", "answer": "We offer a 30-day money-back guarantee if you are not satisfied with your purchase."},
		{"category": "Purchase", "question": "Do you ship internationally?", "answer": "Yes, we currently ship to over 50 countries worldwide with tracked delivery."},
		{"category": "Purchase", "question": "Are there bundle discounts?", "answer": "Yes, multi-bottle bundles are discounted at checkout during most of the year."},
		{"category": "Informational", "question": "What is the volume of GlowBoost?", "answer": "Each bottle contains 50ml of serum, roughly a two-month supply at normal usage."},
		{"category": "Informational", "question": "Is GlowBoost vegan?", "answer": "Yes, the formula is vegan and is never tested on animals at any stage."},
		{"category": "Informational", "question": "Does it contain fragrance?", "answer": "No, GlowBoost is fragrance-free to minimize the risk of irritation."},
		{"category": "Informational", "question": "How should I store it?", "answer": "Store the bottle away from direct sunlight and keep the cap tightly closed."},
	}
	return base
}
