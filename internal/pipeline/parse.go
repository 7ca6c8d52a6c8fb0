package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/contentforge/content-forge/internal/core"
	"github.com/contentforge/content-forge/internal/schema"
)

// ParseNode normalizes the raw product mapping into a validated
// ProductRecord. It is the one stage whose failure is fatal to the run:
// nothing downstream can proceed without a product, so Post routes straight
// to termination when normalization fails.
//
// Parse is a pure transformation — it never calls the generation service.
type ParseNode struct {
	log *slog.Logger
}

func NewParseNode(log *slog.Logger) *ParseNode {
	return &ParseNode{log: log}
}

type parsePrep struct {
	Raw map[string]any
}

type parseResult struct {
	Product *schema.ProductRecord
	Err     error
}

func (n *ParseNode) Prep(state *State) []parsePrep {
	return []parsePrep{{Raw: state.RawInput}}
}

func (n *ParseNode) Exec(_ context.Context, prep parsePrep) (parseResult, error) {
	record, err := normalizeProduct(prep.Raw)
	if err != nil {
		return parseResult{}, err
	}
	if err := record.Validate(n.log); err != nil {
		return parseResult{}, err
	}
	return parseResult{Product: record}, nil
}

func (n *ParseNode) ExecFallback(err error) parseResult {
	return parseResult{Err: err}
}

func (n *ParseNode) Post(state *State, _ []parsePrep, results ...parseResult) core.Action {
	if len(results) == 0 || results[0].Product == nil {
		msg := "parse produced no product"
		if len(results) > 0 && results[0].Err != nil {
			msg = fmt.Sprintf("parse failed: %v", results[0].Err)
		}
		state.setError(msg)
		state.log().Error("unusable raw input, stopping pipeline", "error", msg)
		return core.ActionEnd
	}

	state.Product = results[0].Product
	state.log().Info("product parsed",
		"product", state.Product.Name,
		"features", len(state.Product.Features),
		"competitors", len(state.Product.Competitors))
	return core.ActionContinue
}

// normalizeProduct maps the tolerated raw-input key variants onto a
// ProductRecord. Price accepts both a flat number with a sibling currency
// key and the nested {amount, currency} form.
func normalizeProduct(raw map[string]any) (*schema.ProductRecord, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("raw input is empty")
	}

	record := &schema.ProductRecord{
		ID:          firstString(raw, "id", "productId"),
		Name:        firstString(raw, "name", "productName"),
		Category:    firstString(raw, "category"),
		Description: firstString(raw, "description"),
		Specs:       stringMap(raw["specs"]),
		Currency:    firstString(raw, "currency"),
	}
	if record.ID == "" {
		record.ID = "UNKNOWN"
	}
	if record.Category == "" {
		record.Category = "General"
	}

	switch price := raw["price"].(type) {
	case map[string]any:
		record.Price = toFloat(price["amount"])
		if cur, ok := price["currency"].(string); ok && cur != "" {
			record.Currency = cur
		}
	default:
		record.Price = toFloat(price)
	}

	if features, ok := raw["features"].([]any); ok {
		for _, f := range features {
			if s := strings.TrimSpace(fmt.Sprint(f)); s != "" {
				record.Features = append(record.Features, s)
			}
		}
	}

	if comps, ok := raw["competitors"].([]any); ok {
		for _, c := range comps {
			if m, ok := c.(map[string]any); ok {
				record.Competitors = append(record.Competitors, m)
			}
		}
	}

	return record, nil
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func stringMap(v any) map[string]string {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = fmt.Sprint(val)
	}
	return out
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}
