// Package validate holds the shared quality and business-rule checkers
// applied to every generated artifact. Structural bounds live on the schema
// types themselves; this package covers the checks that cut across fields:
// external-provenance phrasing, placeholder text, duplicate detection, and
// price/currency sanity.
package validate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Kind distinguishes the two validation tiers.
type Kind string

const (
	KindShape   Kind = "shape"
	KindQuality Kind = "quality"
)

// Error is the single failure type both tiers produce. It is marked
// permanent so the retry wrapper never retries a validation failure.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Kind, e.Reason)
}

// IsPermanent marks validation failures as not retryable.
func (e *Error) IsPermanent() bool { return true }

// Shapef builds a shape-tier validation error.
func Shapef(format string, args ...any) *Error {
	return &Error{Kind: KindShape, Reason: fmt.Sprintf(format, args...)}
}

// Qualityf builds a quality-tier validation error.
func Qualityf(format string, args ...any) *Error {
	return &Error{Kind: KindQuality, Reason: fmt.Sprintf(format, args...)}
}

// provenancePatterns match text that suggests content was copied from an
// external lookup rather than generated from the given context. The same
// family backs both artifact validation and the reviewer's heuristic gate.
var provenancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)according to .*search`),
	regexp.MustCompile(`(?i)based on .*results`),
	regexp.MustCompile(`(?i)found on .*website`),
	regexp.MustCompile(`(?i)source: ?.*http`),
	regexp.MustCompile(`(?i)retrieved from`),
	regexp.MustCompile(`(?i)as per .*online`),
}

// placeholderTokens are fragments that indicate unfinished template text.
var placeholderTokens = []string{"lorem ipsum", "placeholder", "todo", "tbd", "xxx"}

// HasProvenance reports whether text contains an external-provenance phrase.
func HasProvenance(text string) bool {
	for _, pat := range provenancePatterns {
		if pat.MatchString(text) {
			return true
		}
	}
	return false
}

// CheckProvenance fails when field's text carries external-provenance
// phrasing. All content must be generated from the supplied context only.
func CheckProvenance(field, text string) error {
	for _, pat := range provenancePatterns {
		if pat.MatchString(text) {
			return Qualityf("%s contains external-provenance phrasing (%s)", field, pat.String())
		}
	}
	return nil
}

// CheckPlaceholders fails when field's text contains placeholder fragments.
func CheckPlaceholders(field, text string) error {
	lower := strings.ToLower(text)
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			return Qualityf("%s contains placeholder text %q", field, token)
		}
	}
	return nil
}

// CheckUnique fails when items contains duplicate entries (exact match after
// trimming). Used for feature lists and comparison-table feature names.
func CheckUnique(field string, items []string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item)
		if seen[key] {
			return Qualityf("%s contains duplicate entry %q", field, key)
		}
		seen[key] = true
	}
	return nil
}

// Price sanity bounds. Above the high watermark we warn rather than fail:
// an expensive product is unusual, not malformed.
const (
	minPrice       = 0.01
	highPriceWatch = 100000.0
)

// CheckPrice validates price sanity. A warning (not a failure) is logged
// above the high watermark; prices below the minimal positive threshold are
// a hard failure.
func CheckPrice(log *slog.Logger, price float64, currency string) error {
	if log == nil {
		log = slog.Default()
	}
	if price <= 0 {
		return Shapef("price must be positive, got %g", price)
	}
	if price < minPrice {
		return Qualityf("price %g %s is below the minimal threshold", price, currency)
	}
	if price > highPriceWatch {
		log.Warn("price is unusually high", "price", price, "currency", currency)
	}
	return nil
}

// commonCurrencies is a watchlist, not an allowlist: unknown codes only warn.
var commonCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true, "CNY": true,
	"INR": true, "AUD": true, "CAD": true, "CHF": true, "SEK": true,
	"NZD": true, "KRW": true, "SGD": true, "HKD": true, "NOK": true,
	"MXN": true,
}

// CheckCurrency validates the currency code: exactly 3 characters is a hard
// requirement; codes outside the common set log a warning.
func CheckCurrency(log *slog.Logger, currency string) error {
	if log == nil {
		log = slog.Default()
	}
	if len(currency) != 3 {
		return Shapef("currency code must be 3 characters, got %q", currency)
	}
	if !commonCurrencies[strings.ToUpper(currency)] {
		log.Warn("unusual currency code", "currency", currency)
	}
	return nil
}
