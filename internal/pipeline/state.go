// Package pipeline implements the content-generation workflow: parse,
// question generation, a parallel fan-out over the three page generators,
// and a bounded review/revision loop.
package pipeline

import (
	"log/slog"

	"github.com/contentforge/content-forge/internal/schema"
)

// MaxRevisions caps the review/revision loop. After this many rejected
// cycles the pipeline accepts whatever artifacts exist and terminates.
const MaxRevisions = 3

// State is the single context threaded through the workflow.
//
// Updates are partial and additive: each stage's Post touches only the keys
// its contract declares, so the fan-in merge after the parallel page stage
// unions disjoint keys without conflict. Product and Questions are immutable
// once set for a given cycle; page Exec work items read them through a
// snapshot taken at Prep time and never write state directly.
//
// NOT goroutine-safe: Prep and Post always run on the flow goroutine; only
// Exec work items run concurrently, and they receive value copies.
type State struct {
	RawInput map[string]any // required at start, immutable thereafter
	Tone     string         // style directive, constant for the run

	Product   *schema.ProductRecord // set once by parse
	Questions []schema.QuestionItem // replaced wholesale each cycle

	FAQPage        *schema.FAQPage
	LandingPage    *schema.LandingPage
	ComparisonPage *schema.ComparisonPage

	ReviewFeedback string // "" signals no unresolved feedback
	RevisionCount  int    // rejected cycles so far, monotonically non-decreasing
	LastError      string // latest failure diagnostic, overwritten not accumulated

	Logger *slog.Logger // run-scoped structured logger
}

// log returns the run-scoped logger, falling back to the default.
func (s *State) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// setError records a failure diagnostic, overwriting any previous one.
func (s *State) setError(msg string) {
	s.LastError = msg
}
