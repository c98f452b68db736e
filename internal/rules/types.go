package rules

import (
	"regexp"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

// Definition is the authoring form of a rule: plain strings, as written in
// the built-in table or a YAML rule pack.
type Definition struct {
	ID          string
	Name        string
	Citation    string
	Description string
	Severity    ir.Severity
	Patterns    []string
}

// Rule is a compiled, read-only compliance category.
type Rule struct {
	ID          string
	Name        string
	Citation    string
	Description string
	Severity    ir.Severity
	Patterns    []string

	compiled []pattern
}

// pattern is one compiled detection pattern. lead and trail record a \b
// anchor at either end; those edges are re-checked with Unicode word
// characters because RE2's \b only knows ASCII.
type pattern struct {
	re          *regexp.Regexp
	lead, trail bool
}

// PatternCount returns the number of detection patterns.
func (r Rule) PatternCount() int { return len(r.Patterns) }
