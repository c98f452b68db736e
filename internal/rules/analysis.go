package rules

import (
	"unicode/utf8"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

// Run analyzes text and wraps the result in an envelope for reporting.
func (r *Registry) Run(source, text string) ir.Analysis {
	a := ir.NewAnalysis(source)
	a.Length = utf8.RuneCountInString(text)
	if fs := r.Analyze(text); fs != nil {
		a.Findings = fs
	}
	return a
}
