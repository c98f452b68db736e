package reporting

import (
	"time"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
)

const (
	Title      = "MFIPPA Compliance Analysis Report"
	Disclaimer = "This is an automated screening tool. All findings should be reviewed by your FOI/Privacy Coordinator or legal counsel."

	noConcerns   = "No immediate compliance concerns detected"
	manualReview = "Note: This is an automated check. Manual review by FOI/Privacy Coordinator is recommended."
)

type Summary struct {
	Total         int `json:"total"`
	Elevated      int `json:"elevated"`
	Informational int `json:"informational"`
}

// Recommendation is a fixed block of advice shown when its trigger fired.
type Recommendation struct {
	Title    string      `json:"title"`
	Severity ir.Severity `json:"severity"`
	Items    []string    `json:"items"`
}

// Report is the render-ready view of one analysis.
type Report struct {
	ID              string           `json:"id"`
	Source          string           `json:"source,omitempty"`
	AnalyzedAt      time.Time        `json:"analyzed_at"`
	Length          int              `json:"length"`
	Notice          string           `json:"notice,omitempty"`
	Verdict         string           `json:"verdict,omitempty"`
	Summary         Summary          `json:"summary"`
	Findings        []ir.Finding     `json:"findings"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Disclaimer      string           `json:"disclaimer"`
}

var (
	personalInfoAdvice = Recommendation{
		Title:    "Personal Information Detected",
		Severity: ir.SeverityElevated,
		Items: []string{
			"Verify collection authority (Section 28)",
			"Ensure proper notice was provided (Section 29)",
			"Confirm retention requirements are met (Section 30)",
			"Review use is limited to authorized purposes (Section 31)",
		},
	}
	disclosureAdvice = Recommendation{
		Title:    "Disclosure Language Detected",
		Severity: ir.SeverityElevated,
		Items: []string{
			"Verify disclosure is permitted under Section 32",
			"Confirm consent was obtained if required",
			"Check if exemptions apply",
			"Document the legal basis for disclosure",
		},
	}
	generalAdvice = Recommendation{
		Title:    "General Recommendations",
		Severity: ir.SeverityInformational,
		Items: []string{
			"Have your FOI/Privacy Coordinator review this document",
			"Document the legal authority for any personal information collection",
			"Ensure all disclosures comply with Section 32 requirements",
			"Maintain records for the required retention period",
		},
	}
)

// Build derives counts, the verdict and recommendation blocks from an
// analysis. It reads nothing beyond the analysis itself.
func Build(a *ir.Analysis) Report {
	rep := Report{
		ID:         a.ID,
		Source:     a.Source,
		AnalyzedAt: a.AnalyzedAt,
		Length:     a.Length,
		Notice:     a.Notice,
		Findings:   a.Findings,
		Disclaimer: Disclaimer,
	}
	if rep.Findings == nil {
		rep.Findings = []ir.Finding{}
	}

	var hasPI, hasDisclosure bool
	for _, f := range a.Findings {
		rep.Summary.Total++
		if f.Severity == ir.SeverityElevated {
			rep.Summary.Elevated++
		} else {
			rep.Summary.Informational++
		}
		switch f.RuleID {
		case rules.PersonalInformation:
			hasPI = true
		case rules.Disclosure:
			hasDisclosure = true
		}
	}

	if a.Notice != "" {
		return rep
	}
	if rep.Summary.Total == 0 {
		rep.Verdict = noConcerns + ". " + manualReview
		return rep
	}
	if hasPI {
		rep.Recommendations = append(rep.Recommendations, personalInfoAdvice)
	}
	if hasDisclosure {
		rep.Recommendations = append(rep.Recommendations, disclosureAdvice)
	}
	rep.Recommendations = append(rep.Recommendations, generalAdvice)
	return rep
}
