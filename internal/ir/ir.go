package ir

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const Version = "1.0"

// Severity is the two-level tag attached to every rule and finding.
type Severity string

const (
	SeverityElevated      Severity = "elevated"
	SeverityInformational Severity = "informational"
)

// ParseSeverity accepts the canonical names plus the legacy "warning"/"info" spellings.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elevated", "warning", "warn":
		return SeverityElevated, true
	case "informational", "info":
		return SeverityInformational, true
	}
	return "", false
}

// Label is the display label used by every renderer.
func (s Severity) Label() string {
	if s == SeverityElevated {
		return "Warning"
	}
	return "Info"
}

// Marker is the glyph shown next to a finding heading.
func (s Severity) Marker() string {
	if s == SeverityElevated {
		return "⚠"
	}
	return "ℹ"
}

// Analysis is the envelope around one classifier result.
type Analysis struct {
	ID         string    `json:"id"`
	AnalyzedAt time.Time `json:"analyzed_at"`
	Source     string    `json:"source,omitempty"`
	IRVersion  string    `json:"ir_version,omitempty"`

	// Length is the document length in characters.
	Length   int       `json:"length"`
	Notice   string    `json:"notice,omitempty"`
	Findings []Finding `json:"findings"`
}

type Finding struct {
	RuleID      string   `json:"rule_id"`
	Rule        string   `json:"rule"`
	Citation    string   `json:"citation"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Matches     []string `json:"matches"`
}

// NewAnalysis returns an empty envelope with a fresh id and timestamp.
func NewAnalysis(source string) Analysis {
	return Analysis{
		ID:         uuid.NewString(),
		AnalyzedAt: time.Now().UTC(),
		Source:     source,
		IRVersion:  Version,
		Findings:   []Finding{},
	}
}
