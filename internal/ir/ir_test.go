package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
		ok   bool
	}{
		{"elevated", SeverityElevated, true},
		{" Warning ", SeverityElevated, true},
		{"INFO", SeverityInformational, true},
		{"informational", SeverityInformational, true},
		{"critical", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseSeverity(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSeverityLabels(t *testing.T) {
	assert.Equal(t, "Warning", SeverityElevated.Label())
	assert.Equal(t, "⚠", SeverityElevated.Marker())
	assert.Equal(t, "Info", SeverityInformational.Label())
	assert.Equal(t, "ℹ", SeverityInformational.Marker())
}

func TestNewAnalysis(t *testing.T) {
	a := NewAnalysis("memo.txt")
	b := NewAnalysis("memo.txt")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, Version, a.IRVersion)
	assert.False(t, a.AnalyzedAt.IsZero())
	assert.NotNil(t, a.Findings)
}
