package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
)

func analysisOf(text string) *ir.Analysis {
	return &ir.Analysis{
		ID:         "analysis-test",
		AnalyzedAt: time.Date(2025, 11, 20, 9, 30, 0, 0, time.UTC),
		Source:     "memo.txt",
		IRVersion:  ir.Version,
		Length:     len([]rune(text)),
		Findings:   rules.Default().Analyze(text),
	}
}

func titles(rs []Recommendation) []string {
	var out []string
	for _, r := range rs {
		out = append(out, r.Title)
	}
	return out
}

func TestBuild_CountsAndRecommendations(t *testing.T) {
	rep := Build(analysisOf("Contact me at 416-555-1234. It may be shared with a third party for this purpose."))

	assert.Equal(t, 3, rep.Summary.Total)
	assert.Equal(t, 2, rep.Summary.Elevated)
	assert.Equal(t, 1, rep.Summary.Informational)
	assert.Empty(t, rep.Verdict)
	assert.Equal(t, []string{
		"Personal Information Detected",
		"Disclosure Language Detected",
		"General Recommendations",
	}, titles(rep.Recommendations))
}

func TestBuild_OnlyInformational(t *testing.T) {
	rep := Build(analysisOf("We use this purpose for consent and authorization."))
	assert.Equal(t, 1, rep.Summary.Total)
	assert.Equal(t, 0, rep.Summary.Elevated)
	assert.Equal(t, []string{"General Recommendations"}, titles(rep.Recommendations))
}

func TestBuild_NoFindings(t *testing.T) {
	rep := Build(analysisOf("Nothing to see here."))
	assert.Zero(t, rep.Summary.Total)
	assert.Contains(t, rep.Verdict, "No immediate compliance concerns detected")
	assert.Empty(t, rep.Recommendations)
	assert.NotNil(t, rep.Findings)
	assert.Equal(t, Disclaimer, rep.Disclaimer)
}

func TestBuild_Notice(t *testing.T) {
	rep := Build(&ir.Analysis{ID: "a", Notice: "DOCX parsing not yet implemented. Please use text input."})
	assert.Empty(t, rep.Verdict)
	assert.Empty(t, rep.Recommendations)
	assert.Equal(t, "DOCX parsing not yet implemented. Please use text input.", rep.Notice)
}

func TestEncodeJSON_Shape(t *testing.T) {
	rep := Build(analysisOf("Contact me at 416-555-1234 or jane@example.com regarding health information."))
	var buf bytes.Buffer
	require.NoError(t, EncodeJSON(&buf, &rep))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "analysis-test", got["id"])
	assert.EqualValues(t, rep.Length, got["length"])

	findings := got["findings"].([]any)
	require.Len(t, findings, 1)
	f := findings[0].(map[string]any)
	assert.Equal(t, "personal_information", f["rule_id"])
	assert.Equal(t, "Personal Information Detection", f["rule"])
	assert.Equal(t, "Section 2(1)", f["citation"])
	assert.Equal(t, "elevated", f["severity"])
	assert.Len(t, f["matches"], 3)
}

func TestRenderHTML_EscapesAndLabels(t *testing.T) {
	a := analysisOf("Send <script>alert(1)</script> to x@example.com and we use it.")
	a.Source = "<b>memo</b>.txt"
	rep := Build(a)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, &rep))
	out := buf.String()

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>memo</b>")
	assert.Contains(t, out, "&lt;b&gt;memo&lt;/b&gt;.txt")
	assert.Contains(t, out, "<div class='finding warning'><b>⚠ 1. Personal Information Detection</b>")
	assert.Contains(t, out, "<div class='finding info'><b>ℹ 2. Use Limitation</b>")
	assert.Contains(t, out, "<code>x@example.com</code>")
	assert.Contains(t, out, "Document Length:</b> ")
}

func TestRenderHTML_NoFindings(t *testing.T) {
	rep := Build(analysisOf("plain"))
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, &rep))
	assert.Contains(t, buf.String(), "finding ok")
	assert.NotContains(t, buf.String(), "Detailed Findings")
}

func TestRenderMarkdown(t *testing.T) {
	rep := Build(analysisOf("Records were disclosed to a third party."))
	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, &rep))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# "+Title))
	assert.Contains(t, out, "### ⚠ 1. Disclosure Rules [Warning]")
	assert.Contains(t, out, "- `disclosed`")
	assert.Contains(t, out, "**Disclosure Language Detected:**")
	assert.NotContains(t, out, "Personal Information Detected")
}

func TestWriteConsole(t *testing.T) {
	rep := Build(analysisOf("Contact me at 416-555-1234 regarding health information. We use it."))
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, &rep))
	out := buf.String()

	assert.Contains(t, out, Title)
	assert.Contains(t, out, "Total Issues Found: 2   Warnings: 1   Informational: 1")
	assert.Contains(t, out, "⚠ 1. Personal Information Detection [Warning]")
	assert.Contains(t, out, "ℹ 2. Use Limitation [Info]")
	assert.Contains(t, out, `"416-555-1234"`)
	assert.Contains(t, out, "MFIPPA Reference: Section 2(1)")
	assert.Contains(t, out, "Disclaimer: ")
}

func TestWriteConsole_Notice(t *testing.T) {
	rep := Build(&ir.Analysis{ID: "a", Notice: "File type \".xlsx\" is not supported."})
	var buf bytes.Buffer
	require.NoError(t, WriteConsole(&buf, &rep))
	assert.Contains(t, buf.String(), "not supported")
	assert.NotContains(t, buf.String(), "Summary")
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	rep := Build(analysisOf("health"))

	for _, write := range []func(string, string, *Report) (string, error){WriteJSON, WriteHTML, WriteMarkdown} {
		p, err := write(rep.ID, dir, &rep)
		require.NoError(t, err)
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, b)
		assert.True(t, strings.HasPrefix(filepath.Base(p), "analysis-test."))
	}
}
