package rulesdsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
)

const samplePack = `rules:
  - id: health_card
    name: Health Card Number
    citation: Section 2(1)
    severity: elevated
    description: Ontario health card numbers identify an individual
    patterns:
      - '\b\d{4}-\d{3}-\d{3}\b'
      - '\bOHIP\b'
  - id: minutes
    name: Council Minutes
    citation: Section 6
    severity: info
    description: Closed meeting records
    patterns:
      - '\bin camera\b'
`

func writePack(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse_PreservesOrderAndFields(t *testing.T) {
	defs, err := Parse([]byte(samplePack))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "health_card", defs[0].ID)
	assert.Equal(t, "Health Card Number", defs[0].Name)
	assert.Equal(t, ir.Severity("elevated"), defs[0].Severity)
	assert.Equal(t, []string{`\b\d{4}-\d{3}-\d{3}\b`, `\bOHIP\b`}, defs[0].Patterns)
	assert.Equal(t, "minutes", defs[1].ID)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("rules: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("rules: []\n"))
	assert.ErrorIs(t, err, rules.ErrInvalidRule)
}

func TestLoadRegistry_Pack(t *testing.T) {
	reg, err := LoadRegistry(writePack(t, samplePack), rules.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	fs := reg.Analyze("OHIP 1234-567-890 discussed in camera")
	require.Len(t, fs, 2)
	assert.Equal(t, ir.SeverityElevated, fs[0].Severity)
	assert.Equal(t, []string{"1234-567-890", "OHIP"}, fs[0].Matches)
	assert.Equal(t, ir.SeverityInformational, fs[1].Severity)
}

func TestLoadRegistry_BuiltinWhenNoPath(t *testing.T) {
	reg, err := LoadRegistry("", rules.Options{Disabled: []string{rules.Exemptions}})
	require.NoError(t, err)
	assert.Equal(t, 6, reg.Len())
}

func TestLoadRegistry_FailsFast(t *testing.T) {
	bad := `rules:
  - id: broken
    name: Broken
    severity: elevated
    patterns: ['(unclosed']
`
	_, err := LoadRegistry(writePack(t, bad), rules.Options{})
	assert.ErrorIs(t, err, rules.ErrInvalidPattern)

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml"), rules.Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_BuiltinRoundTrip(t *testing.T) {
	b, err := Marshal(rules.Builtin())
	require.NoError(t, err)

	defs, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, rules.Builtin(), defs)

	text := "Contact me at 416-555-1234 or jane@example.com regarding health information."
	reg, err := rules.NewRegistry(defs, rules.Options{})
	require.NoError(t, err)
	assert.Equal(t, rules.Default().Analyze(text), reg.Analyze(text))
}
