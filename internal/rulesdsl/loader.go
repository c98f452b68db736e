package rulesdsl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
	"github.com/Dadukaka/MFIPPA-Tracker/internal/rules"
)

type dslPack struct {
	Rules []dslRule `yaml:"rules"`
}

type dslRule struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Citation    string   `yaml:"citation"`
	Severity    string   `yaml:"severity"` // elevated|informational
	Description string   `yaml:"description"`
	Patterns    []string `yaml:"patterns"`
}

// Parse decodes a YAML rule pack into definitions, preserving file order.
func Parse(b []byte) ([]rules.Definition, error) {
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(pack.Rules) == 0 {
		return nil, fmt.Errorf("rules pack: %w: no rules", rules.ErrInvalidRule)
	}
	out := make([]rules.Definition, 0, len(pack.Rules))
	for _, r := range pack.Rules {
		out = append(out, rules.Definition{
			ID:          r.ID,
			Name:        r.Name,
			Citation:    r.Citation,
			Description: r.Description,
			Severity:    ir.Severity(r.Severity),
			Patterns:    r.Patterns,
		})
	}
	return out, nil
}

// Load reads and parses a rule pack file.
func Load(path string) ([]rules.Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules pack: %w", err)
	}
	return Parse(b)
}

// LoadRegistry compiles the pack at path, or the built-in table when path is
// empty. Errors are configuration errors and should stop startup.
func LoadRegistry(path string, opts rules.Options) (*rules.Registry, error) {
	defs := rules.Builtin()
	if path != "" {
		var err error
		if defs, err = Load(path); err != nil {
			return nil, err
		}
	}
	reg, err := rules.NewRegistry(defs, opts)
	if err != nil {
		return nil, fmt.Errorf("compile rules: %w", err)
	}
	return reg, nil
}

// Marshal renders definitions as a rule pack, e.g. to bootstrap a custom
// pack from the built-in table.
func Marshal(defs []rules.Definition) ([]byte, error) {
	pack := dslPack{Rules: make([]dslRule, 0, len(defs))}
	for _, d := range defs {
		pack.Rules = append(pack.Rules, dslRule{
			ID:          d.ID,
			Name:        d.Name,
			Citation:    d.Citation,
			Severity:    string(d.Severity),
			Description: d.Description,
			Patterns:    d.Patterns,
		})
	}
	return yaml.Marshal(pack)
}
