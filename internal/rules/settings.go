package rules

import "strings"

// DefaultMaxSnippets caps the distinct matches kept per finding.
const DefaultMaxSnippets = 5

// Options tune registry construction.
type Options struct {
	// Disabled rule ids are dropped from the registry (case-insensitive).
	Disabled    []string
	MaxSnippets int
}

func (o Options) withDefaults() Options {
	if o.MaxSnippets <= 0 {
		o.MaxSnippets = DefaultMaxSnippets
	}
	return o
}

func (o Options) disabledSet() map[string]bool {
	out := make(map[string]bool, len(o.Disabled))
	for _, id := range o.Disabled {
		if id = normID(id); id != "" {
			out[id] = true
		}
	}
	return out
}

func normID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
