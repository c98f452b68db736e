package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Dadukaka/MFIPPA-Tracker/internal/ir"
)

// Registry is an ordered, immutable set of compiled rules. It is safe for
// concurrent use once constructed.
type Registry struct {
	rules       []Rule
	index       map[string]int // normID(rule.ID) -> position
	maxSnippets int
}

// NewRegistry validates and compiles defs in order. Any bad definition
// fails the whole registry; disabled rules are validated and then dropped.
func NewRegistry(defs []Definition, opts Options) (*Registry, error) {
	opts = opts.withDefaults()
	disabled := opts.disabledSet()

	reg := &Registry{
		index:       make(map[string]int, len(defs)),
		maxSnippets: opts.MaxSnippets,
	}
	seen := make(map[string]bool, len(defs))
	for i, d := range defs {
		r, err := compile(d)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, d.ID, err)
		}
		key := normID(r.ID)
		if seen[key] {
			return nil, fmt.Errorf("rule %q: %w: duplicate id", d.ID, ErrInvalidRule)
		}
		seen[key] = true
		if disabled[key] {
			continue
		}
		reg.index[key] = len(reg.rules)
		reg.rules = append(reg.rules, r)
	}
	return reg, nil
}

// MustNewRegistry is NewRegistry for static tables; it panics on error.
func MustNewRegistry(defs []Definition, opts Options) *Registry {
	reg, err := NewRegistry(defs, opts)
	if err != nil {
		panic(err)
	}
	return reg
}

func compile(d Definition) (Rule, error) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return Rule{}, fmt.Errorf("%w: missing id", ErrInvalidRule)
	}
	if strings.TrimSpace(d.Name) == "" {
		return Rule{}, fmt.Errorf("%w: missing name", ErrInvalidRule)
	}
	if len(d.Patterns) == 0 {
		return Rule{}, fmt.Errorf("%w: no patterns", ErrInvalidRule)
	}
	sev, ok := ir.ParseSeverity(string(d.Severity))
	if !ok {
		return Rule{}, fmt.Errorf("%w: unknown severity %q", ErrInvalidRule, d.Severity)
	}

	r := Rule{
		ID:          id,
		Name:        d.Name,
		Citation:    d.Citation,
		Description: d.Description,
		Severity:    sev,
		Patterns:    slices.Clone(d.Patterns),
		compiled:    make([]pattern, 0, len(d.Patterns)),
	}
	for i, p := range d.Patterns {
		if p == "" {
			return Rule{}, fmt.Errorf("%w: pattern %d is empty", ErrInvalidPattern, i)
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: pattern %d %q: %v", ErrInvalidPattern, i, p, err)
		}
		r.compiled = append(r.compiled, pattern{
			re:    re,
			lead:  strings.HasPrefix(p, `\b`),
			trail: endsWithBoundary(p),
		})
	}
	return r, nil
}

// List returns the rules in declared order.
func (r *Registry) List() []Rule {
	out := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		rule.Patterns = slices.Clone(rule.Patterns)
		out[i] = rule
	}
	return out
}

// Get returns a rule by id (case-insensitive).
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.index[normID(id)]
	if !ok {
		return Rule{}, false
	}
	rule := r.rules[idx]
	rule.Patterns = slices.Clone(rule.Patterns)
	return rule, true
}

func (r *Registry) Len() int { return len(r.rules) }

func (r *Registry) MaxSnippets() int { return r.maxSnippets }

// Analyze runs every pattern of every rule over text and returns one finding
// per rule that matched at least once, in registry order. Matches are
// de-duplicated in first-occurrence order and capped at MaxSnippets.
func (r *Registry) Analyze(text string) []ir.Finding {
	if text == "" {
		return nil
	}
	var out []ir.Finding
	for i := range r.rules {
		rule := &r.rules[i]
		matches := rule.match(text, r.maxSnippets)
		if len(matches) == 0 {
			continue
		}
		out = append(out, ir.Finding{
			RuleID:      rule.ID,
			Rule:        rule.Name,
			Citation:    rule.Citation,
			Description: rule.Description,
			Severity:    rule.Severity,
			Matches:     matches,
		})
	}
	return out
}

func (rule *Rule) match(text string, limit int) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range rule.compiled {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if p.lead && !wordBoundary(text, loc[0]) || p.trail && !wordBoundary(text, loc[1]) {
				continue
			}
			m := text[loc[0]:loc[1]]
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
			// cap reached
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// endsWithBoundary reports whether p ends in a \b anchor rather than an
// escaped backslash followed by a literal b.
func endsWithBoundary(p string) bool {
	if !strings.HasSuffix(p, `\b`) {
		return false
	}
	n := 0
	for i := len(p) - 2; i >= 0 && p[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// wordBoundary reports whether text has a word boundary at byte offset i,
// counting any Unicode letter, number or underscore as a word character.
func wordBoundary(text string, i int) bool {
	var before, after bool
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:i])
		before = isWordRune(r)
	}
	if i < len(text) {
		r, _ := utf8.DecodeRuneInString(text[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
