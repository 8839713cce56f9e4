package routes

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultReplacements maps the characters that may appear in route tokens to
// identifier-safe strings.
var DefaultReplacements = map[string]string{
	":": "_colon_",
	"*": "_star_",
	".": "_dot_",
	"-": "_dash_",
	"+": "_plus_",
}

// Rule is a single substitution of a Replacements table.
type Rule struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Replacements is a bidirectional substitution table used to turn raw path
// tokens into identifiers and back.
//
// The table is only reversible when no replacement value contains a key or
// another value. Validate checks this; callers overriding the defaults are
// responsible for keeping it true.
type Replacements struct {
	forward []Rule
	reverse []Rule
	rules   map[string]string
}

// NewReplacements merges overrides on top of DefaultReplacements.
func NewReplacements(overrides map[string]string) *Replacements {
	merged := make(map[string]string, len(DefaultReplacements)+len(overrides))
	for k, v := range DefaultReplacements {
		merged[k] = v
	}
	for k, v := range overrides {
		if k == "" {
			continue
		}
		merged[k] = v
	}

	r := &Replacements{rules: merged}
	for k, v := range merged {
		r.forward = append(r.forward, Rule{From: k, To: v})
		if v != "" {
			r.reverse = append(r.reverse, Rule{From: v, To: k})
		}
	}
	// Forward and reverse both run longest replacement value first so that
	// multi-character values are not shadowed by shorter ones.
	sortRules(r.forward, func(rule Rule) string { return rule.To })
	sortRules(r.reverse, func(rule Rule) string { return rule.From })
	return r
}

func sortRules(rules []Rule, by func(Rule) string) {
	sort.SliceStable(rules, func(i, j int) bool {
		li, lj := len(by(rules[i])), len(by(rules[j]))
		if li != lj {
			return li > lj
		}
		return rules[i].From < rules[j].From
	})
}

// Sanitize applies every rule to s, turning raw characters into their
// identifier-safe replacement.
func (r *Replacements) Sanitize(s string) string {
	for _, rule := range r.forward {
		s = strings.ReplaceAll(s, rule.From, rule.To)
	}
	return s
}

// Desanitize reverses Sanitize.
func (r *Replacements) Desanitize(s string) string {
	for _, rule := range r.reverse {
		s = strings.ReplaceAll(s, rule.From, rule.To)
	}
	return s
}

// Rules returns the table in forward application order.
func (r *Replacements) Rules() []Rule {
	out := make([]Rule, len(r.forward))
	copy(out, r.forward)
	return out
}

// Map returns a copy of the table as a plain map.
func (r *Replacements) Map() map[string]string {
	out := make(map[string]string, len(r.rules))
	for k, v := range r.rules {
		out[k] = v
	}
	return out
}

// Validate reports rules that make the table ambiguous to reverse.
func (r *Replacements) Validate() error {
	var problems []string
	for _, a := range r.forward {
		if a.To == "" {
			problems = append(problems, fmt.Sprintf("%q has an empty replacement", a.From))
			continue
		}
		for _, b := range r.forward {
			if strings.Contains(a.To, b.From) {
				problems = append(problems, fmt.Sprintf("replacement %q of %q contains key %q", a.To, a.From, b.From))
			}
			if a.From != b.From && b.To != "" && strings.Contains(a.To, b.To) {
				problems = append(problems, fmt.Sprintf("replacement %q of %q contains replacement %q of %q", a.To, a.From, b.To, b.From))
			}
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("ambiguous replacements: %s", strings.Join(problems, "; "))
	}
	return nil
}
