package routes

import (
	"regexp"
	"strings"
)

// paramTokenRe matches parameter tokens inside a pattern.
var paramTokenRe = regexp.MustCompile(`(:|\*)[^/]+`)

// Classification partitions patterns into static and dynamic routes.
type Classification struct {
	// Static are patterns without parameters, in processing order
	Static []string `json:"static"`
	// Dynamic are patterns with at least one parameter, in processing order
	Dynamic []string `json:"dynamic"`
	// Params maps each dynamic pattern to its sanitized parameter names
	Params map[string][]string `json:"params"`
}

// IsDynamic reports whether a pattern captures parameters.
func IsDynamic(pattern string) bool {
	return strings.ContainsAny(pattern, ":*")
}

// IsClassifiable reports whether a pattern is complete enough to classify.
func IsClassifiable(pattern string) bool {
	if pattern == "" {
		return false
	}
	return pattern == "/" || !strings.HasSuffix(pattern, "/")
}

// ParamTokens scans a pattern left to right for parameter tokens.
func ParamTokens(pattern string) []ParamToken {
	matches := paramTokenRe.FindAllStringIndex(pattern, -1)
	tokens := make([]ParamToken, 0, len(matches))
	for _, m := range matches {
		raw := pattern[m[0]:m[1]]
		tok := ParamToken{
			Raw:    raw,
			Marker: raw[0],
			Name:   raw[1:],
			Offset: m[0],
		}
		if tok.Marker == ':' && strings.HasSuffix(tok.Name, "?") {
			tok.Optional = true
			tok.Name = strings.TrimSuffix(tok.Name, "?")
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// ParamNames returns the sanitized parameter names of a pattern in order.
// Two tokens sanitizing to the same name is a DuplicateRouteParameter error.
func ParamNames(pattern string, table *Replacements) ([]string, error) {
	tokens := ParamTokens(pattern)
	names := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		name := table.Sanitize(tok.Name)
		if seen[name] {
			return nil, DuplicateRouteParameter(tok.Raw, name, pattern)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// Classify splits patterns into static and dynamic sets and extracts the
// parameter names of every dynamic pattern. Incomplete patterns are skipped.
func Classify(patterns []string, table *Replacements) (*Classification, error) {
	c := &Classification{
		Static:  []string{},
		Dynamic: []string{},
		Params:  make(map[string][]string),
	}
	seen := make(map[string]bool, len(patterns))

	for _, pattern := range patterns {
		if !IsClassifiable(pattern) || seen[pattern] {
			continue
		}
		seen[pattern] = true

		if !IsDynamic(pattern) {
			c.Static = append(c.Static, pattern)
			continue
		}

		names, err := ParamNames(pattern, table)
		if err != nil {
			return nil, err
		}
		c.Dynamic = append(c.Dynamic, pattern)
		c.Params[pattern] = names
	}

	return c, nil
}

// Patterns returns the patterns of entries in order.
func Patterns(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Pattern)
	}
	return out
}
