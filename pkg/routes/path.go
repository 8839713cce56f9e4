package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// LocateParam finds the token of a pattern that a sanitized parameter name
// refers to. Token names are sanitized and compared with name, since
// Desanitize does not invert every lower-case name.
func LocateParam(pattern, name string, table *Replacements) (ParamToken, bool) {
	for _, tok := range ParamTokens(pattern) {
		if table.Sanitize(tok.Name) == name {
			return tok, true
		}
	}
	return ParamToken{}, false
}

// BuildPath substitutes sanitized parameter values into a pattern.
//
// Optional and catch-all segments without a value are dropped; a required
// parameter without a value is a MissingRouteParameter error and a name the
// pattern does not declare is an UnknownRouteParameter error. Query values
// are appended sorted by key.
func BuildPath(pattern string, params map[string]string, query url.Values, table *Replacements) (string, error) {
	values := make(map[string]string, len(params))
	for name, value := range params {
		tok, ok := LocateParam(pattern, name, table)
		if !ok {
			return "", &Error{
				Kind: KindUnknownRouteParameter,
				Op:   "build",
				Path: pattern,
				Msg:  fmt.Sprintf("Unknown route parameter %q for %q", name, pattern),
			}
		}
		values[tok.Raw] = value
	}

	segments := strings.Split(pattern, "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" || (segment[0] != ':' && segment[0] != '*') {
			out = append(out, segment)
			continue
		}
		value, ok := values[segment]
		if ok && value != "" {
			if segment[0] == '*' {
				out = append(out, escapeCatchAll(value))
			} else {
				out = append(out, url.PathEscape(value))
			}
			continue
		}
		if segment[0] == '*' || strings.HasSuffix(segment, "?") {
			continue
		}
		return "", &Error{
			Kind: KindMissingRouteParameter,
			Op:   "build",
			Path: pattern,
			Msg:  fmt.Sprintf("Missing route parameter %q for %q", segment[1:], pattern),
		}
	}

	built := strings.Join(out, "/")
	if built == "" {
		built = "/"
	}
	if len(query) > 0 {
		built += "?" + query.Encode()
	}
	return built, nil
}

// escapeCatchAll escapes each component of a catch-all value but keeps its
// slashes.
func escapeCatchAll(value string) string {
	parts := strings.Split(strings.Trim(value, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
