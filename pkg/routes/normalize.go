package routes

import (
	"net/http"
	"path"
	"regexp"
	"strings"
)

// validPathRe is the allow-list every discovered route path must match.
var validPathRe = regexp.MustCompile(`^[\w\-./\\\[\]()]+$`)

// DefaultExport is the export that makes a route file renderable.
const DefaultExport = "Page"

// SearchParamsExport is the export holding a route's search-params schema.
const SearchParamsExport = "SearchParams"

// endpointExports maps exported handler names to HTTP methods. Both the
// upper-case verb and the Go-cased function name are accepted.
var endpointExports = map[string]string{
	"GET":     http.MethodGet,
	"POST":    http.MethodPost,
	"PUT":     http.MethodPut,
	"PATCH":   http.MethodPatch,
	"DELETE":  http.MethodDelete,
	"HEAD":    http.MethodHead,
	"OPTIONS": http.MethodOptions,
	"Get":     http.MethodGet,
	"Post":    http.MethodPost,
	"Put":     http.MethodPut,
	"Patch":   http.MethodPatch,
	"Delete":  http.MethodDelete,
	"Head":    http.MethodHead,
	"Options": http.MethodOptions,
}

// EndpointMethod returns the HTTP method handled by an exported function
// name.
func EndpointMethod(name string) (string, bool) {
	method, ok := endpointExports[name]
	return method, ok
}

var methodOrder = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// ValidatePath checks a relative route path against the allow-list.
func ValidatePath(relPath string) error {
	if !validPathRe.MatchString(relPath) {
		return InvalidRoutePath(relPath)
	}
	return nil
}

// Normalize derives the route id and pattern of a discovered file.
//
//	posts/[id].go          -> id "posts/[id]",        pattern "/posts/:id"
//	docs/[...rest].go      -> id "docs/[...rest]",    pattern "/docs/*rest"
//	(auth)/login.go        -> id "(auth)/login",      pattern "/login"
//	posts/index.go         -> id "posts/index",       pattern "/posts"
func Normalize(file SourceFile) (Entry, error) {
	if err := ValidatePath(file.RelativePath); err != nil {
		return Entry{}, err
	}

	id := TrimExt(strings.ReplaceAll(file.RelativePath, `\`, "/"))

	entry := Entry{
		ID:      id,
		Pattern: BuildPattern(ParseSegments(id)),
		File:    file.RelativePath,
	}

	methods := make(map[string]bool)
	for _, name := range file.Exports {
		switch name {
		case DefaultExport:
			entry.HasDefault = true
		case SearchParamsExport:
			entry.SearchParams = true
		}
		if method, ok := endpointExports[name]; ok {
			methods[method] = true
		}
	}
	for _, method := range methodOrder {
		if methods[method] {
			entry.Endpoints = append(entry.Endpoints, method)
		}
	}

	return entry, nil
}

// TrimExt strips the final extension of a "/" separated path. Dots inside
// directory names are kept, and so are dots inside a bracket or group
// segment ("a/[...rest]" has no extension).
func TrimExt(p string) string {
	ext := path.Ext(p)
	if strings.ContainsAny(ext, "[]()") {
		return p
	}
	return strings.TrimSuffix(p, ext)
}

// BuildPattern builds a URL pattern from segments.
// Groups and index segments are excluded from the URL.
func BuildPattern(segments []Segment) string {
	var parts []string
	for _, seg := range segments {
		if part := seg.PatternPart(); part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// NormalizePattern forces a caller supplied pattern into canonical form:
// leading "/", no trailing "/", "/" when empty.
func NormalizePattern(pattern string) string {
	pattern = strings.TrimRight(pattern, "/")
	if pattern == "" {
		return "/"
	}
	if !strings.HasPrefix(pattern, "/") {
		pattern = "/" + pattern
	}
	return pattern
}
