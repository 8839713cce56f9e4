// Package routes compiles filesystem route conventions into URL patterns.
//
// It turns relative file paths ([id], [...slug], [[id]], (group), index) into
// route ids and patterns, classifies the patterns as static or dynamic,
// nests them into a route forest and builds a segment-keyed route map.
// Nothing in this package touches the filesystem.
package routes

// SourceFile is a file discovered under the routes directory.
type SourceFile struct {
	// RelativePath is the path relative to the routes directory, "/" separated
	RelativePath string
	// Exports are the exported symbol names of the file
	Exports []string
}

// Entry is a normalized route file.
type Entry struct {
	// ID is the hierarchy key (relative path without extension, groups kept)
	ID string `json:"id"`
	// Pattern is the URL pattern (e.g., "/posts/:id")
	Pattern string `json:"pattern"`
	// Payload is an opaque component reference. Empty for layout-only entries.
	Payload string `json:"payload,omitempty"`
	// HasDefault reports whether the file exports a renderable Page
	HasDefault bool `json:"hasDefault"`
	// Endpoints are the HTTP verbs the file exports handlers for
	Endpoints []string `json:"endpoints,omitempty"`
	// SearchParams reports whether the file exports a SearchParams schema
	SearchParams bool `json:"searchParams,omitempty"`
	// File is the relative path the entry was derived from
	File string `json:"file,omitempty"`
}

// Node is a route in the route forest.
type Node struct {
	Pattern  string  `json:"path"`
	ID       string  `json:"id"`
	Payload  string  `json:"component,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// ParamToken is a parameter occurrence inside a pattern.
type ParamToken struct {
	// Raw is the token as written in the pattern (e.g., ":id?")
	Raw string
	// Marker is ':' for dynamic and optional segments, '*' for catch-alls
	Marker byte
	// Name is the raw parameter name without marker or optional suffix
	Name string
	// Optional is set for ":name?" tokens
	Optional bool
	// Offset is the byte offset of the token in the pattern
	Offset int
}

// CatchAll reports whether the token captures the rest of the path.
func (p ParamToken) CatchAll() bool {
	return p.Marker == '*'
}

// SearchParamsSchema associates a pattern with an externally resolved
// search-params schema placeholder.
type SearchParamsSchema struct {
	Pattern     string `json:"pattern"`
	Placeholder string `json:"schema"`
}
