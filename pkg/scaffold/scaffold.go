// Package scaffold creates new route files that follow the routes
// directory convention.
package scaffold

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// RouteConfig holds configuration for route generation.
type RouteConfig struct {
	Path         string   // Route file path without extension (e.g., "posts/[id]")
	Methods      []string // HTTP methods (e.g., ["GET", "DELETE"])
	Page         bool     // Export a renderable Page
	SearchParams bool     // Export a SearchParams schema
	Templ        bool     // Write a .templ page instead of a .go file
	RoutesDir    string   // Routes directory (default: "routes")
}

// Result holds the result of a generation operation.
type Result struct {
	Files   []string `json:"files"`
	ID      string   `json:"id"`
	Pattern string   `json:"pattern"`
}

var validMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// GenerateRoute writes a new route file.
func GenerateRoute(cfg RouteConfig) (*Result, error) {
	if cfg.RoutesDir == "" {
		cfg.RoutesDir = "routes"
	}
	id := strings.Trim(filepath.ToSlash(cfg.Path), "/")
	if id == "" {
		id = "index"
	}
	id = strings.TrimSuffix(strings.TrimSuffix(id, ".go"), ".templ")

	for i, m := range cfg.Methods {
		cfg.Methods[i] = strings.ToUpper(m)
		if !validMethods[cfg.Methods[i]] {
			return nil, fmt.Errorf("unknown method: %s", m)
		}
	}
	if len(cfg.Methods) == 0 && !cfg.Page {
		cfg.Page = true
	}
	if cfg.Templ && len(cfg.Methods) > 0 {
		return nil, fmt.Errorf("templ routes cannot export handlers")
	}

	ext := ".go"
	tmpl := goRouteTemplate
	if cfg.Templ {
		ext = ".templ"
		tmpl = templRouteTemplate
	}
	rel := id + ext
	if err := routes.ValidatePath(rel); err != nil {
		return nil, err
	}

	filePath := filepath.Join(cfg.RoutesDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if _, err := os.Stat(filePath); err == nil {
		return nil, fmt.Errorf("file already exists: %s", filePath)
	}

	segments := routes.ParseSegments(id)
	pattern := routes.BuildPattern(segments)

	data := routeTemplateData{
		Package:      packageNameFromPath(id, cfg.RoutesDir),
		Pattern:      pattern,
		Title:        titleFromID(id),
		Methods:      cfg.Methods,
		Page:         cfg.Page,
		SearchParams: cfg.SearchParams,
		Params:       extractParams(segments),
	}

	if err := executeTemplate(filePath, tmpl, data, !cfg.Templ); err != nil {
		return nil, err
	}

	return &Result{
		Files:   []string{filePath},
		ID:      id,
		Pattern: pattern,
	}, nil
}

// Helper functions

var nonIdentRe = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// packageNameFromPath uses the directory holding the route file. Route
// files at the top level take the routes directory name.
func packageNameFromPath(id, routesDir string) string {
	dir := filepath.ToSlash(filepath.Dir(filepath.FromSlash(id)))
	if dir == "." {
		return cleanPackageName(filepath.Base(routesDir))
	}
	seg := routes.ParseSegment(dir[strings.LastIndex(dir, "/")+1:])
	if seg.Name != "" {
		return cleanPackageName(seg.Name)
	}
	return cleanPackageName(seg.Raw)
}

func cleanPackageName(name string) string {
	name = nonIdentRe.ReplaceAllString(name, "")

	if len(name) > 0 && (name[0] >= '0' && name[0] <= '9') {
		name = "pkg" + name
	}
	if name == "" {
		return "routes"
	}
	return strings.ToLower(name)
}

type paramInfo struct {
	Name     string
	Ident    string
	CatchAll bool
	Optional bool
}

func extractParams(segments []routes.Segment) []paramInfo {
	var params []paramInfo
	for _, seg := range segments {
		if !seg.IsParam() {
			continue
		}
		params = append(params, paramInfo{
			Name:     seg.Name,
			Ident:    identifier(seg.Name),
			CatchAll: seg.Kind == routes.SegmentCatchAll || seg.Kind == routes.SegmentOptionalCatchAll,
			Optional: seg.Kind == routes.SegmentOptional || seg.Kind == routes.SegmentOptionalCatchAll,
		})
	}
	return params
}

func identifier(name string) string {
	id := nonIdentRe.ReplaceAllString(name, "_")
	if id == "" || (id[0] >= '0' && id[0] <= '9') {
		id = "p" + id
	}
	return id
}

func titleFromID(id string) string {
	segments := routes.ParseSegments(id)
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		switch seg.Kind {
		case routes.SegmentIndex, routes.SegmentGroup:
			continue
		case routes.SegmentLiteral:
			return toTitle(strings.NewReplacer("-", " ", "_", " ").Replace(seg.Raw))
		default:
			return toTitle(seg.Name)
		}
	}
	return "Home"
}

func executeTemplate(filePath, tmplContent string, data any, gofmt bool) error {
	tmpl, err := template.New(filepath.Base(filePath)).Parse(tmplContent)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	out := buf.Bytes()
	if gofmt {
		formatted, err := format.Source(out)
		if err != nil {
			return fmt.Errorf("failed to format %s: %w", filePath, err)
		}
		out = formatted
	}

	if err := os.WriteFile(filePath, out, 0644); err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	return nil
}

// toTitle converts a string to title case (first letter of each word capitalized)
func toTitle(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
