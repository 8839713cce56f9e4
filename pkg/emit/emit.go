// Package emit renders a route compilation as a JSON manifest and as Go
// source files.
package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"unicode"

	"github.com/abdul-hamid-achik/typedroutes/internal/version"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// Header marks generated Go files.
const Header = "// Code generated by typedroutes. DO NOT EDIT."

// Options configures Go source generation.
type Options struct {
	// Package is the package clause of generated files
	Package string
	// Overrides are the replacement overrides embedded in the generated table
	Overrides map[string]string
}

// Manifest returns the compilation as indented JSON.
func Manifest(c *routes.Compilation) ([]byte, error) {
	doc := struct {
		SchemaVersion int `json:"schemaVersion"`
		*routes.Compilation
	}{version.GetGeneratorSchemaVersion(), c}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// routeConst is used for template rendering
type routeConst struct {
	Ident   string
	Pattern string
	Params  []string
}

// GoSource renders the typed routes file.
func GoSource(c *routes.Compilation, opts Options) ([]byte, error) {
	consts := routeConsts(c)

	byPattern := make(map[string]string, len(consts))
	for _, rc := range consts {
		byPattern[rc.Pattern] = rc.Ident
	}
	idents := func(patterns []string) []string {
		out := make([]string, 0, len(patterns))
		for _, p := range patterns {
			out = append(out, byPattern[p])
		}
		return out
	}

	static, dynamic := []string(nil), []string(nil)
	if c.Classification != nil {
		static, dynamic = c.Classification.Static, c.Classification.Dynamic
	}

	return render("routes", routesTemplate, map[string]any{
		"Header":    Header,
		"Package":   opts.Package,
		"Routes":    consts,
		"Static":    idents(static),
		"Dynamic":   idents(dynamic),
		"Overrides": stringMapLiteral(opts.Overrides),
		"Tree":      c.Tree,
		"RouteMap":  routeMapLiteral(c.RouteMap),
	})
}

// SearchParamsSource renders the search-params association file.
func SearchParamsSource(c *routes.Compilation, opts Options) ([]byte, error) {
	schemas := append([]routes.SearchParamsSchema(nil), c.SearchParams...)
	sort.SliceStable(schemas, func(i, j int) bool {
		return schemas[i].Pattern < schemas[j].Pattern
	})

	return render("searchparams", searchParamsTemplate, map[string]any{
		"Header":  Header,
		"Package": opts.Package,
		"Schemas": schemas,
	})
}

func render(name, text string, data any) ([]byte, error) {
	tmpl := template.Must(template.New(name).Funcs(template.FuncMap{
		"quote": func(s string) string { return fmt.Sprintf("%q", s) },
	}).Parse(text))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute %s template: %w", name, err)
	}

	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format %s source: %w", name, err)
	}
	return out, nil
}

// routeConsts returns one constant per distinct classifiable pattern, in
// static then dynamic order.
func routeConsts(c *routes.Compilation) []routeConst {
	if c.Classification == nil {
		return nil
	}

	patterns := append(append([]string(nil), c.Classification.Static...), c.Classification.Dynamic...)
	// every natural name is reserved up front so a suffixed name never
	// takes the name of a later pattern ("/posts/id/2" is RoutePostsID2)
	reserved := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		reserved[Ident(p)] = true
	}

	used := make(map[string]bool, len(patterns))
	consts := make([]routeConst, 0, len(patterns))
	for _, p := range patterns {
		ident := Ident(p)
		if used[ident] {
			base := ident
			for n := 2; ; n++ {
				ident = fmt.Sprintf("%s%d", base, n)
				if !used[ident] && !reserved[ident] {
					break
				}
			}
		}
		used[ident] = true
		consts = append(consts, routeConst{
			Ident:   ident,
			Pattern: p,
			Params:  c.Classification.Params[p],
		})
	}
	return consts
}

// Ident converts a pattern to an exported Go identifier.
//
//	"/"               -> RouteRoot
//	"/posts/:id"      -> RoutePostsID
//	"/sign-in"        -> RouteSignIn
//	"/docs/*rest"     -> RouteDocsRest
func Ident(pattern string) string {
	var b strings.Builder
	b.WriteString("Route")
	for _, segment := range strings.Split(pattern, "/") {
		segment = strings.TrimSuffix(strings.TrimLeft(segment, ":*"), "?")
		for _, word := range strings.FieldsFunc(segment, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			b.WriteString(camel(word))
		}
	}
	if b.Len() == len("Route") {
		b.WriteString("Root")
	}
	return b.String()
}

var initialisms = map[string]string{
	"id": "ID", "api": "API", "url": "URL", "uuid": "UUID", "json": "JSON",
}

func camel(word string) string {
	if s, ok := initialisms[strings.ToLower(word)]; ok {
		return s
	}
	r := []rune(word)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func stringMapLiteral(m map[string]string) string {
	if len(m) == 0 {
		return "nil"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("map[string]string{\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "%q: %q,\n", k, m[k])
	}
	b.WriteString("}")
	return b.String()
}

func routeMapLiteral(m routes.RouteMap) string {
	var b strings.Builder
	writeRouteMap(&b, m)
	return b.String()
}

func writeRouteMap(b *strings.Builder, m routes.RouteMap) {
	b.WriteString("routes.RouteMap{")
	keys := m.Keys()
	if len(keys) > 0 {
		b.WriteString("\n")
	}
	for _, k := range keys {
		fmt.Fprintf(b, "%q: ", k)
		switch v := m[k].(type) {
		case routes.RouteMap:
			writeRouteMap(b, v)
		case string:
			fmt.Fprintf(b, "%q", v)
		}
		b.WriteString(",\n")
	}
	b.WriteString("}")
}

// WriteFile writes data to path, creating parent directories. It reports
// false without touching the file when the content is unchanged.
func WriteFile(path string, data []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
