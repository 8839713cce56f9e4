// Package openapi builds an OpenAPI document from the HTTP handlers that
// route files export.
package openapi

import (
	"encoding/json"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// SearchParamsExtension carries the search-params schema of an operation.
const SearchParamsExtension = "x-search-params"

// Config holds document metadata.
type Config struct {
	Title          string
	Version        string
	Description    string
	OpenAPIVersion string
	Servers        []string
}

// Generator builds OpenAPI documents from compiled route entries.
type Generator struct {
	routesDir string
	config    Config
	fset      *token.FileSet
}

// NewGenerator creates a generator. routesDir is used to read handler doc
// comments; an empty routesDir skips them.
func NewGenerator(routesDir string, config Config) *Generator {
	if config.Version == "" {
		config.Version = "1.0.0"
	}
	if config.OpenAPIVersion == "" {
		config.OpenAPIVersion = "3.1.0"
	}
	if config.Title == "" {
		config.Title = "API"
	}

	return &Generator{
		routesDir: routesDir,
		config:    config,
		fset:      token.NewFileSet(),
	}
}

// Generate returns the document for entries. Entries without endpoint
// exports are skipped.
func (g *Generator) Generate(entries []routes.Entry, schemas []routes.SearchParamsSchema) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: g.config.OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       g.config.Title,
			Version:     g.config.Version,
			Description: g.config.Description,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, url := range g.config.Servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	searchParams := make(map[string]string, len(schemas))
	for _, s := range schemas {
		searchParams[s.Pattern] = s.Placeholder
	}

	for _, entry := range entries {
		if len(entry.Endpoints) == 0 {
			continue
		}
		docs := g.extractComments(entry.File)
		for _, path := range Paths(entry.Pattern) {
			item := doc.Paths.Value(path.Template)
			if item == nil {
				item = &openapi3.PathItem{}
				doc.Paths.Set(path.Template, item)
			}
			for _, method := range entry.Endpoints {
				op := g.buildOperation(entry, method, path.Params, docs[method])
				if placeholder, ok := searchParams[entry.Pattern]; ok {
					op.Extensions = map[string]any{SearchParamsExtension: placeholder}
				}
				item.SetOperation(method, op)
			}
		}
	}

	return doc
}

// PathTemplate is an OpenAPI path template with its path parameters.
type PathTemplate struct {
	Template string
	Params   []routes.ParamToken
}

// Paths converts a route pattern to OpenAPI path templates. OpenAPI path
// parameters are always required, so an optional parameter yields one
// template without the parameter and one with it.
//
//	/posts/:id   -> /posts/{id}
//	/docs/*rest  -> /docs/{rest}
//	/blog/:page? -> /blog, /blog/{page}
func Paths(pattern string) []PathTemplate {
	out := []PathTemplate{{}}
	for _, segment := range strings.Split(strings.Trim(pattern, "/"), "/") {
		if segment == "" {
			continue
		}
		toks := routes.ParamTokens(segment)
		if len(toks) == 0 || toks[0].Offset != 0 {
			for i := range out {
				out[i].Template += "/" + segment
			}
			continue
		}

		tok := toks[0]
		part := "/{" + tok.Name + "}"
		if !tok.Optional {
			for i := range out {
				out[i].Template += part
				out[i].Params = append(out[i].Params, tok)
			}
			continue
		}

		with := make([]PathTemplate, len(out))
		for i, p := range out {
			with[i] = PathTemplate{
				Template: p.Template + part,
				Params:   append(append([]routes.ParamToken(nil), p.Params...), tok),
			}
		}
		out = append(out, with...)
	}

	for i := range out {
		if out[i].Template == "" {
			out[i].Template = "/"
		}
	}
	return out
}

type comment struct {
	summary     string
	description string
}

// extractComments reads the doc comments of the handler funcs in file.
func (g *Generator) extractComments(file string) map[string]comment {
	out := make(map[string]comment)
	if g.routesDir == "" || file == "" {
		return out
	}

	f, err := parser.ParseFile(g.fset, filepath.Join(g.routesDir, filepath.FromSlash(file)), nil, parser.ParseComments)
	if err != nil {
		return out
	}

	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || fn.Doc == nil {
			continue
		}
		method, ok := routes.EndpointMethod(fn.Name.Name)
		if !ok {
			continue
		}

		var lines []string
		for _, c := range fn.Doc.List {
			text := strings.TrimPrefix(c.Text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
			text = strings.TrimSpace(text)
			if text != "" {
				lines = append(lines, text)
			}
		}
		if len(lines) == 0 {
			continue
		}

		c := comment{summary: lines[0]}
		if len(lines) > 1 {
			c.description = strings.Join(lines[1:], "\n")
		}
		out[method] = c
	}
	return out
}

// deriveTag returns the first literal segment of a route id.
func deriveTag(id string) string {
	for _, seg := range routes.ParseSegments(id) {
		if seg.Kind == routes.SegmentLiteral && !strings.HasPrefix(seg.Raw, "_") {
			return seg.Raw
		}
	}
	return "default"
}

func (g *Generator) buildOperation(entry routes.Entry, method string, params []routes.ParamToken, doc comment) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:     doc.summary,
		Description: doc.description,
		Tags:        []string{deriveTag(entry.ID)},
		OperationID: operationID(method, entry.Pattern),
		Responses:   openapi3.NewResponses(),
	}

	for _, tok := range params {
		description := fmt.Sprintf("%s parameter", tok.Name)
		if tok.CatchAll() {
			description = fmt.Sprintf("%s captures the rest of the path", tok.Name)
		}
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:        tok.Name,
				In:          "path",
				Required:    true,
				Description: description,
				Schema: &openapi3.SchemaRef{
					Value: &openapi3.Schema{
						Type: &openapi3.Types{"string"},
					},
				},
			},
		})
	}

	op.Responses.Set("200", &openapi3.ResponseRef{
		Value: &openapi3.Response{
			Description: openapi3.Ptr("Success"),
		},
	})

	hasBody := method == "POST" || method == "PUT" || method == "PATCH"
	if hasBody {
		op.Responses.Set("400", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Bad Request"),
			},
		})
		op.RequestBody = &openapi3.RequestBodyRef{
			Value: &openapi3.RequestBody{
				Description: "Request body",
				Required:    true,
				Content: openapi3.NewContentWithJSONSchema(&openapi3.Schema{
					Type: &openapi3.Types{"object"},
				}),
			},
		}
	}

	if len(params) > 0 && method != "POST" {
		op.Responses.Set("404", &openapi3.ResponseRef{
			Value: &openapi3.Response{
				Description: openapi3.Ptr("Not Found"),
			},
		})
	}

	return op
}

func operationID(method, pattern string) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(method))
	for _, word := range strings.FieldsFunc(pattern, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		b.WriteString(strings.ToUpper(word[:1]) + word[1:])
	}
	return b.String()
}

// Marshal encodes doc as "json" or "yaml".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return yaml.Marshal(doc)
	case "json", "":
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
}

// WriteToFile writes doc to path, picking the format from the extension
// when format is empty.
func WriteToFile(doc *openapi3.T, path, format string) error {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(path), ".")
	}
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
