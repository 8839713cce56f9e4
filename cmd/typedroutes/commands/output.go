package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// JSONResponse is the standard response wrapper for JSON output
type JSONResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// GenerateOutput represents the JSON output for the generate command
type GenerateOutput struct {
	Routes   int      `json:"routes"`
	Static   int      `json:"static"`
	Dynamic  int      `json:"dynamic"`
	Files    []string `json:"files"`
	Degraded string   `json:"degraded,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Duration string   `json:"duration"`
}

// RoutesOutput represents the JSON output for the routes command
type RoutesOutput struct {
	Routes      []RouteOutput  `json:"routes"`
	Tree        []*routes.Node `json:"tree,omitempty"`
	TotalRoutes int            `json:"total_routes"`
	Degraded    string         `json:"degraded,omitempty"`
}

// RouteOutput represents a single route in JSON output
type RouteOutput struct {
	Pattern      string   `json:"pattern"`
	ID           string   `json:"id"`
	Dynamic      bool     `json:"dynamic"`
	Params       []string `json:"params,omitempty"`
	Methods      []string `json:"methods,omitempty"`
	Component    string   `json:"component,omitempty"`
	SearchParams string   `json:"search_params,omitempty"`
}

// NewRouteOutput represents the JSON output for the new command
type NewRouteOutput struct {
	Files   []string `json:"files"`
	ID      string   `json:"id"`
	Pattern string   `json:"pattern"`
}

// InitOutput represents the JSON output for the init command
type InitOutput struct {
	ConfigPath string `json:"config_path"`
	RoutesPath string `json:"routes_path"`
}

// OpenAPIOutput represents the JSON output for the openapi command
type OpenAPIOutput struct {
	Output string `json:"output"`
	Format string `json:"format"`
	Paths  int    `json:"paths"`
}

func newGenerateOutput(res *generator.Result) GenerateOutput {
	out := GenerateOutput{
		Routes:   len(res.Entries),
		Static:   len(res.Classification.Static),
		Dynamic:  len(res.Classification.Dynamic),
		Files:    res.Files,
		Degraded: res.DegradedReason,
		Duration: res.Duration.String(),
	}
	if out.Files == nil {
		out.Files = []string{}
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %s", w.FilePath, w.Message))
	}
	return out
}

func newRoutesOutput(res *generator.Result) RoutesOutput {
	schemas := make(map[string]string, len(res.SearchParams))
	for _, s := range res.SearchParams {
		schemas[s.Pattern] = s.Placeholder
	}

	out := RoutesOutput{
		Routes:      make([]RouteOutput, 0, len(res.Entries)),
		TotalRoutes: len(res.Entries),
		Degraded:    res.DegradedReason,
	}
	for _, e := range res.Entries {
		out.Routes = append(out.Routes, RouteOutput{
			Pattern:      e.Pattern,
			ID:           e.ID,
			Dynamic:      routes.IsDynamic(e.Pattern),
			Params:       res.Classification.Params[e.Pattern],
			Methods:      e.Endpoints,
			Component:    e.Payload,
			SearchParams: schemas[e.Pattern],
		})
	}
	return out
}

// printJSON outputs data as JSON to stdout
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

// printSuccess outputs a successful JSON response
func printSuccess(data any) {
	printJSON(JSONResponse{Success: true, Data: data})
}

// printJSONError outputs an error as JSON
func printJSONError(err error) {
	printJSON(JSONResponse{Success: false, Error: err.Error()})
}
