package emit

var routesTemplate = `{{.Header}}

package {{.Package}}

import (
	"net/url"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// Route is a URL pattern served by the routes directory.
type Route string

const (
{{- range .Routes}}
	{{.Ident}} Route = {{quote .Pattern}}
{{- end}}
)

// StaticRoutes are the routes without parameters.
var StaticRoutes = []Route{
{{- range .Static}}
	{{.}},
{{- end}}
}

// DynamicRoutes are the routes with at least one parameter.
var DynamicRoutes = []Route{
{{- range .Dynamic}}
	{{.}},
{{- end}}
}

// RouteParams lists the sanitized parameter names of each dynamic route.
var RouteParams = map[Route][]string{
{{- range .Routes}}
{{- if .Params}}
	{{.Ident}}: { {{- range $i, $p := .Params}}{{if $i}}, {{end}}{{quote $p}}{{end -}} },
{{- end}}
{{- end}}
}

// Tree is the nested route forest.
var Tree = []*routes.Node{
{{- range .Tree}}
	{{template "node" .}},
{{- end}}
}

// RoutesMap mirrors the route hierarchy keyed by sanitized segment.
var RoutesMap = {{.RouteMap}}

var replacements = routes.NewReplacements({{.Overrides}})

// Path fills the parameters of route and appends query.
func Path(route Route, params map[string]string, query url.Values) (string, error) {
	return routes.BuildPath(string(route), params, query, replacements)
}

{{define "node"}}{
	Pattern: {{quote .Pattern}},
	ID:      {{quote .ID}},
{{- if .Payload}}
	Payload: {{quote .Payload}},
{{- end}}
{{- if .Children}}
	Children: []*routes.Node{
	{{- range .Children}}
		{{template "node" .}},
	{{- end}}
	},
{{- end}}
}{{end}}`

var searchParamsTemplate = `{{.Header}}

package {{.Package}}

// SearchParamsSchemas maps route patterns to their search params schema.
var SearchParamsSchemas = map[string]string{
{{- range .Schemas}}
	{{quote .Pattern}}: {{quote .Placeholder}},
{{- end}}
}
`
