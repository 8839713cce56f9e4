package scaffold

type routeTemplateData struct {
	Package      string
	Pattern      string
	Title        string
	Methods      []string
	Page         bool
	SearchParams bool
	Params       []paramInfo
}

var goRouteTemplate = `package {{.Package}}

import "net/http"
{{- if .SearchParams}}

// SearchParams are the query parameters accepted by {{.Pattern}}.
type SearchParams struct {
	Page int ` + "`query:\"page\"`" + `
}
{{- end}}
{{- if .Page}}

// Page renders {{.Pattern}}.
func Page(w http.ResponseWriter, r *http.Request) {
{{- range .Params}}
	{{.Ident}} := r.PathValue("{{.Name}}")
	_ = {{.Ident}}
{{- end}}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte("<h1>{{.Title}}</h1>"))
}
{{- end}}
{{- range .Methods}}

// {{.}} handles {{.}} {{$.Pattern}}
func {{.}}(w http.ResponseWriter, r *http.Request) {
{{- range $.Params}}
	{{.Ident}} := r.PathValue("{{.Name}}")
	_ = {{.Ident}}
{{- end}}
	w.WriteHeader(http.StatusNotImplemented)
}
{{- end}}
`

var templRouteTemplate = `package {{.Package}}

// Page renders {{.Pattern}}.
templ Page() {
	<h1>{{.Title}}</h1>
}
{{- if .SearchParams}}

// SearchParams are the query parameters accepted by {{.Pattern}}.
type SearchParams struct {
	Page int
}
{{- end}}
`
