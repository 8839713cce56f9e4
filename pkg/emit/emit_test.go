package emit

import (
	"encoding/json"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

func compile(t *testing.T) *routes.Compilation {
	t.Helper()

	table := routes.NewReplacements(nil)
	var entries []routes.Entry
	for _, id := range []string{"index", "posts/index", "posts/[id]", "docs/[...rest]", "(auth)/sign-in"} {
		entries = append(entries, routes.Entry{
			ID:      id,
			Pattern: routes.BuildPattern(routes.ParseSegments(id)),
			Payload: "routes/" + id + ".go",
		})
	}

	c, err := routes.Compile(entries, table, routes.DefaultTreeOptions)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	c.SearchParams = []routes.SearchParamsSchema{
		{Pattern: "/posts/:id", Placeholder: "routes/posts/[id].go#SearchParams"},
		{Pattern: "/", Placeholder: "Home"},
	}
	return c
}

// flat collapses whitespace so assertions ignore gofmt alignment.
func flat(src []byte) string {
	return strings.Join(strings.Fields(string(src)), " ")
}

func TestGoSource(t *testing.T) {
	src, err := GoSource(compile(t), Options{Package: "paths"})
	if err != nil {
		t.Fatalf("GoSource() error = %v", err)
	}

	if _, err := parser.ParseFile(token.NewFileSet(), "routes_gen.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}

	out := flat(src)
	wants := []string{
		Header,
		"package paths",
		`RouteRoot Route = "/"`,
		`RoutePosts Route = "/posts"`,
		`RoutePostsID Route = "/posts/:id"`,
		`RouteDocsRest Route = "/docs/*rest"`,
		`RouteSignIn Route = "/sign-in"`,
		"var StaticRoutes = []Route{ RouteRoot, RoutePosts, RouteSignIn, }",
		"var DynamicRoutes = []Route{ RoutePostsID, RouteDocsRest, }",
		`RoutePostsID: {"id"},`,
		`RouteDocsRest: {"rest"},`,
		`"sign_dash_in": routes.RouteMap{ "route": "/sign-in", },`,
		"routes.NewReplacements(nil)",
		`Payload: "routes/posts/[id].go",`,
		"func Path(route Route, params map[string]string, query url.Values) (string, error)",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q\n%s", want, src)
		}
	}
}

func TestGoSource_Overrides(t *testing.T) {
	src, err := GoSource(compile(t), Options{
		Package:   "paths",
		Overrides: map[string]string{"-": "_", ":": "$"},
	})
	if err != nil {
		t.Fatalf("GoSource() error = %v", err)
	}

	out := flat(src)
	if !strings.Contains(out, `routes.NewReplacements(map[string]string{ "-": "_", ":": "$", })`) {
		t.Errorf("overrides not embedded:\n%s", src)
	}
}

func TestGoSource_Empty(t *testing.T) {
	c, err := routes.Compile(nil, routes.NewReplacements(nil), routes.DefaultTreeOptions)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	src, err := GoSource(c, Options{Package: "paths"})
	if err != nil {
		t.Fatalf("GoSource() error = %v", err)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), "routes_gen.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
}

func TestSearchParamsSource(t *testing.T) {
	src, err := SearchParamsSource(compile(t), Options{Package: "paths"})
	if err != nil {
		t.Fatalf("SearchParamsSource() error = %v", err)
	}

	out := flat(src)
	want := `var SearchParamsSchemas = map[string]string{ "/": "Home", "/posts/:id": "routes/posts/[id].go#SearchParams", }`
	if !strings.Contains(out, want) {
		t.Errorf("got:\n%s\nwant to contain %q", src, want)
	}
}

func TestManifest(t *testing.T) {
	data, err := Manifest(compile(t))
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	var decoded struct {
		SchemaVersion int            `json:"schemaVersion"`
		Entries       []routes.Entry `json:"entries"`
		Routes        []struct {
			Path     string            `json:"path"`
			Children []json.RawMessage `json:"children"`
		} `json:"routes"`
		Classification routes.Classification `json:"classification"`
		RoutesMap      map[string]any        `json:"routesMap"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}

	if decoded.SchemaVersion != 1 {
		t.Errorf("schemaVersion = %d, want 1", decoded.SchemaVersion)
	}
	if len(decoded.Entries) != 5 {
		t.Errorf("len(entries) = %d, want 5", len(decoded.Entries))
	}
	if len(decoded.Classification.Dynamic) != 2 {
		t.Errorf("dynamic = %v, want 2 patterns", decoded.Classification.Dynamic)
	}
	if decoded.RoutesMap["route"] != "/" {
		t.Errorf("routesMap.route = %v, want /", decoded.RoutesMap["route"])
	}
}

func TestIdent(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"/", "RouteRoot"},
		{"/about", "RouteAbout"},
		{"/posts/:id", "RoutePostsID"},
		{"/posts/:id?", "RoutePostsID"},
		{"/docs/*rest", "RouteDocsRest"},
		{"/sign-in", "RouteSignIn"},
		{"/api/v1.users", "RouteAPIV1Users"},
		{"/2024", "Route2024"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := Ident(tt.pattern); got != tt.want {
				t.Errorf("Ident(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRouteConsts_Collisions(t *testing.T) {
	c := &routes.Compilation{
		Classification: &routes.Classification{
			Static:  []string{"/posts/id"},
			Dynamic: []string{"/posts/:id"},
			Params:  map[string][]string{"/posts/:id": {"id"}},
		},
	}

	consts := routeConsts(c)
	if len(consts) != 2 {
		t.Fatalf("len = %d, want 2", len(consts))
	}
	if consts[0].Ident != "RoutePostsID" || consts[1].Ident != "RoutePostsID2" {
		t.Errorf("idents = %q, %q", consts[0].Ident, consts[1].Ident)
	}
}

func TestRouteConsts_SuffixDoesNotShadow(t *testing.T) {
	tests := []struct {
		name    string
		static  []string
		dynamic []string
		want    []string
	}{
		{
			name:    "suffixed before natural",
			static:  []string{"/posts/id"},
			dynamic: []string{"/posts/:id", "/posts/:id/2"},
			want:    []string{"RoutePostsID", "RoutePostsID3", "RoutePostsID2"},
		},
		{
			name:    "natural before suffixed",
			static:  []string{"/posts/id", "/posts/id/2"},
			dynamic: []string{"/posts/:id"},
			want:    []string{"RoutePostsID", "RoutePostsID2", "RoutePostsID3"},
		},
		{
			name:   "three way",
			static: []string{"/a-b", "/a/b", "/ab2", "/a_b"},
			want:   []string{"RouteAB", "RouteAB2", "RouteAb2", "RouteAB3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &routes.Compilation{
				Classification: &routes.Classification{Static: tt.static, Dynamic: tt.dynamic},
			}

			seen := make(map[string]bool)
			for i, rc := range routeConsts(c) {
				if seen[rc.Ident] {
					t.Errorf("duplicate ident %s", rc.Ident)
				}
				seen[rc.Ident] = true
				if rc.Ident != tt.want[i] {
					t.Errorf("ident[%d] (%s) = %s, want %s", i, rc.Pattern, rc.Ident, tt.want[i])
				}
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen", "routes.json")

	changed, err := WriteFile(path, []byte("a"))
	if err != nil || !changed {
		t.Fatalf("WriteFile() = %v, %v; want true, nil", changed, err)
	}

	changed, err = WriteFile(path, []byte("a"))
	if err != nil || changed {
		t.Errorf("WriteFile() unchanged = %v, %v; want false, nil", changed, err)
	}

	changed, err = WriteFile(path, []byte("b"))
	if err != nil || !changed {
		t.Errorf("WriteFile() changed = %v, %v; want true, nil", changed, err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "b" {
		t.Errorf("content = %q, want %q", data, "b")
	}
}
