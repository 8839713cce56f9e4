package routes

import (
	"reflect"
	"testing"
)

func TestParseSegment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind SegmentKind
		wantName string
		wantPart string
	}{
		{"literal", "users", SegmentLiteral, "users", "users"},
		{"literal with dot", "sitemap.xml", SegmentLiteral, "sitemap.xml", "sitemap.xml"},
		{"index", "index", SegmentIndex, "", ""},
		{"group", "(admin)", SegmentGroup, "admin", ""},
		{"required", "[id]", SegmentRequired, "id", ":id"},
		{"required with dash", "[user-id]", SegmentRequired, "user-id", ":user-id"},
		{"optional", "[[id]]", SegmentOptional, "id", ":id?"},
		{"catch-all", "[...rest]", SegmentCatchAll, "rest", "*rest"},
		{"optional catch-all", "[[...rest]]", SegmentOptionalCatchAll, "rest", "*rest"},
		{"empty brackets", "[]", SegmentLiteral, "[]", "[]"},
		{"partial bracket", "a[b]", SegmentLiteral, "a[b]", "a[b]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSegment(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("ParseSegment(%q).Kind = %v, want %v", tt.input, got.Kind, tt.wantKind)
			}
			if got.Name != tt.wantName {
				t.Errorf("ParseSegment(%q).Name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
			if got.Raw != tt.input {
				t.Errorf("ParseSegment(%q).Raw = %q, want %q", tt.input, got.Raw, tt.input)
			}
			if part := got.PatternPart(); part != tt.wantPart {
				t.Errorf("ParseSegment(%q).PatternPart() = %q, want %q", tt.input, part, tt.wantPart)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		path        string
		wantID      string
		wantPattern string
	}{
		{"a/[id]/b.go", "a/[id]/b", "/a/:id/b"},
		{"a/[...rest].go", "a/[...rest]", "/a/*rest"},
		{"a/[[id]].go", "a/[[id]]", "/a/:id?"},
		{"a/(group)/b.go", "a/(group)/b", "/a/b"},
		{"posts/index.go", "posts/index", "/posts"},
		{"index.go", "index", "/"},
		{"index.templ", "index", "/"},
		{"(marketing)/index.go", "(marketing)/index", "/"},
		{"(marketing).go", "(marketing)", "/"},
		{"about.go", "about", "/about"},
		{`blog\[slug].go`, "blog/[slug]", "/blog/:slug"},
		{"sitemap.xml.go", "sitemap.xml", "/sitemap.xml"},
		{"users/[id]/posts/[postId].go", "users/[id]/posts/[postId]", "/users/:id/posts/:postId"},
		{"a/[...rest]", "a/[...rest]", "/a/*rest"},
		{"a/[[...rest]]", "a/[[...rest]]", "/a/*rest"},
		{"a/[id]/b", "a/[id]/b", "/a/:id/b"},
		{"a/[[id]]", "a/[[id]]", "/a/:id?"},
		{"(shop)/[...slug]", "(shop)/[...slug]", "/*slug"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Normalize(SourceFile{RelativePath: tt.path})
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.path, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("Normalize(%q).ID = %q, want %q", tt.path, got.ID, tt.wantID)
			}
			if got.Pattern != tt.wantPattern {
				t.Errorf("Normalize(%q).Pattern = %q, want %q", tt.path, got.Pattern, tt.wantPattern)
			}
			if got.File != tt.path {
				t.Errorf("Normalize(%q).File = %q", tt.path, got.File)
			}
		})
	}
}

func TestNormalize_Exports(t *testing.T) {
	got, err := Normalize(SourceFile{
		RelativePath: "posts/[id].go",
		Exports:      []string{"Post", "Page", "GET", "Helper", "Get", "SearchParams", "DELETE"},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if !got.HasDefault {
		t.Error("HasDefault should be true when Page is exported")
	}
	if !got.SearchParams {
		t.Error("SearchParams should be true when SearchParams is exported")
	}
	want := []string{"GET", "POST", "DELETE"}
	if !reflect.DeepEqual(got.Endpoints, want) {
		t.Errorf("Endpoints = %v, want %v", got.Endpoints, want)
	}

	layout, err := Normalize(SourceFile{RelativePath: "posts.go", Exports: []string{"Layout"}})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if layout.HasDefault || len(layout.Endpoints) != 0 {
		t.Errorf("layout-only file should have no default and no endpoints, got %+v", layout)
	}
}

func TestNormalize_InvalidPath(t *testing.T) {
	paths := []string{
		"posts/[id] copy.go",
		"posts/$id.go",
		"café.go",
		"a:b.go",
		"",
	}

	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			_, err := Normalize(SourceFile{RelativePath: p})
			if err == nil {
				t.Fatalf("Normalize(%q) expected error", p)
			}
			if !IsKind(err, KindInvalidRoutePath) {
				t.Errorf("Normalize(%q) error kind = %v, want %s", p, err, KindInvalidRoutePath)
			}
		})
	}
}

func TestNormalizePattern(t *testing.T) {
	tests := map[string]string{
		"":            "/",
		"/":           "/",
		"posts":       "/posts",
		"/posts/":     "/posts",
		"/posts/:id/": "/posts/:id",
	}

	for input, want := range tests {
		if got := NormalizePattern(input); got != want {
			t.Errorf("NormalizePattern(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEndpointMethod(t *testing.T) {
	tests := []struct {
		name   string
		method string
		ok     bool
	}{
		{"GET", "GET", true},
		{"Delete", "DELETE", true},
		{"Options", "OPTIONS", true},
		{"get", "", false},
		{"Page", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, ok := EndpointMethod(tt.name)
			if method != tt.method || ok != tt.ok {
				t.Errorf("EndpointMethod(%q) = %q, %v; want %q, %v", tt.name, method, ok, tt.method, tt.ok)
			}
		})
	}
}

func TestTrimExt(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a/[...rest].go", "a/[...rest]"},
		{"a/[...rest]", "a/[...rest]"},
		{"a/[[...rest]]", "a/[[...rest]]"},
		{"a/(v1.2)", "a/(v1.2)"},
		{"sitemap.xml.go", "sitemap.xml"},
		{"v1.2/index", "v1.2/index"},
		{"index.templ", "index"},
	}

	for _, tt := range tests {
		if got := TrimExt(tt.in); got != tt.want {
			t.Errorf("TrimExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
