package scanner

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", rel, err)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()

	writeFile(t, root, "index.go", `package routes

func Page() string { return "home" }
`)
	writeFile(t, root, "posts/[id].go", `package posts

type SearchParams struct{ Tab string }

var Title = "post"

func GET() error  { return nil }
func Page() string { return "post" }
func helper()      {}

type handler struct{}

func (handler) Exported() {}
`)
	writeFile(t, root, "(auth)/login.templ", `package auth

templ Page() {
	<form></form>
}

templ field(name string) {
	<input name={ name }/>
}
`)
	writeFile(t, root, "posts/[id]_test.go", "package posts\n")
	writeFile(t, root, "posts/page_templ.go", "package posts\n")
	writeFile(t, root, "_components/button.go", "package components\n")
	writeFile(t, root, ".cache/x.go", "package cache\n")
	writeFile(t, root, "styles.css", "body {}\n")

	result, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var paths []string
	for _, f := range result.Files {
		paths = append(paths, f.RelativePath)
	}
	wantPaths := []string{"(auth)/login.templ", "index.go", "posts/[id].go"}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Fatalf("paths = %v, want %v", paths, wantPaths)
	}

	wantExports := map[string][]string{
		"(auth)/login.templ": {"Page"},
		"index.go":           {"Page"},
		"posts/[id].go":      {"SearchParams", "Title", "GET", "Page"},
	}
	for _, f := range result.Files {
		if !reflect.DeepEqual(f.Exports, wantExports[f.RelativePath]) {
			t.Errorf("Exports(%s) = %v, want %v", f.RelativePath, f.Exports, wantExports[f.RelativePath])
		}
	}

	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestScan_ParseWarning(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "broken.go", "package broken\n\nfunc {")

	result, err := NewScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(result.Files))
	}
	if len(result.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, want 1", len(result.Warnings))
	}
}

func TestScan_InvalidPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.go", "package routes\n")
	writeFile(t, root, "bad name.go", "package routes\n")

	_, err := NewScanner(root).Scan()
	if !routes.IsKind(err, routes.KindInvalidRoutePath) {
		t.Errorf("Scan() error = %v, want %s", err, routes.KindInvalidRoutePath)
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "missing")).Scan()
	if !routes.IsKind(err, routes.KindRoutesDirectoryMissing) {
		t.Errorf("Scan() error = %v, want %s", err, routes.KindRoutesDirectoryMissing)
	}

	file := filepath.Join(t.TempDir(), "file.go")
	if err := os.WriteFile(file, []byte("package x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = NewScanner(file).Scan()
	if !routes.IsKind(err, routes.KindRoutesDirectoryMissing) {
		t.Errorf("Scan() on a file error = %v, want %s", err, routes.KindRoutesDirectoryMissing)
	}
}

func TestScan_Extensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package routes\n")
	writeFile(t, root, "b.templ", "package routes\n")

	s := NewScanner(root)
	s.SetExtensions([]string{".templ"})

	result, err := s.Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].RelativePath != "b.templ" {
		t.Errorf("Files = %+v, want only b.templ", result.Files)
	}
}

func TestIsPrivateFolder(t *testing.T) {
	tests := map[string]bool{
		"_components": true,
		".git":        true,
		"posts":       false,
		"[id]":        false,
		"(auth)":      false,
	}
	for name, want := range tests {
		if got := IsPrivateFolder(name); got != want {
			t.Errorf("IsPrivateFolder(%q) = %v, want %v", name, got, want)
		}
	}
}
