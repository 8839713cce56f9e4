// Package scanner discovers route files under a routes directory.
// It enforces the route path allow-list and extracts the exported symbols
// of each file using go/parser (.go) or a declaration scan (.templ).
package scanner

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// DefaultExtensions are the file extensions treated as route files.
var DefaultExtensions = []string{".go", ".templ"}

// templDeclRe matches exported top-level templ components and the Go
// funcs and types a templ file may declare alongside them.
var templDeclRe = regexp.MustCompile(`(?m)^(?:templ|func|type)\s+([A-Z][A-Za-z0-9_]*)\b`)

// Scanner walks a routes directory and collects route files.
type Scanner struct {
	routesDir  string
	extensions []string
	fset       *token.FileSet
	cache      *ExportCache
}

// Warning is a non-fatal issue encountered during scanning.
type Warning struct {
	FilePath string `json:"file"`
	Message  string `json:"message"`
}

// Result holds the files discovered by a scan.
type Result struct {
	// Files are the discovered route files, ordered by relative path
	Files []routes.SourceFile
	// Warnings are non-fatal issues (e.g. files that failed to parse)
	Warnings []Warning
}

// NewScanner creates a new Scanner for the given routes directory.
func NewScanner(routesDir string) *Scanner {
	return &Scanner{
		routesDir:  routesDir,
		extensions: DefaultExtensions,
		fset:       token.NewFileSet(),
	}
}

// SetExtensions overrides the extensions treated as route files.
func (s *Scanner) SetExtensions(exts []string) {
	if len(exts) > 0 {
		s.extensions = exts
	}
}

// SetCache makes the scanner reuse exports of unchanged files.
func (s *Scanner) SetCache(c *ExportCache) {
	s.cache = c
}

// Scan walks the routes directory.
//
// A missing routes directory is a RoutesDirectoryMissing error. A route file
// whose path falls outside the allow-list stops the scan with an
// InvalidRoutePath error; callers decide how to recover.
func (s *Scanner) Scan() (*Result, error) {
	info, err := os.Stat(s.routesDir)
	if err != nil {
		return nil, routes.RoutesDirectoryMissing(s.routesDir, err)
	}
	if !info.IsDir() {
		return nil, routes.RoutesDirectoryMissing(s.routesDir, nil)
	}

	result := &Result{}

	err = filepath.WalkDir(s.routesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.routesDir && IsPrivateFolder(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.IsRouteFile(d.Name()) {
			return nil
		}

		relPath, err := filepath.Rel(s.routesDir, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if err := routes.ValidatePath(relPath); err != nil {
			return err
		}

		exports, err := s.lookupExports(path, d)
		if err != nil {
			result.Warnings = append(result.Warnings, Warning{
				FilePath: path,
				Message:  err.Error(),
			})
		}

		result.Files = append(result.Files, routes.SourceFile{
			RelativePath: relPath,
			Exports:      exports,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(result.Files, func(i, j int) bool {
		return result.Files[i].RelativePath < result.Files[j].RelativePath
	})

	return result, nil
}

// IsPrivateFolder checks if a directory should be skipped during scanning.
// Hidden and underscore-prefixed folders hold colocated helpers.
func IsPrivateFolder(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// IsRouteFile reports whether a file name is a candidate route file.
func (s *Scanner) IsRouteFile(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	// templ writes its compiled output next to the source
	if strings.HasSuffix(name, "_templ.go") {
		return false
	}
	ext := filepath.Ext(name)
	for _, allowed := range s.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (s *Scanner) lookupExports(path string, d fs.DirEntry) ([]string, error) {
	info, err := d.Info()
	if err != nil {
		return s.exports(path)
	}
	if names, ok := s.cache.get(path, info.Size(), info.ModTime()); ok {
		return names, nil
	}

	names, err := s.exports(path)
	if err == nil {
		s.cache.add(path, info.Size(), info.ModTime(), names)
	}
	return names, err
}

func (s *Scanner) exports(path string) ([]string, error) {
	switch filepath.Ext(path) {
	case ".go":
		return s.goExports(path)
	case ".templ":
		return templExports(path)
	}
	return nil, nil
}

// goExports returns the exported top-level names of a Go file.
func (s *Scanner) goExports(path string) ([]string, error) {
	file, err := parser.ParseFile(s.fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}

	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			// methods are not route exports
			if d.Recv != nil || !d.Name.IsExported() {
				continue
			}
			names = append(names, d.Name.Name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch sp := spec.(type) {
				case *ast.TypeSpec:
					if sp.Name.IsExported() {
						names = append(names, sp.Name.Name)
					}
				case *ast.ValueSpec:
					for _, name := range sp.Names {
						if name.IsExported() {
							names = append(names, name.Name)
						}
					}
				}
			}
		}
	}
	return names, nil
}

// templExports returns the exported declarations of a templ file.
func templExports(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, m := range templDeclRe.FindAllStringSubmatch(string(content), -1) {
		names = append(names, m[1])
	}
	return names, nil
}
