// Package generator runs route generation end to end: discovery,
// normalization, compilation and emission.
package generator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abdul-hamid-achik/typedroutes/pkg/config"
	"github.com/abdul-hamid-achik/typedroutes/pkg/emit"
	"github.com/abdul-hamid-achik/typedroutes/pkg/logger"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
	"github.com/abdul-hamid-achik/typedroutes/pkg/scanner"
)

// ErrAlreadyRunning is returned when Run is called while a run is active.
var ErrAlreadyRunning = errors.New("generation already in progress")

// Result holds the outcome of one generation run.
type Result struct {
	*routes.Compilation

	// Degraded is the discovery error that reset the route set to empty
	Degraded error `json:"-"`
	// DegradedReason is Degraded as text
	DegradedReason string `json:"degraded,omitempty"`
	// Warnings are non-fatal scan issues
	Warnings []scanner.Warning `json:"warnings,omitempty"`
	// Files are the output files rewritten by this run
	Files []string `json:"files"`
	// Duration is how long the run took
	Duration time.Duration `json:"duration"`
}

// Generator owns the configuration and the in-flight guard shared by every
// run.
type Generator struct {
	cfg     *config.Config
	table   *routes.Replacements
	log     *logger.Logger
	exports *scanner.ExportCache

	running atomic.Bool

	mu       sync.RWMutex
	last     *Result
	lastErr  error
	watchers []func(*Result, error)

	// DryRun skips writing output files
	DryRun bool
}

// New creates a Generator. A nil logger discards output.
func New(cfg *config.Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Discard()
	}
	exports, err := scanner.NewExportCache(scanner.DefaultCacheSize)
	if err != nil {
		log.Warn("export cache disabled: %v", err)
	}
	table := cfg.Table()
	if err := table.Validate(); err != nil {
		log.Warn("replacement overrides may not reverse cleanly: %v", err)
	}
	return &Generator{
		cfg:     cfg,
		table:   table,
		log:     log,
		exports: exports,
	}
}

// Config returns the generator configuration.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// Table returns the replacement table in use.
func (g *Generator) Table() *routes.Replacements {
	return g.table
}

// Running reports whether a run is in flight.
func (g *Generator) Running() bool {
	return g.running.Load()
}

// Last returns the most recent run result and error.
func (g *Generator) Last() (*Result, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.last, g.lastErr
}

// OnRun registers fn to be called after every completed run.
func (g *Generator) OnRun(fn func(*Result, error)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.watchers = append(g.watchers, fn)
}

// Run performs one generation. A run started while another is active is
// dropped with ErrAlreadyRunning.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if !g.running.CompareAndSwap(false, true) {
		g.log.Warn("generation already in progress, skipping")
		return nil, ErrAlreadyRunning
	}
	defer g.running.Store(false)

	res, err := g.run(ctx)

	g.mu.Lock()
	if err == nil {
		g.last = res
	}
	g.lastErr = err
	watchers := append(([]func(*Result, error))(nil), g.watchers...)
	g.mu.Unlock()

	for _, fn := range watchers {
		fn(res, err)
	}
	return res, err
}

func (g *Generator) run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{}

	var entries []routes.Entry
	if len(g.cfg.Routes) > 0 {
		entries = g.explicitEntries()
		g.log.Debug("using %d configured routes", len(entries))
	} else {
		discovered, warnings, err := g.discover()
		switch {
		case routes.IsKind(err, routes.KindInvalidRoutePath):
			g.log.Error("%v", err)
			res.Degraded = err
			res.DegradedReason = err.Error()
		case err != nil:
			return nil, err
		}
		entries = discovered
		res.Warnings = warnings
		for _, w := range warnings {
			g.log.Warn("%s: %s", w.FilePath, w.Message)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compilation, err := routes.Compile(entries, g.table, g.cfg.TreeOptions())
	if err != nil {
		return nil, err
	}
	compilation.SearchParams = g.searchParams(entries)
	res.Compilation = compilation

	if !g.DryRun {
		files, err := g.emit(compilation)
		if err != nil {
			return nil, err
		}
		res.Files = files
	}

	res.Duration = time.Since(start)
	g.log.Info("generated %d routes (%d static, %d dynamic) in %s",
		len(entries), len(compilation.Classification.Static),
		len(compilation.Classification.Dynamic), res.Duration.Round(time.Millisecond))
	return res, nil
}

// discover scans the routes directory and normalizes every file. An
// InvalidRoutePath error comes back with an empty entry set.
func (g *Generator) discover() ([]routes.Entry, []scanner.Warning, error) {
	s := scanner.NewScanner(g.cfg.RoutesPath)
	s.SetCache(g.exports)
	if len(g.cfg.Extensions) > 0 {
		s.SetExtensions(g.cfg.Extensions)
	}

	scan, err := s.Scan()
	if err != nil {
		return []routes.Entry{}, nil, err
	}

	entries := make([]routes.Entry, 0, len(scan.Files))
	for _, file := range scan.Files {
		entry, err := routes.Normalize(file)
		if err != nil {
			return []routes.Entry{}, scan.Warnings, err
		}
		if entry.HasDefault {
			entry.Payload = g.componentRef(filepath.Join(g.cfg.RoutesPath, filepath.FromSlash(file.RelativePath)))
		}
		entries = append(entries, entry)
	}
	return entries, scan.Warnings, nil
}

func (g *Generator) explicitEntries() []routes.Entry {
	entries := make([]routes.Entry, 0, len(g.cfg.Routes))
	for _, def := range g.cfg.Routes {
		pattern := routes.NormalizePattern(def.Path)
		id := def.ID
		if id == "" {
			id = strings.TrimPrefix(pattern, "/")
			if id == "" {
				id = "index"
			}
		}
		entry := routes.Entry{ID: id, Pattern: pattern}
		if def.Component != "" {
			component := def.Component
			if !filepath.IsAbs(component) {
				component = filepath.Join(g.cfg.Root, component)
			}
			entry.Payload = g.componentRef(component)
			entry.HasDefault = true
			entry.File = entry.Payload
		}
		entries = append(entries, entry)
	}
	return entries
}

// componentRef returns path relative to the project root, "/" separated.
func (g *Generator) componentRef(path string) string {
	rel, err := filepath.Rel(g.cfg.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// searchParams associates discovered SearchParams exports and configured
// schemas with their patterns. Configured schemas win.
func (g *Generator) searchParams(entries []routes.Entry) []routes.SearchParamsSchema {
	var out []routes.SearchParamsSchema
	index := make(map[string]int)

	add := func(pattern, placeholder string) {
		if i, ok := index[pattern]; ok {
			out[i].Placeholder = placeholder
			return
		}
		index[pattern] = len(out)
		out = append(out, routes.SearchParamsSchema{Pattern: pattern, Placeholder: placeholder})
	}

	for _, e := range entries {
		if !e.SearchParams {
			continue
		}
		ref := g.componentRef(filepath.Join(g.cfg.RoutesPath, filepath.FromSlash(e.File)))
		add(e.Pattern, ref+"#"+routes.SearchParamsExport)
	}
	for _, s := range g.cfg.SearchParamsSchemas {
		add(routes.NormalizePattern(s.Pattern), s.Schema)
	}
	return out
}

func (g *Generator) emit(c *routes.Compilation) ([]string, error) {
	opts := emit.Options{
		Package:   g.cfg.Package,
		Overrides: g.cfg.ReplacementOverrides(),
	}

	type output struct {
		path   string
		render func() ([]byte, error)
	}
	outputs := []output{
		{g.cfg.TypedRoutesPath, func() ([]byte, error) { return emit.GoSource(c, opts) }},
		{g.cfg.ManifestPath, func() ([]byte, error) { return emit.Manifest(c) }},
	}
	if len(c.SearchParams) > 0 {
		outputs = append(outputs, output{g.cfg.SearchParamsPath, func() ([]byte, error) { return emit.SearchParamsSource(c, opts) }})
	}

	var files []string
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		data, err := o.render()
		if err != nil {
			return nil, err
		}
		changed, err := emit.WriteFile(o.path, data)
		if err != nil {
			return nil, err
		}
		if changed {
			g.log.Debug("wrote %s", g.componentRef(o.path))
			files = append(files, o.path)
		}
	}
	return files, nil
}
