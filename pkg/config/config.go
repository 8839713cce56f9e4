// Package config loads typedroutes configuration from typedroutes.yaml,
// TYPEDROUTES_* environment variables and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

// FileName is the config file name without extension.
const FileName = "typedroutes"

// Defaults
const (
	DefaultRoutesPath       = "routes"
	DefaultTypedRoutesPath  = "typedroutes/routes_gen.go"
	DefaultManifestPath     = "typedroutes/routes.gen.json"
	DefaultSearchParamsPath = "typedroutes/search_params_gen.go"
)

// Config is the resolved generator configuration.
type Config struct {
	// Root is the project root. Relative paths below resolve against it.
	Root string `mapstructure:"root" yaml:"root,omitempty"`
	// RoutesPath is the routes directory
	RoutesPath string `mapstructure:"routesPath" yaml:"routesPath"`
	// TypedRoutesPath is the generated Go file
	TypedRoutesPath string `mapstructure:"typedRoutesPath" yaml:"typedRoutesPath"`
	// ManifestPath is the generated JSON manifest
	ManifestPath string `mapstructure:"manifestPath" yaml:"manifestPath"`
	// SearchParamsPath is the generated search-params Go file
	SearchParamsPath string `mapstructure:"searchParamsPath" yaml:"searchParamsPath"`
	// Package is the Go package of generated files (default: output dir name)
	Package string `mapstructure:"package" yaml:"package,omitempty"`
	// Extensions are the route file extensions
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`
	// Replacements override the default replacement table
	Replacements []Replacement `mapstructure:"replacements" yaml:"replacements,omitempty"`
	// Routes is an explicit route list that bypasses discovery
	Routes []RouteDefinition `mapstructure:"routes" yaml:"routes,omitempty"`
	// SearchParamsSchemas are caller supplied schema placeholders per pattern
	SearchParamsSchemas []SearchParamsSchema `mapstructure:"searchParamsSchemas" yaml:"searchParamsSchemas,omitempty"`
	// Tree holds the route tree policies
	Tree TreeConfig `mapstructure:"tree" yaml:"tree"`
	// OpenAPI configures the openapi command
	OpenAPI OpenAPIConfig `mapstructure:"openapi" yaml:"openapi,omitempty"`

	// File is the config file that was read, if any
	File string `mapstructure:"-" yaml:"-"`
}

// Replacement overrides one entry of the replacement table.
// A list is used instead of a map because viper splits map keys on ".".
type Replacement struct {
	From string `mapstructure:"from" yaml:"from"`
	To   string `mapstructure:"to" yaml:"to"`
}

// RouteDefinition is an explicitly configured route.
type RouteDefinition struct {
	// Path is the route pattern (e.g., "/posts/:id")
	Path string `mapstructure:"path" yaml:"path"`
	// Component is the component file, relative to Root
	Component string `mapstructure:"component" yaml:"component"`
	// ID is the hierarchy key; defaults to Path
	ID string `mapstructure:"id" yaml:"id,omitempty"`
}

// SearchParamsSchema associates a pattern with a schema placeholder.
type SearchParamsSchema struct {
	Pattern string `mapstructure:"pattern" yaml:"pattern"`
	Schema  string `mapstructure:"schema" yaml:"schema"`
}

// TreeConfig mirrors routes.TreeOptions.
type TreeConfig struct {
	StripParentPattern bool `mapstructure:"stripParentPattern" yaml:"stripParentPattern"`
	PruneEmptyLeaves   bool `mapstructure:"pruneEmptyLeaves" yaml:"pruneEmptyLeaves"`
}

// OpenAPIConfig configures OpenAPI generation.
type OpenAPIConfig struct {
	Title       string `mapstructure:"title" yaml:"title,omitempty"`
	Version     string `mapstructure:"version" yaml:"version,omitempty"`
	Description string `mapstructure:"description" yaml:"description,omitempty"`
	Output      string `mapstructure:"output" yaml:"output,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		RoutesPath:       DefaultRoutesPath,
		TypedRoutesPath:  DefaultTypedRoutesPath,
		ManifestPath:     DefaultManifestPath,
		SearchParamsPath: DefaultSearchParamsPath,
		Tree: TreeConfig{
			StripParentPattern: routes.DefaultTreeOptions.StripParentPattern,
			PruneEmptyLeaves:   routes.DefaultTreeOptions.PruneEmptyLeaves,
		},
	}
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// File is an explicit config file. Empty means look for
	// typedroutes.yaml in Dir.
	File string
	// Dir is the directory searched for the config file (default ".")
	Dir string
}

// Load reads the configuration and resolves every path to an absolute one.
// A missing config file is not an error. A .env file in Dir is loaded first;
// variables already set in the environment win.
func Load(opts LoadOptions) (*Config, error) {
	if err := loadDotEnv(opts.Dir); err != nil {
		return nil, err
	}

	v := newViper()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		dir := opts.Dir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Root == "" {
		if cfg.File != "" {
			cfg.Root = filepath.Dir(cfg.File)
		} else if opts.Dir != "" {
			cfg.Root = opts.Dir
		}
	}

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(dir string) error {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("TYPEDROUTES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Default()
	v.SetDefault("routesPath", d.RoutesPath)
	v.SetDefault("typedRoutesPath", d.TypedRoutesPath)
	v.SetDefault("manifestPath", d.ManifestPath)
	v.SetDefault("searchParamsPath", d.SearchParamsPath)
	v.SetDefault("tree.stripParentPattern", d.Tree.StripParentPattern)
	v.SetDefault("tree.pruneEmptyLeaves", d.Tree.PruneEmptyLeaves)
	// registered so AutomaticEnv can see them during Unmarshal
	v.SetDefault("root", "")
	v.SetDefault("package", "")
	return v
}

// Resolve makes Root absolute (against the working directory) and every
// other path absolute against Root.
func (c *Config) Resolve() error {
	if c.Root == "" {
		c.Root = "."
	}
	if !filepath.IsAbs(c.Root) {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve root: %w", err)
		}
		c.Root = filepath.Join(wd, c.Root)
	}
	c.Root = filepath.Clean(c.Root)

	c.RoutesPath = c.resolve(c.RoutesPath)
	c.TypedRoutesPath = c.resolve(c.TypedRoutesPath)
	c.ManifestPath = c.resolve(c.ManifestPath)
	c.SearchParamsPath = c.resolve(c.SearchParamsPath)
	if c.OpenAPI.Output != "" {
		c.OpenAPI.Output = c.resolve(c.OpenAPI.Output)
	}

	if c.Package == "" && c.TypedRoutesPath != "" {
		c.Package = PackageName(filepath.Base(filepath.Dir(c.TypedRoutesPath)))
	}
	return nil
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// ReplacementOverrides returns the configured overrides as a map.
func (c *Config) ReplacementOverrides() map[string]string {
	if len(c.Replacements) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.Replacements))
	for _, r := range c.Replacements {
		out[r.From] = r.To
	}
	return out
}

// Table builds the replacement table for this configuration.
func (c *Config) Table() *routes.Replacements {
	return routes.NewReplacements(c.ReplacementOverrides())
}

// TreeOptions returns the route tree policies.
func (c *Config) TreeOptions() routes.TreeOptions {
	return routes.TreeOptions{
		StripParentPattern: c.Tree.StripParentPattern,
		PruneEmptyLeaves:   c.Tree.PruneEmptyLeaves,
	}
}

// Write stores cfg as YAML at path.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// PackageName converts a directory name to a valid Go package name.
func PackageName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				b.WriteString("pkg")
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "typedroutes"
	}
	return b.String()
}
