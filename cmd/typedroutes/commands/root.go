// Package commands provides the CLI commands for typedroutes.
package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/internal/version"
	"github.com/abdul-hamid-achik/typedroutes/pkg/config"
	"github.com/abdul-hamid-achik/typedroutes/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "typedroutes",
	Short: "typedroutes - typed routes from a routes directory",
	Long: `typedroutes compiles a file-system routes directory into typed route
constants, a nested route tree, a route map and a JSON manifest.

  routes/index.go          ->  /
  routes/posts/[id].go     ->  /posts/:id
  routes/docs/[...rest].go ->  /docs/*rest
  routes/(auth)/login.go   ->  /login

Quick Start:
  typedroutes init         Write typedroutes.yaml
  typedroutes generate     Generate typed routes once
  typedroutes watch        Regenerate on every change
  typedroutes routes       List discovered routes
  typedroutes inspect      Browse the route tree in a browser`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Global flags
var (
	jsonOutput bool
	configFile string
	projectDir string
	logLevel   string
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for automation and LLM agents)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default: typedroutes.yaml in the project dir)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "Project directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error|off)")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{File: configFile, Dir: projectDir})
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("routes"); f != nil && f.Changed {
		cfg.RoutesPath = f.Value.String()
		if err := cfg.Resolve(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger writes to stderr so --json output on stdout stays parseable.
func newLogger() *logger.Logger {
	level := logger.LevelFromEnv()
	if logLevel != "" {
		level = logger.ParseLogLevel(logLevel)
	}
	if jsonOutput && level < logger.LogLevelError {
		level = logger.LogLevelError
	}
	log := logger.New(os.Stderr, level)
	log.SetTimestamps(true)
	return log
}

// exitWithError prints err in the active output mode and exits.
func exitWithError(err error) {
	red := color.New(color.FgRed).SprintFunc()

	if jsonOutput {
		printJSONError(err)
	} else {
		fmt.Printf("  %s %v\n\n", red("Error:"), err)
	}
	os.Exit(1)
}
