package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/config"
	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate typed routes once",
	Long: `Scan the routes directory and write the typed routes file, the JSON
manifest and, when any route declares one, the search-params file.

Files whose content did not change are left untouched.

Examples:
  typedroutes generate
  typedroutes generate --routes app/routes
  typedroutes generate --dry-run --json`,
	Run: runGenerate,
}

var generateDryRun bool

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("routes", "", "Routes directory (overrides config)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Compile without writing files")
}

func runGenerate(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()

	if !jsonOutput {
		fmt.Printf("\n  %s Generate\n\n", cyan("typedroutes"))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	gen := generator.New(cfg, newLogger())
	gen.DryRun = generateDryRun

	res, err := gen.Run(context.Background())
	if err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(newGenerateOutput(res))
		return
	}
	printGenerateSummary(cfg, res, generateDryRun)
}

func printGenerateSummary(cfg *config.Config, res *generator.Result, dryRun bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if res.Degraded != nil {
		fmt.Printf("  %s %s\n", yellow("!"), res.DegradedReason)
	}
	for _, w := range res.Warnings {
		fmt.Printf("  %s %s: %s\n", yellow("!"), w.FilePath, w.Message)
	}

	fmt.Printf("  %s %d routes (%d static, %d dynamic) %s\n",
		green("✓"), len(res.Entries), len(res.Classification.Static),
		len(res.Classification.Dynamic), dim("in "+res.Duration.String()))

	switch {
	case dryRun:
		fmt.Printf("  %s\n", dim("dry run, no files written"))
	case len(res.Files) == 0:
		fmt.Printf("  %s\n", dim("output is up to date"))
	default:
		for _, f := range res.Files {
			fmt.Printf("  → %s\n", relPath(cfg.Root, f))
		}
	}
	fmt.Println()
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
