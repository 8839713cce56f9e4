package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/openapi"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Generate an OpenAPI specification from endpoint routes",
	Long: `Generate an OpenAPI 3.1 specification from the routes that export HTTP
handlers (GET, POST, ...). Handler doc comments become summaries and
descriptions.

Use "-" as the output to print the document to stdout.

Examples:
  typedroutes openapi
  typedroutes openapi --output api.yaml --format yaml
  typedroutes openapi --title "My API" --api-version 2.0.0`,
	Run: runOpenAPI,
}

// Flags
var (
	openapiOutput    string
	openapiFormat    string
	openapiTitle     string
	openapiVersion   string
	openapiDesc      string
	openapiServerURL string
	openapiOpenAPI30 bool
)

func init() {
	rootCmd.AddCommand(openapiCmd)

	openapiCmd.Flags().String("routes", "", "Routes directory (overrides config)")
	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "", "Output file path (default: openapi.output or openapi.json)")
	openapiCmd.Flags().StringVarP(&openapiFormat, "format", "f", "", "Output format (json|yaml)")
	openapiCmd.Flags().StringVar(&openapiTitle, "title", "", "API title")
	openapiCmd.Flags().StringVar(&openapiVersion, "api-version", "", "API version")
	openapiCmd.Flags().StringVar(&openapiDesc, "description", "", "API description")
	openapiCmd.Flags().StringVar(&openapiServerURL, "server", "", "Server URL (e.g., http://localhost:3000)")
	openapiCmd.Flags().BoolVar(&openapiOpenAPI30, "openapi30", false, "Use OpenAPI 3.0.3 instead of 3.1.0")
}

func runOpenAPI(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	toStdout := openapiOutput == "-"
	quiet := jsonOutput || toStdout

	if !quiet {
		fmt.Printf("\n  %s OpenAPI Generator\n\n", cyan("typedroutes"))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	gen := generator.New(cfg, newLogger())
	gen.DryRun = true

	if !quiet {
		fmt.Printf("  → Scanning routes...\n")
	}

	res, err := gen.Run(context.Background())
	if err != nil {
		exitWithError(err)
	}

	apiCfg := openapi.Config{
		Title:       firstNonEmpty(openapiTitle, cfg.OpenAPI.Title),
		Version:     firstNonEmpty(openapiVersion, cfg.OpenAPI.Version),
		Description: firstNonEmpty(openapiDesc, cfg.OpenAPI.Description),
	}
	if openapiOpenAPI30 {
		apiCfg.OpenAPIVersion = "3.0.3"
	}
	if openapiServerURL != "" {
		apiCfg.Servers = []string{openapiServerURL}
	}

	doc := openapi.NewGenerator(cfg.RoutesPath, apiCfg).Generate(res.Entries, res.SearchParams)

	if toStdout {
		data, err := openapi.Marshal(doc, openapiFormat)
		if err != nil {
			exitWithError(err)
		}
		fmt.Println(string(data))
		return
	}

	output := firstNonEmpty(openapiOutput, cfg.OpenAPI.Output, "openapi.json")
	if err := openapi.WriteToFile(doc, output, openapiFormat); err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(OpenAPIOutput{
			Output: output,
			Format: formatOf(output, openapiFormat),
			Paths:  doc.Paths.Len(),
		})
		return
	}

	fmt.Printf("  %s Generated %d paths\n", green("✓"), doc.Paths.Len())
	fmt.Printf("  → %s\n\n", output)
}

func formatOf(output, format string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
