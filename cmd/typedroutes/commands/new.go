package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create new route files",
}

var newRouteCmd = &cobra.Command{
	Use:   "route [path]",
	Short: "Create a new route file",
	Long: `Create a route file under the routes directory. The path uses the
routes conventions: [id] for a parameter, [[id]] for an optional one,
[...rest] for a catch-all and (group) for a pathless group.

Examples:
  typedroutes new route about --page
  typedroutes new route posts/[id] --methods GET,DELETE
  typedroutes new route "docs/[...rest]" --page --search-params
  typedroutes new route "(marketing)/pricing" --templ`,
	Args: cobra.ExactArgs(1),
	Run:  runNewRoute,
}

var (
	newMethods      string
	newPage         bool
	newSearchParams bool
	newTempl        bool
)

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.AddCommand(newRouteCmd)

	newRouteCmd.Flags().StringVarP(&newMethods, "methods", "m", "", "HTTP methods to export (comma-separated)")
	newRouteCmd.Flags().BoolVar(&newPage, "page", false, "Export a renderable Page")
	newRouteCmd.Flags().BoolVar(&newSearchParams, "search-params", false, "Export a SearchParams schema")
	newRouteCmd.Flags().BoolVar(&newTempl, "templ", false, "Write a .templ page instead of a .go file")
}

func runNewRoute(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	res, err := scaffold.GenerateRoute(scaffold.RouteConfig{
		Path:         args[0],
		Methods:      splitMethods(newMethods),
		Page:         newPage,
		SearchParams: newSearchParams,
		Templ:        newTempl,
		RoutesDir:    cfg.RoutesPath,
	})
	if err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(NewRouteOutput{Files: res.Files, ID: res.ID, Pattern: res.Pattern})
		return
	}

	fmt.Printf("\n  %s New route %s\n\n", cyan("typedroutes"), green(res.Pattern))
	for _, f := range res.Files {
		fmt.Printf("  %s Created %s\n", green("✓"), relPath(cfg.Root, f))
	}
	fmt.Printf("\n  %s\n\n", dim("Run 'typedroutes generate' to update the typed routes."))
}

func splitMethods(s string) []string {
	var methods []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			methods = append(methods, strings.ToUpper(m))
		}
	}
	return methods
}
