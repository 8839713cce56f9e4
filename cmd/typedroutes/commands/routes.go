package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List discovered routes",
	Long: `Scan the routes directory and print every route without writing any
files.

Examples:
  typedroutes routes
  typedroutes routes --tree
  typedroutes routes --json`,
	Run: runRoutes,
}

var routesTree bool

func init() {
	rootCmd.AddCommand(routesCmd)

	routesCmd.Flags().String("routes", "", "Routes directory (overrides config)")
	routesCmd.Flags().BoolVar(&routesTree, "tree", false, "Print the nested route tree")
}

func runRoutes(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	gen := generator.New(cfg, newLogger())
	gen.DryRun = true

	res, err := gen.Run(context.Background())
	if err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		out := newRoutesOutput(res)
		if routesTree {
			out.Tree = res.Tree
		}
		printSuccess(out)
		return
	}

	fmt.Printf("\n  %s Routes\n\n", cyan("typedroutes"))

	if res.Degraded != nil {
		fmt.Printf("  %s %s\n\n", yellow("!"), res.DegradedReason)
	}

	if len(res.Entries) == 0 {
		fmt.Printf("  %s\n\n", dim("No routes found in "+relPath(cfg.Root, cfg.RoutesPath)))
		return
	}

	if routesTree {
		printRouteTree(res.Tree)
	} else {
		printRouteTable(res)
	}

	fmt.Printf("\n  %s\n\n", dim(fmt.Sprintf("%d routes (%d static, %d dynamic)",
		len(res.Entries), len(res.Classification.Static), len(res.Classification.Dynamic))))
}

func printRouteTable(res *generator.Result) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	width := 0
	for _, e := range res.Entries {
		width = max(width, len(e.Pattern))
	}

	for _, e := range res.Entries {
		kind := green("static ")
		if routes.IsDynamic(e.Pattern) {
			kind = yellow("dynamic")
		}

		var details []string
		if e.HasDefault {
			details = append(details, "page")
		}
		details = append(details, e.Endpoints...)
		if e.SearchParams {
			details = append(details, "search-params")
		}

		fmt.Printf("  %s  %-*s  %s  %s\n", kind, width, e.Pattern,
			strings.Join(details, ","), dim(e.File))
	}
}

func printRouteTree(forest []*routes.Node) {
	dim := color.New(color.Faint).SprintFunc()

	routes.Walk(forest, func(n *routes.Node, depth int) {
		line := n.Pattern
		if line == "" {
			line = "/"
		}
		fmt.Printf("  %s%s  %s\n", strings.Repeat("  ", depth), line, dim(n.ID))
	})
}
