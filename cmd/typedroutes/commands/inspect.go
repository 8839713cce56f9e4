package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/inspect"
	"github.com/abdul-hamid-achik/typedroutes/pkg/watcher"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Browse the compiled route tree in a local web UI",
	Long: `Start a local server that shows the route tree, the route map and the
manifest of the last generation run. The JSON API is served under /api.

Examples:
  typedroutes inspect
  typedroutes inspect --addr 127.0.0.1:9000 --open
  typedroutes inspect --watch`,
	Run: runInspect,
}

var (
	inspectAddr  string
	inspectOpen  bool
	inspectWatch bool
)

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("routes", "", "Routes directory (overrides config)")
	inspectCmd.Flags().StringVar(&inspectAddr, "addr", "127.0.0.1:4321", "Address to listen on")
	inspectCmd.Flags().BoolVar(&inspectOpen, "open", false, "Open the inspector in a browser")
	inspectCmd.Flags().BoolVarP(&inspectWatch, "watch", "w", false, "Regenerate when the routes directory changes")
}

func runInspect(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger()
	gen := generator.New(cfg, log)
	gen.DryRun = !inspectWatch

	if !jsonOutput {
		fmt.Printf("\n  %s Inspector\n\n", cyan("typedroutes"))
	}

	// an invalid route set is still worth showing, the error is served by the API
	if _, err := gen.Run(ctx); err != nil && !jsonOutput {
		fmt.Printf("  %s %v\n", yellow("!"), err)
	}

	if inspectWatch {
		w := watcher.New(cfg.RoutesPath, func(ctx context.Context, changed []string) {
			if _, err := gen.Run(ctx); err != nil && !errors.Is(err, generator.ErrAlreadyRunning) {
				log.Error("%v", err)
			}
		},
			watcher.WithExtensions(cfg.Extensions),
			watcher.WithLogger(log),
		)
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				log.Error("watcher stopped: %v", err)
			}
		}()
	}

	srv := inspect.NewServer(gen, log)
	err = srv.Listen(ctx, inspectAddr, func(baseURL string) {
		if jsonOutput {
			printSuccess(map[string]string{"url": baseURL})
		} else {
			fmt.Printf("  %s Listening on %s\n", green("✓"), cyan(baseURL))
			fmt.Printf("  → API %s/api, metrics %s/metrics\n", baseURL, baseURL)
			fmt.Printf("  Press Ctrl+C to stop\n\n")
		}

		if inspectOpen {
			if err := browser.OpenURL(baseURL); err != nil && !jsonOutput {
				fmt.Printf("  %s Could not open browser. Please visit:\n", yellow("!"))
				fmt.Printf("  %s\n\n", cyan(baseURL))
			}
		}
	})
	if err != nil {
		exitWithError(err)
	}
}
