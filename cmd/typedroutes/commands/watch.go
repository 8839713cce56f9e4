package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/generator"
	"github.com/abdul-hamid-achik/typedroutes/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate typed routes whenever the routes directory changes",
	Long: `Generate once, then watch the routes directory and regenerate on every
add, change, unlink, addDir and unlinkDir event. Bursts of events are
debounced into a single run.

Examples:
  typedroutes watch
  typedroutes watch --debounce 500ms`,
	Run: runWatch,
}

var watchDebounce time.Duration

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().String("routes", "", "Routes directory (overrides config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watcher.DefaultDebounce, "Debounce window for file events")
}

func runWatch(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	cfg, err := loadConfig(cmd)
	if err != nil {
		exitWithError(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger()
	gen := generator.New(cfg, log)

	if !jsonOutput {
		fmt.Printf("\n  %s Watch\n\n", cyan("typedroutes"))
		fmt.Printf("  → Watching %s\n\n", relPath(cfg.Root, cfg.RoutesPath))
	}

	report := func(res *generator.Result, err error) {
		if jsonOutput {
			if err != nil {
				printJSONError(err)
			} else {
				printSuccess(newGenerateOutput(res))
			}
			return
		}
		if err != nil {
			fmt.Printf("  %s %v\n\n", red("Error:"), err)
			return
		}
		printGenerateSummary(cfg, res, false)
	}

	report(gen.Run(ctx))

	w := watcher.New(cfg.RoutesPath, func(ctx context.Context, changed []string) {
		if !jsonOutput {
			for _, p := range changed {
				fmt.Printf("  %s %s\n", dim("changed"), relPath(cfg.Root, p))
			}
		}
		res, err := gen.Run(ctx)
		if errors.Is(err, generator.ErrAlreadyRunning) {
			return
		}
		report(res, err)
	},
		watcher.WithDebounce(watchDebounce),
		watcher.WithExtensions(cfg.Extensions),
		watcher.WithLogger(log),
	)

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		exitWithError(err)
	}

	if !jsonOutput {
		fmt.Printf("\n  %s\n\n", dim("stopped"))
	}
}
