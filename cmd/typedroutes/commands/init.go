package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a typedroutes.yaml config file",
	Long: `Create typedroutes.yaml in the project directory. On a terminal you are
prompted for the routes directory and the output paths; use --yes to
accept the defaults.

Examples:
  typedroutes init
  typedroutes init --yes
  typedroutes init --routes app/routes --force`,
	Run: runInit,
}

var (
	initYes   bool
	initForce bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("routes", "", "Routes directory")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults without prompting")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	dir := firstNonEmpty(projectDir, ".")
	path := firstNonEmpty(configFile, filepath.Join(dir, config.FileName+".yaml"))

	if _, err := os.Stat(path); err == nil && !initForce {
		exitWithError(fmt.Errorf("%s already exists (use --force to overwrite)", path))
	}

	if !jsonOutput {
		fmt.Printf("\n  %s Init\n\n", cyan("typedroutes"))
	}

	cfg := config.Default()
	if routesDir, _ := cmd.Flags().GetString("routes"); routesDir != "" {
		cfg.RoutesPath = routesDir
	}

	if !initYes && !jsonOutput && isatty.IsTerminal(os.Stdin.Fd()) {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Routes directory").
					Description("Directory scanned for route files").
					Value(&cfg.RoutesPath),
				huh.NewInput().
					Title("Typed routes file").
					Description("Generated Go file with route constants").
					Value(&cfg.TypedRoutesPath),
				huh.NewInput().
					Title("Manifest file").
					Description("Generated JSON manifest").
					Value(&cfg.ManifestPath),
			),
		)
		if err := form.Run(); err != nil {
			fmt.Printf("  %s Cancelled\n\n", yellow("!"))
			return
		}
	}

	if err := config.Write(path, cfg); err != nil {
		exitWithError(err)
	}

	if jsonOutput {
		printSuccess(InitOutput{ConfigPath: path, RoutesPath: cfg.RoutesPath})
		return
	}

	fmt.Printf("  %s Created %s\n\n", green("✓"), path)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    typedroutes new index --page\n")
	fmt.Printf("    typedroutes generate\n\n")
}
