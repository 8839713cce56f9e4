package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/typedroutes/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server for LLM integration",
	Long: `Start an MCP server over stdio that exposes typedroutes tools to LLM
agents: list routes, generate, build paths, create routes and show the
resolved configuration.

Add to your MCP client configuration:
  {
    "mcpServers": {
      "typedroutes": {
        "command": "typedroutes",
        "args": ["mcp", "serve"]
      }
    }
  }`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Run:   runMCPServe,
}

var mcpWorkdir string

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.AddCommand(mcpServeCmd)

	mcpServeCmd.Flags().StringVarP(&mcpWorkdir, "workdir", "w", "", "Project directory (default: --dir or the current directory)")
}

func runMCPServe(cmd *cobra.Command, args []string) {
	workdir := firstNonEmpty(mcpWorkdir, projectDir)
	if workdir == "" {
		wd, err := os.Getwd()
		if err != nil {
			exitWithError(err)
		}
		workdir = wd
	}
	abs, err := filepath.Abs(workdir)
	if err != nil {
		exitWithError(err)
	}

	// stdout belongs to the protocol
	if err := mcp.NewServer(abs).Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "mcp server error: %v\n", err)
		os.Exit(1)
	}
}
