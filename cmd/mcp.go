package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kubesh/internal/config"
	"kubesh/internal/mcpserver"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve kubesh tools over the Model Context Protocol",
		Long: `Runs an MCP server on stdin/stdout exposing cluster inspection tools
(list_contexts, list_pods, get_logs) and port-forward management
(start_port_forward, list_port_forwards, stop_port_forward), so MCP
clients like agents and editors can use kubesh without a terminal.

Diagnostics go to stderr; stdout carries only the protocol.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	initLogging(settings.LogLevel)

	return mcpserver.New(rootCmd.Version).ServeStdio()
}
