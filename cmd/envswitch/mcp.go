package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/envswitch"
	"github.com/aretw0/envswitch/internal/cli"
	"github.com/aretw0/envswitch/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the environments as MCP tools so agents can list and switch them.

Supported Transports:
- stdio (default): Uses Standard Input/Output.
- sse: Uses Server-Sent Events over HTTP.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		opts := optionsFrom(cmd)
		// Stdout carries JSON-RPC.
		opts.Out = io.Discard
		log.SetOutput(os.Stderr)

		return withApp(opts, func(app *cli.App) error {
			srv := mcp.NewServer(app.Engine, envswitch.Version)

			switch transport {
			case "stdio":
				app.Logger.Info("Starting envswitch MCP Server (Stdio)")
				return srv.ServeStdio()
			case "sse":
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()

				err := srv.ServeSSE(ctx, port)
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			default:
				return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8081, "Port for the SSE transport")
}
