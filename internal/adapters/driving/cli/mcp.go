package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/karmicdd/karmicdd-cli/internal/adapters/driving/mcp"
	"github.com/karmicdd/karmicdd-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
matches, read compatibility breakdowns and manage bookmarks.

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead; Prometheus metrics are then available
at /metrics on the same port. In stdio mode, --metrics starts a separate
metrics listener.

Examples:
  karmicdd mcp serve
  karmicdd mcp serve --port 8080
  karmicdd mcp serve --metrics :9090

Assistant configuration:
  {
    "mcpServers": {
      "karmicdd": {
        "command": "/path/to/karmicdd",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().String("metrics", "", "address for a Prometheus metrics listener in stdio mode")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Search:          searchService,
		Session:         sessionService,
		Compatibility:   compatibilityViewer,
		Recommendations: recommendationService,
		Bookmarks:       bookmarkService,
	}
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	metricsAddr, err := cmd.Flags().GetString("metrics")
	if err != nil {
		return fmt.Errorf("getting metrics flag: %w", err)
	}

	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr, metricsHandler)
	}

	if metricsAddr != "" && metricsHandler != nil {
		go serveMetrics(ctx, metricsAddr, metricsHandler)
	}
	return server.Run(ctx)
}

// serveMetrics exposes handler at /metrics until ctx is cancelled.
// Stdout carries the stdio transport, so failures only go to the log.
func serveMetrics(ctx context.Context, addr string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		srv.Close() //nolint:errcheck
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Warn("metrics listener on %s: %v", addr, err)
	}
}
