package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/pocl/internal/httpapi"
	"github.com/aretw0/pocl/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the checkpoint store over HTTP or MCP",
	Long:  `Starts a read-only introspection server (--http) or an MCP tool server (--mcp) backed by the session store under <dir>/.pocl/sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		httpAddr, _ := cmd.Flags().GetString("http")
		mcpTransport, _ := cmd.Flags().GetString("mcp")

		if httpAddr == "" && mcpTransport == "" {
			return fmt.Errorf("specify --http <addr> or --mcp stdio")
		}
		if httpAddr != "" && mcpTransport != "" {
			return fmt.Errorf("--http and --mcp cannot be combined in one process; run two invocations")
		}

		st, err := sessionStore(cmd)
		if err != nil {
			return err
		}

		if mcpTransport != "" {
			if mcpTransport != "stdio" {
				return fmt.Errorf("unsupported --mcp transport %q: supported: stdio", mcpTransport)
			}
			srv := mcpserver.NewServer(st, nil)
			fmt.Fprintln(os.Stderr, "Starting pocl MCP server (stdio)...")
			return srv.ServeStdio()
		}

		handler := httpapi.NewHandler(st, nil)
		httpServer := &http.Server{Addr: httpAddr, Handler: handler}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting pocl HTTP server on %s\n", httpAddr)
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case sig := <-shutdown:
			fmt.Printf("\nShutdown signal received: %v\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			fmt.Println("pocl HTTP server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("http", "", "Address to serve the read-only HTTP introspection API on (e.g. :8080)")
	serveCmd.Flags().String("mcp", "", "MCP transport to serve on (only 'stdio' is supported)")
}
