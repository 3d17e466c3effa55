// Package main provides the entry point for the mcp-hive server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "github.com/txn2/mcp-hive/internal/server"
	"github.com/txn2/mcp-hive/pkg/health"
	"github.com/txn2/mcp-hive/pkg/tools"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type serverOptions struct {
	configPath  string
	transport   string
	address     string
	showVersion bool
}

func parseFlags() serverOptions {
	opts := serverOptions{}
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.transport, "transport", "stdio", "Transport type: stdio, http")
	flag.StringVar(&opts.address, "address", ":8080", "Server address for HTTP transport")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func run() error {
	opts := parseFlags()

	if opts.showVersion {
		fmt.Printf("mcp-hive version %s\n", mcpserver.Version)
		return nil
	}
	if opts.configPath == "" {
		return fmt.Errorf("a configuration file is required (-config)")
	}

	ctx := setupSignalHandler()

	srv, toolkit, cfg, err := mcpserver.New(opts.configPath)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer func() { _ = toolkit.Close() }()

	applyConfigOverrides(cfg, &opts)

	return startServer(ctx, srv, toolkit, opts)
}

func applyConfigOverrides(cfg *mcpserver.Config, opts *serverOptions) {
	if cfg.Server.Transport != "" {
		opts.transport = cfg.Server.Transport
	}
	if cfg.Server.Address != "" {
		opts.address = cfg.Server.Address
	}
}

func startServer(ctx context.Context, srv *mcp.Server, toolkit *tools.Toolkit, opts serverOptions) error {
	switch opts.transport {
	case "stdio":
		slog.Info("starting mcp-hive", "transport", "stdio",
			"endpoint", toolkit.Client().Endpoint())
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil {
			return fmt.Errorf("serving stdio: %w", err)
		}
		return nil
	case "http":
		return serveHTTP(ctx, srv, toolkit, opts.address)
	default:
		return fmt.Errorf("unknown transport: %s", opts.transport)
	}
}

func serveHTTP(ctx context.Context, srv *mcp.Server, toolkit *tools.Toolkit, address string) error {
	checker := health.NewChecker()
	go checker.WaitForBackend(ctx, toolkit.Client())

	mux := http.NewServeMux()
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil))
	mux.HandleFunc("/healthz", checker.LivenessHandler())
	mux.HandleFunc("/readyz", checker.ReadinessHandler())

	httpServer := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting mcp-hive", "transport", "http", "address", address,
			"endpoint", toolkit.Client().Endpoint())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		checker.SetDraining()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	}
}
