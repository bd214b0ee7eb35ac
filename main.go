package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/config"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/filedb"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/logging"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/server"
	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Flags override the environment.
	transport := flag.String("transport", cfg.Server.Transport, "Transport mode: stdio or http")
	port := flag.String("port", cfg.Server.Port, "HTTP port (only used with --transport http)")
	dataDir := flag.String("data-dir", cfg.Storage.DataDir, "Directory for the catalog database and the file tree")
	flag.Parse()

	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	store, err := storage.Open(*dataDir)
	if err != nil {
		log.Fatal("open catalog", zap.Error(err))
	}
	defer store.Close()

	files := filedb.NewService(store, filedb.OSDisk(*dataDir), filedb.Layout{Root: cfg.Storage.Root}, log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		log.Info("filedb MCP server starting (stdio)", zap.String("data_dir", *dataDir))
		if err := server.New(store, files, log).Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	case "http":
		addr := ":" + *port
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return server.New(store, files, log)
		}, nil)
		log.Info("filedb MCP server listening", zap.String("addr", addr), zap.String("data_dir", *dataDir))
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	default:
		log.Fatal("unknown transport (use stdio or http)", zap.String("transport", *transport))
	}
}
