package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-size-mcp/internal/client"
	"github.com/ironsheep/image-size-mcp/internal/config"
	"github.com/ironsheep/image-size-mcp/internal/imagesize"
	"github.com/ironsheep/image-size-mcp/internal/logging"
	"github.com/ironsheep/image-size-mcp/internal/probe"
	"github.com/ironsheep/image-size-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and --help before touching the environment
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-size-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}

	// stdout is for MCP protocol and size output
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := probe.NewMetrics(nil)
	prober := probe.New(client.NewRestyClient(cfg),
		probe.WithLogger(logger),
		probe.WithMetrics(metrics),
		probe.WithChunkSize(cfg.Probe.ChunkSize),
		probe.WithMaxBytes(cfg.Probe.MaxBytes),
	)

	if len(os.Args) > 1 && os.Args[1] == "size" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: image-size-mcp size <path|url>")
			os.Exit(2)
		}
		if err := runSize(ctx, prober, cfg.Probe.Timeout, os.Args[2]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if cfg.Metrics.Addr != "" {
		go serveMetrics(cfg.Metrics.Addr, metrics, logger)
	}

	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("image size MCP server starting")

	srv := server.New(prober,
		server.WithLogger(logger),
		server.WithTimeout(cfg.Probe.Timeout),
		server.WithVersion(Version),
	)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// runSize prints the dimensions of one file or URL as JSON.
func runSize(ctx context.Context, prober *probe.Prober, timeout time.Duration, target string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var (
		dims *imagesize.Dimensions
		err  error
	)
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		dims, err = prober.Probe(ctx, target)
	} else {
		var f *os.File
		f, err = os.Open(target)
		if err != nil {
			return err
		}
		defer f.Close()
		dims, err = prober.ProbeReader(ctx, f)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dims)
}

func serveMetrics(addr string, metrics *probe.Metrics, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics listener stopped")
	}
}

func printHelp() {
	fmt.Println("image-size-mcp - MCP server for image dimensions")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  image-size-mcp                    Serve MCP over stdin/stdout")
	fmt.Println("  image-size-mcp size <path|url>    Print one image's dimensions as JSON")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  IMAGE_MCP_LOG_LEVEL=info        debug, info, warn or error")
	fmt.Println("  IMAGE_MCP_LOG_FORMAT=json       json or console")
	fmt.Println("  IMAGE_MCP_USER_AGENT            User-Agent for remote probes")
	fmt.Println("  IMAGE_MCP_ACCEPT=image/*        Accept header for remote probes")
	fmt.Println("  IMAGE_MCP_AUTH_TOKEN            Authorization header value")
	fmt.Println("  IMAGE_MCP_COOKIE                Cookie as name=value")
	fmt.Println("  IMAGE_MCP_PROBE_TIMEOUT=30s     Deadline for each probe")
	fmt.Println("  IMAGE_MCP_CHUNK_SIZE=16384      Bytes per read")
	fmt.Println("  IMAGE_MCP_MAX_BYTES=0           Give up after this many bytes (0 = never)")
	fmt.Println("  IMAGE_MCP_METRICS_ADDR          Serve Prometheus /metrics here")
	fmt.Println()
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
