package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gnews-io/gnews-io-mcp-server/internal/config"
	"github.com/gnews-io/gnews-io-mcp-server/internal/gnews"
	"github.com/gnews-io/gnews-io-mcp-server/internal/mcp"
	"github.com/gnews-io/gnews-io-mcp-server/internal/metrics"
	"github.com/gnews-io/gnews-io-mcp-server/internal/proxy"
	"github.com/gnews-io/gnews-io-mcp-server/internal/proxy/handler"
)

func main() {
	configPath := flag.String("config", "", "path to config YAML (optional, defaults apply without one)")
	stdio := flag.Bool("stdio", false, "serve MCP over stdio instead of HTTP")
	flag.Parse()

	// .env is a convenience for local runs; absence is not an error.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
	}

	client := gnews.NewClient(cfg.Upstream.APIBase, cfg.Upstream.Timeout(), cfg.Upstream.UserAgent)
	dispatcher := &mcp.Dispatcher{Client: client, Metrics: recorder}
	server := mcp.NewServer(dispatcher)

	if *stdio {
		// stdout carries protocol frames only; log already writes to stderr.
		if err := server.Run(context.Background(), &sdkmcp.StdioTransport{}); err != nil {
			log.Fatalf("stdio server: %v", err)
		}
		return
	}

	handlers := &handler.Handlers{
		Version:      mcp.Version,
		UpstreamBase: cfg.Upstream.APIBase,
	}

	var metricsHandler http.Handler
	if recorder != nil {
		metricsHandler = recorder.Handler()
	}

	srv := proxy.NewServer(proxy.ServerConfig{
		Handlers:         handlers,
		MCPStreamHandler: mcp.NewStreamableHTTPHandler(server),
		MCPSSEHandler:    mcp.NewSSEHandler(server),
		RESTHandler:      (&mcp.RESTHandler{Dispatcher: dispatcher}).Handler(),
		MetricsHandler:   metricsHandler,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("gnews-mcp listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
