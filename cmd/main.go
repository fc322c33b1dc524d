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

	"pantry/internal/api"
	"pantry/internal/config"
	"pantry/internal/grocery"
	"pantry/internal/importer"
	"pantry/internal/monitoring"
)

var (
	port        = flag.Int("port", 0, "API server port (overrides config)")
	metricsPort = flag.Int("metrics-port", 0, "Metrics server port (overrides config)")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
	importFile  = flag.String("import", "", "Purchase history file to seed the engine with")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *metricsPort != 0 {
		cfg.Metrics.Port = *metricsPort
	}

	// Build the suggestion engine
	extras := make([]grocery.Category, 0, len(cfg.Engine.ExtraPerishables))
	for _, c := range cfg.Engine.ExtraPerishables {
		extras = append(extras, grocery.Category(c))
	}
	builder := grocery.NewWithConfig(grocery.Config{
		MinSuggestions:   cfg.Engine.MinSuggestions,
		ExtraPerishables: extras,
	})

	// Optionally seed from a history file
	if *importFile != "" {
		report, err := importer.ImportFile(*importFile, builder)
		if err != nil {
			log.Fatalf("Failed to import %s: %v", *importFile, err)
		}
		log.Printf("Imported %d purchases (%d rows rejected) from %s",
			report.Records, len(report.Errors), *importFile)
		for _, e := range report.Errors {
			log.Printf("  line %d: %s", e.Line, e.Message)
		}
	}

	metrics := monitoring.New()
	server := api.NewServer(builder, metrics, cfg)

	// Start metrics server
	if cfg.Metrics.Enabled {
		go startMetricsServer(metrics, cfg.Metrics.Port)
	}

	// Start API server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func startMetricsServer(metrics *monitoring.Metrics, port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
