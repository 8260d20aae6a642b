package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"unity-handler-report/classifier"
	"unity-handler-report/config"
	"unity-handler-report/fetcher"
	"unity-handler-report/metrics"
	"unity-handler-report/report"
	"unity-handler-report/resolver"
)

func main() {
	// Define flags
	envFile := flag.String("env", "", "Path to a .env file (defaults to ./.env when present)")
	configFile := flag.String("config", "", "Path to an optional config.toml")
	output := flag.String("output", "", "CSV output path (overrides config)")
	format := flag.String("format", "text", "Stdout format: text|json|csv")
	insecure := flag.Bool("insecure", false, "Disable TLS certificate verification")
	debug := flag.Bool("debug", false, "Enable debug logging")
	metricsAddr := flag.String("metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	pushGateway := flag.String("push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	wait := flag.Bool("wait", false, "Keep process running after completion to allow for metric scraping")

	// Parse command-line flags
	flag.Parse()

	// Validate format enum
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[*format] {
		fmt.Printf("Error: format must be one of: text, json, csv (got: %s)\n", *format)
		os.Exit(1)
	}

	logger, err := buildLogger(*debug)
	if err != nil {
		fmt.Printf("Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Start metrics server if address provided
	if *metricsAddr != "" {
		go func() {
			http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info("metrics server listening", zap.String("addr", *metricsAddr))
			if err := http.ListenAndServe(*metricsAddr, nil); err != nil {
				logger.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	// A ./.env is picked up when present, like the original deployment relied on.
	if *envFile == "" {
		if _, statErr := os.Stat(".env"); statErr == nil {
			*envFile = ".env"
		}
	}

	cfg, err := config.Load(*envFile, *configFile)
	if err != nil {
		logger.Error("configuration error, ensure credentials are set", zap.Error(err))
		os.Exit(1)
	}
	if *output != "" {
		cfg.OutputPath = *output
	}
	if *insecure {
		cfg.InsecureSkipVerify = true
	}

	run(cfg, *format, logger)

	// Handle metrics pushing or waiting
	if *pushGateway != "" {
		jobName := "unity_handler_report"
		if err := push.New(*pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error("error pushing to Pushgateway", zap.Error(err))
		} else {
			logger.Info("metrics successfully pushed to Pushgateway")
		}
	}

	if *wait && *metricsAddr != "" {
		fmt.Println("\nProcess kept alive for metric scraping. Press Ctrl+C to exit.")
		// Wait for interrupt signal
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		fmt.Println("\nExiting...")
	} else if *metricsAddr != "" && *pushGateway == "" {
		// Small delay to allow final scrape if not waiting explicitly
		// but typically batch jobs should use pushgateway or wait
		time.Sleep(100 * time.Millisecond)
	}
}

// run executes the fetch→classify→resolve→report pipeline. Everything past
// configuration is contained: partial data produces a partial report and the
// process still exits 0.
func run(cfg *config.Config, format string, logger *zap.Logger) {
	logger.Info("starting report run", zap.String("base_url", cfg.BaseURL))
	metrics.ResetRunGauges()

	ctx := context.Background()
	client := fetcher.New(cfg, logger)

	handlers := classifier.Classify(client.CallHandlers(ctx), logger)
	schedules := client.Schedules(ctx)

	if len(handlers) == 0 && len(schedules) == 0 {
		logger.Error("could not retrieve required data, check logs for details")
		return
	}

	index := client.AllScheduleSetMembers(ctx, handlers)
	rows := resolver.Resolve(handlers, schedules, index, logger)

	// Output based on format
	switch format {
	case "json":
		fmt.Print(report.FormatJSON(rows))
	case "csv":
		fmt.Print(report.FormatCSV(rows))
	default: // "text"
		fmt.Print(report.FormatText(rows))
	}

	if err := report.WriteCSVFile(cfg.OutputPath, rows); err != nil {
		logger.Error("error writing report file", zap.String("path", cfg.OutputPath), zap.Error(err))
		return
	}
	logger.Info("results saved", zap.String("path", cfg.OutputPath), zap.Int("rows", len(rows)))
}

func buildLogger(debug bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if debug {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logCfg.Build()
}
