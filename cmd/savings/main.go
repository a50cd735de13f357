// Command savings is the interactive console calculator for APY conversions
// and savings projections.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/simaogato/savings-backend/internal/adapter/cache/lru"
	"github.com/simaogato/savings-backend/internal/adapter/console"
	"github.com/simaogato/savings-backend/internal/adapter/repository/memory"
	"github.com/simaogato/savings-backend/internal/config"
	"github.com/simaogato/savings-backend/internal/log"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "savings: %v\n", err)
		os.Exit(1)
	}

	cacheSize := cfg.CacheSize
	if cfg.CacheBackend == config.CacheBackendNone {
		cacheSize = 0
	}

	logLevel := flag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", cfg.LogFormat, "log format (text or json)")
	flag.IntVar(&cacheSize, "cache-size", cacheSize, "number of projection results kept in memory, 0 disables the cache")
	flag.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "how long a cached projection stays valid")
	flag.Parse()

	// Logs go to stderr so they never interleave with prompts
	logConfig := log.DefaultConfig()
	logConfig.Level = log.ParseLevel(*logLevel)
	logConfig.Format = *logFormat
	logConfig.Component = log.ComponentConsole
	logConfig.Output = os.Stderr
	logger := log.New(logConfig)

	service := projection.NewProjectionService(memory.NewHistoryRepository(), nil, logger)
	if cacheSize > 0 && cfg.CacheTTL > 0 {
		service.Cache = lru.New(cacheSize, cfg.CacheTTL)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app := console.NewApp(service, os.Stdin, os.Stdout, logger)
	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "savings: %v\n", err)
		os.Exit(1)
	}
}
