package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/savings-backend/internal/adapter/cache/lru"
	"github.com/simaogato/savings-backend/internal/adapter/cache/rediscache"
	grpcadapter "github.com/simaogato/savings-backend/internal/adapter/grpc"
	"github.com/simaogato/savings-backend/internal/adapter/grpc/savingsv1"
	"github.com/simaogato/savings-backend/internal/adapter/repository/memory"
	"github.com/simaogato/savings-backend/internal/config"
	"github.com/simaogato/savings-backend/internal/domain"
	"github.com/simaogato/savings-backend/internal/log"
	"github.com/simaogato/savings-backend/internal/telemetry"
	"github.com/simaogato/savings-backend/internal/usecase/projection"
)

const (
	serviceName     = "savings-backend"
	shutdownTimeout = 10 * time.Second
	cacheSweepEvery = time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "savings server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logConfig := log.DefaultConfig()
	logConfig.Level = log.ParseLevel(cfg.LogLevel)
	logConfig.Format = cfg.LogFormat
	logger := log.New(logConfig)
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Tracing
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	tracingLogger := logger.WithComponent(log.ComponentTelemetry)
	if cfg.TracingEnabled() {
		tracingLogger.Info("exporting traces", "endpoint", cfg.OTelEndpoint)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			tracingLogger.Warn("tracing shutdown failed", log.FieldError, err)
		}
	}()

	// 3. Session history and result cache
	historyRepo := memory.NewHistoryRepository()

	cache, closeCache, err := newResultCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	// 4. Services
	projectionService := projection.NewProjectionService(historyRepo, cache, logger)

	// 5. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.StatsHandler(otelgrpc.NewServerHandler()),
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)

	savingsv1.RegisterSavingsServiceServer(grpcServer, grpcadapter.NewServer(projectionService))

	healthServer := health.NewServer()
	healthServer.SetServingStatus(savingsv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening",
			log.FieldOperation, log.OpStartup,
			log.FieldAddr, cfg.GRPCAddr,
			"cache_backend", cfg.CacheBackend,
			"tracing", cfg.TracingEnabled(),
		)
		serveErr <- grpcServer.Serve(lis)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		return fmt.Errorf("serve gRPC: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully", log.FieldOperation, log.OpShutdown)
	healthServer.Shutdown()
	stopGracefully(grpcServer, shutdownTimeout)
	logger.Info("gRPC server stopped", log.FieldOperation, log.OpShutdown)
	return nil
}

// newResultCache builds the configured projection cache.
// The returned close function is always safe to call.
func newResultCache(ctx context.Context, cfg *config.Config, logger *log.Logger) (domain.ResultCache, func(), error) {
	cacheLogger := logger.WithComponent(log.ComponentCache)

	switch cfg.CacheBackend {
	case config.CacheBackendMemory:
		cache := lru.New(cfg.CacheSize, cfg.CacheTTL)
		sweepCtx, cancel := context.WithCancel(ctx)
		go sweepExpired(sweepCtx, cache, cacheLogger)
		cacheLogger.Info("using in-memory result cache", "size", cfg.CacheSize, "ttl", cfg.CacheTTL.String())
		return cache, cancel, nil

	case config.CacheBackendRedis:
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		cache, err := rediscache.NewCache(connectCtx, cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect redis cache: %w", err)
		}
		cacheLogger.Info("using redis result cache", log.FieldAddr, cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
		return cache, func() {
			if err := cache.Close(); err != nil {
				cacheLogger.Warn("redis close failed", log.FieldError, err)
			}
		}, nil

	default:
		cacheLogger.Info("result cache disabled")
		return nil, func() {}, nil
	}
}

func sweepExpired(ctx context.Context, cache *lru.Cache, logger *log.Logger) {
	ticker := time.NewTicker(cacheSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.CleanExpired(); n > 0 {
				logger.Debug("expired cache entries removed", "count", n)
			}
		}
	}
}

// stopGracefully drains in-flight RPCs, forcing a stop after timeout
func stopGracefully(grpcServer *grpclib.Server, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		grpcServer.Stop()
	}
}
