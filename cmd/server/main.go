package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	grpclib "google.golang.org/grpc"

	"github.com/simaogato/wealthtrack/internal/adapter/amqp"
	grpcadapter "github.com/simaogato/wealthtrack/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack/internal/adapter/repository/file"
	"github.com/simaogato/wealthtrack/internal/adapter/repository/memory"
	"github.com/simaogato/wealthtrack/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthtrack/internal/adapter/repository/sqlite"
	"github.com/simaogato/wealthtrack/internal/config"
	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/dashboard"
	"github.com/simaogato/wealthtrack/internal/usecase/expense"
	"github.com/simaogato/wealthtrack/internal/usecase/importer"
	"github.com/simaogato/wealthtrack/internal/usecase/investment"
	"github.com/simaogato/wealthtrack/internal/usecase/seeder"
	"github.com/simaogato/wealthtrack/internal/usecase/store"
)

const cacheCleanupInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wealthtrack: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 1. Setup storage
	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}
	defer closeRepo()
	logger.Info("store opened", log.FieldOperation, log.OpStartup, log.FieldBackend, cfg.StoreBackend)

	// 2. Seed default libraries and load the document
	if err := seeder.NewDocumentSeeder(repo, logger).Seed(ctx); err != nil {
		return fmt.Errorf("seed document: %w", err)
	}
	st := store.NewStore(repo, logger)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	// 3. Initialize services
	investmentService := investment.NewInvestmentService(st, logger)
	expenseService := expense.NewExpenseService(st, logger)
	dashboardService := dashboard.NewDashboardService(st, logger, cfg.CacheSize, cfg.CacheTTL)
	importService := importer.NewImportService(st, logger)

	g, ctx := errgroup.WithContext(ctx)

	// 4. Optional change notifications
	if cfg.AMQPURL != "" {
		publisher, err := amqp.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return fmt.Errorf("connect AMQP: %w", err)
		}
		defer publisher.Close()
		unsubscribe := st.Subscribe(publisher.Handle)
		defer unsubscribe()
		g.Go(func() error { return publisher.Run(ctx) })
	}

	g.Go(func() error {
		dashboardService.RunCacheCleanup(ctx, cacheCleanupInterval)
		return nil
	})

	// 5. Start gRPC server
	grpcServer := grpclib.NewServer(grpclib.ChainUnaryInterceptor(
		grpcadapter.LoggingInterceptor(logger),
		grpcadapter.AuthInterceptor(cfg.APIToken),
	))
	grpcadapter.RegisterWealthTrackServiceServer(grpcServer,
		grpcadapter.NewServer(investmentService, expenseService, dashboardService, importService))

	addr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	g.Go(func() error {
		logger.Info("gRPC server listening", log.FieldOperation, log.OpStartup, "addr", addr)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpclib.ErrServerStopped) {
			return fmt.Errorf("serve gRPC: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down gracefully", log.FieldOperation, log.OpShutdown)
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("gRPC server stopped", log.FieldOperation, log.OpShutdown)
	return nil
}

// openRepository builds the document repository for the configured backend
// and a func releasing whatever it holds open
func openRepository(cfg *config.Config) (domain.DocumentRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		repo, err := sqlite.NewDocumentRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.BackendPostgres:
		db, err := postgres.NewDB(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewDocumentRepository(db), func() { _ = db.Close() }, nil
	case config.BackendMemory:
		return memory.NewDocumentRepository(), func() {}, nil
	default:
		return file.NewDocumentRepository(cfg.StoreFile), func() {}, nil
	}
}
