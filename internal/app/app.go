package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	pb "github.com/godilite/overlay-server/api/v1"
	"github.com/godilite/overlay-server/internal/admin"
	"github.com/godilite/overlay-server/internal/config"
	handler "github.com/godilite/overlay-server/internal/grpc"
	"github.com/godilite/overlay-server/internal/metrics"
	"github.com/godilite/overlay-server/internal/repository"
	"github.com/godilite/overlay-server/internal/service"
	"github.com/godilite/overlay-server/pkg/cache"
	dbbuilder "github.com/godilite/overlay-server/pkg/database"
	grpcsrv "github.com/godilite/overlay-server/pkg/grpc/server"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	logger      *zap.Logger
	dbPool      *sqlx.DB
	cache       *cache.Cache
	grpcServer  *grpcsrv.Server
	adminServer *admin.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("driver", cfg.DBDriver), zap.String("path", cfg.DBPath))

	if err := repository.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migration failed: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	widgetService := service.NewOverlayWidgetService(
		service.NewCellMappingResolver(repository.NewOverlayRepository(dbPool)),
		service.NewScopeIntersector(repository.NewApplicationRepository(dbPool)),
		service.NewAssessmentRatingFetcher(repository.NewRatingRepository(dbPool)),
		service.NewCostIndicatorFetcher(repository.NewCostRepository(dbPool), cfg.CostYear),
		logger,
		cfg.DBTimeout,
	)
	diagramService := service.NewFlowDiagramService(repository.NewFlowDiagramRepository(dbPool), logger, cfg.DBTimeout)

	grpcHandlers := handler.NewGRPCHandlers(
		widgetService,
		diagramService,
		repository.ApplicationSelector,
		cacheClient,
		logger,
		cfg.CacheTTL,
	)

	grpcServer, err := grpcsrv.New(
		grpcsrv.WithPort(cfg.GRPCPort),
		grpcsrv.WithLogger(logger),
		grpcsrv.WithLogging(true),
		grpcsrv.WithRecovery(true),
		grpcsrv.WithUnaryInterceptors(metrics.UnaryServerInterceptor()),
		grpcsrv.WithReflection(cfg.GRPCReflectionEnabled),
	)
	if err != nil {
		cacheClient.Close()
		dbPool.Close()
		return nil, fmt.Errorf("failed to create gRPC server: %w", err)
	}

	grpcServer.RegisterServiceWithHealth(pb.OverlayWidgetsServiceName, func(s *grpc.Server) {
		pb.RegisterOverlayWidgetsServer(s, grpcHandlers)
	})

	adminServer := admin.NewServer(cfg.AdminAddr, logger, map[string]admin.Checker{
		"database": admin.CheckerFunc(dbPool.PingContext),
		"cache":    cacheClient,
	})

	return &App{
		logger:      logger,
		dbPool:      dbPool,
		cache:       cacheClient,
		grpcServer:  grpcServer,
		adminServer: adminServer,
	}, nil
}

// Run starts the application and blocks until ctx is done or a shutdown
// signal is received.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("application starting")

	a.grpcServer.Start()
	a.adminServer.Start()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	a.logger.Info("application shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.grpcServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("gRPC shutdown error", zap.Error(err))
	}
	if err := a.adminServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("admin shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	if shutdownCtx.Err() == context.DeadlineExceeded {
		a.logger.Warn("shutdown completed but deadline exceeded")
	} else {
		a.logger.Info("graceful shutdown completed successfully")
	}

	_ = a.logger.Sync()
	return nil
}
