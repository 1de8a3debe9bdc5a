package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"seci_service/config"
	"seci_service/internal/delivery"
	grpcHandler "seci_service/internal/delivery/grpc"
	"seci_service/internal/domain"
	"seci_service/internal/middleware"
	"seci_service/internal/repository"
	"seci_service/internal/usecase"
	categorypb "seci_service/proto"
	"seci_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// storage bundles the repositories of one storage driver with its health
// check and shutdown hook.
type storage struct {
	categories domain.CategoryRepository
	comments   domain.CommentRepository
	stats      domain.CategoryStatsProvider
	ping       func(ctx context.Context) error
	close      func() error
}

func openStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logger.Info("Database migrations applied.")

		database, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &storage{
			categories: repository.NewPostgresCategoryRepository(database, logger),
			comments:   repository.NewPostgresCommentRepository(database, logger),
			stats:      repository.NewPostgresReportStats(database, cfg.StatsCollection, cfg.StatsCategoryField, logger),
			ping:       database.PingContext,
			close:      database.Close,
		}, nil

	case config.DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart.")
		return &storage{
			categories: repository.NewMemoryCategoryRepository(),
			comments:   repository.NewMemoryCommentRepository(),
			stats:      repository.NewMemoryStats(),
			ping:       func(context.Context) error { return nil },
			close:      func() error { return nil },
		}, nil

	default:
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := repository.EnsureCategoryIndexes(ctx, database); err != nil {
			return nil, err
		}
		if err := repository.EnsureCommentIndexes(ctx, database); err != nil {
			return nil, err
		}
		return &storage{
			categories: repository.NewMongoCategoryRepository(database, logger),
			comments:   repository.NewMongoCommentRepository(database, logger),
			stats:      repository.NewMongoReportStats(database, cfg.StatsCollection, cfg.StatsCategoryField, logger),
			ping:       db.PingMongo(client),
			close:      func() error { return client.Disconnect(context.Background()) },
		}, nil
	}
}

func main() {
	logger := setupLogger("info", "json")
	cfg := config.LoadConfig(logger)
	logger = setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting SECI Category Service...")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to open %s storage: %v", cfg.StorageDriver, err)
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Errorf("Error closing storage: %v", err)
		} else {
			logger.Info("Storage connection closed.")
		}
	}()
	logger.Infof("Storage %s ready.", cfg.StorageDriver)

	// --- Dependency Injection ---
	categoryRepo := store.categories
	if cfg.CacheSize > 0 {
		categoryRepo, err = repository.NewCachedCategoryRepository(store.categories, cfg.CacheSize, cfg.CacheTTL, logger)
		if err != nil {
			logger.Fatalf("Failed to create category cache: %v", err)
		}
		logger.Infof("Category cache enabled: size=%d ttl=%s", cfg.CacheSize, cfg.CacheTTL)
	}

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, store.stats, logger)
	commentUseCase := usecase.NewCommentUseCase(store.comments, logger)
	logger.Info("Use cases initialized.")

	router := newRouter(logger, cfg.StorageDriver, store.ping, categoryUseCase, commentUseCase)
	httpServer := &http.Server{Addr: cfg.HTTPPort, Handler: router}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		middleware.UnaryServerInterceptor(logger),
		middleware.UnaryRecoveryInterceptor(logger),
	))
	categorypb.RegisterCategoryServiceServer(grpcServer, grpcHandler.NewCategoryHandler(categoryUseCase, logger))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcPort, err)
	}

	go func() {
		logger.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			logger.Fatalf("Failed to serve gRPC: %v", err)
		}
	}()

	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Warn("Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}
	grpcServer.GracefulStop()
	logger.Info("SECI Category Service shut down gracefully.")
}

func newRouter(logger *logrus.Logger, storageName string, ping func(context.Context) error,
	categoryUseCase usecase.CategoryUseCase, commentUseCase usecase.CommentUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())

	delivery.NewHealthHandler(storageName, ping).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	delivery.NewCategoryHandler(categoryUseCase, logger).RegisterRoutes(router)
	delivery.NewCommentHandler(commentUseCase, logger).RegisterRoutes(router)
	logger.Info("API Routes registered.")
	return router
}

func setupLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
