package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pfp-registry.backend/internal/config"
	"pfp-registry.backend/internal/infrastructure/blockchain"
	"pfp-registry.backend/internal/infrastructure/jobs"
	"pfp-registry.backend/internal/infrastructure/repositories"
	"pfp-registry.backend/internal/interfaces/http/handlers"
	"pfp-registry.backend/internal/interfaces/http/middleware"
	"pfp-registry.backend/internal/usecases"
	"pfp-registry.backend/pkg/jwt"
	"pfp-registry.backend/pkg/logger"
	"pfp-registry.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		logger.Warn(context.Background(), "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	profileRepo := repositories.NewProfileRepository(db)
	eventRepo := repositories.NewProfileEventRepository(db)
	uow := repositories.NewUnitOfWork(db)

	nonceStore := redis.NewNonceStore(cfg.Auth.ChallengeTTL)
	clientFactory := blockchain.NewClientFactory()

	verifier := usecases.NewOwnershipVerifier(clientFactory, cfg.Blockchain.RPCURL)
	profileUsecase := usecases.NewProfileUsecase(profileRepo, eventRepo, uow, verifier)
	authUsecase := usecases.NewAuthUsecase(nonceStore, jwtService)

	profileHandler := handlers.NewProfileHandler(profileUsecase)
	authHandler := handlers.NewAuthHandler(authUsecase)
	adminHandler := handlers.NewAdminHandler(profileUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)
	adminKeyMiddleware := middleware.AdminKeyMiddleware(cfg.Security.AdminAPIKeyHash)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sweepJob *jobs.OwnershipSweepJob
	if cfg.Sweep.Enabled {
		sweepJob = jobs.NewOwnershipSweepJob(profileUsecase, cfg.Sweep.Interval, cfg.Sweep.BatchSize)
		go sweepJob.Start(ctx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		profileHandler:     profileHandler,
		authHandler:        authHandler,
		adminHandler:       adminHandler,
		authMiddleware:     authMiddleware,
		adminKeyMiddleware: adminKeyMiddleware,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(context.Background(), "Shutting down server")
		if sweepJob != nil {
			sweepJob.Stop()
		}
		cancel()
	}()

	logger.Info(context.Background(), "Profile picture registry starting",
		zap.String("port", cfg.Server.Port),
		zap.String("rpc_url", cfg.Blockchain.RPCURL))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
