package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"transfer-flow.backend/internal/config"
	"transfer-flow.backend/internal/domain/entities"
	"transfer-flow.backend/internal/infrastructure/blockchain"
	"transfer-flow.backend/internal/infrastructure/jobs"
	"transfer-flow.backend/internal/infrastructure/models"
	"transfer-flow.backend/internal/infrastructure/repositories"
	"transfer-flow.backend/internal/infrastructure/wallet"
	"transfer-flow.backend/internal/interfaces/http/handlers"
	"transfer-flow.backend/internal/interfaces/http/middleware"
	"transfer-flow.backend/internal/usecases"
	"transfer-flow.backend/pkg/logger"
	"transfer-flow.backend/pkg/redis"
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
	dialProvider = wallet.DialProvider
	dialBackend  = func(ctx context.Context, rpcURL string) (blockchain.ReceiptBackend, error) {
		return blockchain.DialReceiptBackend(ctx, rpcURL)
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

// contractClientAdapter narrows the concrete pending handle to the
// interface the orchestrator consumes.
type contractClientAdapter struct {
	client *blockchain.ContractClient
}

func (a contractClientAdapter) PublishTransaction(ctx context.Context, from entities.Account, to string, amount *big.Int, memo string, kind entities.TransferKind) (usecases.PendingHandle, error) {
	pending, err := a.client.PublishTransaction(ctx, from, to, amount, memo, kind)
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
		if err := db.AutoMigrate(&models.UserRecord{}, &models.TransactionRecord{}, &models.UserTransaction{}); err != nil {
			logger.Warn(context.Background(), "auto-migration failed", zap.Error(err))
		}
	}

	// Connect to the wallet provider and chain RPC
	ctx := context.Background()
	provider, err := dialProvider(ctx, cfg.Blockchain.WalletProviderRPC)
	if err != nil {
		logger.Warn(context.Background(), "wallet provider unreachable, connect requests will fail",
			zap.String("url", cfg.Blockchain.WalletProviderRPC), zap.Error(err))
		provider = nil
	}
	backend, err := dialBackend(ctx, cfg.Blockchain.ChainRPC)
	if err != nil {
		return fmt.Errorf("failed to connect to chain rpc: %w", err)
	}

	gateway := wallet.NewGateway(provider, cfg.Blockchain.GasLimit)
	contractClient := blockchain.NewContractClient(
		gateway,
		backend,
		cfg.Blockchain.ContractAddress,
		cfg.Blockchain.ReceiptPollInterval,
		cfg.Blockchain.ConfirmationTimeout,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRecordRepository(db)
	txRepo := repositories.NewTransactionRecordRepository(db)

	// Initialize usecases
	sessionManager := usecases.NewSessionManager(func() *usecases.TransactionOrchestrator {
		orchestrator := usecases.NewTransactionOrchestrator(gateway, contractClientAdapter{client: contractClient}, userRepo, txRepo)
		orchestrator.Subscribe(func(change entities.StateChange) {
			logger.Debug(context.Background(), "session state changed",
				zap.String("state", string(change.State)),
				zap.String("account", string(change.Account)),
			)
		})
		return orchestrator
	})
	historyUsecase := usecases.NewHistoryUsecase(userRepo, txRepo)

	// Start background jobs
	jobCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaperJob := jobs.NewSessionReaperJob(sessionManager, time.Hour)
	go reaperJob.Start(jobCtx)

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionManager)
	historyHandler := handlers.NewHistoryHandler(historyUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		sessionHandler: sessionHandler,
		historyHandler: historyHandler,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		reaperJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Transfer-Flow Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
