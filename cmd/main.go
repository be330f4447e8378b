package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	analyticsapp "github.com/muhammadheryan/picking-engine/application/analytics"
	pickingapp "github.com/muhammadheryan/picking-engine/application/picking"
	"github.com/muhammadheryan/picking-engine/cmd/config"
	redisclient "github.com/muhammadheryan/picking-engine/cmd/redis"
	_ "github.com/muhammadheryan/picking-engine/docs"
	cacheRepo "github.com/muhammadheryan/picking-engine/repository/cache"
	inventoryRepo "github.com/muhammadheryan/picking-engine/repository/inventory"
	orderRepo "github.com/muhammadheryan/picking-engine/repository/order"
	sessionRepo "github.com/muhammadheryan/picking-engine/repository/session"
	txRepo "github.com/muhammadheryan/picking-engine/repository/tx"
	"github.com/muhammadheryan/picking-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/picking-engine/transport"
	"github.com/muhammadheryan/picking-engine/utils/logger"
	"go.uber.org/zap"
)

// @title PICKING ENGINE API
// @version 1.0
// @description Warehouse picking session engine API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	redisCli, err := redisclient.New(cfg)
	if err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisCli.Close()
	}()

	// Initialize RabbitMQ publisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer func() {
		_ = publisher.Close()
	}()

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	InventoryRepo := inventoryRepo.NewInventoryRepository(db)
	SessionRepo := sessionRepo.NewSessionRepository(db)
	CacheRepo := cacheRepo.NewCacheRepository(redisCli)

	// Initialize application layers
	PickingApp := pickingapp.NewPickingApp(cfg, TxRepo, OrderRepo, InventoryRepo, SessionRepo, CacheRepo, publisher)
	AnalyticsApp := analyticsapp.NewAnalyticsApp(SessionRepo)

	httpTransport := transport.NewTransport(PickingApp, AnalyticsApp, cfg.Auth.JWTSecret)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
