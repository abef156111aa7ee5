package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crimson-pos/internal/config"
	"crimson-pos/internal/database"
	custommiddleware "crimson-pos/internal/middleware"
	"crimson-pos/internal/repository"
	"crimson-pos/internal/service"
	"crimson-pos/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.MetricsMiddleware)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/health", healthHandler(db, redisClient))
	router.Handle("/metrics", promhttp.Handler())

	// Initialize repositories
	sqlDB := db.DB()
	productRepo := repository.NewProductRepository(sqlDB)
	directoryRepo := repository.NewDirectoryRepository(sqlDB)
	transactionRepo := repository.NewTransactionRepository(sqlDB)
	reportRepo := repository.NewReportRepository(sqlDB)
	userRepo := repository.NewUserRepository(sqlDB)

	// Initialize services
	orderService := service.NewOrderService(transactionRepo, cfg.Sales.TaxRate)
	catalogService := service.NewCatalogService(productRepo, directoryRepo)
	inventoryService := service.NewInventoryService(productRepo)
	reportService := service.NewReportService(reportRepo)
	userService := service.NewUserService(userRepo, service.TokenConfig{
		Secret:      cfg.JWT.Secret,
		AccessTTL:   time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
		RememberTTL: time.Duration(cfg.JWT.RememberExpiry) * 24 * time.Hour,
	})

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: cfg.RateLimit.Requests,
		Window:            cfg.RateLimit.Window,
		KeyPrefix:         "auth_rate_limit",
	}, logger)

	// Register routes
	transport.NewAuthHandler(userService, logger).RegisterRoutes(router, rateLimit, authMiddleware)
	transport.NewOrderHandler(orderService, logger).RegisterRoutes(router)
	transport.NewCatalogHandler(catalogService, inventoryService, logger).RegisterRoutes(router)
	transport.NewReportHandler(reportService, logger).RegisterRoutes(router)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

// healthHandler reports database status; Redis only degrades rate limiting
func healthHandler(db database.Service, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			health["redis"] = "down"
		} else {
			health["redis"] = "up"
		}

		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
