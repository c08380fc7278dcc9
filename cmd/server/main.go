package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fondos-platform/service-subscription/internal/adapter"
	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/config"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/events"
	"github.com/fondos-platform/service-subscription/internal/handler"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/cache"
	"github.com/fondos-platform/service-subscription/internal/platform/database"
	"github.com/fondos-platform/service-subscription/internal/platform/health"
	"github.com/fondos-platform/service-subscription/internal/platform/kafka"
	"github.com/fondos-platform/service-subscription/internal/platform/logger"
	"github.com/fondos-platform/service-subscription/internal/platform/metrics"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/rabbitmq"
	"github.com/fondos-platform/service-subscription/internal/repository"
	"github.com/fondos-platform/service-subscription/internal/repository/memory"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const serviceName = "service-subscription"

// store is what the services need from either backend.
type store interface {
	application.UnitOfWork
	Repositories() application.Repositories
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("store", cfg.StoreMode),
		zap.String("notification_broker", cfg.NotificationBroker),
	)

	ctx := context.Background()

	// Initialize store
	var (
		db       *gorm.DB
		st       store
		products product.ProductRepository
		clients  client.ClientRepository
	)
	switch cfg.StoreMode {
	case config.StorePostgres:
		db, err = database.Connect(cfg.DBConfig, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to connect to database", zap.Error(err))
		}
		migrateDatabase(cfg, db, zapLogger)

		var opts []repository.StoreOption
		if cfg.RedisConfig.Addr != "" {
			redisCache, err := cache.New(ctx, cache.Options{
				Addr:     cfg.RedisConfig.Addr,
				Password: cfg.RedisConfig.Password,
				DB:       cfg.RedisConfig.DB,
			})
			if err != nil {
				zapLogger.Warn("catalog cache unavailable, reading products from database", zap.Error(err))
			} else {
				defer redisCache.Close()
				cached := repository.NewCachedProductRepository(
					repository.NewGormProductRepository(db), redisCache, cfg.RedisConfig.TTL, zapLogger)
				opts = append(opts, repository.WithProductRepository(cached))
			}
		}
		pgStore := repository.NewStore(db, opts...)
		st, products, clients = pgStore, pgStore.Products(), pgStore.Clients()

	default:
		var opts []memory.Option
		if cfg.StaticCatalog {
			opts = append(opts, memory.WithStaticCatalog(product.DefaultCatalog()))
		}
		memStore := memory.NewStore(opts...)
		st, products, clients = memStore, memStore.Products(), memStore.Clients()
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serviceMetrics := metrics.New(registry)

	// Initialize notification publisher and gateway
	publisher := newPublisher(cfg, zapLogger)
	defer publisher.Close()
	gateway := events.NewEventGateway(publisher, zapLogger)

	// Initialize application services
	productService := application.NewProductService(products, zapLogger)
	clientService := application.NewClientService(st, clients, zapLogger)
	repos := st.Repositories()
	subscriptionService := application.NewSubscriptionService(
		st, repos, gateway, application.SystemClock{}, serviceMetrics, zapLogger,
	)
	branchService := application.NewBranchService(st, repos.Branches, zapLogger)
	availabilityService := application.NewAvailabilityService(st, repos.Availability, zapLogger)
	scheduleService := application.NewScheduleService(st, repos.Appointments, zapLogger)

	// Seed catalog and demo client
	if cfg.SeedDefaults {
		if !cfg.StaticCatalog {
			if err := productService.EnsureCatalog(ctx); err != nil {
				zapLogger.Fatal("failed to seed catalog", zap.Error(err))
			}
		}
		if err := clientService.EnsureDefaultClient(ctx); err != nil {
			zapLogger.Fatal("failed to seed default client", zap.Error(err))
		}
	}

	// Start notification consumer
	consumerCtx, consumerCancel := context.WithCancel(context.Background())
	defer consumerCancel()

	if cfg.NotificationConsumerEnabled && cfg.NotificationBroker == config.BrokerKafka {
		consumerGroupID := cfg.KafkaConfig.GroupPrefix + "subscription-notifier"
		notificationConsumer := events.NewNotificationConsumer(
			cfg.KafkaConfig.Brokers,
			consumerGroupID,
			adapter.NewMockNotificationSender(zapLogger),
			zapLogger,
		)
		defer notificationConsumer.Close()

		go func() {
			zapLogger.Info("starting subscription notification consumer")
			if err := notificationConsumer.Start(consumerCtx); err != nil {
				if consumerCtx.Err() == nil {
					zapLogger.Error("subscription notification consumer failed", zap.Error(err))
				}
			}
		}()
	}

	// Initialize JWT manager and rate limiter
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitConfig.RPS > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitConfig.RPS, cfg.RateLimitConfig.Burst, 10*time.Minute)
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-consumerCtx.Done():
					return
				case now := <-ticker.C:
					limiter.Cleanup(now)
				}
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health and metrics routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	// Register API routes
	apiV1 := router.Group("/api/v1")
	handler.NewProductHandler(productService).RegisterRoutes(apiV1, jwtManager)
	handler.NewClientHandler(clientService).RegisterRoutes(apiV1, jwtManager)
	handler.NewSubscriptionHandler(subscriptionService, limiter).RegisterRoutes(apiV1, jwtManager)
	handler.NewBranchHandler(branchService, availabilityService).RegisterRoutes(apiV1, jwtManager)
	handler.NewScheduleHandler(scheduleService).RegisterRoutes(apiV1, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down " + serviceName + "...")

	// Stop consumer and background loops
	consumerCancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info(serviceName + " stopped")
}

// migrateDatabase auto-migrates in development and applies versioned
// migrations everywhere else.
func migrateDatabase(cfg *config.ServiceConfig, db *gorm.DB, zapLogger *zap.Logger) {
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			zapLogger.Fatal("failed to auto-migrate", zap.Error(err))
		}
		zapLogger.Info("database migration completed (dev auto-migrate)")
		return
	}
	if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, zapLogger); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}
}

// newPublisher picks the configured broker, falling back to logging when it
// cannot be reached at startup.
func newPublisher(cfg *config.ServiceConfig, zapLogger *zap.Logger) events.Publisher {
	switch cfg.NotificationBroker {
	case config.BrokerKafka:
		return events.NewKafkaPublisher(kafka.NewProducer(cfg.KafkaConfig.Brokers, zapLogger))
	case config.BrokerRabbitMQ:
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQConfig.URL, cfg.RabbitMQConfig.Exchange, zapLogger)
		if err != nil {
			zapLogger.Warn("rabbitmq unavailable, logging notifications instead", zap.Error(err))
			return events.NewLogPublisher(zapLogger)
		}
		return events.NewRabbitPublisher(pub)
	default:
		return events.NewLogPublisher(zapLogger)
	}
}
