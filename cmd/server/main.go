package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	entitlementapp "github.com/kosthub/backend/internal/application/entitlement"
	identityapp "github.com/kosthub/backend/internal/application/identity"
	marketplaceapp "github.com/kosthub/backend/internal/application/marketplace"
	propertyapp "github.com/kosthub/backend/internal/application/property"
	subscriptionapp "github.com/kosthub/backend/internal/application/subscription"
	"github.com/kosthub/backend/internal/domain/access"
	"github.com/kosthub/backend/internal/domain/subscription"
	"github.com/kosthub/backend/internal/infrastructure/auth"
	"github.com/kosthub/backend/internal/infrastructure/cache"
	"github.com/kosthub/backend/internal/infrastructure/config"
	"github.com/kosthub/backend/internal/infrastructure/event"
	"github.com/kosthub/backend/internal/infrastructure/logger"
	"github.com/kosthub/backend/internal/infrastructure/persistence"
	"github.com/kosthub/backend/internal/infrastructure/scheduler"
	"github.com/kosthub/backend/internal/infrastructure/telemetry"
	"github.com/kosthub/backend/internal/interfaces/http/handler"
	"github.com/kosthub/backend/internal/interfaces/http/middleware"
	"github.com/kosthub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/kosthub/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			KostHub Backend API
//	@version		1.0
//	@description	Boarding house platform backend: owner console, back office and public marketplace behind one session model.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/kosthub/backend
//	@contact.email	support@kosthub.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url	https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	// Initialize logger. With telemetry enabled the logger is bridged so
	// every record also ships to the OTEL collector.
	var log *zap.Logger
	if cfg.Telemetry.Enabled {
		bootLog, err := logger.New(logConfig)
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
		logsProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, bootLog)
		if err != nil {
			bootLog.Warn("Failed to initialize OTEL logs, continuing without export", zap.Error(err))
			log = bootLog
		} else {
			log, err = telemetry.CreateBridgedLoggerFromConfig(logConfig, logsProvider, cfg.Telemetry.ServiceName)
			if err != nil {
				bootLog.Warn("Failed to bridge logger, continuing without export", zap.Error(err))
				log = bootLog
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := logsProvider.Shutdown(ctx); err != nil {
					log.Error("Error shutting down logs provider", zap.Error(err))
				}
			}()
		}
	} else {
		log, err = logger.New(logConfig)
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting KostHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing and metrics providers
	var meterProvider *telemetry.MeterProvider
	var businessMetrics *telemetry.BusinessMetrics
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			SamplingRatio:     cfg.Telemetry.SamplingRatio,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Warn("Failed to initialize tracer provider", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracerProvider.Shutdown(ctx); err != nil {
					log.Error("Error shutting down tracer provider", zap.Error(err))
				}
			}()
		}

		meterProvider, err = telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
			Enabled:           true,
			CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
			ServiceName:       cfg.Telemetry.ServiceName,
			Insecure:          cfg.Telemetry.Insecure,
		}, log)
		if err != nil {
			log.Warn("Failed to initialize meter provider", zap.Error(err))
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := meterProvider.Shutdown(ctx); err != nil {
					log.Error("Error shutting down meter provider", zap.Error(err))
				}
			}()
		}
	}

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database observability plugins
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:          true,
			LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
			WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
		}, log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}
	if meterProvider != nil {
		dbMetrics, err := telemetry.NewDBMetrics(meterProvider.Meter("kosthub-backend/db"), telemetry.DBMetricsConfig{
			Enabled:            true,
			SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
		}, log)
		if err != nil {
			log.Warn("Failed to initialize database metrics", zap.Error(err))
		} else if err := db.DB.Use(telemetry.NewDBMetricsPlugin(dbMetrics, log)); err != nil {
			log.Warn("Failed to register database metrics plugin", zap.Error(err))
		}

		businessMetrics, err = telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
			Meter:             meterProvider.Meter("kosthub-backend/business"),
			Logger:            log,
			OccupancyProvider: telemetry.NewGormOccupancyMetricsProvider(db.DB),
		})
		if err != nil {
			log.Warn("Failed to initialize business metrics", zap.Error(err))
			businessMetrics = nil
		} else {
			metricsCtx, metricsCancel := context.WithCancel(context.Background())
			defer metricsCancel()
			businessMetrics.StartPeriodicCollection(metricsCtx, telemetry.NewGormOwnerProvider(db.DB), 5*time.Minute)
			defer businessMetrics.Stop()
		}
	}

	// Initialize repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	staffRepo := persistence.NewGormStaffMemberRepository(db.DB)
	planRepo := persistence.NewGormPlanRepository(db.DB)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	roomTypeRepo := persistence.NewGormRoomTypeRepository(db.DB)
	roomRepo := persistence.NewGormRoomRepository(db.DB)
	catalogReader := persistence.NewGormCatalogReader(db.DB)

	// Initialize caches, Redis first with in-memory fallback
	cacheFactory := cache.NewCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithCacheSettings(cache.CacheConfig{
			EntitlementTTL: cfg.Entitlement.CacheTTL,
			ListingTTL:     cfg.Marketplace.CacheTTL,
		}),
		cache.WithInMemoryFallback(true),
	)
	entitlementCache, err := cacheFactory.CreateEntitlementCache()
	if err != nil {
		log.Fatal("Failed to create entitlement cache", zap.Error(err))
	}
	listingCache, err := cacheFactory.CreateListingCache()
	if err != nil {
		log.Fatal("Failed to create listing cache", zap.Error(err))
	}

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var tokenBlacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable for token blacklist, falling back to in-memory", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		tokenBlacklist = redisBlacklist
	}

	// Identity services: role resolution, auth, session resolution
	roleService := identityapp.NewRoleService(accountRepo, staffRepo, log)
	authService := identityapp.NewAuthService(accountRepo, roleService, jwtService, tokenBlacklist, eventBus, identityapp.DefaultAuthServiceConfig(), log)
	accountService := identityapp.NewAccountService(accountRepo, eventBus, log)
	staffService := identityapp.NewStaffService(staffRepo, accountRepo, eventBus, log)
	sessionProvider := auth.NewSessionProvider(jwtService, tokenBlacklist)
	sessionResolver := identityapp.NewSessionResolver(sessionProvider, roleService, identityapp.SessionResolverConfig{
		ResolveTimeout: cfg.Session.ResolveTimeout,
	}, log)
	authSubscription := sessionResolver.WatchAuthChanges(eventBus)
	defer authSubscription.Cancel()

	// Entitlement gate
	entitlementService := entitlementapp.NewEntitlementService(subscriptionRepo, planRepo, entitlementCache, entitlementapp.EntitlementServiceConfig{
		CacheEnabled: cfg.Entitlement.CacheEnabled,
		CacheTTL:     cfg.Entitlement.CacheTTL,
	}, log)
	eventBus.Subscribe(entitlementService)

	// Subscription lifecycle and plan administration
	planService := subscriptionapp.NewPlanService(planRepo, subscriptionRepo, eventBus, log)
	subscriptionService := subscriptionapp.NewSubscriptionService(subscriptionRepo, planRepo, eventBus, log)
	eventBus.Subscribe(subscriptionService)

	// Owner console: properties, room types, rooms
	propertyService := propertyapp.NewPropertyService(propertyRepo, entitlementService, eventBus, log)
	roomTypeService := propertyapp.NewRoomTypeService(roomTypeRepo, roomRepo, propertyRepo, eventBus, log)
	roomService := propertyapp.NewRoomService(roomRepo, roomTypeRepo, propertyRepo, entitlementService, eventBus, log)

	// Public marketplace derivation
	listingService := marketplaceapp.NewListingService(catalogReader, listingCache, marketplaceapp.ListingServiceConfig{
		DeriveConcurrency:       cfg.Marketplace.DeriveConcurrency,
		IncludeZeroAvailability: cfg.Marketplace.IncludeZeroAvailability,
		CacheTTL:                cfg.Marketplace.CacheTTL,
	}, log)
	eventBus.Subscribe(listingService)

	if businessMetrics != nil {
		roleService.SetBusinessMetrics(businessMetrics)
		sessionResolver.SetBusinessMetrics(businessMetrics)
		listingService.SetBusinessMetrics(businessMetrics)
	}

	// Start event bus after all handlers registered
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Seed the built-in plans so registration bootstrap always finds the
	// free plan
	if err := planService.SeedDefaults(context.Background()); err != nil {
		log.Fatal("Failed to seed default plans", zap.Error(err))
	}

	// Subscription expiry sweeper
	if cfg.Scheduler.Enabled {
		expiryScheduler := scheduler.NewSubscriptionExpiryScheduler(subscriptionService, log, scheduler.SubscriptionExpirySchedulerConfig{
			Enabled:       true,
			SweepInterval: cfg.Scheduler.SweepInterval,
			BatchSize:     cfg.Scheduler.BatchSize,
			SweepTimeout:  cfg.Scheduler.JobTimeout,
		})
		if err := expiryScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start subscription expiry scheduler", zap.Error(err))
		}
		defer func() {
			if err := expiryScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping subscription expiry scheduler", zap.Error(err))
			}
		}()
		log.Info("Subscription expiry scheduler started",
			zap.Duration("sweep_interval", cfg.Scheduler.SweepInterval),
			zap.Int("batch_size", cfg.Scheduler.BatchSize),
		)
	}

	// Initialize HTTP handlers
	registry := access.DefaultRegistry()
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(accountService)
	staffHandler := handler.NewStaffHandler(staffService)
	planHandler := handler.NewPlanHandler(planService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	roomTypeHandler := handler.NewRoomTypeHandler(roomTypeService)
	roomHandler := handler.NewRoomHandler(roomService)
	marketplaceHandler := handler.NewMarketplaceHandler(listingService)
	navigationHandler := handler.NewNavigationHandler(registry)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics/Profiling - Observability (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	// 9. Snapshot - Resolve the identity snapshot once per request
	// 10. RequireAuth - Reject unauthenticated requests off the public surface
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       meterProvider != nil,
		}))
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Swagger documentation endpoint, guarded per config
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.RequireAuth()),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Resolve the identity snapshot once per request; the guards below
	// consume it instead of re-validating tokens
	engine.Use(middleware.SnapshotMiddlewareWithConfig(middleware.SnapshotMiddlewareConfig{
		Resolver: sessionResolver,
		Logger:   log,
	}))
	engine.Use(middleware.RequireAuthWithConfig(middleware.AuthMiddlewareConfig{
		SkipPaths: []string{
			"/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/auth/refresh",
			"/api/v1/navigation/decide",
			"/api/v1/plans",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api-docs",
			"/api/v1/marketplace",
		},
		Logger: log,
	}))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Stricter rate limit bucket for credential endpoints
	var authLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authLimit = middleware.AuthRateLimit(authLimiter)
	}

	// Auth domain
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if authLimit != nil {
		authRoutes.Use(authLimit)
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentAccount)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Navigation decision endpoint: anonymous visitors legitimately ask
	// where to go and receive login redirects as answers, never a 401
	navigationRoutes := router.NewDomainGroup("navigation", "/navigation")
	navigationRoutes.GET("/decide", navigationHandler.Decide)

	// Public marketplace: listings derive from published properties only,
	// no authentication required
	marketplaceRoutes := router.NewDomainGroup("marketplace", "/marketplace")
	marketplaceRoutes.GET("/listings", marketplaceHandler.SearchListings)
	marketplaceRoutes.GET("/listings/:slug/:roomType", marketplaceHandler.GetListing)
	marketplaceRoutes.GET("/cities", marketplaceHandler.ListCities)

	// Public plan catalog for the pricing page
	planCatalogRoutes := router.NewDomainGroup("plans", "/plans")
	planCatalogRoutes.GET("", planHandler.ListActive)

	// Owner console: every route is guarded by the area owning the
	// property list shell path
	ownerGuard := middleware.RequireAreaWithConfig(middleware.AreaAuthConfig{
		Registry: registry,
		Logger:   log,
		Metrics:  businessMetrics,
	}, access.PropertyListPath)

	propertyRoutes := router.NewDomainGroup("properties", "/properties")
	propertyRoutes.Use(ownerGuard)
	propertyRoutes.POST("", propertyHandler.Create)
	propertyRoutes.GET("", propertyHandler.List)
	propertyRoutes.GET("/:id", propertyHandler.Get)
	propertyRoutes.PUT("/:id", propertyHandler.Update)
	propertyRoutes.DELETE("/:id", propertyHandler.Delete)
	propertyRoutes.POST("/:id/publish",
		middleware.RequireFeature(entitlementService, subscription.FeatureMarketplaceListing),
		propertyHandler.Publish)
	propertyRoutes.POST("/:id/unpublish", propertyHandler.Unpublish)
	propertyRoutes.POST("/:id/room-types", roomTypeHandler.Create)
	propertyRoutes.GET("/:id/room-types", roomTypeHandler.List)
	propertyRoutes.GET("/:id/room-types/:typeId", roomTypeHandler.Get)
	propertyRoutes.PUT("/:id/room-types/:typeId", roomTypeHandler.Update)
	propertyRoutes.DELETE("/:id/room-types/:typeId", roomTypeHandler.Delete)
	propertyRoutes.POST("/:id/rooms", roomHandler.Create)
	propertyRoutes.GET("/:id/rooms", roomHandler.List)
	propertyRoutes.GET("/:id/rooms/:roomId", roomHandler.Get)
	propertyRoutes.PUT("/:id/rooms/:roomId", roomHandler.Update)
	propertyRoutes.PUT("/:id/rooms/:roomId/status", roomHandler.SetStatus)
	propertyRoutes.DELETE("/:id/rooms/:roomId", roomHandler.Delete)

	// Owner's own subscription state
	subscriptionRoutes := router.NewDomainGroup("subscription", "/subscription")
	subscriptionRoutes.Use(ownerGuard)
	subscriptionRoutes.GET("", subscriptionHandler.GetCurrent)

	// Back office: platform staff only
	backofficeGuard := middleware.RequireAreaWithConfig(middleware.AreaAuthConfig{
		Registry: registry,
		Logger:   log,
		Metrics:  businessMetrics,
	}, access.BackofficeRootPath)

	backofficeRoutes := router.NewDomainGroup("backoffice", "/backoffice")
	backofficeRoutes.Use(backofficeGuard)
	backofficeRoutes.GET("/accounts", accountHandler.List)
	backofficeRoutes.GET("/accounts/stats/count", accountHandler.Count)
	backofficeRoutes.GET("/accounts/:id", accountHandler.Get)
	backofficeRoutes.POST("/accounts/:id/deactivate", accountHandler.Deactivate)
	backofficeRoutes.POST("/accounts/:id/reactivate", accountHandler.Reactivate)
	backofficeRoutes.POST("/accounts/:id/unlock", accountHandler.Unlock)
	backofficeRoutes.POST("/staff", staffHandler.Add)
	backofficeRoutes.GET("/staff", staffHandler.List)
	backofficeRoutes.GET("/staff/stats/count", staffHandler.Count)
	backofficeRoutes.GET("/staff/:id", staffHandler.Get)
	backofficeRoutes.PUT("/staff/:id", staffHandler.Update)
	backofficeRoutes.DELETE("/staff/:id", staffHandler.Remove)
	backofficeRoutes.GET("/plans", planHandler.List)
	backofficeRoutes.POST("/plans", planHandler.Create)
	backofficeRoutes.PUT("/plans/:id", planHandler.Update)
	backofficeRoutes.DELETE("/plans/:id", planHandler.Delete)
	backofficeRoutes.GET("/subscriptions", subscriptionHandler.History)
	backofficeRoutes.POST("/subscriptions", subscriptionHandler.Subscribe)
	backofficeRoutes.PUT("/subscriptions/:id", subscriptionHandler.ChangePlan)
	backofficeRoutes.POST("/subscriptions/:id/cancel", subscriptionHandler.Cancel)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(authRoutes).
		Register(navigationRoutes).
		Register(marketplaceRoutes).
		Register(planCatalogRoutes).
		Register(propertyRoutes).
		Register(subscriptionRoutes).
		Register(backofficeRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
