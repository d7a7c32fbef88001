package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aura/marketplace/marketplace-backend/internal/agents"
	"aura/marketplace/marketplace-backend/internal/certification"
	"aura/marketplace/marketplace-backend/internal/config"
	"aura/marketplace/marketplace-backend/internal/eventing"
	"aura/marketplace/marketplace-backend/internal/logistics"
	"aura/marketplace/marketplace-backend/internal/lots"
	"aura/marketplace/marketplace-backend/internal/marketplace"
	"aura/marketplace/marketplace-backend/internal/notifications"
	"aura/marketplace/marketplace-backend/internal/store"
)

func main() {
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if level, err := zap.ParseAtomicLevel(cfg.Logging.Level); err == nil {
		zapCfg.Level = level
	}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Core wiring: one store, one bus, one workflow engine, shared by every
	// service. The store lives here and is passed down by reference.
	db := store.New()
	bus := eventing.NewBus()
	workflow := eventing.NewWorkflowEngine(bus)

	lotService := lots.NewService(db, bus, workflow)
	agentService := agents.NewService(db)
	marketService := marketplace.NewService(db, bus)
	logisticsService := logistics.NewService(db, workflow)
	certService := certification.NewService(db, workflow)

	// Audit log of every domain event.
	for _, kind := range eventing.Kinds() {
		bus.Subscribe(kind, func(event eventing.Event) {
			logger.Info("domain event",
				zap.String("kind", string(event.Kind)),
				zap.Any("payload", event.Payload))
		})
	}

	stream := notifications.NewStream(logger)
	stream.Attach(bus)

	lotsHandler := lots.NewHandler(lotService)
	agentsHandler := agents.NewHandler(agentService)
	marketHandler := marketplace.NewHandler(marketService)
	logisticsHandler := logistics.NewHandler(logisticsService)
	certHandler := certification.NewHandler(certService)

	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	lotsHandler.RegisterRoutes(router.Group("/lots"))

	agentsGroup := router.Group("/agents")
	agentsHandler.RegisterRoutes(agentsGroup)
	agentsGroup.POST("/matchmaking", marketHandler.Matchmake)

	marketHandler.RegisterOfferRoutes(router.Group("/offers"))
	logisticsHandler.RegisterRoutes(router.Group("/shipments"))
	certHandler.RegisterRoutes(router.Group("/certifications"))

	router.GET("/snapshot", marketHandler.Snapshot)
	router.GET("/events/stream", stream.Handle)

	router.GET("/workflow/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, workflow.ListTasks())
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
		})
	})

	if cfg.GraphQL.Enabled {
		// The flag is part of the config surface; the transport itself is
		// not shipped in this backend.
		router.POST("/graphql", func(c *gin.Context) {
			c.JSON(http.StatusNotImplemented, gin.H{
				"message": "GraphQL transport is not available; use the REST endpoints",
			})
		})
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("addr", cfg.Server.Addr()),
			zap.Bool("graphql", cfg.GraphQL.Enabled))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}
