package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/config"
	"expensetracker/internal/database"
	"expensetracker/internal/events"
	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/preferences"
	"expensetracker/internal/services"
	"expensetracker/internal/validator"

	_ "expensetracker/internal/docs" // Import swagger docs
)

// @title           Expense Tracker API
// @version         1.0
// @description     Expense Tracker records expenses, tracks category budgets over weekly, monthly or yearly windows, summarizes spending and exports records as CSV or JSON.

// @host      localhost:8080
// @BasePath  /api/v1

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(ctx context.Context) error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbConfig := database.NewConfig(appConfig)
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Change notifications
	bus := events.NewBus()
	defer bus.Close()
	publisher := events.Fanout{bus}
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer amqpPublisher.Close()
		publisher = append(publisher, amqpPublisher)
		log.Infof("Publishing change events to exchange %q", appConfig.AMQPExchange)
	}

	// Preferences store
	db := dbManager.DB()
	var prefs preferences.Store = preferences.NewGormStore(db)
	if appConfig.PreferencesBackend == "redis" {
		client, err := preferences.NewRedisClient(ctx, appConfig.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		prefs = preferences.NewRedisStore(client, "expensetracker:prefs:")
	}

	// Initialize services
	auditService := services.NewAuditService(db)
	expenseService := services.NewExpenseService(db, publisher)
	budgetService := services.NewBudgetService(db, publisher)
	dashboardService := services.NewDashboardService(expenseService, appConfig.Location)
	exportService := services.NewExportService(expenseService, appConfig.Location)
	settingsService := services.NewSettingsService(db, prefs, publisher)

	// Register custom validators
	validator.Register()

	if appConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(appConfig.CORSAllowedOrigins)))
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Set{
		Expenses:   handlers.NewExpenseHandler(expenseService, auditService, appConfig.Location),
		Budgets:    handlers.NewBudgetHandler(budgetService, auditService),
		Dashboard:  handlers.NewDashboardHandler(dashboardService, appConfig.Location),
		Export:     handlers.NewExportHandler(exportService, auditService, appConfig.Location),
		Settings:   handlers.NewSettingsHandler(settingsService, auditService),
		Categories: handlers.NewCategoryHandler(),
	})

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	budgetAlerts, unsubscribe := bus.Subscribe(64)
	defer unsubscribe()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("Starting Expense Tracker server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		watchBudgets(gctx, budgetAlerts)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// watchBudgets logs every budget.exceeded event until ctx is done.
func watchBudgets(ctx context.Context, ch <-chan events.Event) {
	log := logger.Named("budgets")
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			if e.Kind == events.BudgetExceeded {
				log.Warnw("Budget exceeded", "budget_id", e.ResourceID, "data", e.Data)
			}
		}
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
