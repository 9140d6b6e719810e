package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/budget-tracker/internal"
	"github.com/frahmantamala/budget-tracker/internal/alert"
	alertpg "github.com/frahmantamala/budget-tracker/internal/alert/postgres"
	"github.com/frahmantamala/budget-tracker/internal/auth"
	authpg "github.com/frahmantamala/budget-tracker/internal/auth/postgres"
	"github.com/frahmantamala/budget-tracker/internal/budget"
	budgetpg "github.com/frahmantamala/budget-tracker/internal/budget/postgres"
	"github.com/frahmantamala/budget-tracker/internal/category"
	categorypg "github.com/frahmantamala/budget-tracker/internal/category/postgres"
	"github.com/frahmantamala/budget-tracker/internal/core/events"
	"github.com/frahmantamala/budget-tracker/internal/expense"
	expensepg "github.com/frahmantamala/budget-tracker/internal/expense/postgres"
	"github.com/frahmantamala/budget-tracker/internal/notification"
	notificationpg "github.com/frahmantamala/budget-tracker/internal/notification/postgres"
	"github.com/frahmantamala/budget-tracker/internal/realtime"
	"github.com/frahmantamala/budget-tracker/internal/transport/rest"
	"github.com/frahmantamala/budget-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Registry *realtime.Registry
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the sqlx pool so both layers share one set of
	// connections and one health check.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize ORM: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	registry := realtime.NewRegistry(config.Realtime.BufferSize())
	fanout := realtime.NewFanout(registry, lg)
	fanout.RegisterEventHandlers(eventBus)

	// Repositories
	authRepo := authpg.NewRepository(gormDB)
	categoryRepo := categorypg.NewRepository(gormDB)
	budgetRepo := budgetpg.NewRepository(gormDB)
	expenseRepo := expensepg.NewRepository(gormDB)
	notificationRepo := notificationpg.NewRepository(gormDB)
	aggregationRepo := alertpg.NewAggregationRepository(gormDB)
	dedupStore := alertpg.NewNotificationRepository(gormDB)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	categoryService := category.NewService(categoryRepo, lg)
	alertService := alert.NewService(aggregationRepo, budgetRepo, dedupStore, config.Alerting.Window(), lg)
	budgetService := budget.NewService(budgetRepo, categoryRepo, aggregationRepo, eventBus, lg)
	expenseService := expense.NewService(expenseRepo, categoryRepo, alertService, eventBus, lg)
	notificationService := notification.NewService(notificationRepo, lg)

	// Handlers
	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		Category:     category.NewHandler(categoryService),
		Budget:       budget.NewHandler(budgetService),
		Expense:      expense.NewHandler(expenseService),
		Notification: notification.NewHandler(notificationService),
		Realtime:     realtime.NewHandler(registry, authService, config.Realtime),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, registry, handlers, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   router,
		Registry: registry,
		Logger:   lg,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
