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

	"github.com/frahmantamala/vacation-management/internal"
	"github.com/frahmantamala/vacation-management/internal/auth"
	"github.com/frahmantamala/vacation-management/internal/profile"
	"github.com/frahmantamala/vacation-management/internal/project"
	projectPostgres "github.com/frahmantamala/vacation-management/internal/project/postgres"
	"github.com/frahmantamala/vacation-management/internal/reference"
	referencePostgres "github.com/frahmantamala/vacation-management/internal/reference/postgres"
	"github.com/frahmantamala/vacation-management/internal/transport"
	"github.com/frahmantamala/vacation-management/internal/transport/rest"
	"github.com/frahmantamala/vacation-management/internal/transport/swagger"
	"github.com/frahmantamala/vacation-management/internal/user"
	userPostgres "github.com/frahmantamala/vacation-management/internal/user/postgres"
	"github.com/frahmantamala/vacation-management/internal/vacation"
	vacationPostgres "github.com/frahmantamala/vacation-management/internal/vacation/postgres"
	"github.com/frahmantamala/vacation-management/internal/web"
	"github.com/frahmantamala/vacation-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the portal pages, the auth routes and the JSON API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Router   *chi.Mux
	Sessions *auth.SessionManager
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get database handle: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, deps.Sessions, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "env", deps.Config.Env)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := sqlDB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	initLogger(config)
	lg := logger.LoggerWrapper()

	if _, err := swagger.Validate(context.Background()); err != nil {
		return nil, err
	}

	baseURL, err := config.Auth.ResolveBaseURL(config.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base url: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	renderer, err := web.NewRenderer(lg)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	base := transport.NewBaseHandler(lg)

	userService := user.NewService(userPostgres.NewUserRepository(db), config.Auth.BCryptCost, lg)
	referenceService := reference.NewService(referencePostgres.NewReferenceRepository(db), lg)
	vacationService := vacation.NewService(vacationPostgres.NewVacationRepository(db), lg)
	projectService := project.NewService(projectPostgres.NewProjectRepository(db), lg)
	authService := auth.NewService(userService, lg)

	sessions := auth.NewSessionManager(config.Auth.SessionSecret, config.Auth.CookieName, config.Auth.SessionTTL, baseURL.Scheme == "https")
	stores := profile.NewStores()

	authHandler := auth.NewHandler(base, authService, sessions, baseURL)
	authHandler.OnSignOut = stores.Drop

	return &Dependencies{
		Config:   config,
		DB:       db,
		Router:   chi.NewRouter(),
		Sessions: sessions,
		Logger:   lg,
		Handlers: rest.Handlers{
			Auth:      authHandler,
			User:      user.NewHandler(base, userService),
			Vacation:  vacation.NewHandler(base, vacationService),
			Project:   project.NewHandler(base, projectService),
			Reference: reference.NewHandler(base, referenceService),
			Profile:   profile.NewHandler(base, userService, vacationService, referenceService, stores, renderer),
			Web:       web.NewHandler(base, renderer, userService, projectService),
		},
	}, nil
}

// initDB opens gorm over the pgx driver and applies the pool settings
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Source), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
