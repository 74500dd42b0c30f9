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

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/audittrail"
	auditPostgres "github.com/frahmantamala/claim-management/internal/audittrail/postgres"
	"github.com/frahmantamala/claim-management/internal/auth"
	authPostgres "github.com/frahmantamala/claim-management/internal/auth/postgres"
	"github.com/frahmantamala/claim-management/internal/claim"
	claimPostgres "github.com/frahmantamala/claim-management/internal/claim/postgres"
	"github.com/frahmantamala/claim-management/internal/core/events"
	"github.com/frahmantamala/claim-management/internal/enrollment"
	enrollmentPostgres "github.com/frahmantamala/claim-management/internal/enrollment/postgres"
	"github.com/frahmantamala/claim-management/internal/notification"
	notificationPostgres "github.com/frahmantamala/claim-management/internal/notification/postgres"
	"github.com/frahmantamala/claim-management/internal/project"
	projectPostgres "github.com/frahmantamala/claim-management/internal/project/postgres"
	"github.com/frahmantamala/claim-management/internal/transport/rest"
	"github.com/frahmantamala/claim-management/internal/user"
	userPostgres "github.com/frahmantamala/claim-management/internal/user/postgres"
	"github.com/frahmantamala/claim-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
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
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the pgx connection pool sqlx already opened.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	router := chi.NewRouter()

	eventBus := events.NewEventBus(log)

	// Repositories
	authRepo := authPostgres.NewRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	projectRepo := projectPostgres.NewProjectRepository(gormDB)
	enrollmentRepo := enrollmentPostgres.NewEnrollmentRepository(gormDB)
	claimRepo := claimPostgres.NewClaimRepository(gormDB)
	auditRepo := auditPostgres.NewAuditTrailRepository(gormDB)
	outboxRepo := notificationPostgres.NewOutboxRepository(gormDB)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost)
	userService := user.NewService(userRepo, authService, log)
	projectService := project.NewService(projectRepo, log)
	enrollmentService := enrollment.NewService(enrollmentRepo, projectService, log)
	auditService := audittrail.NewService(auditRepo, log)
	claimService := claim.NewService(claimRepo, userService, projectService, enrollmentService, auditRepo, eventBus, log)

	mailer := notification.NewSMTPMailer(config.Mail)
	outboxService := notification.NewService(outboxRepo, mailer, config.Mail.MaxAttempts, log)
	notification.NewEventHandler(outboxService, config.Mail.FinanceGroup, log).RegisterHandlers(eventBus)

	// Handlers
	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Project:    project.NewHandler(projectService),
		Enrollment: enrollment.NewHandler(enrollmentService),
		Claim:      claim.NewHandler(claimService),
		AuditTrail: audittrail.NewHandler(auditService),
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, config.Server.AllowedOrigins, log)

	return &Dependencies{
		Config: config,
		DB:     db,
		GormDB: gormDB,
		Router: router,
		Logger: log,
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

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
