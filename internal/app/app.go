package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/foxfriends/woof/internal/config"
	"github.com/foxfriends/woof/internal/domain"
	"github.com/foxfriends/woof/internal/middleware"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// New creates and wires a fully configured App from the given Config: logging,
// the database, optional migration, middleware, the resource modules and the
// fallback routes. Everything opened before a failing step is closed again.
func New(cfg *config.Config) (app *App, err error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	var undo []func()
	defer func() {
		if err == nil {
			return
		}
		for i := len(undo) - 1; i >= 0; i-- {
			undo[i]()
		}
	}()

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	undo = append(undo, func() { closeLogger(log) })

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	undo = append(undo, func() { closeDatabase(db, log.Logger) })

	if shouldAutoMigrate(cfg) {
		models := domain.Models()
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed", slog.Int("models", len(models)))
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
		middleware.Timeout(requestTimeout(cfg.Server.Timeout)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{
		Modules: NewModules(db),
		DB:      db,
		Prefix:  cfg.API.Prefix,
	}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &App{engine: engine, db: db, logger: log, cfg: cfg}, nil
}

// Handler exposes the configured engine, mainly for in-process tests.
func (a *App) Handler() http.Handler {
	return a.engine
}

func shouldAutoMigrate(cfg *config.Config) bool {
	return cfg.Database.AutoMigrate || cfg.Server.Mode == gin.DebugMode
}

// requestTimeout parses an already validated server.timeout. Empty means no bound.
func requestTimeout(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

// resolveCORSConfig layers the configured CORS settings over the defaults.
// Without an explicit allowlist, release mode refuses every cross-origin
// caller while the other modes allow any.
func resolveCORSConfig(mode string, configured config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configured.AllowMethods) > 0 {
		corsConfig.AllowMethods = configured.AllowMethods
	}
	if len(configured.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = configured.AllowHeaders
	}
	corsConfig.AllowCredentials = configured.AllowCredentials
	if d, err := time.ParseDuration(configured.MaxAge); err == nil && d > 0 {
		corsConfig.MaxAge = d
	}

	if len(configured.AllowOrigins) > 0 {
		corsConfig.AllowOrigins = configured.AllowOrigins
		return corsConfig
	}

	if mode == gin.ReleaseMode {
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM arrives or
// the listener fails. On a signal it shuts the server down gracefully; in
// both cases it then closes the database and the logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}
	log := a.log()

	addr := net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port))
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
		cancel()
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if a.db != nil {
		closeDatabase(a.db, log)
	}
	log.Info("server stopped")
	if a.logger != nil {
		closeLogger(a.logger)
	}
	return runErr
}

// log is the application logger, or the process default before New has
// set one up.
func (a *App) log() *slog.Logger {
	if a.logger != nil && a.logger.Logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}

func closeDatabase(db *gorm.DB, log *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Error("database close error", slog.Any("error", err))
		return
	}
	log.Info("database connection closed")
}

func closeLogger(l *logger.Logger) {
	if err := l.Close(); err != nil {
		slog.Error("logger close error", slog.Any("error", err))
	}
}
