// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/oblog-go/internal/archive"
	"github.com/olegiv/oblog-go/internal/cache"
	"github.com/olegiv/oblog-go/internal/config"
	"github.com/olegiv/oblog-go/internal/handler"
	"github.com/olegiv/oblog-go/internal/logging"
	"github.com/olegiv/oblog-go/internal/middleware"
	"github.com/olegiv/oblog-go/internal/render"
	"github.com/olegiv/oblog-go/internal/session"
	"github.com/olegiv/oblog-go/internal/store"
	"github.com/olegiv/oblog-go/internal/version"
	"github.com/olegiv/oblog-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "oBlog - a minimal blogging website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DB_PATH          SQLite database path (default: ./data/oblog.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_REDIS_URL        Redis URL for the facet cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  OBLOG_DO_SEED          Seed demo posts on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("oblog %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.SeedDemo(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Facet cache: memory by default, Redis when configured
	cacheConfig := cache.Config{
		Type:             "memory",
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:          cfg.CacheMaxSize,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}
	if cfg.UseRedisCache() {
		cacheConfig.Type = "redis"
	}
	facetCache, err := cache.NewCache(cacheConfig)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := facetCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	slog.Info("facet cache initialized", "backend", cacheConfig.Type)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	queries := store.New(db)
	resolver := archive.NewResolver(queries, facetCache, cacheConfig.DefaultTTL)
	archiveService := archive.NewService(queries, resolver)

	blogHandler := handler.NewBlogHandler(db, renderer, archiveService)
	archiveHandler := handler.NewArchiveHandler(renderer, archiveService)
	authorHandler := handler.NewAuthorHandler(db, renderer)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager)
	pageHandler := handler.NewPageHandler(renderer)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	r.Use(middleware.LoadUser(sessionManager, db))

	// Login and signup get a per-IP rate limit against credential guessing
	authLimiter := middleware.NewRateLimiter(1, 5)

	r.Get(handler.RouteRoot, blogHandler.Index)
	r.Get("/blog/p/{slug}", blogHandler.Show)
	r.Get("/blog/authors", authorHandler.List)
	r.Get("/blog/author/{id}", authorHandler.Show)
	r.Get("/blog/archive", archiveHandler.View)
	r.Post("/blog/archive", archiveHandler.View)
	r.Get("/blog/archive/options", archiveHandler.Options)
	r.Get("/about", pageHandler.About)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(sessionManager))
		r.Get(handler.RouteCreate, blogHandler.CreateForm)
		r.Post(handler.RouteCreate, blogHandler.Create)
		r.Get("/auth/account", authHandler.Account)
		r.Post("/auth/logout", authHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Handler)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteSignup, authHandler.SignupForm)
		r.Post(handler.RouteSignup, authHandler.Signup)
	})

	// Static assets from the embedded filesystem
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	r.NotFound(pageHandler.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
