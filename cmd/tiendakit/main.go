// Package main is the entry point for the tiendakit server.
//
// tiendakit is a multi-tenant store builder backed by per-tenant JSON
// documents on disk. It exposes a RESTful HTTP API for authentication,
// store management, and the public marketplace. Configuration is read from
// CLI flags, a .env file, and server_config.json (JWT secret, rate limits,
// super-admin seed credentials).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tiendakit/tiendakit/internal/server"
	"github.com/tiendakit/tiendakit/internal/server/handlers"
	"github.com/tiendakit/tiendakit/internal/server/ratelimit"
	"github.com/tiendakit/tiendakit/internal/storage"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "tiendakit: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	version := flag.Bool("version", false, "Print version and exit")
	httpAddr := flag.String("http", "localhost:8080", "Address to listen on (e.g., localhost:8080, :8080, 0.0.0.0:8080)")
	dataDir := flag.String("data-dir", "./data", "Data directory")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	if len(flag.Args()) > 0 {
		return fmt.Errorf("unknown arguments: %v", flag.Args())
	}

	if *version {
		printVersion()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()
	ll := &slog.LevelVar{}
	ll.Set(slog.LevelInfo)
	// Skip timestamps when running under systemd (it adds its own).
	underSystemd := os.Getenv("JOURNAL_STREAM") != ""
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if underSystemd && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(*dataDir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Load .env for overrides; missing file is fine.
	if err := godotenv.Load(filepath.Join(*dataDir, ".env")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	// .env values apply when the flag was not set explicitly.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if !set["http"] {
		if v := os.Getenv("HTTP"); v != "" {
			*httpAddr = v
		}
	}
	if !set["log-level"] {
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			*logLevel = v
		}
	}

	switch *logLevel {
	case "debug":
		ll.Set(slog.LevelDebug)
	case "info":
	case "warn":
		ll.Set(slog.LevelWarn)
	case "error":
		ll.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level: %q", *logLevel)
	}

	// Normalize addr: ":8080" becomes "localhost:8080".
	addr := *httpAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	// server_config.json holds the JWT secret, rate limits, and seed
	// credentials; it is created with defaults on first run.
	serverCfg, err := storage.LoadServerConfig(*dataDir)
	if err != nil {
		return fmt.Errorf("failed to load server_config.json: %w", err)
	}
	if v := os.Getenv("SUPER_ADMIN_EMAIL"); v != "" {
		serverCfg.SuperAdmin.Email = v
	}
	if v := os.Getenv("SUPER_ADMIN_PASSWORD"); v != "" {
		serverCfg.SuperAdmin.Password = v
	}

	layout := storage.NewLayout(*dataDir)
	tenants := storage.NewTenantStore(layout)
	platform := storage.NewPlatformStore(layout, tenants)

	admin, err := platform.EnsureSuperAdmin(serverCfg.SuperAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed super admin: %w", err)
	}
	slog.InfoContext(ctx, "Super admin ready", "email", admin.Email)

	limiters := ratelimit.NewConfig(ratelimit.Limits{
		AuthPerMin:  serverCfg.RateLimits.AuthRatePerMin,
		WritePerMin: serverCfg.RateLimits.WriteRatePerMin,
		ReadPerMin:  serverCfg.RateLimits.ReadRatePerMin,
	})
	defer limiters.Close()

	// Reload rate limits when server_config.json changes on disk.
	if err := watchServerConfig(ctx, *dataDir, limiters); err != nil {
		return fmt.Errorf("failed to watch server config: %w", err)
	}

	svc := &handlers.Services{
		Platform:    platform,
		Tenants:     tenants,
		Aggregation: storage.NewAggregationService(platform, tenants),
	}
	buildVersion := getBuildVersion()
	cfg := &handlers.Config{
		JWTSecret:           serverCfg.JWTSecret,
		DataDir:             *dataDir,
		Version:             buildVersion,
		MaxRequestBodyBytes: serverCfg.MaxRequestBodyBytes,
	}

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(svc, cfg, limiters),
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "Starting server", "addr", addr, "dataDir", *dataDir, "version", buildVersion)
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		slog.InfoContext(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		slog.InfoContext(ctx, "Server stopped")
	}
	return nil
}

func printVersion() {
	fmt.Printf("tiendakit %s\n", getBuildVersion())
}

func getBuildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	version := info.Main.Version
	if version == "" || version == "(devel)" {
		version = "dev"
	}
	return version
}

// watchServerConfig reloads the rate limits when server_config.json is
// modified. Other fields (JWT secret, body limit) require a restart.
func watchServerConfig(ctx context.Context, dataDir string, limiters *ratelimit.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory: editors replace the file, which drops a watch
	// on the file itself.
	if err := w.Add(dataDir); err != nil {
		_ = w.Close()
		return err
	}
	cfgPath := storage.ServerConfigPath(dataDir)
	go func() {
		defer func() { _ = w.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Name != cfgPath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := storage.LoadServerConfig(dataDir)
				if err != nil {
					slog.WarnContext(ctx, "Ignoring invalid server config update", "err", err)
					continue
				}
				limiters.Apply(ratelimit.Limits{
					AuthPerMin:  cfg.RateLimits.AuthRatePerMin,
					WritePerMin: cfg.RateLimits.WriteRatePerMin,
					ReadPerMin:  cfg.RateLimits.ReadRatePerMin,
				})
				slog.InfoContext(ctx, "Rate limits reloaded", "auth", cfg.RateLimits.AuthRatePerMin, "write", cfg.RateLimits.WriteRatePerMin, "read", cfg.RateLimits.ReadRatePerMin)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.WarnContext(ctx, "Error watching server config", "err", err)
			}
		}
	}()
	return nil
}
