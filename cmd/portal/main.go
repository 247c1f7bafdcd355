// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the client portal server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clientportal/internal/branding"
	"clientportal/internal/cache"
	"clientportal/internal/config"
	"clientportal/internal/database"
	"clientportal/internal/freshbooks"
	"clientportal/internal/handlers"
	"clientportal/internal/router"
	"clientportal/internal/session"
	"clientportal/internal/storage"
	"clientportal/internal/store"
)

func main() {
	// Structured logger: text in development, JSON elsewhere.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var handler slog.Handler
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	// Connect to PostgreSQL and run pending migrations.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the default admin account (no-op if users exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (sessions + branding cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Data stores.
	userStore := store.NewUserStore(db)
	clientStore := store.NewClientStore(db)
	activityStore := store.NewActivityStore(db)
	inquiryStore := store.NewInquiryStore(db)
	appSettingStore := store.NewAppSettingStore(db)
	brandingStore := store.NewBrandingStore(db)

	// Branding service and its Valkey-backed document cache.
	brandingService := branding.NewService(brandingStore)
	brandingCache := cache.NewBrandingCache(valkeyClient, cache.DefaultBrandingTTL)

	// S3-compatible object storage. Optional, the app works without it.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured, branding uploads disabled")
	}

	// Freshbooks client; tokens persist in app_settings.
	fbClient := freshbooks.New(freshbooks.Config{
		ClientID:     cfg.FreshbooksClientID,
		ClientSecret: cfg.FreshbooksClientSecret,
		RedirectURI:  cfg.FreshbooksRedirectURI,
	}, appSettingStore)

	// Handler groups.
	h := router.Handlers{
		Auth:       handlers.NewAuth(sessionStore, userStore, activityStore),
		Users:      handlers.NewUsers(userStore, activityStore),
		Branding:   handlers.NewBranding(brandingService, brandingCache, activityStore),
		Dashboard:  handlers.NewDashboard(clientStore, activityStore),
		Inquiries:  handlers.NewInquiries(inquiryStore, activityStore),
		Freshbooks: handlers.NewFreshbooks(fbClient, clientStore, activityStore),
	}
	if storageClient != nil {
		h.Storage = storageClient
	}

	r, limiter := router.New(sessionStore, h)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
