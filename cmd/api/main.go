package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront_gateway/internal/catalog"
	"storefront_gateway/internal/email"
	"storefront_gateway/internal/events"
	"storefront_gateway/internal/forms"
	apphttp "storefront_gateway/internal/http"
	"storefront_gateway/internal/http/router"
	"storefront_gateway/internal/notification"
	"storefront_gateway/platform/apiclient"
	"storefront_gateway/platform/config"
	"storefront_gateway/platform/logger"
	"storefront_gateway/platform/validator"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "company", cfg.GetCompanyName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	client := apiclient.New(apiclient.Config{
		BaseURL: cfg.GetCatalogBaseURL(),
		Timeout: cfg.GetRequestTimeout(),
	}, log)
	defer client.CloseIdleConnections()
	log.Info("upstream client initialized", "baseURL", cfg.GetCatalogBaseURL(), "timeout", client.Timeout())

	sender := email.NewSender(cfg)
	if !cfg.GetEmailEnabled() {
		log.Warn("SMTP_HOST or EMAIL_NOTIFY_ADDRESS not configured; submission notifications disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to form events (not HTTP-facing)
	notificationModule := notification.New(sender, log)
	notificationModule.RegisterHandlers(eventBus)

	catalogModule := catalog.NewModule(client, val, cfg, log)
	formsModule, err := forms.NewModule(client, val, eventBus, cfg, log)
	if err != nil {
		log.Error("failed to initialize forms module", "error", err)
		panic("failed to initialize forms module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Health: client,
		Modules: []apphttp.Module{
			catalogModule,
			formsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := eventBus.Wait(shutdownCtx); err != nil {
			log.Warn("pending notifications abandoned", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
