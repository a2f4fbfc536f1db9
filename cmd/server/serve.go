package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/resumedash/internal/apiclient"
	"github.com/resumedash/internal/blob"
	"github.com/resumedash/internal/config"
	"github.com/resumedash/internal/db"
	"github.com/resumedash/internal/handler"
	"github.com/resumedash/internal/identity"
	"github.com/resumedash/internal/logger"
	"github.com/resumedash/internal/router"
	"github.com/resumedash/internal/service"
	"github.com/resumedash/internal/toast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout  = 10 * time.Second
	sweepInterval    = 10 * time.Minute
	toastMaxIdle     = 30 * time.Minute
	sessionMaxUnused = 7 * 24 * time.Hour
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)

		log, err := logger.New(cfg.GinMode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg, log)
	},
}

func serve(ctx context.Context, cfg config.AppConfig, log *zap.Logger) error {
	if cfg.UsesDevSecret() {
		log.Warn("using the built-in development session secret, set SESSION_SECRET")
	}

	sessions, sweepSessions, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	provider, err := identity.NewProvider(identity.Config{
		IssuerURL:    cfg.OIDC.IssuerURL,
		ClientID:     cfg.OIDC.ClientID,
		ClientSecret: cfg.OIDC.ClientSecret,
		RedirectURL:  cfg.OIDC.RedirectURL,
		Audience:     cfg.OIDC.Audience,
		Scopes:       cfg.OIDC.Scopes,
		RolesClaim:   cfg.OIDC.RolesClaim,
		LogoutURL:    cfg.OIDC.LogoutURL,
	})
	if err != nil {
		return fmt.Errorf("init identity provider: %w", err)
	}

	opts := handler.Options{
		Actions:       service.NewActions(apiclient.New(cfg.APIBaseURL, apiclient.WithTokenSource(apiclient.ContextTokenSource{}), apiclient.WithLogger(log))),
		Auth:          provider,
		Sessions:      sessions,
		Toasts:        toast.NewRegistry(),
		Logger:        log,
		SecureCookies: cfg.GinMode == gin.ReleaseMode,
	}
	if cfg.Storage.ConnectionString != "" {
		signer, err := blob.NewSigner(cfg.Storage.ConnectionString)
		if err != nil {
			return fmt.Errorf("init blob storage: %w", err)
		}
		opts.Images = blob.NewImageService(blob.SignedOpener(signer))
	} else {
		log.Warn("AZURE_STORAGE_CONNECTION_STRING is not set, image endpoints are disabled")
	}
	api := handler.NewAPI(opts)

	r := router.SetupRouter(router.Deps{
		API:           api,
		Logger:        log,
		SessionSecret: cfg.SessionSecret,
		SecureCookies: opts.SecureCookies,
		TemplateGlob:  cfg.TemplateGlob,
		StaticDir:     cfg.StaticDir,
	})

	go sweep(ctx, log, api.Toasts(), sweepSessions)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.ListenAddr), zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// openSessionStore 优先使用 redis，未配置时回退到 SQLite。
// 返回的 sweep 函数用于清理过期会话，redis 依赖 TTL 因此为 nil。
func openSessionStore(ctx context.Context, cfg config.AppConfig, log *zap.Logger) (identity.SessionStore, func(time.Time) (int64, error), error) {
	if cfg.RedisURL != "" {
		client, err := identity.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("session store: redis")
		return identity.NewRedisStore(client, identity.DefaultSessionTTL), nil, nil
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Info("session store: sqlite", zap.String("path", cfg.DatabasePath))
	sweepFn := func(now time.Time) (int64, error) {
		return db.DeleteStaleSessions(db.DB, now, sessionMaxUnused)
	}
	return identity.NewGormStore(db.DB), sweepFn, nil
}

func sweep(ctx context.Context, log *zap.Logger, toasts *toast.Registry, sweepSessions func(time.Time) (int64, error)) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := toasts.Prune(toastMaxIdle); n > 0 {
				log.Debug("pruned idle toast queues", zap.Int("count", n))
			}
			if sweepSessions == nil {
				continue
			}
			n, err := sweepSessions(now)
			if err != nil {
				log.Warn("failed to delete stale sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Info("deleted stale sessions", zap.Int64("count", n))
			}
		}
	}
}
