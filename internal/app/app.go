// Package app wires configuration, the rate limiter, the upstream provider,
// and the HTTP server into a running service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coderemark/coderemark/internal/config"
	"github.com/coderemark/coderemark/internal/gateway"
	"github.com/coderemark/coderemark/internal/http/api"
	"github.com/coderemark/coderemark/internal/http/api/handlers"
	"github.com/coderemark/coderemark/internal/ratelimit"
	"github.com/coderemark/coderemark/internal/settings"
	"github.com/coderemark/coderemark/internal/upstream"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// RunServer boots the service and blocks until ctx is cancelled or the
// listener fails.
func RunServer(ctx context.Context, appCfg config.AppConfig, defaultPort int) error {
	configPath := config.ResolveConfigPath(appCfg.ConfigPath)
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	port := cfg.Port
	if port <= 0 {
		port = defaultPort
	}

	settingsProvider := func() ratelimit.SettingsConfig {
		return ratelimit.SettingsConfig{
			Limit:         cfg.RateLimit.Limit,
			Window:        cfg.RateLimit.Window,
			RedisEnabled:  cfg.RateLimit.Redis.Enabled,
			RedisAddr:     cfg.RateLimit.Redis.Addr,
			RedisPassword: cfg.RateLimit.Redis.Password,
			RedisDB:       cfg.RateLimit.Redis.DB,
			RedisPrefix:   cfg.RateLimit.Redis.Prefix,
		}
	}
	limiter := ratelimit.NewManager(settingsProvider, nil, nil)
	go limiter.Janitor(ctx, settings.DefaultEvictionInterval)

	var provider upstream.Provider
	if cfg.Upstream.APIKey == "" {
		log.Warnf("%s not set; comment requests will fail until configured", config.EnvAPIKey)
	} else {
		gemini, errProvider := upstream.NewGemini(ctx, cfg.Upstream.APIKey, cfg.Upstream.Model)
		if errProvider != nil {
			return errProvider
		}
		provider = gemini
	}
	gw := gateway.New(provider, gateway.Options{
		MaxOutputTokens: cfg.Upstream.MaxOutputTokens,
		Temperature:     &cfg.Upstream.Temperature,
		Timeout:         cfg.Upstream.Timeout,
	})

	engine := gin.New()
	engine.Use(gin.Recovery())
	api.RegisterRoutes(engine, handlers.NewCommentHandler(gw), api.RateLimitMiddleware(limiter, settingsProvider, nil))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.Infof("listening on :%d (model=%s, limit=%d/%s)", port, cfg.Upstream.Model, cfg.RateLimit.Limit, cfg.RateLimit.Window)

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if errShutdown := server.Shutdown(ctxShutdown); errShutdown != nil {
			return errShutdown
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return errServe
	}
}
