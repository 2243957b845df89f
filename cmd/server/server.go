package main

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"codeberg.org/atlasagency/server/internal/config"
	"codeberg.org/atlasagency/server/internal/logger"
	"codeberg.org/atlasagency/server/internal/ratelimit"
	"codeberg.org/atlasagency/server/internal/sessions"
)

// creates and configures a new server instance with all dependencies
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	services, err := InitializeServices(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	store, redisClient, err := newSessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	server, err := newServer(cfg, services, store, redisClient)
	if err != nil {
		store.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, err
	}

	return server, nil
}

// wires the router around already-built dependencies.
// redisClient may be nil, rate limit counters then stay in memory.
func newServer(cfg *config.Config, services *Services, store sessions.Store, redisClient *redis.Client) (*Server, error) {
	secret, err := sessionSecret(cfg)
	if err != nil {
		return nil, err
	}

	limiter, err := ratelimit.Middleware(cfg.GenerateRateLimit, redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware())

	server := &Server{
		config:   cfg,
		services: services,
		sessions: store,
		cookies: sessions.NewCookieStore(sessions.CookieOptions{
			Secret: secret,
			TTL:    cfg.Session.TTL,
			Secure: cfg.IsProduction(),
		}),
		limiter: limiter,
		router:  router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

// picks the session backend; the redis client is returned for sharing
func newSessionStore(ctx context.Context, cfg *config.Config) (sessions.Store, *redis.Client, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		store, err := sessions.NewRedisStore(ctx, cfg.Session.RedisURL, cfg.Session.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis session store: %w", err)
		}

		logger.Info("session store initialized", "store", config.StoreRedis, "ttl", cfg.Session.TTL)
		return store, store.Client(), nil
	default:
		logger.Info("session store initialized", "store", config.StoreMemory, "ttl", cfg.Session.TTL)
		return sessions.NewMemoryStore(cfg.Session.TTL), nil, nil
	}
}

// without SESSION_SECRET cookies are signed with a random key and do not
// survive a restart
func sessionSecret(cfg *config.Config) ([]byte, error) {
	if cfg.Session.Secret != "" {
		return []byte(cfg.Session.Secret), nil
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}

	logger.Warn("SESSION_SECRET not set, using a random key; sessions reset on restart")

	return secret, nil
}

func (s *Server) Close() error {
	return s.sessions.Close()
}
