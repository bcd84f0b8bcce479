package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dinedash/config"
	"dinedash/handlers"
	"dinedash/middleware"
	"dinedash/ratelimit"
	"dinedash/repository"
	"dinedash/routes"
	"dinedash/session"

	"github.com/gin-gonic/gin"
	"github.com/thejerf/suture/v4"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	log.Printf("Loaded %s", cfg)

	// Set Gin mode
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	} else if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	if err := repository.SeedSampleData(ctx, db); err != nil {
		log.Fatal("Failed to seed sample data: ", err)
	}

	users := repository.NewUserRepository(db)
	issuer := session.NewIssuer(users, newCodec(cfg.Auth), session.Settings{
		CookieName: cfg.Auth.CookieName,
		TTL:        cfg.Auth.SessionTTL,
		Secure:     cfg.IsProduction(),
		BcryptCost: cfg.Auth.BcryptCost,
	})
	seedManager(ctx, issuer, cfg.Seed)

	limiter, closeLimiter := newLimiter(ctx, cfg.RateLimit)
	defer closeLimiter()

	h := handlers.New(handlers.Deps{
		Sessions: issuer,
		Users:    users,
		Menu:     repository.NewMenuRepository(db),
		Orders:   repository.NewOrderRepository(db),
		Feedback: repository.NewFeedbackRepository(db),
		Location: cfg.Location(),
	})

	r := newRouter(cfg.Server, h, limiter)

	supervisor := suture.NewSimple("dinedash")
	supervisor.Add(&httpService{addr: ":" + cfg.Server.Port, handler: r})

	log.Printf("Server running on http://localhost:%s", cfg.Server.Port)
	if err := supervisor.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Server stopped: ", err)
	}
	log.Println("Server stopped")
}

// newRouter builds the engine with default middleware (logger + recovery).
// Client IPs come from the socket unless the peer is a trusted proxy, so a
// forged X-Forwarded-For cannot dodge the login rate limit.
func newRouter(cfg config.ServerConfig, h *handlers.Handler, limiter ratelimit.Limiter) *gin.Engine {
	r := gin.Default()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Printf("Ignoring TRUSTED_PROXIES: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the DineDash Restaurant Management API",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, h, limiter)
	return r
}

func newCodec(cfg config.AuthConfig) session.Codec {
	if cfg.TokenFormat == "json" {
		return session.JSONCodec{}
	}
	return session.NewJWTCodec(cfg.SessionSecret, cfg.SessionTTL, nil)
}

// seedManager creates the configured manager account if it is missing.
func seedManager(ctx context.Context, issuer *session.Issuer, seed config.SeedConfig) {
	if seed.Email == "" || seed.Password == "" {
		return
	}
	_, err := issuer.Register(ctx, seed.Name, seed.Email, seed.Password)
	switch {
	case err == nil:
		log.Printf("Seeded manager account %s", seed.Email)
	case errors.Is(err, session.ErrDuplicateAccount):
	default:
		log.Fatal("Failed to seed manager account: ", err)
	}
}

// newLimiter prefers Redis when an address is configured and falls back to
// the in-process limiter if Redis cannot be reached. Zero attempts turns
// limiting off.
func newLimiter(ctx context.Context, cfg config.RateLimitConfig) (ratelimit.Limiter, func()) {
	if cfg.Attempts <= 0 || cfg.Window <= 0 {
		log.Println("Rate limiting disabled")
		return nil, func() {}
	}
	if cfg.RedisAddr != "" {
		rl, err := ratelimit.NewRedis(ctx, ratelimit.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.Attempts, cfg.Window)
		if err == nil {
			log.Printf("Rate limiting via Redis at %s", cfg.RedisAddr)
			return rl, func() { _ = rl.Close() }
		}
		log.Printf("Redis unavailable, using in-memory rate limiting: %v", err)
	}
	return ratelimit.NewMemory(cfg.Attempts, cfg.Window, nil), func() {}
}
