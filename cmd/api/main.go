package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"skladr.dev/internal/auth"
	"skladr.dev/internal/httpapi"
	"skladr.dev/internal/obs"
	"skladr.dev/internal/store/pg"
	"skladr.dev/internal/store/redisdl"
)

var version = "0.3.1"

type config struct {
	addr        string
	pgDSN       string
	redisAddr   string
	authSecret  string
	accessTTL   time.Duration
	refreshTTL  time.Duration
	defaultRole string
}

func loadConfig() config {
	cfg := config{
		addr:        envOr("SKLADR_ADDR", ":8080"),
		pgDSN:       os.Getenv("SKLADR_PG_DSN"),
		redisAddr:   os.Getenv("SKLADR_REDIS_ADDR"),
		authSecret:  os.Getenv("SKLADR_AUTH_SECRET"),
		accessTTL:   durationOr("SKLADR_ACCESS_TTL", 15*time.Minute),
		refreshTTL:  durationOr("SKLADR_REFRESH_TTL", 7*24*time.Hour),
		defaultRole: envOr("SKLADR_DEFAULT_ROLE", "consumer"),
	}
	if cfg.pgDSN == "" {
		log.Fatal("SKLADR_PG_DSN is required")
	}
	if cfg.authSecret == "" {
		log.Fatal("SKLADR_AUTH_SECRET is required")
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func main() {
	cfg := loadConfig()

	obs.Init()
	obs.InitBuildInfo(version, envOr("SKLADR_COMMIT", "unknown"))

	store, err := pg.Open(cfg.pgDSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer store.Close()

	// Without Redis the denylist is process-local; fine for a single
	// instance, not for a fleet.
	var denylist auth.Denylist = auth.NewMemoryDenylist()
	var redisClient *redis.Client
	if cfg.redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.redisAddr})
		denylist = redisdl.New(redisClient)
	}

	codec, err := auth.NewCodec(cfg.authSecret,
		auth.WithIssuer("skladr"),
		auth.WithAccessTTL(cfg.accessTTL),
		auth.WithRefreshTTL(cfg.refreshTTL),
	)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}

	sessions, err := auth.NewSessions(store, codec, denylist)
	if err != nil {
		log.Fatalf("sessions: %v", err)
	}
	users, err := auth.NewUsers(store, cfg.defaultRole)
	if err != nil {
		log.Fatalf("users: %v", err)
	}
	perms, err := auth.NewPermissions(store)
	if err != nil {
		log.Fatalf("permissions: %v", err)
	}

	api := httpapi.New(sessions, users, perms,
		httpapi.ReadyProbe{DB: store.DB(), Redis: redisClient},
		cfg.refreshTTL, version)

	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           httpapi.RateLimit(api.Handler(), 40, 20),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting skladr-auth %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Println("Stopped")
}
