package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/annerobin/therapy-booking/internal/activity"
	"github.com/annerobin/therapy-booking/internal/api"
	"github.com/annerobin/therapy-booking/internal/auth"
	"github.com/annerobin/therapy-booking/internal/booking"
	"github.com/annerobin/therapy-booking/internal/config"
	"github.com/annerobin/therapy-booking/internal/db"
	redisclient "github.com/annerobin/therapy-booking/internal/redis"
	"github.com/annerobin/therapy-booking/internal/settings"
	"github.com/annerobin/therapy-booking/internal/store"
)

const version = "1.0.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s backend=%s", cfg.Env, cfg.HTTPPort, cfg.StorageBackend)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		kv     store.Store
		repo   booking.Repository
		pgPool *pgxpool.Pool
	)

	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			log.Fatalf("postgres connection error: %v", err)
		}
		defer pool.Close()
		log.Println("connected to Postgres")

		pgPool = pool
		kv = store.NewPgStore(pool)
		repo = booking.NewPgRepository(pool, kv)

	default:
		fileStore, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("open data dir: %v", err)
		}
		kv = fileStore
		repo = booking.NewLocalRepository(kv)
	}

	var rdb *redis.Client
	var actLog activity.Log
	if cfg.RedisAddr != "" {
		rdb, err = redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("redis connection error: %v", err)
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Printf("error closing redis: %v", err)
			}
		}()
		log.Println("connected to Redis, activity feed uses Redis")
		actLog = activity.NewRedisLog(rdb)
	} else {
		actLog = activity.NewKVLog(kv)
	}

	initCtx, cancelInit := context.WithTimeout(rootCtx, 10*time.Second)
	if err := auth.EnsurePassword(initCtx, kv, cfg.AdminPassword); err != nil {
		cancelInit()
		log.Fatalf("init admin password: %v", err)
	}

	svc := booking.NewService(repo, settings.NewStore(kv), actLog)

	// First run on an empty local store gets the demo calendar.
	if cfg.StorageBackend == config.BackendLocal {
		if err := svc.EnsureData(initCtx); err != nil {
			cancelInit()
			log.Fatalf("init demo data: %v", err)
		}
	}
	cancelInit()

	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		sessionSecret = randomSecret()
		log.Println("SESSION_SECRET is not set; admin sessions will not survive a restart")
	}
	sessions := auth.NewSessions(sessionSecret, cfg.SessionTTL)

	router := api.NewRouter(api.RouterConfig{
		Service:  svc,
		Sessions: sessions,
		PgPool:   pgPool,
		Redis:    rdb,
		Env:      cfg.Env,
		Version:  version,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()

	log.Println("shutting down api-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
