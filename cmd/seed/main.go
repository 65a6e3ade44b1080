package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/annerobin/therapy-booking/internal/booking"
	"github.com/annerobin/therapy-booking/internal/config"
	"github.com/annerobin/therapy-booking/internal/db"
	"github.com/annerobin/therapy-booking/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	yes := flag.Bool("yes", false, "confirm replacing all existing slot data")
	flag.Parse()

	if !*yes {
		log.Fatal("seeding replaces the entire slot collection; rerun with --yes to confirm")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var repo booking.Repository
	switch cfg.StorageBackend {
	case config.BackendPostgres:
		pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		repo = booking.NewPgRepository(pool, store.NewPgStore(pool))
	default:
		fileStore, err := store.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("open data dir: %v", err)
		}
		repo = booking.NewLocalRepository(fileStore)
	}

	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("seeding demo calendar backend=%s", cfg.StorageBackend)
	slots := booking.GenerateCalendar(time.Now())

	if err := repo.SeedData(ctx, slots); err != nil {
		log.Fatalf("seed data: %v", err)
	}

	log.Printf("seed complete, slots=%d", len(slots))
}
