package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hellosvc.org/internal/auth"
	"hellosvc.org/internal/config"
	"hellosvc.org/internal/httpapi"
	"hellosvc.org/internal/migrate"
	"hellosvc.org/internal/obs"
	"hellosvc.org/internal/store"
	"hellosvc.org/internal/store/pg"
)

var (
	version = "0.3.1"
	commit  = "dev"
)

func main() {
	obs.Init()
	obs.InitBuildInfo(version, commit)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	codec, err := auth.NewCodec(cfg.Secret, auth.WithTTL(cfg.TokenTTL))
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	hasher := auth.NewHasher(cfg.BcryptCost)

	var (
		users auth.UserStore
		probe httpapi.ReadyProbe
	)
	if cfg.PostgresDSN != "" {
		pgStore, err := pg.Open(cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer pgStore.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := migrate.NewManager(pgStore.DB(), migrate.Files()).Up(ctx); err != nil {
			cancel()
			log.Fatalf("migrate: %v", err)
		}
		cancel()

		users = pgStore
		probe = httpapi.ReadyProbe{DB: pgStore.DB()}
	} else {
		users = store.NewInMemory()
	}

	svc := auth.NewService(users, hasher, codec)
	api := httpapi.New(probe, version, svc)
	api.ConfigureRateLimit(cfg.RateBurst, cfg.RatePerSec)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting hellosvc-api %s on %s", version, srv.Addr)

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
	log.Println("Stopped")
}
