package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"point-set-service/internal/api"
	"point-set-service/internal/bootstrap"
	"point-set-service/internal/config"
	"point-set-service/internal/services"
	"syscall"
	"time"
)

// main is the application composition root.
// It wires concrete adapters (SQL storage, Redis cache) behind ports and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	pointCache, closeCache, err := bootstrap.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	svc := services.NewPointSetService(store.Repo, pointCache)
	router := api.NewRouter(svc, cfg.MaxBodyBytes)

	log.Printf("Server listening addr=:%s driver=%s", cfg.Port, cfg.DBDriver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
