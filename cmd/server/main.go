package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tour-route-service/internal/adapters/repositories"
	"tour-route-service/internal/api"
	"tour-route-service/internal/api/handlers"
	"tour-route-service/internal/app"
	"tour-route-service/internal/config"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis, solver) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapters, err := app.Build(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer adapters.Close()

	// Seed demo data on startup for local runs when the point table is the source.
	if _, ok := adapters.Source.(*repositories.SQLPointRepository); ok {
		if err := seedIfPresent(adapters, cfg.SeedPath); err != nil {
			log.Fatal(err)
		}
	}

	router := api.NewRouter(api.Deps{
		Source:        adapters.Source,
		Cache:         adapters.Cache,
		Solver:        adapters.Solver,
		Exporter:      adapters.Exporter,
		InstanceName:  cfg.InstanceName,
		SolverTimeout: cfg.SolverTimeout,
		HealthChecks: map[string]handlers.Check{
			"db": adapters.DB.PingContext,
		},
	})

	log.Printf("Server listening addr=:%s solver=%s", cfg.Port, cfg.Solver)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      api.WriteTimeout(cfg.SolverTimeout),
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: err=%v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func seedIfPresent(a *app.Adapters, seedPath string) error {
	if _, err := os.Stat(seedPath); errors.Is(err, os.ErrNotExist) {
		log.Printf("No seed file found path=%s (serving stored points)", seedPath)
		return nil
	}
	return repositories.SeedFromYAML(a.DB, a.Dialect, seedPath)
}
