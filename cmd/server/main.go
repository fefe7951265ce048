package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	apihttp "pulsehub/internal/adapters/http"
	"pulsehub/internal/adapters/postgres"
	"pulsehub/internal/adapters/redis"
	"pulsehub/internal/adapters/ws"
	"pulsehub/internal/adapters/ws/subscribers"
	"pulsehub/internal/config"
	"pulsehub/internal/core/auth"
	"pulsehub/internal/core/publish"
	"pulsehub/internal/domain"
	"pulsehub/internal/event"
	"pulsehub/internal/logger"
	"pulsehub/internal/workers"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if cfg.JWTSecret == "" {
		panic("FATAL: JWT_SECRET is mandatory for Server!")
	}

	dbPool, err := postgres.InitDB(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to init DB", "error", err)
		return
	}
	defer dbPool.Close()

	eventRepo := postgres.NewEventRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)

	bus := event.NewRegistry()

	publishService := publish.NewService(bus, eventRepo, log)
	authService := auth.NewService(userRepo, publishService, cfg.JWTSecret, cfg.JWTExpiry)

	// The conventional "error" listener: without it the publish service
	// escalates unhandled failures.
	bus.On(domain.ErrorEvent, func(args ...any) {
		if len(args) > 0 {
			if err, ok := args[0].(error); ok {
				log.Error("event: error reported", "error", err)
				return
			}
		}
		log.Error("event: error reported", "args", args)
	})

	hub := ws.NewHub(ctx, log)
	go hub.Run()
	wsHandler := ws.NewHandler(hub, log, cfg.JWTSecret, cfg.AllowedOrigins)

	catalog := append(domain.KnownEvents(), cfg.EventCatalog...)
	subscribers.Register(bus, hub, catalog)

	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to init redis", "error", err)
			return
		}
		defer redisClient.Close()

		bridge := redis.NewBridge(redisClient, cfg.RedisChannel, log)
		for _, name := range catalog {
			bus.On(name, bridge.Handle)
		}
	}

	scheduler := workers.NewScheduler(cfg, log)
	manager := workers.NewManager(cfg, log, scheduler, eventRepo)
	manager.Start(ctx)

	router := apihttp.NewRouter(cfg, &apihttp.RouterDeps{
		Ws:    wsHandler,
		Event: apihttp.NewEventHandler(publishService),
		Auth:  apihttp.NewAuthHandler(authService),
	})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: router,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		hub.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		return
	}

	log.Info("server stopped")
}
