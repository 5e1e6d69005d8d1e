package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coopcycle-service/internal/api/handlers"
	"coopcycle-service/internal/database"
	"coopcycle-service/internal/events"
	"coopcycle-service/internal/repository"
	"coopcycle-service/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := database.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatal("migrations failed: ", err)
	}

	publisher, closer, err := newPublisher(cfg)
	if err != nil {
		log.Fatal("failed to start events backend: ", err)
	}
	defer closer.Close()

	services := service.NewServices(pool, repository.NewSchema(), publisher)

	alerts := handlers.Alerts{App: cfg.AppName}
	paging := handlers.Paging{DefaultSize: cfg.PageSizeDefault, MaxSize: cfg.PageSizeMax}
	router := handlers.NewRouter(handlers.RouterConfig{
		Alerts:      alerts,
		Paging:      paging,
		CORSOrigins: cfg.CORSOrigins,
		DB:          pool,
	}, handlers.Resources(services, alerts, paging)...)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("coopcycle service listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newPublisher(cfg *database.Config) (events.Publisher, io.Closer, error) {
	switch cfg.EventsBackend {
	case "redis":
		client, err := events.ConnectRedis(events.RedisConfig{
			Addr:     cfg.RedisURL,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Printf("publishing entity events to redis %s", cfg.RedisURL)
		return events.NewRedisPublisher(client, "coopcycle"), client, nil
	case "kafka":
		p := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		log.Printf("publishing entity events to kafka topic %s", cfg.KafkaTopic)
		return p, p, nil
	case "", "none":
		return events.Nop{}, nopCloser{}, nil
	default:
		return nil, nil, errors.New("unknown EVENTS_BACKEND " + cfg.EventsBackend)
	}
}
