package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hotelhub/internal/adapters/filestore"
	"hotelhub/internal/adapters/hotelapi"
	server "hotelhub/internal/adapters/http_server"
	"hotelhub/internal/adapters/observability"
	redisad "hotelhub/internal/adapters/redis"
	"hotelhub/internal/app"
	"hotelhub/internal/domain"
	"hotelhub/internal/shared"
	"hotelhub/internal/views"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)
	zerolog.SetGlobalLevel(observability.LogLevel(cfg.AppEnv, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, observability.MetricsHandler(reg))

	tokens, closeTokens := openTokenStore(ctx, cfg)
	defer closeTokens()

	client, err := hotelapi.New(cfg.APIBaseURL, tokens,
		hotelapi.WithTimeout(cfg.RequestTimeout),
		hotelapi.WithRateLimit(cfg.APIRPS),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize backend client")
	}

	notes := app.NewNotificationQueue(cfg.NotificationTTL)
	defer notes.Close()
	alerts := &app.AlertBox{}

	session := app.NewSessionStore(client, tokens)
	// resolve the stored token before serving so guarded routes never see the check window
	session.Start(ctx)
	log.Info().Str("session", session.State().String()).Msg("session restored")

	deps := views.Deps{
		API:     client,
		Notes:   notes,
		Alerts:  alerts,
		Session: session,
		Hotels:  app.NewHotelCollection(client, alerts),
	}
	h := server.NewHandlers(deps, notes, alerts, cfg.MapsKey)
	defer h.Close()

	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdown)
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.APIBaseURL).Msg("console listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("console stopped")
}

// openTokenStore picks the token backend from TOKEN_STORE.
func openTokenStore(ctx context.Context, cfg shared.Config) (domain.TokenStore, func()) {
	switch cfg.TokenStore {
	case "redis":
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := cache.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("token store: redis")
		return redisad.NewTokenStore(cache), func() { _ = cache.Close() }
	case "memory":
		log.Info().Msg("token store: memory")
		return filestore.NewMemory(""), func() {}
	default:
		path := cfg.TokenPath
		if path == "" {
			p, err := filestore.DefaultPath()
			if err != nil {
				log.Fatal().Err(err).Msg("resolve token path")
			}
			path = p
		}
		log.Info().Str("path", path).Msg("token store: file")
		return filestore.New(path), func() {}
	}
}
