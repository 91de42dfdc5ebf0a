package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/eats-storefront/internal/checkout"
	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/handler"
	"github.com/xenking/eats-storefront/internal/storage/redis"
	"github.com/xenking/eats-storefront/pkg/health"
	"github.com/xenking/eats-storefront/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the gateway.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("backend", cfg.BackendURL))

	// Session store.
	store, err := redis.NewStore(ctx, redis.Config{
		Addr:       cfg.Redis.Addr,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.DB,
		SessionTTL: cfg.Redis.SessionTTL,
	})
	if err != nil {
		return errors.Wrap(err, "connect session store")
	}
	defer func() { _ = store.Close() }()

	// Backend client.
	var tokens client.TokenSource
	if cfg.BackendToken != "" {
		tokens = client.StaticToken(cfg.BackendToken)
	}
	backend, err := client.New(client.Config{
		BaseURL: cfg.BackendURL,
		Tokens:  tokens,
	})
	if err != nil {
		return errors.Wrap(err, "create backend client")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("redis", 5*time.Second, health.PingCheck(store))
	healthSvc.AddReadinessCheck("backend", 5*time.Second, health.HTTPGetCheck(nil, cfg.BackendURL))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Services and HTTP handlers.
	checkoutSvc := checkout.NewService(store, backend)
	h := handler.New(backend, store, store, checkoutSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/", h.Router())

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization", handler.SessionHeader},
				ExposeHeaders:    []string{handler.SessionHeader},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
