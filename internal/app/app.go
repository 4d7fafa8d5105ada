package app

import (
	"context"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/juicebar/internal/domain/admin"
	"github.com/xenking/juicebar/internal/domain/order"
	"github.com/xenking/juicebar/internal/domain/seed"
	"github.com/xenking/juicebar/internal/handler"
	"github.com/xenking/juicebar/internal/session"
	"github.com/xenking/juicebar/pkg/health"
	"github.com/xenking/juicebar/pkg/httpmiddleware"
)

const serviceName = "juicebar"

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("addr", cfg.Addr),
		zap.String("store", cfg.Store.Driver),
		zap.String("sessions", cfg.Session.Driver),
	)

	stack, err := newStack(ctx, cfg, m.TracerProvider(), m.MeterProvider())
	if err != nil {
		return err
	}
	defer stack.close(lg)

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "listen")
	}
	return serve(ctx, lg, ln, stack, cfg.Graceful)
}

// serve runs the HTTP server on ln until ctx is done, then marks the stack
// unready, waits the readiness delay and shuts the server down.
func serve(ctx context.Context, lg *zap.Logger, ln net.Listener, s *stack, graceful GracefulConfig) error {
	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Handler:           s.handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	// Graceful shutdown: wait for cancellation, drain, then stop.
	g.Go(func() error {
		<-gctx.Done()
		s.health.SetReady(false)
		if ctx.Err() != nil {
			lg.Info("Readiness set to false, draining", zap.Duration("delay", graceful.ReadinessDelay))
			time.Sleep(graceful.ReadinessDelay)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}

// stack is the assembled HTTP handler with the resources it owns.
type stack struct {
	handler http.Handler
	health  *health.Health
	closers []func(ctx context.Context) error
}

// newStack opens the stores and builds the middleware-wrapped router.
// Health checks start immediately and stop when ctx is done or on close.
func newStack(ctx context.Context, cfg *Config, tp trace.TracerProvider, mp metric.MeterProvider) (_ *stack, err error) {
	s := &stack{}
	defer func() {
		if err != nil {
			s.close(zctx.From(ctx))
		}
	}()

	stores, err := OpenStores(ctx, cfg.Store)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	s.closers = append(s.closers, stores.Close)

	sessionStore, closeSessions, err := openSessionStore(cfg.Session)
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}
	s.closers = append(s.closers, func(context.Context) error { return closeSessions() })
	sessions := session.NewManager(sessionStore, session.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		MaxAge: cfg.Session.TTL,
	})

	// Health check service.
	s.health = health.New()
	s.health.AddReadinessCheck(cfg.Store.Driver, 5*time.Second, health.PingCheck(cfg.Store.Driver, stores))
	s.health.AddReadinessCheck("sessions", 5*time.Second, health.PingCheck("sessions", sessions))
	s.health.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	s.health.Start(ctx, 10*time.Second)
	s.health.SetReady(true)

	// Domain services.
	orderService, err := order.NewService(stores.Orders, mp.Meter(serviceName))
	if err != nil {
		return nil, errors.Wrap(err, "create order service")
	}
	seeder := seed.NewSeeder(cfg.Setup.SeedConfig(), stores.Admins, stores.Orders,
		seed.NewGenerator(randomSource(cfg.Setup.RandomSeed)),
	)

	// HTTP handlers: pages + health endpoints on one router.
	h, err := handler.New(orderService, admin.NewAuthenticator(stores.Admins), seeder, sessions)
	if err != nil {
		return nil, errors.Wrap(err, "create handler")
	}
	router := h.Routes()
	router.HandleFunc("/livez", s.health.LiveEndpoint).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.health.ReadyEndpoint).Methods(http.MethodGet)

	s.handler = httpmiddleware.Wrap(
		otelhttp.NewHandler(router, serviceName,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithMeterProvider(mp),
		),
		httpmiddleware.Recovery(),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zctx.From(ctx)),
		httpmiddleware.LogRequests(),
	)
	return s, nil
}

func (s *stack) close(lg *zap.Logger) {
	if s.health != nil {
		s.health.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			lg.Warn("Close resource", zap.Error(err))
		}
	}
}

// randomSource returns a PCG source for seed, or a randomly seeded one
// when seed is zero.
func randomSource(seed uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, seed)
}
