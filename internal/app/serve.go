package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shopdesk/internal/handler"
	"github.com/xenking/shopdesk/pkg/health"
	"github.com/xenking/shopdesk/pkg/httpmiddleware"
)

const healthInterval = 10 * time.Second

// Handler builds the HTTP handler: API routes, probes and middleware.
func (a *App) Handler(h *health.Health) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", h.Livez)
	mux.HandleFunc("GET /readyz", h.Readyz)
	handler.New(handler.Config{Top: a.Config.Report.Top}, a.Clients, a.Products, a.Orders).Register(mux)

	return httpmiddleware.Wrap(mux,
		httpmiddleware.InjectLogger(a.lg.Named("http")),
		httpmiddleware.Recovery(),
		httpmiddleware.RequestID(),
		httpmiddleware.LogRequests(),
	)
}

// Serve runs the API server until ctx is done, then shuts it down.
func (a *App) Serve(ctx context.Context) error {
	h := health.New()
	h.AddCheck("store", 5*time.Second, a.Store.Ping)

	server := &http.Server{
		Addr:              a.Config.Addr,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Handler: otelhttp.NewHandler(a.Handler(h), "shopdesk",
			otelhttp.WithTracerProvider(a.m.TracerProvider()),
			otelhttp.WithMeterProvider(a.m.MeterProvider()),
		),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return h.Run(ctx, healthInterval)
	})
	g.Go(func() error {
		<-ctx.Done()
		h.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Graceful.ShutdownTimeout)
		defer cancel()

		a.lg.Info("Shutting down server", zap.Duration("timeout", a.Config.Graceful.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		a.lg.Info("Server listening", zap.String("addr", a.Config.Addr))
		h.SetReady(true)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	return g.Wait()
}
