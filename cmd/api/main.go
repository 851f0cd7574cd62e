// Command api serves the fiji-news HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiji-news/internal/app"
	"fiji-news/internal/config"
	hhttp "fiji-news/internal/handler/http"
	hnews "fiji-news/internal/handler/http/news"
	"fiji-news/internal/handler/http/requestid"
	"fiji-news/internal/handler/http/respond"
	"fiji-news/internal/observability/logging"
	"fiji-news/internal/observability/tracing"
	envconfig "fiji-news/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	maxRequestBody  = 10 << 20
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg := config.Load()
	logger := initLogger(cfg.LogLevel)
	version := getVersion()

	shutdownTracing := tracing.Init("fiji-news-api", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	a, err := app.Build(cfg, logger, app.Options{})
	if err != nil {
		logger.Error("startup failed", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}

	runServer(logger, cfg.HTTPAddr, setupHandler(logger, a, version), version)
}

func initLogger(level string) *slog.Logger {
	logger := logging.NewLogger(level)
	slog.SetDefault(logger)
	return logger
}

func getVersion() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

// setupHandler registers every route and wraps the mux in the middleware
// chain. The first middleware listed is the outermost.
func setupHandler(logger *slog.Logger, a *app.App, version string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{
		Checks:  map[string]hhttp.Pinger{"data_dir": a.Store, "sources": sourcesCheck(len(a.Sources))},
		Version: version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: a.Store})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.HandleFunc("GET /{$}", index(version))

	hnews.Register(mux, a.News, a.Narrator, a.Store)

	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		logging.Middleware(logger),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxRequestBody),
		hhttp.NewHTTPMetrics(prometheus.DefaultRegisterer).Middleware,
	)
}

func sourcesCheck(n int) hhttp.PingFunc {
	return func(context.Context) error {
		if n == 0 {
			return errors.New("no news sources configured")
		}
		return nil
	}
}

// index answers GET / with the service version and its routes.
func index(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]any{
			"status":  respond.StatusSuccess,
			"service": "fiji-news",
			"version": version,
			"endpoints": []string{
				"POST /harvest_news",
				"GET /get_news_files",
				"POST /load_news",
				"POST /generate_summary",
				"POST /analyze_trends",
				"POST /text_to_speech",
				"GET /audio/{filename}",
			},
		})
	}
}

func runServer(logger *slog.Logger, addr string, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
