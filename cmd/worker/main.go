// Command worker runs the harvest and analysis pipeline on a cron schedule
// and posts threat digests to the configured webhooks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"fiji-news/internal/app"
	"fiji-news/internal/config"
	"fiji-news/internal/handler/http/respond"
	workerPkg "fiji-news/internal/infra/worker"
	"fiji-news/internal/observability/logging"
	"fiji-news/internal/usecase/news"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("harvest_timeout", workerConfig.HarvestTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	a, err := app.Build(cfg, logger, app.Options{Notify: true})
	if err != nil {
		logger.Error("startup failed", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, a.Store.Ping)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	startCronWorker(ctx, logger, a.News, workerConfig, workerMetrics, healthServer)
}

// startCronWorker schedules the pipeline and blocks until ctx is cancelled,
// then waits for a running job to finish.
func startCronWorker(ctx context.Context, logger *slog.Logger, svc *news.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runPipelineJob(ctx, logger, svc, cfg, metrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	healthServer.SetReady(false)
	logger.Info("shutting down worker...")
	<-c.Stop().Done()
	logger.Info("worker stopped")
}

// runPipelineJob harvests, analyzes and notifies once within the configured timeout.
func runPipelineJob(parent context.Context, logger *slog.Logger, svc *news.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics) {
	start := time.Now()
	metrics.RecordJobRun("started")
	logger.Info("pipeline started")

	ctx, cancel := context.WithTimeout(parent, cfg.HarvestTimeout)
	defer cancel()

	result, err := svc.Run(ctx)
	metrics.RecordJobDuration(time.Since(start).Seconds())
	if err != nil {
		logger.Error("pipeline failed", slog.String("error", respond.SanitizeError(err)))
		metrics.RecordJobRun("failure")
		return
	}

	metrics.RecordJobRun("success")
	metrics.RecordArticlesStored(result.Bundle.Total())
	metrics.RecordLastSuccess()

	logger.Info("pipeline completed",
		slog.String("news_file", result.Filename),
		slog.String("analysis_file", result.AnalysisFile),
		slog.Int("articles", result.Bundle.Total()),
		slog.Int("sources", result.Stats.Sources),
		slog.Int("candidates", result.Stats.Candidates),
		slog.Int("rejected", result.Stats.Rejected),
		slog.Int("failed", result.Stats.Failed),
		slog.Int("threats", len(result.Analysis.EmergingThreats)),
		slog.Duration("duration", time.Since(start)),
	)
}
