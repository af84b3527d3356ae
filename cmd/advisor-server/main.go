// cmd/advisor-server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agro-advisor/internal/api"
	"agro-advisor/internal/app"
	"agro-advisor/internal/channels/telegram"
	"agro-advisor/internal/common/camunda"
	"agro-advisor/internal/common/config"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/common/observability"
	"agro-advisor/internal/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting advisor server...", zap.String("config", cfg.String()))

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, obs, log)
	if err != nil {
		zapLog.Fatal("app init failed", zap.Error(err))
	}
	defer a.Close()

	// --- Zeebe job workers ---
	var workers []worker.JobWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda.BrokerAddress)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		for taskType, handle := range a.JobHandlers() {
			if w := camunda.StartWorker(zeebe.GetClient(), taskType, config.GetWorkerConfig(cfg, taskType), handle, log); w != nil {
				workers = append(workers, w)
			}
		}
		zapLog.Info("Job workers registered", zap.Int("count", len(workers)))
	}

	g, gctx := errgroup.WithContext(ctx)

	// --- HTTP API ---
	srv := &http.Server{
		Addr:         cfg.Server.ListenAddress(),
		Handler:      api.NewServer(a, log).Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}
	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// --- Tip rotation ---
	sched, err := scheduler.New(cfg.Dashboard.TipSchedule, a.Tips, log)
	if err != nil {
		zapLog.Fatal("scheduler init failed", zap.Error(err))
	}
	g.Go(func() error { return sched.Run(gctx) })

	// --- Telegram ---
	if cfg.Telegram.Enabled {
		bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.Timeout, a.Chat, a.Sessions, log)
		if err != nil {
			zapLog.Fatal("telegram init failed", zap.Error(err))
		}
		g.Go(func() error { return bot.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		zapLog.Error("server stopped with error", zap.Error(err))
	}

	zapLog.Info("Shutdown signal received, stopping workers...")
	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}
	zapLog.Info("Advisor server stopped")
}
