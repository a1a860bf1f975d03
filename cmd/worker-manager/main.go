// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admissions-workers/internal/app"
	"admissions-workers/internal/common/camunda"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/observability"
	"admissions-workers/internal/workers/admissions/jobs"
)

func main() {
	bootLog := logger.New("info", "console")
	defer bootLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	log.Info("starting worker manager", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Backend,
		"downloads":   cfg.Downloads.Backend,
	})

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.Open(ctx, cfg, log, app.DefaultOptions)
	if err != nil {
		zapLog.Fatal("backends unavailable", zap.Error(err))
	}
	defer res.Close()

	registerCollectionGauges(obs, res, log)

	zeebe, err := camunda.NewClient(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed", zap.Error(err))
	}
	defer zeebe.Close()
	res.AddCheck("zeebe", zeebe.HealthCheck)
	log.Info("zeebe client connected", map[string]interface{}{"gateway": cfg.Camunda.BrokerAddress})

	workers := camunda.NewRegistry(zeebe.Zeebe(), log)
	app.RegisterWorkers(workers, res, log, jobs.WithRecorder(obs))
	defer workers.Close()

	server := startHTTPServer(cfg.App.HealthAddr, res, workers, log)

	<-ctx.Done()
	log.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("http server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

func registerCollectionGauges(obs *observability.Observability, res *app.Resources, log logger.Logger) {
	repo := res.Service.Repository
	gauges := map[string]func(ctx context.Context) (int, error){
		"applications": func(ctx context.Context) (int, error) {
			all, err := repo.Applications(ctx)
			return len(all), err
		},
		"contact_messages": func(ctx context.Context) (int, error) {
			all, err := repo.ContactMessages(ctx)
			return len(all), err
		},
	}
	for name, size := range gauges {
		if err := obs.RegisterCollectionGauge(name, size); err != nil {
			log.Warn("collection gauge not registered", map[string]interface{}{
				"collection": name,
				"error":      err.Error(),
			})
		}
	}
}

func startHTTPServer(addr string, res *app.Resources, workers *camunda.Registry, log logger.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "healthy",
			"workers": workers.Started(),
		})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := map[string]string{}
		for name, err := range res.Ready(ctx) {
			if err != nil {
				status = http.StatusServiceUnavailable
				checks[name] = err.Error()
				continue
			}
			checks[name] = "ok"
		}
		writeJSON(w, status, map[string]interface{}{"ready": status == http.StatusOK, "checks": checks})
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("health server listening", map[string]interface{}{"addr": addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health server failed", map[string]interface{}{"error": err.Error()})
		}
	}()
	return server
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
