package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	metricsprometheus "github.com/carson-networks/ledger-server/internal/metrics/prometheus"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger, err := logging.SetupLogging(envConfig.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("logging.SetupLogging")
		return
	}
	logger.WithField("storageBackend", envConfig.StorageBackend).Info("ledger-server starting")

	ledgerStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metricsprometheus.NewPrometheusCollector(envConfig.MetricsNamespace)
	if err := collector.Register(registry); err != nil {
		logger.WithError(err).Fatal("metrics.Register")
		return
	}

	delegator := operator.NewOperatorDelegator(ledgerStorage, envConfig.OperatorWorkers, collector)
	delegator.Start()

	svc := service.NewService(ledgerStorage, delegator, collector)

	httpRest := &api.Rest{
		Logger:   logger,
		Port:     envConfig.Port,
		Service:  svc,
		Operator: delegator,
		Gatherer: registry,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		httpRest.Serve()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-signals:
		logger.WithField("signal", sig.String()).Info("ledger-server stopping")
	case <-done:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpRest.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HttpServer.Shutdown")
	}
	<-done

	delegator.Stop()
	if err := ledgerStorage.Close(); err != nil {
		logger.WithError(err).Warn("storage.Close")
	}
}
