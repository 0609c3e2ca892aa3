package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/account"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/balance"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/event"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/reset"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Service  *service.Service
	Operator *operator.OperatorDelegator
	Gatherer prometheus.Gatherer

	serverOnce sync.Once
	server     *http.Server
}

// Handler builds the router with every endpoint mounted.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	config := huma.DefaultConfig("Ledger Server", "1.0.0")
	// Responses carry no $schema link.
	config.CreateHooks = nil
	api := humago.New(mux, config)
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	ledger := r.Service.Ledger
	event.NewEventHandler(ledger).Register(api)
	balance.NewBalanceHandler(ledger).Register(api)
	reset.NewResetHandler(ledger).Register(api)
	account.NewListAccountsHandler(ledger).Register(api)
	account.NewGetAccountHandler(ledger).Register(api)
	transaction.NewListTransactionsHandler(ledger).Register(api)

	statusHandler := status.NewHandler(r.Operator)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	if r.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}

func (r *Rest) httpServer() *http.Server {
	r.serverOnce.Do(func() {
		r.server = &http.Server{
			Addr:              ":" + r.Port,
			Handler:           r.Handler(),
			ReadTimeout:       time.Duration(30) * time.Second,
			WriteTimeout:      time.Duration(30) * time.Second,
			IdleTimeout:       time.Duration(10) * time.Second,
			ReadHeaderTimeout: time.Duration(10) * time.Second,
		}
	})
	return r.server
}

func (r *Rest) Serve() {
	r.Logger.Info("HttpServer.Serve.listening")
	err := r.httpServer().ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

// Shutdown stops accepting connections and waits for in-flight requests.
// A later Serve returns immediately.
func (r *Rest) Shutdown(ctx context.Context) error {
	return r.httpServer().Shutdown(ctx)
}
