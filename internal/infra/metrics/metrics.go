package metrics

// Prometheus collectors and the /metrics endpoint.

import (
	"context"
	"net/http"
	"time"

	logging "universal-bot/internal/infra/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	MessagesReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_messages_received_total",
		Help: "Total messages received from users",
	})
	CommandStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_command_starts_total",
		Help: "Total /start commands",
	})
	TextsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_texts_processed_total",
		Help: "Total text files processed",
	})
	ProcessingErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_processing_errors_total",
		Help: "Total failed user operations",
	})

	WalletsMonitored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "telegram_bot_crypto_wallets_total",
		Help: "Total number of crypto wallets being monitored",
	})
	BalanceChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_crypto_balance_checks_total",
		Help: "Total crypto balance checks",
	})
	TransactionChecks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_crypto_transaction_checks_total",
		Help: "Total crypto transaction checks",
	})
	APIErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_crypto_api_errors_total",
		Help: "Total crypto API errors",
	})
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telegram_bot_crypto_notifications_sent_total",
		Help: "Total crypto transaction notifications sent",
	})
)

// Serve exposes /metrics on addr until ctx is cancelled. An empty addr
// disables the server.
func Serve(ctx context.Context, addr string) {
	if addr == "" {
		logging.LogInfo("Metrics server disabled")
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logging.LogSuccess("Metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.LogError("Metrics server failed", zap.Error(err))
	}
}
