package commands

// Command to run only the wallet monitor, without the interactive Telegram
// handler. Useful when the update handler runs elsewhere and this instance
// should only poll and notify.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"universal-bot/bots_monitor"
	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/config"
	storage "universal-bot/internal/infra/fs"
	logging "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run only the wallet monitor (no interactive handler)",
	RunE:  runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.LogError("Failed to load config", zap.Error(err))
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot, err := initializeBot(cfg)
	if err != nil {
		return err
	}

	monitor := bots_monitor.NewWalletMonitor(
		storage.NewWalletStore(cfg.App.DataDir),
		buildRegistry(cfg),
		wallets.NewWatermarkCache(),
		bots_monitor.NewTelegramSink(bot),
		time.Duration(cfg.App.CheckInterval)*time.Second,
		cfg.App.FetchLimit)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		metrics.Serve(ctx, cfg.Metrics.ListenAddr)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	logging.LogSuccess("Wallet monitor is running", zap.String("status", "active"))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, stopping monitor...")
	wg.Wait()
	logging.LogSuccess("Monitor stopped gracefully")

	return nil
}
