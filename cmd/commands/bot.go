package commands

// Command to run the full bot: Telegram update handler, wallet monitor and
// the metrics server. Implements graceful shutdown for proper termination.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"universal-bot/bots_monitor"
	"universal-bot/internal/clients_api/blockchain"
	"universal-bot/internal/clients_api/etherscan"
	"universal-bot/internal/clients_api/tonapi"
	"universal-bot/internal/features/wallets"
	"universal-bot/internal/infra/config"
	storage "universal-bot/internal/infra/fs"
	logging "universal-bot/internal/infra/log"
	"universal-bot/internal/infra/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the full bot (Telegram handler + wallet monitor)",
	Long:  `Run the complete bot: the Telegram update handler, the wallet transaction monitor and the Prometheus metrics server.`,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
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

	registry := buildRegistry(cfg)

	stats := metrics.NewStats(cfg.App.DataDir)
	if err := stats.Load(); err != nil {
		logging.LogWarn("Failed to load usage stats, starting fresh", zap.Error(err))
	}

	store := storage.NewWalletStore(cfg.App.DataDir)
	watermarks := wallets.NewWatermarkCache()

	deps := &bots_monitor.Deps{
		Bot:         bot,
		Store:       store,
		Registry:    registry,
		Watermarks:  watermarks,
		Sessions:    bots_monitor.NewSessionStore(),
		Stats:       stats,
		MaxFileSize: cfg.App.MaxFileSize,
	}

	monitor := bots_monitor.NewWalletMonitor(
		store, registry, watermarks,
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

	wg.Add(1)
	go func() {
		defer wg.Done()
		bots_monitor.RunBot(ctx, deps)
	}()

	logging.LogSuccess("Bot is running", zap.String("status", "active"))

	<-ctx.Done()
	logging.LogInfo("Shutdown signal received, gracefully stopping...")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.LogSuccess("All workers stopped gracefully")
	case <-time.After(10 * time.Second):
		logging.LogWarn("Timeout waiting for workers to stop, forcing shutdown")
	}

	return nil
}

func initializeBot(cfg *config.Config) (*tgbotapi.BotAPI, error) {
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("no bot token provided: TELEGRAM_BOT_TOKEN is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logging.LogError("Failed to initialize bot", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}
	logging.LogSuccess("Bot authorized", zap.String("username", bot.Self.UserName))
	return bot, nil
}

// buildRegistry wires one adapter per supported chain. Missing credentials
// are warned about once here; the affected adapters report the problem per
// call and the monitor skips those wallets.
func buildRegistry(cfg *config.Config) wallets.Registry {
	timeout := time.Duration(cfg.App.RequestTimeout) * time.Second

	tonClient := tonapi.NewClient(cfg.Crypto.TONAPIToken, timeout)
	if !tonClient.HasToken() {
		logging.LogWarn("TONAPI_TOKEN not provided, TON wallets will be skipped")
	}

	ethClient := etherscan.NewClient(cfg.Crypto.EtherscanToken, timeout)
	if !ethClient.HasKey() {
		logging.LogWarn("ETHERSCAN_TOKEN not provided, ETH and USDT wallets will be skipped")
	}

	return wallets.NewRegistry(
		wallets.NewTONAdapter(tonClient),
		wallets.NewBTCAdapter(blockchain.NewClient(timeout)),
		wallets.NewETHAdapter(ethClient),
		wallets.NewUSDTAdapter(ethClient),
	)
}
