package commands

// Root command for Cobra CLI
// Registers all subcommands (bot, monitor)

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "universal-bot",
	Short: "Universal Bot - Telegram bot with wallet monitoring, text processing and ID tools",
	Long: `Universal Bot is a Go-based Telegram bot that monitors TON, BTC, ETH and USDT
wallets for new transactions, processes text files and looks up Telegram IDs.`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(monitorCmd)
}
