package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"barber-prices/bot"
	"barber-prices/sheets"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Serve price summaries over Telegram",
	Long: `Starts a Telegram bot that refreshes prices on /prices or the refresh button.
The token is read from telegram.token or BARBER_TELEGRAM_TOKEN.`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	a, err := newApp(configPath, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.Telegram.Token == "" {
		return errors.New("telegram token is not set (telegram.token or BARBER_TELEGRAM_TOKEN)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api, err := tgbotapi.NewBotAPI(a.cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to initialize bot: %w", err)
	}
	a.log.Info("authorized on telegram", "account", api.Self.UserName)
	if len(a.cfg.Telegram.AllowedUsers) == 0 {
		a.log.Warn("telegram.allowed_users is empty, the bot answers everyone")
	}

	b := bot.New(api, a.refresher, a.cfg.Telegram.AllowedUsers, a.log)
	if target := a.cfg.Sheets.SpreadsheetURL; target != "" {
		id := sheets.ExtractSpreadsheetID(target)
		if id == "" {
			return fmt.Errorf("could not extract spreadsheet ID from %q", target)
		}
		writer, err := sheets.NewWriter(ctx, id, a.cfg.Sheets.SheetName, a.cfg.Sheets.CredentialsPath, a.log)
		if err != nil {
			return fmt.Errorf("failed to initialize Google Sheets writer: %w", err)
		}
		b.WithExporter(writer, target)
	}

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := api.GetUpdatesChan(updateConfig)
	defer api.StopReceivingUpdates()

	b.Run(ctx, updates)
	a.log.Info("bot stopped")
	return nil
}
