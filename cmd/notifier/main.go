package main

import (
	"errors"
	"os"

	"github.com/abelzeko/train-board/internal/api"
	"github.com/abelzeko/train-board/internal/app"
	"github.com/abelzeko/train-board/internal/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
)

func main() {
	defer logger.Sync()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts     app.Options
		chatID   int64
		endpoint string
	)

	cmd := &cobra.Command{
		Use:          "notifier",
		Short:        "Reconstruct train journeys and post them to a Telegram chat",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(opts)
			if err != nil {
				return err
			}
			log := logger.Get()

			if cfg.TelegramBotToken == "" {
				return errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")
			}
			if chatID != 0 {
				cfg.TelegramChatID = chatID
			}

			notifier, err := api.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, endpoint)
			if err != nil {
				log.Errorf("Failed to initialize Telegram notifier: %v", err)
				return err
			}

			journeys, err := app.ReconstructJourneys(cmd.Context(), cfg)
			if err != nil {
				log.Errorf("Journey reconstruction failed: %v", err)
				return err
			}
			return notifier.SendJourneys(journeys)
		},
	}

	app.AddRunFlags(cmd, &opts)
	cmd.Flags().Int64Var(&chatID, "chat", 0, "Telegram chat id (default TELEGRAM_CHAT_ID)")
	cmd.Flags().StringVar(&endpoint, "telegram-endpoint", tgbotapi.APIEndpoint, "Bot API endpoint format taking token and method")
	return cmd
}
