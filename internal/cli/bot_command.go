package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tasktrack/internal/bot"
	"tasktrack/internal/client"
	"tasktrack/internal/config"
)

// NewBotCommand creates the command that runs the Telegram bot
func NewBotCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Long: `Starts the conversational client: a Telegram bot that walks users
through task creation and relays list/delete requests to the task service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cfg)
		},
	}
}

func runBot(cfg *config.Config) error {
	if cfg.Bot.Token == "" {
		return fmt.Errorf("TB_BOT_TOKEN must be set to run the bot")
	}

	taskClient := client.New(cfg.Bot.APIURL, cfg.Bot.RequestTimeout)

	b, err := bot.New(cfg.Bot.Token, taskClient)
	if err != nil {
		return fmt.Errorf("connect to Telegram: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
