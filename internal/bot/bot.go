// Package bot is the conversational client: a Telegram front-end that
// collects name/deadline pairs through a fixed dialogue and relays them
// to the task store service.
package bot

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tasktrack/internal/client"
	"tasktrack/internal/logging"
)

// Bot wires the dialogue engine to the Telegram long-polling transport.
type Bot struct {
	tg     *tgbotapi.BotAPI
	dialog *Dialog
}

// New authenticates against the Telegram API and builds the bot.
func New(token string, api client.TaskAPI) (*Bot, error) {
	tg, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		tg:     tg,
		dialog: NewDialog(api),
	}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled in its own goroutine so one chat's pending dialogue never
// blocks another's.
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("[bot] authorized as @%s", b.tg.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.tg.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one inbound update to the dialogue engine.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		chatID := update.Message.Chat.ID
		b.send(chatID, b.dialog.HandleCommand(ctx, chatID, update.Message.Command()))
	case update.Message != nil && update.Message.Text != "":
		chatID := update.Message.Chat.ID
		b.send(chatID, b.dialog.HandleText(ctx, chatID, update.Message.Text))
	}
}

// handleCallback runs a delete selection and edits the menu message
// with the outcome. The callback is acknowledged on every path.
func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer func() {
		if _, err := b.tg.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			logging.Debugf("[bot] answer callback: %v\n", err)
		}
	}()

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	reply := b.dialog.HandleSelection(ctx, chatID, cb.Data)

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, reply.Text)
	if _, err := b.tg.Send(edit); err != nil {
		log.Printf("[bot] edit message: %v", err)
	}
}

// send delivers a dialogue reply to the chat, attaching an inline
// keyboard when the reply carries buttons.
func (b *Bot) send(chatID int64, reply Reply) {
	if reply.Text == "" {
		return
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if len(reply.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, button := range reply.Buttons {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Data),
			))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	if _, err := b.tg.Send(msg); err != nil {
		log.Printf("[bot] send message: %v", err)
	}
}
