package bot

import (
	"context"
	"fmt"
	"runtime/debug"

	"productbot/assistant/internal/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// Bot owns the Telegram long-poll loop.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler *Handler
	queue   *userQueue
	timeout int
}

var botCommands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Главное меню"},
}

// New connects to the Bot API and verifies the token.
func New(cfg config.TelegramConfig, nav Navigator) (*Bot, error) {
	if err := tgbotapi.SetLogger(log.StandardLogger()); err != nil {
		log.Warnf("⚠️ Failed to set bot api logger: %v", err)
	}

	var (
		api *tgbotapi.BotAPI
		err error
	)
	if cfg.APIEndpoint != "" {
		api, err = tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, cfg.APIEndpoint)
	} else {
		api, err = tgbotapi.NewBotAPI(cfg.Token)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	api.Debug = cfg.Debug

	log.Infof("✅ Authorised as @%s", api.Self.UserName)

	if _, err := api.Request(tgbotapi.NewSetMyCommands(botCommands...)); err != nil {
		log.Warnf("⚠️ Failed to set bot commands: %v", err)
	}

	return newBot(api, NewHandler(api, nav, cfg.GroupURL), cfg.Timeout), nil
}

func newBot(api *tgbotapi.BotAPI, handler *Handler, timeout int) *Bot {
	b := &Bot{
		api:     api,
		handler: handler,
		timeout: timeout,
	}
	b.queue = newUserQueue(b.dispatch)
	return b
}

// Start runs the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout

	updates := b.api.GetUpdatesChan(u)
	log.Info("🚀 Bot started, waiting for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info("🛑 Bot stopping")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.queue.Push(update)
		}
	}
}

func (b *Bot) dispatch(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("💥 PANIC while handling update %d: %v\n%s", update.UpdateID, r, debug.Stack())
		}
	}()

	if update.Message != nil {
		b.handler.HandleMessage(update.Message)
	}
}
