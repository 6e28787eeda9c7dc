package telegramimpl

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/harrow-downloader/internal/telegram"
	"github.com/orgball2608/harrow-downloader/pkg/config"
	"github.com/orgball2608/harrow-downloader/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	User   int64
}

// New connects to the bot API when a token is configured. Without one the
// client is returned disabled.
func New(opts Opts) (*TelegramImpl, error) {
	log := opts.Logger.WithComponent("Telegram")
	tg := &TelegramImpl{Logger: log, User: opts.Config.Telegram.User}

	if opts.Config.Telegram.Token == "" {
		log.Debug("Telegram token not set, notifications disabled")
		return tg, nil
	}

	endpoint := opts.Config.Telegram.Endpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}

	tgBot, err := tgbotapi.NewBotAPIWithAPIEndpoint(opts.Config.Telegram.Token, endpoint)
	if err != nil {
		log.Error("Error creating bot", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	tg.TgBot = tgBot
	return tg, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) Enabled() bool {
	return tg.TgBot != nil && tg.User != 0
}

func (tg *TelegramImpl) SendSummary(ctx context.Context, markdown string) error {
	if !tg.Enabled() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(tg.User, markdown)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	sent, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending summary", "userID", tg.User, "error", err)
		return fmt.Errorf("failed to send summary: %w", err)
	}

	tg.Logger.Info("Summary sent", "userID", tg.User, "messageID", sent.MessageID)
	return nil
}
