package telegram

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go

// Client delivers run summaries to the configured Telegram user.
type Client interface {
	// Enabled reports whether a bot token and user are configured.
	Enabled() bool

	// SendSummary sends a MarkdownV2 message. It is a no-op when disabled.
	SendSummary(ctx context.Context, markdown string) error
}
