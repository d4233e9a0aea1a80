package domain

import (
	"context"
	"errors"
	"time"
)

// WebhookKind distinguishes the guild-scoped channel webhook types. A guild
// holds at most one active webhook per kind.
type WebhookKind string

const (
	WebhookKindLog     WebhookKind = "log"
	WebhookKindWelcome WebhookKind = "welcome"
)

// ChannelWebhook is a persisted platform webhook bound to one guild channel,
// used by the bot to post log or welcome messages.
type ChannelWebhook struct {
	GuildID   string
	Kind      WebhookKind
	ChannelID string
	WebhookID string
	Token     string
	CreatedAt time.Time
}

// NewChannelWebhook creates a ChannelWebhook with validated required fields.
func NewChannelWebhook(guildID string, kind WebhookKind, channelID, webhookID, token string) (*ChannelWebhook, error) {
	if guildID == "" {
		return nil, errors.New("webhook: guild ID is required")
	}
	if kind != WebhookKindLog && kind != WebhookKindWelcome {
		return nil, errors.New("webhook: unknown kind " + string(kind))
	}
	if channelID == "" || webhookID == "" || token == "" {
		return nil, errors.New("webhook: channel ID, webhook ID and token are required")
	}
	return &ChannelWebhook{
		GuildID:   guildID,
		Kind:      kind,
		ChannelID: channelID,
		WebhookID: webhookID,
		Token:     token,
		CreatedAt: time.Now(),
	}, nil
}

// RedditWebhook is a persisted platform webhook that relays posts from one
// subreddit into a guild channel. Keyed by (guild, subreddit).
type RedditWebhook struct {
	GuildID   string
	Subreddit string
	Message   string // message template posted alongside relayed submissions
	ChannelID string
	WebhookID string
	Token     string
	CreatedAt time.Time
}

// NewRedditWebhook creates a RedditWebhook with validated required fields.
func NewRedditWebhook(guildID, subreddit, message, channelID, webhookID, token string) (*RedditWebhook, error) {
	if guildID == "" {
		return nil, errors.New("webhook: guild ID is required")
	}
	if subreddit == "" {
		return nil, errors.New("webhook: subreddit is required")
	}
	if channelID == "" || webhookID == "" || token == "" {
		return nil, errors.New("webhook: channel ID, webhook ID and token are required")
	}
	return &RedditWebhook{
		GuildID:   guildID,
		Subreddit: subreddit,
		Message:   message,
		ChannelID: channelID,
		WebhookID: webhookID,
		Token:     token,
		CreatedAt: time.Now(),
	}, nil
}

type WebhookRepository interface {
	GetChannelWebhook(ctx context.Context, guildID string, kind WebhookKind) (*ChannelWebhook, error)
	SetChannelWebhook(ctx context.Context, w *ChannelWebhook) error
	DeleteChannelWebhook(ctx context.Context, guildID string, kind WebhookKind) error

	ListRedditWebhooks(ctx context.Context, guildID string) ([]*RedditWebhook, error)
	SetRedditWebhook(ctx context.Context, w *RedditWebhook) error
	DeleteRedditWebhook(ctx context.Context, guildID, subreddit string) error
}
