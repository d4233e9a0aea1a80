package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vesran/guildboard/internal/domain"
)

type WebhookRepo struct {
	pool *pgxpool.Pool
}

func NewWebhookRepo(pool *pgxpool.Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

func (r *WebhookRepo) GetChannelWebhook(ctx context.Context, guildID string, kind domain.WebhookKind) (*domain.ChannelWebhook, error) {
	var w domain.ChannelWebhook

	err := r.pool.QueryRow(ctx,
		`SELECT guild_id, kind, channel_id, webhook_id, token, created_at
		 FROM channel_webhooks WHERE guild_id = $1 AND kind = $2`,
		guildID, kind,
	).Scan(&w.GuildID, &w.Kind, &w.ChannelID, &w.WebhookID, &w.Token, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("webhookRepo.GetChannelWebhook: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("webhookRepo.GetChannelWebhook: %w", err)
	}

	return &w, nil
}

// SetChannelWebhook replaces any existing webhook of the same kind for the
// guild, keeping the at-most-one-per-kind invariant in the database itself.
func (r *WebhookRepo) SetChannelWebhook(ctx context.Context, w *domain.ChannelWebhook) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO channel_webhooks (guild_id, kind, channel_id, webhook_id, token, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (guild_id, kind)
		 DO UPDATE SET channel_id = EXCLUDED.channel_id, webhook_id = EXCLUDED.webhook_id,
		               token = EXCLUDED.token, created_at = EXCLUDED.created_at`,
		w.GuildID, w.Kind, w.ChannelID, w.WebhookID, w.Token, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.SetChannelWebhook: %w", err)
	}

	return nil
}

func (r *WebhookRepo) DeleteChannelWebhook(ctx context.Context, guildID string, kind domain.WebhookKind) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM channel_webhooks WHERE guild_id = $1 AND kind = $2`,
		guildID, kind,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.DeleteChannelWebhook: %w", err)
	}

	return nil
}

func (r *WebhookRepo) ListRedditWebhooks(ctx context.Context, guildID string) ([]*domain.RedditWebhook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT guild_id, subreddit, message, channel_id, webhook_id, token, created_at
		 FROM reddit_webhooks WHERE guild_id = $1 ORDER BY subreddit`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("webhookRepo.ListRedditWebhooks: %w", err)
	}
	defer rows.Close()

	var webhooks []*domain.RedditWebhook
	for rows.Next() {
		var w domain.RedditWebhook

		err = rows.Scan(&w.GuildID, &w.Subreddit, &w.Message, &w.ChannelID, &w.WebhookID, &w.Token, &w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("webhookRepo.ListRedditWebhooks: scan: %w", err)
		}
		webhooks = append(webhooks, &w)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("webhookRepo.ListRedditWebhooks: rows: %w", err)
	}

	return webhooks, nil
}

// SetRedditWebhook upserts on (guild_id, subreddit): adding the same subreddit
// twice replaces the earlier binding.
func (r *WebhookRepo) SetRedditWebhook(ctx context.Context, w *domain.RedditWebhook) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO reddit_webhooks (guild_id, subreddit, message, channel_id, webhook_id, token, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (guild_id, subreddit)
		 DO UPDATE SET message = EXCLUDED.message, channel_id = EXCLUDED.channel_id,
		               webhook_id = EXCLUDED.webhook_id, token = EXCLUDED.token,
		               created_at = EXCLUDED.created_at`,
		w.GuildID, w.Subreddit, w.Message, w.ChannelID, w.WebhookID, w.Token, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.SetRedditWebhook: %w", err)
	}

	return nil
}

func (r *WebhookRepo) DeleteRedditWebhook(ctx context.Context, guildID, subreddit string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM reddit_webhooks WHERE guild_id = $1 AND subreddit = $2`,
		guildID, subreddit,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.DeleteRedditWebhook: %w", err)
	}

	return nil
}
