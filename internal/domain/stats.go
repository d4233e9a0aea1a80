package domain

import "context"

// CommandStat is a per-guild counter of how often one bot command was used.
type CommandStat struct {
	GuildID string
	Command string
	Uses    int64
}

// StatsRepository exposes the read-only usage counters kept by the bot.
type StatsRepository interface {
	CommandStats(ctx context.Context, guildID string) ([]*CommandStat, error)
	InviteCount(ctx context.Context, guildID string) (int, error)
}
