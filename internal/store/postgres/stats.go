package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vesran/guildboard/internal/domain"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) CommandStats(ctx context.Context, guildID string) ([]*domain.CommandStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT guild_id, command, uses
		 FROM command_stats WHERE guild_id = $1 ORDER BY uses DESC`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("statsRepo.CommandStats: %w", err)
	}
	defer rows.Close()

	var stats []*domain.CommandStat
	for rows.Next() {
		var cs domain.CommandStat

		err = rows.Scan(&cs.GuildID, &cs.Command, &cs.Uses)
		if err != nil {
			return nil, fmt.Errorf("statsRepo.CommandStats: scan: %w", err)
		}
		stats = append(stats, &cs)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("statsRepo.CommandStats: rows: %w", err)
	}

	return stats, nil
}

func (r *StatsRepo) InviteCount(ctx context.Context, guildID string) (int, error) {
	var count int

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM invites WHERE guild_id = $1`,
		guildID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("statsRepo.InviteCount: %w", err)
	}

	return count, nil
}
