package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vesran/guildboard/internal/domain"
)

type LevelRewardRepo struct {
	pool *pgxpool.Pool
}

func NewLevelRewardRepo(pool *pgxpool.Pool) *LevelRewardRepo {
	return &LevelRewardRepo{pool: pool}
}

func (r *LevelRewardRepo) List(ctx context.Context, guildID string, rd domain.RewardDomain) ([]*domain.LevelReward, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT guild_id, domain, level, role_id
		 FROM level_rewards WHERE guild_id = $1 AND domain = $2 ORDER BY level`,
		guildID, rd,
	)
	if err != nil {
		return nil, fmt.Errorf("levelRewardRepo.List: %w", err)
	}
	defer rows.Close()

	var rewards []*domain.LevelReward
	for rows.Next() {
		var lr domain.LevelReward

		err = rows.Scan(&lr.GuildID, &lr.Domain, &lr.Level, &lr.RoleID)
		if err != nil {
			return nil, fmt.Errorf("levelRewardRepo.List: scan: %w", err)
		}
		rewards = append(rewards, &lr)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("levelRewardRepo.List: rows: %w", err)
	}

	return rewards, nil
}

// Upsert enforces single-value-per-level: an existing mapping for the same
// (guild, domain, level) is overwritten.
func (r *LevelRewardRepo) Upsert(ctx context.Context, lr *domain.LevelReward) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO level_rewards (guild_id, domain, level, role_id)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (guild_id, domain, level)
		 DO UPDATE SET role_id = EXCLUDED.role_id`,
		lr.GuildID, lr.Domain, lr.Level, lr.RoleID,
	)
	if err != nil {
		return fmt.Errorf("levelRewardRepo.Upsert: %w", err)
	}

	return nil
}

func (r *LevelRewardRepo) Delete(ctx context.Context, guildID string, rd domain.RewardDomain, level int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM level_rewards WHERE guild_id = $1 AND domain = $2 AND level = $3`,
		guildID, rd, level,
	)
	if err != nil {
		return fmt.Errorf("levelRewardRepo.Delete: %w", err)
	}

	return nil
}
