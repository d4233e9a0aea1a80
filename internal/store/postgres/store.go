package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vesran/guildboard/internal/domain"
)

// Store bundles the pgx-backed repositories over the bot's database. The
// schema is owned by the bot; this service only reads and writes the tables
// the dashboard manages.
type Store struct {
	pool       *pgxpool.Pool
	webhooks   *WebhookRepo
	rewards    *LevelRewardRepo
	recordings *RecordingRepo
	stats      *StatsRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:       pool,
		webhooks:   NewWebhookRepo(pool),
		rewards:    NewLevelRewardRepo(pool),
		recordings: NewRecordingRepo(pool),
		stats:      NewStatsRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Webhooks() domain.WebhookRepository         { return s.webhooks }
func (s *Store) LevelRewards() domain.LevelRewardRepository { return s.rewards }
func (s *Store) Recordings() domain.RecordingRepository     { return s.recordings }
func (s *Store) Stats() domain.StatsRepository              { return s.stats }
