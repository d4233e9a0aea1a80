package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vesran/guildboard/internal/domain"
)

type RecordingRepo struct {
	pool *pgxpool.Pool
}

func NewRecordingRepo(pool *pgxpool.Pool) *RecordingRepo {
	return &RecordingRepo{pool: pool}
}

func (r *RecordingRepo) GetByID(ctx context.Context, id string) (*domain.Recording, error) {
	var rec domain.Recording

	// participants is a JSONB string array written by the bot; pgx decodes it
	// into the slice directly.
	err := r.pool.QueryRow(ctx,
		`SELECT id, guild_id, participants, created_at
		 FROM recordings WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.GuildID, &rec.Participants, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("recordingRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("recordingRepo.GetByID: %w", err)
	}

	return &rec, nil
}

func (r *RecordingRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM recordings WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("recordingRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recordingRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
