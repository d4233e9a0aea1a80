package domain

import (
	"context"
	"strings"
	"time"
)

// Recording is an immutable record of a finished voice session: the guild it
// was made in and the IDs of everyone who took part. Recordings are created by
// the bot; the dashboard only reads them, and a successful read consumes the
// record.
type Recording struct {
	ID           string
	GuildID      string
	Participants []string
	CreatedAt    time.Time
}

// HasParticipant reports whether userID appears in the participant list.
// Comparison is case-insensitive.
func (r *Recording) HasParticipant(userID string) bool {
	for _, p := range r.Participants {
		if strings.EqualFold(p, userID) {
			return true
		}
	}
	return false
}

type RecordingRepository interface {
	GetByID(ctx context.Context, id string) (*Recording, error)
	Delete(ctx context.Context, id string) error
}
