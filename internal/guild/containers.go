package guild

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/vesran/guildboard/internal/domain"
)

// Transport containers returned by the facade. They are assembled per request
// and hold only what the dashboard renders.

// Channel is a slim channel reference. The zero value means "no channel
// bound" and is a valid, non-error result.
type Channel struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func channelOf(ch *discordgo.Channel) *Channel {
	if ch == nil {
		return &Channel{}
	}
	return &Channel{ID: ch.ID, Name: ch.Name}
}

// Role is a slim role reference. A Role with an ID but no name marks a
// mapping whose role no longer exists in the guild.
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// RoleLevel is one level-reward mapping entry.
type RoleLevel struct {
	Level int64 `json:"level"`
	Role  Role  `json:"role"`
}

// Notifier is one subreddit notifier entry. Channel is nil when the backing
// platform webhook can no longer be resolved.
type Notifier struct {
	Subreddit string   `json:"subreddit"`
	Message   string   `json:"message"`
	Channel   *Channel `json:"channel"`
}

// CommandStat is one per-guild command usage counter.
type CommandStat struct {
	Command string `json:"command"`
	Uses    int64  `json:"uses"`
}

func commandStatsOf(stats []*domain.CommandStat) []CommandStat {
	out := make([]CommandStat, 0, len(stats))
	for _, cs := range stats {
		out = append(out, CommandStat{Command: cs.Command, Uses: cs.Uses})
	}
	return out
}

// Stats aggregates the per-guild dashboard statistics.
type Stats struct {
	InviteCount  int           `json:"invite_count"`
	CommandStats []CommandStat `json:"command_stats"`
}

// Record is the transport view of a consumed recording.
type Record struct {
	ID           string    `json:"id"`
	GuildID      string    `json:"guild_id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}
