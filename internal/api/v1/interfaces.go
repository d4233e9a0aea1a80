package v1

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/domain"
	"github.com/vesran/guildboard/internal/guild"
	"github.com/vesran/guildboard/internal/session"
)

// Facade abstracts the guild configuration operations for handler testing.
// *guild.Service satisfies this interface.
type Facade interface {
	GetStats(ctx context.Context, token, guildID string) (*guild.Stats, error)
	GetCommandStats(ctx context.Context, token, guildID string) ([]guild.CommandStat, error)
	GetInviteCount(ctx context.Context, token, guildID string) (int, error)

	GetLogChannel(ctx context.Context, token, guildID string) (*guild.Channel, error)
	UpdateLogChannel(ctx context.Context, token, guildID, channelID string) error
	RemoveLogChannel(ctx context.Context, token, guildID string) error

	GetWelcomeChannel(ctx context.Context, token, guildID string) (*guild.Channel, error)
	UpdateWelcomeChannel(ctx context.Context, token, guildID, channelID string) error
	RemoveWelcomeChannel(ctx context.Context, token, guildID string) error

	GetRedditNotifiers(ctx context.Context, token, guildID string) ([]guild.Notifier, error)
	AddRedditNotifier(ctx context.Context, token, guildID, subreddit, message, channelID string) error
	RemoveRedditNotifier(ctx context.Context, token, guildID, subreddit string) error

	GetChatAutoRoles(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error)
	AddChatAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error
	RemoveChatAutoRole(ctx context.Context, token, guildID string, level int64) error

	GetVoiceAutoRoles(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error)
	AddVoiceAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error
	RemoveVoiceAutoRole(ctx context.Context, token, guildID string, level int64) error

	GetRecording(ctx context.Context, token, recordingID string) (*guild.Record, error)
}

// SessionAuthority abstracts session-level lookups for handler testing.
// *session.Service satisfies this interface.
type SessionAuthority interface {
	RetrieveGuilds(ctx context.Context, token string) ([]session.Guild, error)
}

// sessionToken extracts the session token from an Authorization header. The
// bare token form is accepted alongside the Bearer scheme.
func sessionToken(header string) string {
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// mapError translates facade errors into HTTP problems. Access denial maps to
// 403, an unusable target channel to 400 and anything else to 502 since the
// failing party is a collaborator, not this service.
func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidChannel):
		return huma.Error400BadRequest("channel cannot be used")
	case errors.Is(err, domain.ErrAccessDenied):
		return huma.Error403Forbidden("access denied")
	default:
		return huma.Error502BadGateway("upstream failure", err)
	}
}
