package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/vesran/guildboard/internal/discord"
	"github.com/vesran/guildboard/internal/domain"
	redisstore "github.com/vesran/guildboard/internal/store/redis"
)

// Store is the session record lookup the authority reads from. Satisfied by
// *redisstore.Sessions.
type Store interface {
	Get(ctx context.Context, sessionID string) (*redisstore.Record, error)
}

// tokenClaims is the payload of a dashboard session token. The login service
// signs these; this backend only verifies.
type tokenClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	UserID    string `json:"uid"`
}

// Service is the session authority: it validates dashboard session tokens and
// authorizes them against guilds, optionally preloading guild context.
type Service struct {
	store  Store
	bot    discord.Client
	bearer discord.BearerFactory
	secret string
}

// NewService creates a session authority. bot is the bot-authenticated client
// used for context preloads; bearer builds per-user clients for membership
// checks.
func NewService(store Store, bot discord.Client, bearer discord.BearerFactory, secret string) *Service {
	return &Service{store: store, bot: bot, bearer: bearer, secret: secret}
}

// Retrieve validates a session token and returns the session identity.
// Any validation failure surfaces as domain.ErrAccessDenied.
func (s *Service) Retrieve(ctx context.Context, token string) (*Session, error) {
	sess, _, err := s.resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session.Retrieve: %w", err)
	}
	return sess, nil
}

// RetrieveGuilds returns the guilds the session user can access.
func (s *Service) RetrieveGuilds(ctx context.Context, token string) ([]Guild, error) {
	sess, rec, err := s.resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session.RetrieveGuilds: %w", err)
	}

	guilds, err := s.userGuilds(ctx, rec.AccessToken)
	if err != nil {
		log.Debug().Err(err).Str("user_id", sess.UserID).Msg("session: listing user guilds failed")
		return nil, fmt.Errorf("session.RetrieveGuilds: %w", domain.ErrAccessDenied)
	}

	return guilds, nil
}

// RetrieveGuild authorizes the session against one guild and returns a
// GuildContext. The user must be the guild owner or hold Manage Server or
// Administrator permission. This is the single authorization checkpoint for
// all guild-scoped operations.
func (s *Service) RetrieveGuild(ctx context.Context, token, guildID string, opts Options) (*GuildContext, error) {
	sess, rec, err := s.resolve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session.RetrieveGuild: %w", err)
	}

	guilds, err := s.userGuilds(ctx, rec.AccessToken)
	if err != nil {
		log.Debug().Err(err).Str("user_id", sess.UserID).Msg("session: listing user guilds failed")
		return nil, fmt.Errorf("session.RetrieveGuild: %w", domain.ErrAccessDenied)
	}

	var guild *Guild
	for i := range guilds {
		if strings.EqualFold(guilds[i].ID, guildID) {
			guild = &guilds[i]
			break
		}
	}
	if guild == nil || !canManage(guild) {
		return nil, fmt.Errorf("session.RetrieveGuild: guild %s: %w", guildID, domain.ErrAccessDenied)
	}

	var channels []*discordgo.Channel
	if opts.WithChannels {
		channels, err = s.bot.GuildChannels(guild.ID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("session.RetrieveGuild: load channels: %w", err)
		}
	}

	var roles []*discordgo.Role
	if opts.WithRoles {
		roles, err = s.bot.GuildRoles(guild.ID, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("session.RetrieveGuild: load roles: %w", err)
		}
	}

	return NewGuildContext(*guild, *sess, channels, roles), nil
}

// resolve verifies the token signature and looks up the live session record.
func (s *Service) resolve(ctx context.Context, token string) (*Session, *redisstore.Record, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return nil, nil, domain.ErrAccessDenied
	}

	rec, err := s.store.Get(ctx, claims.SessionID)
	if err != nil {
		// Token verified but no live record: logged out or expired.
		return nil, nil, domain.ErrAccessDenied
	}

	// A stale token must not reach another user's session record.
	if claims.UserID != "" && !strings.EqualFold(claims.UserID, rec.UserID) {
		return nil, nil, domain.ErrAccessDenied
	}

	return &Session{
		ID:       claims.SessionID,
		UserID:   rec.UserID,
		UserName: rec.UserName,
	}, rec, nil
}

func (s *Service) userGuilds(ctx context.Context, bearerToken string) ([]Guild, error) {
	client, err := s.bearer(bearerToken)
	if err != nil {
		return nil, err
	}

	raw, err := client.UserGuilds(200, "", "", true, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	guilds := make([]Guild, 0, len(raw))
	for _, g := range raw {
		guilds = append(guilds, Guild{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			Owner:       g.Owner,
			Permissions: g.Permissions,
		})
	}
	return guilds, nil
}

func canManage(g *Guild) bool {
	if g.Owner {
		return true
	}
	return g.Permissions&(discordgo.PermissionManageServer|discordgo.PermissionAdministrator) != 0
}
