package guild

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/vesran/guildboard/internal/discord"
	"github.com/vesran/guildboard/internal/domain"
	"github.com/vesran/guildboard/internal/session"
)

// Webhooks created by the dashboard carry a fixed bot-specific label so they
// are recognizable in the guild's integration settings.
const (
	webhookLabelLog     = "Guildboard-Log"
	webhookLabelWelcome = "Guildboard-Welcome"
	webhookLabelReddit  = "Guildboard-Reddit-" // subreddit name appended
)

// Recording retrieval distinguishes two denial causes. Both carry
// domain.ErrAccessDenied so the single access-denied taxonomy still holds at
// the boundary.
var (
	ErrNotInGuild     = fmt.Errorf("guild: user was not part of the guild this recording was made in: %w", domain.ErrAccessDenied)
	ErrNotInRecording = fmt.Errorf("guild: user was not part of this recording: %w", domain.ErrAccessDenied)
)

// Authority authorizes dashboard sessions against guilds. Satisfied by
// *session.Service.
type Authority interface {
	Retrieve(ctx context.Context, token string) (*session.Session, error)
	RetrieveGuilds(ctx context.Context, token string) ([]session.Guild, error)
	RetrieveGuild(ctx context.Context, token, guildID string, opts session.Options) (*session.GuildContext, error)
}

// DataStore bundles the repositories the facade reads and writes. Satisfied
// by *postgres.Store.
type DataStore interface {
	Webhooks() domain.WebhookRepository
	LevelRewards() domain.LevelRewardRepository
	Recordings() domain.RecordingRepository
	Stats() domain.StatsRepository
}

// Service is the guild configuration facade. Every public operation runs the
// same sequence: authorize the session against the guild, perform one read or
// write against the store or the platform, and assemble a transport
// container. The service holds no per-request state and performs no retries;
// collaborator failures propagate unchanged.
type Service struct {
	auth  Authority
	store DataStore
	bot   discord.Client
}

func NewService(auth Authority, store DataStore, bot discord.Client) *Service {
	return &Service{auth: auth, store: store, bot: bot}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

func (s *Service) GetStats(ctx context.Context, token, guildID string) (*Stats, error) {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return nil, fmt.Errorf("guild.GetStats: %w", err)
	}

	invites, err := s.store.Stats().InviteCount(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("guild.GetStats: %w", err)
	}

	stats, err := s.store.Stats().CommandStats(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("guild.GetStats: %w", err)
	}

	return &Stats{InviteCount: invites, CommandStats: commandStatsOf(stats)}, nil
}

func (s *Service) GetCommandStats(ctx context.Context, token, guildID string) ([]CommandStat, error) {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return nil, fmt.Errorf("guild.GetCommandStats: %w", err)
	}

	stats, err := s.store.Stats().CommandStats(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("guild.GetCommandStats: %w", err)
	}

	return commandStatsOf(stats), nil
}

func (s *Service) GetInviteCount(ctx context.Context, token, guildID string) (int, error) {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return 0, fmt.Errorf("guild.GetInviteCount: %w", err)
	}

	count, err := s.store.Stats().InviteCount(ctx, guildID)
	if err != nil {
		return 0, fmt.Errorf("guild.GetInviteCount: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Log channel
// ---------------------------------------------------------------------------

func (s *Service) GetLogChannel(ctx context.Context, token, guildID string) (*Channel, error) {
	return s.getWebhookChannel(ctx, token, guildID, domain.WebhookKindLog, "guild.GetLogChannel")
}

func (s *Service) UpdateLogChannel(ctx context.Context, token, guildID, channelID string) error {
	return s.updateWebhookChannel(ctx, token, guildID, channelID, domain.WebhookKindLog, webhookLabelLog, "guild.UpdateLogChannel")
}

func (s *Service) RemoveLogChannel(ctx context.Context, token, guildID string) error {
	return s.removeWebhookChannel(ctx, token, guildID, domain.WebhookKindLog, "guild.RemoveLogChannel")
}

// ---------------------------------------------------------------------------
// Welcome channel
// ---------------------------------------------------------------------------

func (s *Service) GetWelcomeChannel(ctx context.Context, token, guildID string) (*Channel, error) {
	return s.getWebhookChannel(ctx, token, guildID, domain.WebhookKindWelcome, "guild.GetWelcomeChannel")
}

func (s *Service) UpdateWelcomeChannel(ctx context.Context, token, guildID, channelID string) error {
	return s.updateWebhookChannel(ctx, token, guildID, channelID, domain.WebhookKindWelcome, webhookLabelWelcome, "guild.UpdateWelcomeChannel")
}

func (s *Service) RemoveWelcomeChannel(ctx context.Context, token, guildID string) error {
	return s.removeWebhookChannel(ctx, token, guildID, domain.WebhookKindWelcome, "guild.RemoveWelcomeChannel")
}

// ---------------------------------------------------------------------------
// Channel webhook plumbing (shared by log and welcome)
// ---------------------------------------------------------------------------

func (s *Service) getWebhookChannel(ctx context.Context, token, guildID string, kind domain.WebhookKind, op string) (*Channel, error) {
	gc, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{WithChannels: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w, err := s.store.Webhooks().GetChannelWebhook(ctx, guildID, kind)
	if errors.Is(err, domain.ErrNotFound) {
		// No webhook configured: an empty channel, not an error.
		return &Channel{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return channelOf(gc.ChannelByID(w.ChannelID)), nil
}

// updateWebhookChannel replaces the guild's webhook of the given kind:
// create the new platform webhook, delete the old one, persist the record.
// The sequence is deliberately not transactional; a failure between the
// platform delete and the persist leaves the guild without a webhook of this
// kind until the call is retried.
func (s *Service) updateWebhookChannel(ctx context.Context, token, guildID, channelID string, kind domain.WebhookKind, label, op string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.checkTargetChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.bot.WebhookCreate(channelID, label, "", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%s: create webhook: %w", op, err)
	}

	if err := s.deletePlatformWebhook(ctx, guildID, kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	record, err := domain.NewChannelWebhook(guildID, kind, channelID, created.ID, created.Token)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Webhooks().SetChannelWebhook(ctx, record); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info().Str("guild_id", guildID).Str("channel_id", channelID).Str("kind", string(kind)).Msg("guild: webhook channel updated")
	return nil
}

func (s *Service) removeWebhookChannel(ctx context.Context, token, guildID string, kind domain.WebhookKind, op string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.deletePlatformWebhook(ctx, guildID, kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.Webhooks().DeleteChannelWebhook(ctx, guildID, kind); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// deletePlatformWebhook deletes every platform webhook whose id and token
// both match the stored record of the given kind. A missing stored record is
// a silent no-op.
func (s *Service) deletePlatformWebhook(ctx context.Context, guildID string, kind domain.WebhookKind) error {
	stored, err := s.store.Webhooks().GetChannelWebhook(ctx, guildID, kind)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	hooks, err := s.bot.GuildWebhooks(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("list webhooks: %w", err)
	}

	for _, h := range hooks {
		if h.Token == "" {
			continue
		}
		if strings.EqualFold(h.ID, stored.WebhookID) && strings.EqualFold(h.Token, stored.Token) {
			if err := s.bot.WebhookDelete(h.ID, discordgo.WithContext(ctx)); err != nil {
				return fmt.Errorf("delete webhook %s: %w", h.ID, err)
			}
		}
	}

	return nil
}

// checkTargetChannel verifies the channel exists, belongs to the guild and
// can host a webhook.
func (s *Service) checkTargetChannel(ctx context.Context, guildID, channelID string) error {
	ch, err := s.bot.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidChannel, channelID)
	}
	if ch.GuildID != guildID || !discord.IsStandardMessageChannel(ch) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidChannel, channelID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Reddit notifiers
// ---------------------------------------------------------------------------

func (s *Service) GetRedditNotifiers(ctx context.Context, token, guildID string) ([]Notifier, error) {
	gc, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{WithChannels: true})
	if err != nil {
		return nil, fmt.Errorf("guild.GetRedditNotifiers: %w", err)
	}

	records, err := s.store.Webhooks().ListRedditWebhooks(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("guild.GetRedditNotifiers: %w", err)
	}

	hooks, err := s.bot.GuildWebhooks(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("guild.GetRedditNotifiers: list webhooks: %w", err)
	}
	hooksByID := make(map[string]*discordgo.Webhook, len(hooks))
	for _, h := range hooks {
		hooksByID[h.ID] = h
	}

	notifiers := make([]Notifier, 0, len(records))
	for _, rec := range records {
		n := Notifier{Subreddit: rec.Subreddit, Message: rec.Message}
		// Recover the current channel binding from the live webhook list;
		// an unresolvable webhook surfaces with a nil channel instead of
		// failing the whole list.
		if h, ok := hooksByID[rec.WebhookID]; ok {
			n.Channel = channelOf(gc.ChannelByID(h.ChannelID))
		}
		notifiers = append(notifiers, n)
	}

	return notifiers, nil
}

func (s *Service) AddRedditNotifier(ctx context.Context, token, guildID, subreddit, message, channelID string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("guild.AddRedditNotifier: %w", err)
	}

	if err := s.checkTargetChannel(ctx, guildID, channelID); err != nil {
		return fmt.Errorf("guild.AddRedditNotifier: %w", err)
	}

	created, err := s.bot.WebhookCreate(channelID, webhookLabelReddit+subreddit, "", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("guild.AddRedditNotifier: create webhook: %w", err)
	}

	record, err := domain.NewRedditWebhook(guildID, subreddit, message, channelID, created.ID, created.Token)
	if err != nil {
		return fmt.Errorf("guild.AddRedditNotifier: %w", err)
	}

	if err := s.store.Webhooks().SetRedditWebhook(ctx, record); err != nil {
		return fmt.Errorf("guild.AddRedditNotifier: %w", err)
	}

	return nil
}

// RemoveRedditNotifier deletes only the persistence record. The platform
// webhook is left in place, asymmetric to AddRedditNotifier.
func (s *Service) RemoveRedditNotifier(ctx context.Context, token, guildID, subreddit string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("guild.RemoveRedditNotifier: %w", err)
	}

	if err := s.store.Webhooks().DeleteRedditWebhook(ctx, guildID, subreddit); err != nil {
		return fmt.Errorf("guild.RemoveRedditNotifier: %w", err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Level rewards (chat and voice)
// ---------------------------------------------------------------------------

func (s *Service) GetChatAutoRoles(ctx context.Context, token, guildID string) ([]RoleLevel, error) {
	return s.listAutoRoles(ctx, token, guildID, domain.RewardDomainChat, "guild.GetChatAutoRoles")
}

func (s *Service) AddChatAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error {
	return s.addAutoRole(ctx, token, guildID, roleID, level, domain.RewardDomainChat, "guild.AddChatAutoRole")
}

func (s *Service) RemoveChatAutoRole(ctx context.Context, token, guildID string, level int64) error {
	return s.removeAutoRole(ctx, token, guildID, level, domain.RewardDomainChat, "guild.RemoveChatAutoRole")
}

func (s *Service) GetVoiceAutoRoles(ctx context.Context, token, guildID string) ([]RoleLevel, error) {
	return s.listAutoRoles(ctx, token, guildID, domain.RewardDomainVoice, "guild.GetVoiceAutoRoles")
}

func (s *Service) AddVoiceAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error {
	return s.addAutoRole(ctx, token, guildID, roleID, level, domain.RewardDomainVoice, "guild.AddVoiceAutoRole")
}

func (s *Service) RemoveVoiceAutoRole(ctx context.Context, token, guildID string, level int64) error {
	return s.removeAutoRole(ctx, token, guildID, level, domain.RewardDomainVoice, "guild.RemoveVoiceAutoRole")
}

func (s *Service) listAutoRoles(ctx context.Context, token, guildID string, rd domain.RewardDomain, op string) ([]RoleLevel, error) {
	gc, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{WithRoles: true})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rewards, err := s.store.LevelRewards().List(ctx, guildID, rd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mappings := make([]RoleLevel, 0, len(rewards))
	for _, r := range rewards {
		entry := RoleLevel{Level: r.Level, Role: Role{ID: r.RoleID}}
		// A mapping whose role was deleted keeps its entry; the bare ID
		// marks it unresolved.
		if role := gc.RoleByID(r.RoleID); role != nil {
			entry.Role.Name = role.Name
		}
		mappings = append(mappings, entry)
	}

	return mappings, nil
}

func (s *Service) addAutoRole(ctx context.Context, token, guildID, roleID string, level int64, rd domain.RewardDomain, op string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reward, err := domain.NewLevelReward(guildID, rd, level, roleID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.LevelRewards().Upsert(ctx, reward); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) removeAutoRole(ctx context.Context, token, guildID string, level int64, rd domain.RewardDomain, op string) error {
	_, err := s.auth.RetrieveGuild(ctx, token, guildID, session.Options{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.LevelRewards().Delete(ctx, guildID, rd, level); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Recordings
// ---------------------------------------------------------------------------

// GetRecording is a destructive read: a successful call deletes the recording
// and returns its contents, so a repeated call with the same id fails.
func (s *Service) GetRecording(ctx context.Context, token, recordingID string) (*Record, error) {
	sess, err := s.auth.Retrieve(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("guild.GetRecording: %w", err)
	}

	guilds, err := s.auth.RetrieveGuilds(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("guild.GetRecording: %w", err)
	}

	rec, err := s.store.Recordings().GetByID(ctx, recordingID)
	if err != nil {
		return nil, fmt.Errorf("guild.GetRecording: %w", err)
	}

	inGuild := false
	for _, g := range guilds {
		if strings.EqualFold(g.ID, rec.GuildID) {
			inGuild = true
			break
		}
	}
	if !inGuild {
		return nil, fmt.Errorf("guild.GetRecording: %w", ErrNotInGuild)
	}

	if !rec.HasParticipant(sess.UserID) {
		return nil, fmt.Errorf("guild.GetRecording: %w", ErrNotInRecording)
	}

	if err := s.store.Recordings().Delete(ctx, rec.ID); err != nil {
		return nil, fmt.Errorf("guild.GetRecording: %w", err)
	}

	log.Info().Str("recording_id", rec.ID).Str("user_id", sess.UserID).Msg("guild: recording consumed")

	return &Record{
		ID:           rec.ID,
		GuildID:      rec.GuildID,
		Participants: rec.Participants,
		CreatedAt:    rec.CreatedAt,
	}, nil
}
