package guild

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/vesran/guildboard/internal/domain"
	"github.com/vesran/guildboard/internal/session"
)

type mockAuthority struct {
	retrieve       func(ctx context.Context, token string) (*session.Session, error)
	retrieveGuilds func(ctx context.Context, token string) ([]session.Guild, error)
	retrieveGuild  func(ctx context.Context, token, guildID string, opts session.Options) (*session.GuildContext, error)
}

func (m *mockAuthority) Retrieve(ctx context.Context, token string) (*session.Session, error) {
	return m.retrieve(ctx, token)
}

func (m *mockAuthority) RetrieveGuilds(ctx context.Context, token string) ([]session.Guild, error) {
	return m.retrieveGuilds(ctx, token)
}

func (m *mockAuthority) RetrieveGuild(ctx context.Context, token, guildID string, opts session.Options) (*session.GuildContext, error) {
	return m.retrieveGuild(ctx, token, guildID, opts)
}

// deniedAuthority rejects everything, for no-mutation-on-denial tests.
func deniedAuthority() *mockAuthority {
	return &mockAuthority{
		retrieve: func(context.Context, string) (*session.Session, error) {
			return nil, domain.ErrAccessDenied
		},
		retrieveGuilds: func(context.Context, string) ([]session.Guild, error) {
			return nil, domain.ErrAccessDenied
		},
		retrieveGuild: func(context.Context, string, string, session.Options) (*session.GuildContext, error) {
			return nil, domain.ErrAccessDenied
		},
	}
}

// grantingAuthority admits every token into every guild, honoring the
// preload options against the given tables.
func grantingAuthority(sess session.Session, channels []*discordgo.Channel, roles []*discordgo.Role) *mockAuthority {
	return &mockAuthority{
		retrieve: func(context.Context, string) (*session.Session, error) {
			s := sess
			return &s, nil
		},
		retrieveGuild: func(_ context.Context, _, guildID string, opts session.Options) (*session.GuildContext, error) {
			var chs []*discordgo.Channel
			if opts.WithChannels {
				chs = channels
			}
			var rs []*discordgo.Role
			if opts.WithRoles {
				rs = roles
			}
			return session.NewGuildContext(session.Guild{ID: guildID}, sess, chs, rs), nil
		},
	}
}

// memStore is an in-memory DataStore backed by maps so tests can assert
// exactly what a call mutated.
type memStore struct {
	webhooks   *memWebhooks
	rewards    *memRewards
	recordings *memRecordings
	stats      *memStats
}

func newMemStore() *memStore {
	return &memStore{
		webhooks: &memWebhooks{
			channel: map[string]*domain.ChannelWebhook{},
			reddit:  map[string]*domain.RedditWebhook{},
		},
		rewards:    &memRewards{byKey: map[string]*domain.LevelReward{}},
		recordings: &memRecordings{byID: map[string]*domain.Recording{}},
		stats:      &memStats{},
	}
}

func (m *memStore) Webhooks() domain.WebhookRepository         { return m.webhooks }
func (m *memStore) LevelRewards() domain.LevelRewardRepository { return m.rewards }
func (m *memStore) Recordings() domain.RecordingRepository     { return m.recordings }
func (m *memStore) Stats() domain.StatsRepository              { return m.stats }

type memWebhooks struct {
	channel map[string]*domain.ChannelWebhook
	reddit  map[string]*domain.RedditWebhook
}

func channelWebhookKey(guildID string, kind domain.WebhookKind) string {
	return guildID + "/" + string(kind)
}

func (m *memWebhooks) GetChannelWebhook(_ context.Context, guildID string, kind domain.WebhookKind) (*domain.ChannelWebhook, error) {
	w, ok := m.channel[channelWebhookKey(guildID, kind)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (m *memWebhooks) SetChannelWebhook(_ context.Context, w *domain.ChannelWebhook) error {
	cp := *w
	m.channel[channelWebhookKey(w.GuildID, w.Kind)] = &cp
	return nil
}

func (m *memWebhooks) DeleteChannelWebhook(_ context.Context, guildID string, kind domain.WebhookKind) error {
	delete(m.channel, channelWebhookKey(guildID, kind))
	return nil
}

func redditWebhookKey(guildID, subreddit string) string {
	return guildID + "/" + strings.ToLower(subreddit)
}

func (m *memWebhooks) ListRedditWebhooks(_ context.Context, guildID string) ([]*domain.RedditWebhook, error) {
	var out []*domain.RedditWebhook
	for _, w := range m.reddit {
		if w.GuildID == guildID {
			cp := *w
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subreddit < out[j].Subreddit })
	return out, nil
}

func (m *memWebhooks) SetRedditWebhook(_ context.Context, w *domain.RedditWebhook) error {
	cp := *w
	m.reddit[redditWebhookKey(w.GuildID, w.Subreddit)] = &cp
	return nil
}

func (m *memWebhooks) DeleteRedditWebhook(_ context.Context, guildID, subreddit string) error {
	delete(m.reddit, redditWebhookKey(guildID, subreddit))
	return nil
}

type memRewards struct {
	byKey map[string]*domain.LevelReward
}

func rewardKey(guildID string, rd domain.RewardDomain, level int64) string {
	return fmt.Sprintf("%s/%s/%d", guildID, rd, level)
}

func (m *memRewards) List(_ context.Context, guildID string, rd domain.RewardDomain) ([]*domain.LevelReward, error) {
	var out []*domain.LevelReward
	for _, r := range m.byKey {
		if r.GuildID == guildID && r.Domain == rd {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out, nil
}

func (m *memRewards) Upsert(_ context.Context, r *domain.LevelReward) error {
	cp := *r
	m.byKey[rewardKey(r.GuildID, r.Domain, r.Level)] = &cp
	return nil
}

func (m *memRewards) Delete(_ context.Context, guildID string, rd domain.RewardDomain, level int64) error {
	delete(m.byKey, rewardKey(guildID, rd, level))
	return nil
}

type memRecordings struct {
	byID map[string]*domain.Recording
}

func (m *memRecordings) GetByID(_ context.Context, id string) (*domain.Recording, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRecordings) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memStats struct {
	commandStats []*domain.CommandStat
	invites      int
}

func (m *memStats) CommandStats(_ context.Context, guildID string) ([]*domain.CommandStat, error) {
	var out []*domain.CommandStat
	for _, cs := range m.commandStats {
		if cs.GuildID == guildID {
			cp := *cs
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStats) InviteCount(_ context.Context, _ string) (int, error) {
	return m.invites, nil
}

// mockDiscord is a func-field fake of the platform client. Unused methods
// stay nil and panic loudly if a test reaches them unexpectedly.
type mockDiscord struct {
	channel       func(channelID string) (*discordgo.Channel, error)
	guildChannels func(guildID string) ([]*discordgo.Channel, error)
	guildRoles    func(guildID string) ([]*discordgo.Role, error)
	guildWebhooks func(guildID string) ([]*discordgo.Webhook, error)
	webhookCreate func(channelID, name, avatar string) (*discordgo.Webhook, error)
	webhookDelete func(webhookID string) error
	userGuilds    func() ([]*discordgo.UserGuild, error)
}

func (m *mockDiscord) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return m.channel(channelID)
}

func (m *mockDiscord) GuildChannels(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Channel, error) {
	return m.guildChannels(guildID)
}

func (m *mockDiscord) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return m.guildRoles(guildID)
}

func (m *mockDiscord) GuildWebhooks(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Webhook, error) {
	return m.guildWebhooks(guildID)
}

func (m *mockDiscord) WebhookCreate(channelID, name, avatar string, _ ...discordgo.RequestOption) (*discordgo.Webhook, error) {
	return m.webhookCreate(channelID, name, avatar)
}

func (m *mockDiscord) WebhookDelete(webhookID string, _ ...discordgo.RequestOption) error {
	return m.webhookDelete(webhookID)
}

func (m *mockDiscord) UserGuilds(_ int, _, _ string, _ bool, _ ...discordgo.RequestOption) ([]*discordgo.UserGuild, error) {
	return m.userGuilds()
}
