package v1_test

import (
	"context"

	"github.com/vesran/guildboard/internal/guild"
	"github.com/vesran/guildboard/internal/session"
)

// ---------------------------------------------------------------------------
// Mock Facade — func-field fake; tests set only the methods they exercise
// ---------------------------------------------------------------------------

type mockFacade struct {
	getStats        func(ctx context.Context, token, guildID string) (*guild.Stats, error)
	getCommandStats func(ctx context.Context, token, guildID string) ([]guild.CommandStat, error)
	getInviteCount  func(ctx context.Context, token, guildID string) (int, error)

	getLogChannel    func(ctx context.Context, token, guildID string) (*guild.Channel, error)
	updateLogChannel func(ctx context.Context, token, guildID, channelID string) error
	removeLogChannel func(ctx context.Context, token, guildID string) error

	getWelcomeChannel    func(ctx context.Context, token, guildID string) (*guild.Channel, error)
	updateWelcomeChannel func(ctx context.Context, token, guildID, channelID string) error
	removeWelcomeChannel func(ctx context.Context, token, guildID string) error

	getRedditNotifiers   func(ctx context.Context, token, guildID string) ([]guild.Notifier, error)
	addRedditNotifier    func(ctx context.Context, token, guildID, subreddit, message, channelID string) error
	removeRedditNotifier func(ctx context.Context, token, guildID, subreddit string) error

	getChatAutoRoles   func(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error)
	addChatAutoRole    func(ctx context.Context, token, guildID, roleID string, level int64) error
	removeChatAutoRole func(ctx context.Context, token, guildID string, level int64) error

	getVoiceAutoRoles   func(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error)
	addVoiceAutoRole    func(ctx context.Context, token, guildID, roleID string, level int64) error
	removeVoiceAutoRole func(ctx context.Context, token, guildID string, level int64) error

	getRecording func(ctx context.Context, token, recordingID string) (*guild.Record, error)
}

func (m *mockFacade) GetStats(ctx context.Context, token, guildID string) (*guild.Stats, error) {
	return m.getStats(ctx, token, guildID)
}

func (m *mockFacade) GetCommandStats(ctx context.Context, token, guildID string) ([]guild.CommandStat, error) {
	return m.getCommandStats(ctx, token, guildID)
}

func (m *mockFacade) GetInviteCount(ctx context.Context, token, guildID string) (int, error) {
	return m.getInviteCount(ctx, token, guildID)
}

func (m *mockFacade) GetLogChannel(ctx context.Context, token, guildID string) (*guild.Channel, error) {
	return m.getLogChannel(ctx, token, guildID)
}

func (m *mockFacade) UpdateLogChannel(ctx context.Context, token, guildID, channelID string) error {
	return m.updateLogChannel(ctx, token, guildID, channelID)
}

func (m *mockFacade) RemoveLogChannel(ctx context.Context, token, guildID string) error {
	return m.removeLogChannel(ctx, token, guildID)
}

func (m *mockFacade) GetWelcomeChannel(ctx context.Context, token, guildID string) (*guild.Channel, error) {
	return m.getWelcomeChannel(ctx, token, guildID)
}

func (m *mockFacade) UpdateWelcomeChannel(ctx context.Context, token, guildID, channelID string) error {
	return m.updateWelcomeChannel(ctx, token, guildID, channelID)
}

func (m *mockFacade) RemoveWelcomeChannel(ctx context.Context, token, guildID string) error {
	return m.removeWelcomeChannel(ctx, token, guildID)
}

func (m *mockFacade) GetRedditNotifiers(ctx context.Context, token, guildID string) ([]guild.Notifier, error) {
	return m.getRedditNotifiers(ctx, token, guildID)
}

func (m *mockFacade) AddRedditNotifier(ctx context.Context, token, guildID, subreddit, message, channelID string) error {
	return m.addRedditNotifier(ctx, token, guildID, subreddit, message, channelID)
}

func (m *mockFacade) RemoveRedditNotifier(ctx context.Context, token, guildID, subreddit string) error {
	return m.removeRedditNotifier(ctx, token, guildID, subreddit)
}

func (m *mockFacade) GetChatAutoRoles(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error) {
	return m.getChatAutoRoles(ctx, token, guildID)
}

func (m *mockFacade) AddChatAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error {
	return m.addChatAutoRole(ctx, token, guildID, roleID, level)
}

func (m *mockFacade) RemoveChatAutoRole(ctx context.Context, token, guildID string, level int64) error {
	return m.removeChatAutoRole(ctx, token, guildID, level)
}

func (m *mockFacade) GetVoiceAutoRoles(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error) {
	return m.getVoiceAutoRoles(ctx, token, guildID)
}

func (m *mockFacade) AddVoiceAutoRole(ctx context.Context, token, guildID, roleID string, level int64) error {
	return m.addVoiceAutoRole(ctx, token, guildID, roleID, level)
}

func (m *mockFacade) RemoveVoiceAutoRole(ctx context.Context, token, guildID string, level int64) error {
	return m.removeVoiceAutoRole(ctx, token, guildID, level)
}

func (m *mockFacade) GetRecording(ctx context.Context, token, recordingID string) (*guild.Record, error) {
	return m.getRecording(ctx, token, recordingID)
}

// ---------------------------------------------------------------------------
// Mock SessionAuthority
// ---------------------------------------------------------------------------

type mockSessions struct {
	retrieveGuilds func(ctx context.Context, token string) ([]session.Guild, error)
}

func (m *mockSessions) RetrieveGuilds(ctx context.Context, token string) ([]session.Guild, error) {
	return m.retrieveGuilds(ctx, token)
}

const authHeader = "Authorization: Bearer session-token"
