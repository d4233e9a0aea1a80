package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Client defines the subset of the Discord REST API used by this service.
// The concrete *discordgo.Session type satisfies this interface.
type Client interface {
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildWebhooks(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Webhook, error)
	WebhookCreate(channelID, name, avatar string, options ...discordgo.RequestOption) (*discordgo.Webhook, error)
	WebhookDelete(webhookID string, options ...discordgo.RequestOption) error
	UserGuilds(limit int, beforeID, afterID string, withCounts bool, options ...discordgo.RequestOption) ([]*discordgo.UserGuild, error)
}

// Compile-time assertion: *discordgo.Session satisfies Client.
var _ Client = (*discordgo.Session)(nil)

// NewBot creates a REST-only session authenticated as the bot. No gateway
// connection is opened; the dashboard backend only issues REST calls.
func NewBot(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord.NewBot: %w", err)
	}
	return s, nil
}

// NewBearer creates a REST-only session authenticated with a user's OAuth
// bearer token, used to resolve which guilds the user can access.
func NewBearer(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bearer " + token)
	if err != nil {
		return nil, fmt.Errorf("discord.NewBearer: %w", err)
	}
	return s, nil
}

// BearerFactory builds a Client from a user bearer token. Declared as a
// function type so tests can substitute fake clients per token.
type BearerFactory func(token string) (Client, error)

// DefaultBearerFactory is the production BearerFactory.
func DefaultBearerFactory(token string) (Client, error) {
	return NewBearer(token)
}

// IsStandardMessageChannel reports whether ch is a plain text-capable guild
// channel that can host a webhook (text or announcement).
func IsStandardMessageChannel(ch *discordgo.Channel) bool {
	if ch == nil {
		return false
	}
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}
