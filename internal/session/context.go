package session

import "github.com/bwmarrin/discordgo"

// Session identifies an authenticated dashboard login.
type Session struct {
	ID       string
	UserID   string
	UserName string
}

// Guild is a slim handle of a guild the session user can access, as reported
// by the platform for the user's own token.
type Guild struct {
	ID          string
	Name        string
	Icon        string
	Owner       bool
	Permissions int64
}

// Options selects which lookup tables RetrieveGuild preloads. Preloads cost
// one platform call each, so callers request only what they resolve against.
type Options struct {
	WithChannels bool
	WithRoles    bool
}

// GuildContext is a per-request guild handle with optionally preloaded
// channel and role tables. It is never persisted.
type GuildContext struct {
	Guild    Guild
	Session  Session
	channels map[string]*discordgo.Channel
	roles    map[string]*discordgo.Role
}

// NewGuildContext builds a GuildContext with the given preloaded tables. A
// nil slice leaves the corresponding table unloaded.
func NewGuildContext(g Guild, s Session, channels []*discordgo.Channel, roles []*discordgo.Role) *GuildContext {
	gc := &GuildContext{Guild: g, Session: s}
	if channels != nil {
		gc.channels = make(map[string]*discordgo.Channel, len(channels))
		for _, ch := range channels {
			gc.channels[ch.ID] = ch
		}
	}
	if roles != nil {
		gc.roles = make(map[string]*discordgo.Role, len(roles))
		for _, role := range roles {
			gc.roles[role.ID] = role
		}
	}
	return gc
}

// ChannelByID resolves a channel from the preloaded table. Returns nil when
// the channel is unknown or channels were not preloaded.
func (gc *GuildContext) ChannelByID(id string) *discordgo.Channel {
	return gc.channels[id]
}

// RoleByID resolves a role from the preloaded table. Returns nil when the
// role is unknown or roles were not preloaded.
func (gc *GuildContext) RoleByID(id string) *discordgo.Role {
	return gc.roles[id]
}
