package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/guild"
)

// authInput carries the dashboard session token. Embedded by every input in
// this package; the token is passed to the facade verbatim.
type authInput struct {
	Authorization string `header:"Authorization" doc:"Session token, Bearer scheme"`
}

type guildInput struct {
	authInput
	GuildID string `path:"guildID" doc:"Guild ID"`
}

type GuildSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Owner       bool   `json:"owner"`
	Permissions int64  `json:"permissions"`
}

type ListGuildsOutput struct {
	Body struct {
		Guilds []GuildSummary `json:"guilds"`
	}
}

type GetStatsOutput struct {
	Body *guild.Stats
}

type GetCommandStatsOutput struct {
	Body struct {
		Commands []guild.CommandStat `json:"commands"`
	}
}

type GetInviteCountOutput struct {
	Body struct {
		Invites int `json:"invites"`
	}
}

func RegisterGuildRoutes(api huma.API, sessions SessionAuthority, facade Facade) {
	huma.Register(api, huma.Operation{
		OperationID: "list-guilds",
		Method:      http.MethodGet,
		Path:        "/guilds",
		Summary:     "List guilds the session user can access",
		Tags:        []string{"Guilds"},
	}, func(ctx context.Context, input *authInput) (*ListGuildsOutput, error) {
		guilds, err := sessions.RetrieveGuilds(ctx, sessionToken(input.Authorization))
		if err != nil {
			return nil, mapError(err)
		}

		out := &ListGuildsOutput{}
		out.Body.Guilds = make([]GuildSummary, 0, len(guilds))
		for _, g := range guilds {
			out.Body.Guilds = append(out.Body.Guilds, GuildSummary{
				ID:          g.ID,
				Name:        g.Name,
				Icon:        g.Icon,
				Owner:       g.Owner,
				Permissions: g.Permissions,
			})
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-guild-stats",
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/stats",
		Summary:     "Get invite and command usage statistics for a guild",
		Tags:        []string{"Guilds"},
	}, func(ctx context.Context, input *guildInput) (*GetStatsOutput, error) {
		stats, err := facade.GetStats(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		return &GetStatsOutput{Body: stats}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-guild-command-stats",
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/stats/commands",
		Summary:     "Get command usage counters for a guild",
		Tags:        []string{"Guilds"},
	}, func(ctx context.Context, input *guildInput) (*GetCommandStatsOutput, error) {
		commands, err := facade.GetCommandStats(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetCommandStatsOutput{}
		out.Body.Commands = commands
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-guild-invite-count",
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/stats/invites",
		Summary:     "Get the invite count for a guild",
		Tags:        []string{"Guilds"},
	}, func(ctx context.Context, input *guildInput) (*GetInviteCountOutput, error) {
		invites, err := facade.GetInviteCount(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &GetInviteCountOutput{}
		out.Body.Invites = invites
		return out, nil
	})
}
