package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/guild"
)

type GetChannelOutput struct {
	Body *guild.Channel
}

type UpdateChannelInput struct {
	authInput
	GuildID string `path:"guildID" doc:"Guild ID"`
	Body    struct {
		ChannelID string `json:"channel_id" minLength:"1" doc:"Target channel ID"`
	}
}

// RegisterChannelRoutes exposes the log and welcome channel bindings. The two
// resources share one handler shape; only the facade methods differ.
func RegisterChannelRoutes(api huma.API, facade Facade) {
	registerChannelResource(api, "log-channel", "log",
		facade.GetLogChannel, facade.UpdateLogChannel, facade.RemoveLogChannel)
	registerChannelResource(api, "welcome-channel", "welcome",
		facade.GetWelcomeChannel, facade.UpdateWelcomeChannel, facade.RemoveWelcomeChannel)
}

func registerChannelResource(
	api huma.API,
	resource, name string,
	get func(ctx context.Context, token, guildID string) (*guild.Channel, error),
	update func(ctx context.Context, token, guildID, channelID string) error,
	remove func(ctx context.Context, token, guildID string) error,
) {
	huma.Register(api, huma.Operation{
		OperationID: "get-" + resource,
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/" + resource,
		Summary:     "Get the " + name + " channel of a guild",
		Tags:        []string{"Channels"},
	}, func(ctx context.Context, input *guildInput) (*GetChannelOutput, error) {
		ch, err := get(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		return &GetChannelOutput{Body: ch}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-" + resource,
		Method:      http.MethodPut,
		Path:        "/guilds/{guildID}/" + resource,
		Summary:     "Bind the " + name + " channel of a guild",
		Tags:        []string{"Channels"},
	}, func(ctx context.Context, input *UpdateChannelInput) (*struct{}, error) {
		err := update(ctx, sessionToken(input.Authorization), input.GuildID, input.Body.ChannelID)
		if err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-" + resource,
		Method:      http.MethodDelete,
		Path:        "/guilds/{guildID}/" + resource,
		Summary:     "Remove the " + name + " channel binding of a guild",
		Tags:        []string{"Channels"},
	}, func(ctx context.Context, input *guildInput) (*struct{}, error) {
		if err := remove(ctx, sessionToken(input.Authorization), input.GuildID); err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})
}
