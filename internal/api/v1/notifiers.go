package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/guild"
)

type ListNotifiersOutput struct {
	Body struct {
		Notifiers []guild.Notifier `json:"notifiers"`
	}
}

type AddNotifierInput struct {
	authInput
	GuildID string `path:"guildID" doc:"Guild ID"`
	Body    struct {
		Subreddit string `json:"subreddit" minLength:"1" doc:"Subreddit name without the /r/ prefix"`
		Message   string `json:"message,omitempty" doc:"Message template posted with each relayed submission"`
		ChannelID string `json:"channel_id" minLength:"1" doc:"Channel the notifier posts into"`
	}
}

type RemoveNotifierInput struct {
	authInput
	GuildID   string `path:"guildID" doc:"Guild ID"`
	Subreddit string `path:"subreddit" doc:"Subreddit name"`
}

func RegisterNotifierRoutes(api huma.API, facade Facade) {
	huma.Register(api, huma.Operation{
		OperationID: "list-reddit-notifiers",
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/reddit-notifiers",
		Summary:     "List the subreddit notifiers of a guild",
		Tags:        []string{"Notifiers"},
	}, func(ctx context.Context, input *guildInput) (*ListNotifiersOutput, error) {
		notifiers, err := facade.GetRedditNotifiers(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &ListNotifiersOutput{}
		out.Body.Notifiers = notifiers
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-reddit-notifier",
		Method:      http.MethodPost,
		Path:        "/guilds/{guildID}/reddit-notifiers",
		Summary:     "Add or replace a subreddit notifier",
		Tags:        []string{"Notifiers"},
	}, func(ctx context.Context, input *AddNotifierInput) (*struct{}, error) {
		err := facade.AddRedditNotifier(ctx, sessionToken(input.Authorization), input.GuildID,
			input.Body.Subreddit, input.Body.Message, input.Body.ChannelID)
		if err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-reddit-notifier",
		Method:      http.MethodDelete,
		Path:        "/guilds/{guildID}/reddit-notifiers/{subreddit}",
		Summary:     "Remove a subreddit notifier",
		Tags:        []string{"Notifiers"},
	}, func(ctx context.Context, input *RemoveNotifierInput) (*struct{}, error) {
		err := facade.RemoveRedditNotifier(ctx, sessionToken(input.Authorization), input.GuildID, input.Subreddit)
		if err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})
}
