package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/guild"
)

type ListAutoRolesOutput struct {
	Body struct {
		Mappings []guild.RoleLevel `json:"mappings"`
	}
}

type AddAutoRoleInput struct {
	authInput
	GuildID string `path:"guildID" doc:"Guild ID"`
	Body    struct {
		Level  int64  `json:"level" minimum:"1" doc:"Activity level that triggers the reward"`
		RoleID string `json:"role_id" minLength:"1" doc:"Role granted at that level"`
	}
}

type RemoveAutoRoleInput struct {
	authInput
	GuildID string `path:"guildID" doc:"Guild ID"`
	Level   int64  `path:"level" minimum:"1" doc:"Activity level of the mapping"`
}

// RegisterAutoRoleRoutes exposes the chat and voice level reward mappings as
// two parallel resources over one handler shape.
func RegisterAutoRoleRoutes(api huma.API, facade Facade) {
	registerAutoRoleResource(api, "chat-roles", "chat activity",
		facade.GetChatAutoRoles, facade.AddChatAutoRole, facade.RemoveChatAutoRole)
	registerAutoRoleResource(api, "voice-roles", "voice activity",
		facade.GetVoiceAutoRoles, facade.AddVoiceAutoRole, facade.RemoveVoiceAutoRole)
}

func registerAutoRoleResource(
	api huma.API,
	resource, name string,
	list func(ctx context.Context, token, guildID string) ([]guild.RoleLevel, error),
	add func(ctx context.Context, token, guildID, roleID string, level int64) error,
	remove func(ctx context.Context, token, guildID string, level int64) error,
) {
	huma.Register(api, huma.Operation{
		OperationID: "list-" + resource,
		Method:      http.MethodGet,
		Path:        "/guilds/{guildID}/" + resource,
		Summary:     "List the " + name + " role rewards of a guild",
		Tags:        []string{"AutoRoles"},
	}, func(ctx context.Context, input *guildInput) (*ListAutoRolesOutput, error) {
		mappings, err := list(ctx, sessionToken(input.Authorization), input.GuildID)
		if err != nil {
			return nil, mapError(err)
		}
		out := &ListAutoRolesOutput{}
		out.Body.Mappings = mappings
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "add-" + resource,
		Method:      http.MethodPost,
		Path:        "/guilds/{guildID}/" + resource,
		Summary:     "Add or replace a " + name + " role reward",
		Tags:        []string{"AutoRoles"},
	}, func(ctx context.Context, input *AddAutoRoleInput) (*struct{}, error) {
		err := add(ctx, sessionToken(input.Authorization), input.GuildID, input.Body.RoleID, input.Body.Level)
		if err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-" + resource,
		Method:      http.MethodDelete,
		Path:        "/guilds/{guildID}/" + resource + "/{level}",
		Summary:     "Remove a " + name + " role reward",
		Tags:        []string{"AutoRoles"},
	}, func(ctx context.Context, input *RemoveAutoRoleInput) (*struct{}, error) {
		err := remove(ctx, sessionToken(input.Authorization), input.GuildID, input.Level)
		if err != nil {
			return nil, mapError(err)
		}
		return nil, nil
	})
}
