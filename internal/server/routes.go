package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/vesran/guildboard/internal/api/v1"
)

func registerAPIRoutes(api huma.API, sessions v1.SessionAuthority, facade v1.Facade) {
	v1.RegisterGuildRoutes(api, sessions, facade)
	v1.RegisterChannelRoutes(api, facade)
	v1.RegisterNotifierRoutes(api, facade)
	v1.RegisterAutoRoleRoutes(api, facade)
	v1.RegisterRecordingRoutes(api, facade)
}
