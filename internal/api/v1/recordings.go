package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vesran/guildboard/internal/domain"
	"github.com/vesran/guildboard/internal/guild"
)

type GetRecordingInput struct {
	authInput
	RecordingID string `path:"recordingID" doc:"Recording ID"`
}

type GetRecordingOutput struct {
	Body *guild.Record
}

func RegisterRecordingRoutes(api huma.API, facade Facade) {
	huma.Register(api, huma.Operation{
		OperationID: "get-recording",
		Method:      http.MethodGet,
		Path:        "/recordings/{recordingID}",
		Summary:     "Retrieve and consume a voice recording",
		Description: "A successful retrieval deletes the recording; it can be fetched exactly once.",
		Tags:        []string{"Recordings"},
	}, func(ctx context.Context, input *GetRecordingInput) (*GetRecordingOutput, error) {
		rec, err := facade.GetRecording(ctx, sessionToken(input.Authorization), input.RecordingID)
		if err != nil {
			// A missing recording is indistinguishable from a forbidden one:
			// the response must not reveal whether the id ever existed.
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error403Forbidden("access denied")
			}
			return nil, mapError(err)
		}
		return &GetRecordingOutput{Body: rec}, nil
	})
}
