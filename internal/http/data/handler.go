package data

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/helldev-server/internal/platform/logging"
)

// Message is the fixed payload served by GET /data.
const Message = "Helldev from DevOps!"

type Output struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Register wires GET /data into the API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-data",
		Method:      http.MethodGet,
		Path:        "/data",
		Summary:     "Fixed greeting",
		Tags:        []string{"Data"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Greeting text",
				Content: map[string]*huma.MediaType{
					"text/plain": {Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{Message}}},
				},
			},
		},
	}, handler)
}

func handler(ctx context.Context, _ *struct{}) (*Output, error) {
	applog.LogInfo(ctx, "data served", zap.String("path", "/data"))
	return &Output{ContentType: "text/plain; charset=utf-8", Body: []byte(Message)}, nil
}
