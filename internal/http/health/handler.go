package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/helldev-server/internal/platform/logging"
)

// Body is the liveness response returned to orchestrators and load balancers.
const Body = "200 OK"

// Output is written verbatim as text/plain.
type Output struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// Register wires GET /health into the API.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Liveness check",
		Tags:        []string{"Health"},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Service is alive",
				Content: map[string]*huma.MediaType{
					"text/plain": {Schema: &huma.Schema{Type: huma.TypeString, Examples: []any{Body}}},
				},
			},
		},
	}, handler)
}

// Probes hit this every few seconds, so it only logs at debug.
func handler(ctx context.Context, _ *struct{}) (*Output, error) {
	applog.LogDebug(ctx, "health check")
	return &Output{ContentType: "text/plain; charset=utf-8", Body: []byte(Body)}, nil
}
