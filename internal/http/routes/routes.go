package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/helldev-server/internal/http/data"
	"github.com/janisto/helldev-server/internal/http/health"
)

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API) {
	health.Register(api)
	data.Register(api)
}
