// Package api exposes the comparison tool over HTTP: the dispatch
// endpoints backing the page's three actions, the model catalog, and the
// state and documentation endpoints.
package api

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/modelrace/modelrace/internal/history"
	"github.com/modelrace/modelrace/internal/openrouter"
)

// Dispatcher issues one generation call. It is an interface so handler
// tests can count calls without touching the network.
type Dispatcher interface {
	Complete(ctx context.Context, apiKey string, req openrouter.Request) openrouter.Result
}

// Deps wires the handlers to their collaborators.
type Deps struct {
	Dispatcher Dispatcher
	Models     []string
	// DefaultAPIKey is the server-configured credential; a key in the
	// request body takes precedence.
	DefaultAPIKey string
	History       *history.Registry
}

// NewRouter builds the API router.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	for _, m := range middlewareChain() {
		r.Use(m)
	}
	r.Post("/compare", CompareHandler(d))
	r.Post("/test", TestHandler(d))
	r.Get("/models", ModelsHandler(d.Models, d.DefaultAPIKey != ""))
	r.Get("/state", StateHandler(d.History))
	r.Get("/state/stream", StateStreamHandler(d.History))
	r.Get("/openapi.json", OpenAPIHandler())
	r.Get("/docs", SwaggerHandler())
	return r
}
