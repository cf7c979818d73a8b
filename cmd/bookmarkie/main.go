// Command bookmarkie serves the bookmarks API behind bearer tokens.
package main

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	httpapp "github.com/cesargomez89/fullstack/internal/http"
	"github.com/cesargomez89/fullstack/internal/server"
)

func main() {
	server.Exit(server.Run(constants.AppBookmarkie, func(_ context.Context, env *server.Env) (httpapp.RouteRegistrar, error) {
		svc := app.NewBookmarkService(env.Store, env.Logger, nil)
		return httpapp.NewBookmarkHandler(svc, env.Verifier, env.Logger), nil
	}))
}
