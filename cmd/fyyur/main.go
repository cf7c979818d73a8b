// Command fyyur serves the venue and artist booking site.
package main

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	httpapp "github.com/cesargomez89/fullstack/internal/http"
	"github.com/cesargomez89/fullstack/internal/server"
)

func main() {
	server.Exit(server.Run(constants.AppFyyur, func(_ context.Context, env *server.Env) (httpapp.RouteRegistrar, error) {
		svc := app.NewBookingService(env.Store, env.Logger, nil)
		return httpapp.NewBookingHandler(svc, env.Logger)
	}))
}
