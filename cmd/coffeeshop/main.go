// Command coffeeshop serves the drinks menu API behind bearer tokens.
package main

import (
	"context"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	httpapp "github.com/cesargomez89/fullstack/internal/http"
	"github.com/cesargomez89/fullstack/internal/server"
)

func main() {
	server.Exit(server.Run(constants.AppCoffeeShop, func(_ context.Context, env *server.Env) (httpapp.RouteRegistrar, error) {
		svc := app.NewDrinkService(env.Store, env.Logger)
		return httpapp.NewDrinkHandler(svc, env.Verifier, env.Logger), nil
	}))
}
