// Command trivia serves the trivia questions API.
package main

import (
	"context"
	"fmt"

	"github.com/cesargomez89/fullstack/internal/app"
	"github.com/cesargomez89/fullstack/internal/constants"
	httpapp "github.com/cesargomez89/fullstack/internal/http"
	"github.com/cesargomez89/fullstack/internal/server"
)

func main() {
	server.Exit(server.Run(constants.AppTrivia, func(ctx context.Context, env *server.Env) (httpapp.RouteRegistrar, error) {
		if err := env.Store.SeedCategories(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed categories: %w", err)
		}
		svc := app.NewTriviaService(env.Store, env.Logger)
		return httpapp.NewTriviaHandler(svc, env.Logger), nil
	}))
}
