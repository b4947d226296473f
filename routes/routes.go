package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/tilerack/scrabble-system/handlers"
	"github.com/tilerack/scrabble-system/middleware"
	"github.com/tilerack/scrabble-system/models"
)

// SetupRoutes mounts every endpoint on the router. Reads (tournaments,
// pairings, standings, the live feed) are public; anything that mutates a
// tournament requires a director or admin token.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	playerHandler *handlers.PlayerHandler,
	pairingHandler *handlers.PairingHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Get("/auth/me", authHandler.Me)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentID}", tournamentHandler.Get)
		r.Get("/{tournamentID}/players", playerHandler.ListByTournament)
		r.Get("/{tournamentID}/pairings", pairingHandler.ListPairings)
		r.Get("/{tournamentID}/standings", standingsHandler.PlayerStandings)
		r.Get("/{tournamentID}/standings/teams", standingsHandler.TeamStandings)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(models.RoleDirector, models.RoleAdmin))

			r.Post("/", tournamentHandler.Create)
			r.Put("/{tournamentID}", tournamentHandler.Update)
			r.Patch("/{tournamentID}/status", tournamentHandler.ChangeStatus)
			r.Delete("/{tournamentID}", tournamentHandler.Delete)
			r.Post("/{tournamentID}/logo", tournamentHandler.UploadLogo)

			r.Post("/{tournamentID}/players", playerHandler.Register)

			r.Post("/{tournamentID}/rounds", pairingHandler.GenerateRound)
			r.Delete("/{tournamentID}/rounds/current", pairingHandler.VoidRound)
			r.Post("/{tournamentID}/pairings/{pairingID}/result", pairingHandler.SubmitResult)
		})
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.Authorize(models.RoleDirector, models.RoleAdmin))

			r.Put("/{playerID}", playerHandler.Update)
			r.Delete("/{playerID}", playerHandler.Remove)
			r.Post("/{playerID}/photo", playerHandler.UploadPhoto)
		})
	})
}
