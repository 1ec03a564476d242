package http

import (
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/config"
	"github.com/mauv0809/league-hub/internal/http/handlers"
	"github.com/rs/cors"
)

func NewServer(deps Deps, cfg config.Config) *Server {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	server := &Server{
		Deps:   deps,
		Cfg:    cfg,
		Router: http.NewServeMux(),
	}

	server.routes()
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigin,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	server.handler = c.Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	optionalSession := sessionMiddleware(s.Verifier, false)
	requireSession := sessionMiddleware(s.Verifier, true)
	requireAdmin := adminMiddleware(s.Profiles)

	public := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware) }
	user := func(h http.Handler) http.Handler { return Chain(h, paramsMiddleware, requireSession) }
	admin := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, requireSession, requireAdmin)
	}

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", public(handlers.HealthCheckHandler(s.DB)))

	s.Router.Handle("GET /api/home", public(handlers.HomeHandler(s.Leagues, s.Clock)))
	s.Router.Handle("GET /api/leagues", public(handlers.ListLeaguesHandler(s.Leagues)))
	s.Router.Handle("GET /api/leagues/{id}", public(handlers.GetLeagueHandler(s.Leagues)))
	s.Router.Handle("GET /api/teams", public(handlers.ListTeamsHandler(s.Leagues)))
	s.Router.Handle("GET /api/matches", public(handlers.ListMatchesHandler(s.Leagues)))
	s.Router.Handle("GET /api/calendar", public(handlers.CalendarHandler(s.Leagues, s.Clock)))
	s.Router.Handle("GET /api/standings", public(handlers.StandingsHandler(s.Leagues)))
	s.Router.Handle("POST /api/registrations", Chain(handlers.RegisterHandler(s.Processor), paramsMiddleware, optionalSession))

	s.Router.Handle("GET /api/dashboard", user(handlers.DashboardHandler(s.Processor)))
	s.Router.Handle("POST /api/dashboard/players", user(handlers.AddPlayerHandler(s.Processor)))
	s.Router.Handle("DELETE /api/dashboard/players/{id}", user(handlers.RemovePlayerHandler(s.Processor)))
	s.Router.Handle("GET /api/dashboard/matches", user(handlers.TeamMatchesHandler(s.Processor)))
	s.Router.Handle("GET /api/dashboard/profile", user(handlers.GetProfileHandler(s.Profiles)))
	s.Router.Handle("PUT /api/dashboard/profile", user(handlers.UpdateProfileHandler(s.Processor)))

	s.Router.Handle("GET /api/admin/leagues", admin(handlers.ListLeaguesHandler(s.Leagues)))
	s.Router.Handle("POST /api/admin/leagues", admin(handlers.CreateLeagueHandler(s.Leagues)))
	s.Router.Handle("PUT /api/admin/leagues/{id}", admin(handlers.UpdateLeagueHandler(s.Leagues)))
	s.Router.Handle("DELETE /api/admin/leagues/{id}", admin(handlers.DeleteLeagueHandler(s.Leagues)))
	s.Router.Handle("GET /api/admin/teams", admin(handlers.ListTeamsHandler(s.Leagues)))
	s.Router.Handle("POST /api/admin/teams", admin(handlers.CreateTeamHandler(s.Leagues)))
	s.Router.Handle("PUT /api/admin/teams/{id}", admin(handlers.UpdateTeamHandler(s.Leagues)))
	s.Router.Handle("DELETE /api/admin/teams/{id}", admin(handlers.DeleteTeamHandler(s.Leagues)))
	s.Router.Handle("GET /api/admin/matches", admin(handlers.ListMatchesHandler(s.Leagues)))
	s.Router.Handle("POST /api/admin/matches", admin(handlers.CreateMatchHandler(s.Leagues)))
	s.Router.Handle("PUT /api/admin/matches/{id}", admin(handlers.UpdateMatchHandler(s.Leagues)))
	s.Router.Handle("DELETE /api/admin/matches/{id}", admin(handlers.DeleteMatchHandler(s.Leagues)))
	s.Router.Handle("GET /api/admin/registrations", admin(handlers.ListRegistrationsHandler(s.Registrations)))
	s.Router.Handle("PUT /api/admin/registrations/{id}/payment-status", admin(handlers.PaymentStatusHandler(s.Processor)))
	s.Router.Handle("POST /api/admin/registrations/{id}/approve", admin(handlers.ApproveHandler(s.Processor)))

	if s.Cfg.ProjectID != "" {
		push := Chain(handlers.NotificationPushHandler(s.Processor, s.PubSub), paramsMiddleware, pushTokenMiddleware(s.Cfg.PushToken))
		s.Router.Handle("POST /pubsub/notifications", push)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
