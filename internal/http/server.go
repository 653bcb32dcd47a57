package http

import (
	"net/http"

	"github.com/gaara-aza/saimon/internal/config"
	"github.com/gaara-aza/saimon/internal/draft"
	"github.com/gaara-aza/saimon/internal/metrics"
	"github.com/gaara-aza/saimon/internal/notifier"
	"github.com/gaara-aza/saimon/internal/pubsub"
	"github.com/gaara-aza/saimon/internal/roster"
)

func NewServer(store roster.RosterStore, engine *draft.Engine, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Engine:         engine,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// The /api/ surface additionally goes through the bearer-token auth
	// middleware, and Slack commands through signature verification.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/players", Chain(s.ListPlayersHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/players", Chain(s.CreatePlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /api/players/{id}", Chain(s.GetPlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("DELETE /api/players/{id}", Chain(s.DeletePlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /api/teams", Chain(s.ListTeamsHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/teams/random", Chain(s.RandomizeTeamsHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/teams/match-result", Chain(s.MatchResultHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("PUT /api/teams/{teamId}/captain", Chain(s.SetCaptainHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/teams/{teamId}/players", Chain(s.AddTeamPlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("DELETE /api/teams/{teamId}/players/{playerId}", Chain(s.RemoveTeamPlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("GET /api/standings", Chain(s.StandingsHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /pubsub/notify-assignment", Chain(s.NotifyAssignmentHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/notify-result", Chain(s.NotifyResultHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/standings", Chain(s.StandingsCommandHandler(), paramsMiddleware, s.slackVerificationMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
