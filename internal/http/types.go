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

type Server struct {
	Store          roster.RosterStore
	Engine         *draft.Engine
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
