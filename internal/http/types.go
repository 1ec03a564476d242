package http

import (
	"database/sql"
	"net/http"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/config"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/pubsub"
	"github.com/mauv0809/league-hub/internal/registration"
)

// Deps are the collaborators the server routes to.
type Deps struct {
	DB             *sql.DB
	Leagues        league.LeagueStore
	Registrations  registration.RegistrationStore
	Profiles       identity.ProfileStore
	Verifier       identity.SessionVerifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Processor      *processor.Processor
	// PubSub may be nil when notifications are delivered in process.
	PubSub pubsub.PubSubClient
	Clock  clockwork.Clock
}

type Server struct {
	Deps
	Cfg    config.Config
	Router *http.ServeMux

	handler http.Handler
}
