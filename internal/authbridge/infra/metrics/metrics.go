package metrics

import (
	"time"

	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/correlate"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/app/login"
	"github.com/KasumiMercury/spotify-auth-bridge/internal/authbridge/domain/authorization"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records authorization and token exchange activity. It satisfies
// the recorder interfaces of the login, correlate and exchange packages.
type Metrics struct {
	Launches         *prometheus.CounterVec
	Results          *prometheus.CounterVec
	Overwrites       prometheus.Counter
	Exchanges        *prometheus.CounterVec
	ExchangeDuration prometheus.Histogram
}

var (
	_ login.Recorder     = (*Metrics)(nil)
	_ correlate.Recorder = (*Metrics)(nil)
)

// New registers the bridge collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Launches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_authorization_launches_total",
			Help: "Authorization flow launch attempts by method and outcome",
		}, []string{"method", "outcome"}),
		Results: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_authorization_results_total",
			Help: "Authorization results received by channel and outcome",
		}, []string{"channel", "outcome"}),
		Overwrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "bridge_pending_overwrites_total",
			Help: "Pending authorizations replaced before they resolved",
		}),
		Exchanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_token_exchanges_total",
			Help: "Token exchanges by outcome",
		}, []string{"outcome"}),
		ExchangeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "bridge_token_exchange_duration_seconds",
			Help:    "Duration of token endpoint calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) LaunchAttempted(method authorization.Method, outcome login.LaunchOutcome) {
	m.Launches.WithLabelValues(string(method), string(outcome)).Inc()
}

func (m *Metrics) PendingOverwritten() {
	m.Overwrites.Inc()
}

func (m *Metrics) ResultDelivered(channel correlate.Channel, outcome correlate.Outcome) {
	m.Results.WithLabelValues(string(channel), string(outcome)).Inc()
}

func (m *Metrics) ExchangeFinished(outcome string, elapsed time.Duration) {
	m.Exchanges.WithLabelValues(outcome).Inc()
	m.ExchangeDuration.Observe(elapsed.Seconds())
}
