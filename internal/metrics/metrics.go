package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuctionMetrics holds the counters and histograms exported by the bidding core.
type AuctionMetrics struct {
	BidsAdmitted   prometheus.Counter
	BidsRejected   *prometheus.CounterVec
	AuctionsClosed prometheus.Counter
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
}

// New registers the bidding metrics on the given registerer. Tests pass a
// fresh prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *AuctionMetrics {
	m := &AuctionMetrics{
		BidsAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bazario",
			Subsystem: "bidding",
			Name:      "bids_admitted_total",
			Help:      "Total number of admitted bids.",
		}),
		BidsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bazario",
			Subsystem: "bidding",
			Name:      "bids_rejected_total",
			Help:      "Total number of rejected bids by reason.",
		}, []string{"reason"}),
		AuctionsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "bazario",
			Subsystem: "bidding",
			Name:      "auctions_closed_total",
			Help:      "Total number of auctions sealed by the closer.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bazario",
			Subsystem: "bidding",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bazario",
			Subsystem: "bidding",
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}

	reg.MustRegister(m.BidsAdmitted, m.BidsRejected, m.AuctionsClosed, m.Requests, m.LatencyMS)
	return m
}

// Handler exposes the default registry for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
