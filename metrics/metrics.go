package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	setupOnce sync.Once

	// issuedTotal cumulative ledger balance issued through the store path.
	issuedTotal prometheus.Counter
	// matchCounter match lifecycle transitions, labelled by the transition.
	matchCounter *prometheus.CounterVec
	// transferCounter ledger transfers, labelled by kind (direct/pull/issue).
	transferCounter *prometheus.CounterVec
)

// Setup registers all instruments on the default registerer. Safe to call
// more than once, engines call it from their constructors.
func Setup() {
	setupOnce.Do(func() {
		issuedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wager",
			Subsystem: "ledger",
			Name:      "issued_total",
			Help:      "Cumulative amount of ledger balance issued",
		})
		matchCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wager",
			Subsystem: "match",
			Name:      "transitions_total",
			Help:      "Number of match lifecycle transitions",
		}, []string{"transition"})
		transferCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wager",
			Subsystem: "ledger",
			Name:      "transfers_total",
			Help:      "Number of ledger balance movements",
		}, []string{"kind"})
		prometheus.MustRegister(issuedTotal, matchCounter, transferCounter)
	})
}

// IssuedAdd records issued balance, as a float for the counter - exact
// accounting lives in the ledger itself.
func IssuedAdd(amount float64) {
	if issuedTotal == nil {
		return
	}
	issuedTotal.Add(amount)
}

// MatchTransitionInc one of: created, joined, resolved, cancelled.
func MatchTransitionInc(transition string) {
	if matchCounter == nil {
		return
	}
	matchCounter.WithLabelValues(transition).Inc()
}

// TransferInc one of: transfer, pull, issue.
func TransferInc(kind string) {
	if transferCounter == nil {
		return
	}
	transferCounter.WithLabelValues(kind).Inc()
}
