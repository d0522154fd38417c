package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

type ledgerMetrics struct {
	txs         *prometheus.CounterVec
	height      prometheus.Gauge
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

func newLedgerMetrics(reg prometheus.Registerer) *ledgerMetrics {
	m := &ledgerMetrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stakedelegation",
			Subsystem: "ledger",
			Name:      "txs_total",
			Help:      "Executed transactions by type and outcome",
		}, []string{"type", "result"}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stakedelegation",
			Subsystem: "ledger",
			Name:      "height",
			Help:      "Current logical block height",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stakedelegation",
			Subsystem: "ledger",
			Name:      "history_cache_hits_total",
			Help:      "Historical power lookups served from the cache",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stakedelegation",
			Subsystem: "ledger",
			Name:      "history_cache_misses_total",
			Help:      "Historical power lookups read from the checkpoint store",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.txs, m.height, m.cacheHits, m.cacheMisses)
	}
	return m
}
