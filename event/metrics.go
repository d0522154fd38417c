package event

import (
	"github.com/prometheus/client_golang/prometheus"
)

type busMetrics struct {
	published   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

func newBusMetrics(reg prometheus.Registerer) *busMetrics {
	m := &busMetrics{
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stakedelegation",
			Subsystem: "event",
			Name:      "published_total",
			Help:      "Events published on the bus",
		}, []string{"type"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stakedelegation",
			Subsystem: "event",
			Name:      "dropped_total",
			Help:      "Events dropped because a subscriber queue was full",
		}, []string{"type"}),
		subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stakedelegation",
			Subsystem: "event",
			Name:      "subscribers",
			Help:      "Active subscriptions by event type",
		}, []string{"type"}),
	}
	reg.MustRegister(m.published, m.dropped, m.subscribers)
	return m
}
