package eventbus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// eventsPublished counts publishes that reached at least one handler
	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagestrip_bus_events_published_total",
			Help: "Total number of events delivered to subscribers",
		},
		[]string{"type"},
	)

	// subscriptionsRefused counts registrations refused by the capacity cap
	subscriptionsRefused = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagestrip_bus_subscriptions_refused_total",
			Help: "Total number of subscriptions refused because the type was at capacity",
		},
		[]string{"type"},
	)

	// handlerFaults counts handlers that returned an error or panicked
	handlerFaults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagestrip_bus_handler_faults_total",
			Help: "Total number of event handler failures",
		},
		[]string{"type"},
	)

	configurationRejected = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pagestrip_bus_configuration_rejected_total",
			Help: "Total number of rejected capacity configurations",
		},
	)
)
