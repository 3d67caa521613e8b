package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// navigations counts resolved activations by kind
	navigations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagestrip_navigations_total",
			Help: "Total number of resolved page navigations",
		},
		[]string{"kind"},
	)

	// invalidInput counts rejected renders and activations
	invalidInput = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pagestrip_invalid_input_total",
			Help: "Total number of rejected page inputs",
		},
		[]string{"operation"}, // "render", "activate"
	)
)
