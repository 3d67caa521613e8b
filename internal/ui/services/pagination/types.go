package pagination

import (
	"github.com/rs/zerolog"

	"pagestrip/internal/domain"
	"pagestrip/internal/eventbus"
)

// Activation is one user activation of a strip button, as classified by the input side
type Activation struct {
	Kind   domain.NavigationKind
	Raw    string      // label of the activated button
	Target interface{} // originating widget, optional
}

// ActivationSource is the input collaborator a controller attaches to. It must only
// deliver activations of strip buttons.
type ActivationSource interface {
	Attach(deliver func(Activation))
	Detach()
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used by the controller and its bus
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLabels sets the captions of the navigational buttons
func WithLabels(labels domain.Labels) Option {
	return func(c *Controller) {
		c.labels = labels
	}
}

// WithBusOptions passes options through to the controller's event bus
func WithBusOptions(opts ...eventbus.Option) Option {
	return func(c *Controller) {
		c.busOpts = append(c.busOpts, opts...)
	}
}
