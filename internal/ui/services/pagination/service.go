package pagination

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"pagestrip/internal/domain"
	"pagestrip/internal/eventbus"
	"pagestrip/internal/ui/logic"
)

// Controller owns the page window state and the event bus of one page strip.
// It resolves activations, recomputes the visible buttons and publishes the
// resulting navigation events.
type Controller struct {
	mu      sync.Mutex
	state   domain.WindowState
	buttons []domain.Button
	labels  domain.Labels

	bus     *eventbus.Bus
	busOpts []eventbus.Option
	source  ActivationSource
	enabled bool
	logger  zerolog.Logger
}

// NewController creates a controller showing page 1 of 1. When source is not nil
// the controller attaches to it straight away.
func NewController(source ActivationSource, opts ...Option) *Controller {
	c := &Controller{
		state: domain.WindowState{
			StartIndex:  1,
			TotalPages:  1,
			WindowSize:  logic.DefaultWindowSize,
			CurrentPage: 1,
		},
		labels: domain.DefaultLabels(),
		source: source,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	busOpts := append([]eventbus.Option{eventbus.WithLogger(c.logger)}, c.busOpts...)
	c.bus = eventbus.New(c, busOpts...)

	// A single page always computes
	c.buttons, _ = logic.ComputeLabeledWindow(c.labels, 1, 1, c.state.WindowSize)
	logic.MarkCurrent(c.buttons, 1)

	c.Enable()
	return c
}

// Bus returns the controller's event bus
func (c *Controller) Bus() *eventbus.Bus {
	return c.bus
}

// ConfigureCapacity sets the subscriber cap of the controller's bus
func (c *Controller) ConfigureCapacity(n int) error {
	return c.bus.ConfigureCapacity(n)
}

// OnNavigate subscribes handler to every navigation, whatever its kind
func (c *Controller) OnNavigate(handler eventbus.Handler) error {
	return c.bus.Subscribe(domain.EventNavigate, handler)
}

// OnKind subscribes handler to navigations of one kind
func (c *Controller) OnKind(kind domain.NavigationKind, handler eventbus.Handler) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return c.bus.Subscribe(kind.EventType(), handler)
}

// State returns a copy of the current window state
func (c *Controller) State() domain.WindowState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentPage returns the selected page
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.CurrentPage
}

// Buttons returns a copy of the buttons from the last render
func (c *Controller) Buttons() []domain.Button {
	c.mu.Lock()
	defer c.mu.Unlock()
	buttons := make([]domain.Button, len(c.buttons))
	copy(buttons, c.buttons)
	return buttons
}

// Labels returns the captions of the navigational buttons
func (c *Controller) Labels() domain.Labels {
	return c.labels
}

// Render recomputes the strip for the given window and stores it. Invalid input
// leaves the previous window in place.
func (c *Controller) Render(startIndex, totalPages, windowSize int) ([]domain.Button, error) {
	buttons, err := logic.ComputeLabeledWindow(c.labels, startIndex, totalPages, windowSize)
	if err != nil {
		invalidInput.WithLabelValues("render").Inc()
		c.logger.Warn().
			Err(err).
			Int("start_index", startIndex).
			Int("total_pages", totalPages).
			Int("window_size", windowSize).
			Msg("Render rejected")
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if windowSize == 0 {
		windowSize = logic.DefaultWindowSize
	}
	if totalPages == 1 {
		startIndex = 1
	}
	c.state.StartIndex = startIndex
	c.state.TotalPages = totalPages
	c.state.WindowSize = windowSize
	if c.state.CurrentPage > totalPages {
		c.state.CurrentPage = totalPages
	}
	logic.MarkCurrent(buttons, c.state.CurrentPage)
	c.buttons = buttons

	out := make([]domain.Button, len(buttons))
	copy(out, buttons)
	return out, nil
}

// HandleActivation runs one navigation: resolve the new page, move the window so
// the page stays visible, and publish the event under its kind and under
// domain.EventNavigate. On error nothing changes and nothing is published.
//
// Handlers run after the state update, so a handler that calls HandleActivation
// again completes its own navigation before the remaining handlers see this one.
func (c *Controller) HandleActivation(kind domain.NavigationKind, raw string) (domain.Event, error) {
	return c.activate(Activation{Kind: kind, Raw: raw})
}

// Activate is the callback handed to the activation source
func (c *Controller) Activate(a Activation) {
	// Errors are already logged and counted
	_, _ = c.activate(a)
}

func (c *Controller) activate(a Activation) (domain.Event, error) {
	event, err := c.transition(a)
	if err != nil {
		invalidInput.WithLabelValues("activate").Inc()
		c.logger.Warn().
			Err(err).
			Str("kind", string(a.Kind)).
			Str("raw", a.Raw).
			Msg("Activation rejected")
		return domain.Event{}, err
	}

	navigations.WithLabelValues(string(a.Kind)).Inc()
	c.logger.Debug().
		Str("kind", string(a.Kind)).
		Int("from", event.Previous).
		Int("to", event.Value).
		Msg("Page changed")

	c.bus.Publish(event)
	aggregate := event
	aggregate.Type = domain.EventNavigate
	c.bus.Publish(aggregate)

	return event, nil
}

// transition applies the state change under the lock and builds the event
func (c *Controller) transition(a Activation) (domain.Event, error) {
	if !a.Kind.Valid() {
		return domain.Event{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, a.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	previous := c.state.CurrentPage
	page, err := logic.Resolve(a.Kind, a.Raw, previous, c.state.TotalPages)
	if err != nil {
		return domain.Event{}, err
	}

	start := logic.AnchorWindow(c.state.StartIndex, page, c.state.TotalPages, c.state.WindowSize)
	buttons, err := logic.ComputeLabeledWindow(c.labels, start, c.state.TotalPages, c.state.WindowSize)
	if err != nil {
		return domain.Event{}, err
	}
	logic.MarkCurrent(buttons, page)

	c.state.CurrentPage = page
	c.state.StartIndex = start
	c.buttons = buttons

	target := a.Target
	if target == nil {
		target = c
	}
	return domain.Event{
		Type:     a.Kind.EventType(),
		Kind:     a.Kind,
		Target:   target,
		Value:    page,
		Previous: previous,
		Raw:      a.Raw,
	}, nil
}

// Enable attaches the controller to its activation source
func (c *Controller) Enable() {
	c.mu.Lock()
	if c.source == nil || c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = true
	c.mu.Unlock()

	c.source.Attach(c.Activate)
}

// Disable detaches the controller from its activation source
func (c *Controller) Disable() {
	c.mu.Lock()
	if c.source == nil || !c.enabled {
		c.mu.Unlock()
		return
	}
	c.enabled = false
	c.mu.Unlock()

	c.source.Detach()
}

// Enabled reports whether the controller is attached to its source
func (c *Controller) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}
