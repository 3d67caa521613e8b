package input

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pagestrip/internal/domain"
	"pagestrip/internal/ui/services/pagination"
)

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeGoTo        // typing a page number
)

// Handler turns key presses and mouse clicks on strip buttons into activations.
// It implements pagination.ActivationSource; nothing is delivered while detached.
type Handler struct {
	mu      sync.Mutex
	deliver func(pagination.Activation)

	keys      KeyMap
	labels    domain.Labels
	mode      Mode
	focus     int
	textInput textinput.Model
}

var _ pagination.ActivationSource = (*Handler)(nil)

// New creates an input handler for a strip captioned with labels
func New(keys KeyMap, labels domain.Labels) *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 9
	ti.Validate = validatePageInput

	return &Handler{
		keys:      keys,
		labels:    labels,
		focus:     -1,
		textInput: ti,
	}
}

// Attach starts delivering activations to deliver
func (h *Handler) Attach(deliver func(pagination.Activation)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliver = deliver
}

// Detach stops delivering activations
func (h *Handler) Detach() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliver = nil
}

// Attached reports whether activations are being delivered
func (h *Handler) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deliver != nil
}

// Keys returns the key bindings
func (h *Handler) Keys() KeyMap {
	return h.keys
}

// Mode returns the current input mode
func (h *Handler) Mode() Mode {
	return h.mode
}

// Focus returns the index of the focused button, or -1
func (h *Handler) Focus() int {
	return h.focus
}

// Input returns the page number being typed
func (h *Handler) Input() string {
	if h.mode != ModeGoTo {
		return ""
	}
	return h.textInput.Value()
}

// HandleKey processes a key press against the visible buttons and reports
// whether it was consumed
func (h *Handler) HandleKey(msg tea.KeyMsg, buttons []domain.Button) (bool, tea.Cmd) {
	if h.mode == ModeGoTo {
		return h.handleGoTo(msg)
	}

	switch {
	case key.Matches(msg, h.keys.First):
		h.emitKind(domain.KindStart)
	case key.Matches(msg, h.keys.Prev):
		h.emitKind(domain.KindPrev)
	case key.Matches(msg, h.keys.Next):
		h.emitKind(domain.KindNext)
	case key.Matches(msg, h.keys.Last):
		h.emitKind(domain.KindEnd)
	case key.Matches(msg, h.keys.FocusNext):
		h.moveFocus(1, len(buttons))
	case key.Matches(msg, h.keys.FocusPrev):
		h.moveFocus(-1, len(buttons))
	case key.Matches(msg, h.keys.Activate):
		if h.focus < 0 || h.focus >= len(buttons) {
			return false, nil
		}
		h.Press(buttons[h.focus])
	case key.Matches(msg, h.keys.GoTo):
		h.mode = ModeGoTo
		h.textInput.Reset()
		if s := msg.String(); s != ":" {
			h.textInput.SetValue(s)
		}
		return true, h.textInput.Focus()
	default:
		return false, nil
	}
	return true, nil
}

func (h *Handler) handleGoTo(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(h.textInput.Value())
		h.leaveGoTo()
		if value != "" {
			h.emit(pagination.Activation{Kind: domain.KindOther, Raw: value})
		}
		return true, nil
	case key.Matches(msg, h.keys.Cancel):
		h.leaveGoTo()
		return true, nil
	}

	var cmd tea.Cmd
	h.textInput, cmd = h.textInput.Update(msg)
	return true, cmd
}

func (h *Handler) leaveGoTo() {
	h.mode = ModeNormal
	h.textInput.Blur()
	h.textInput.Reset()
}

// Press activates a button as if it had been clicked
func (h *Handler) Press(b domain.Button) {
	h.emit(pagination.Activation{Kind: b.Kind, Raw: b.Label, Target: b})
}

// HandleClick presses the button under a click, if any
func (h *Handler) HandleClick(b domain.Button, ok bool) bool {
	if !ok {
		return false
	}
	h.Press(b)
	return true
}

func (h *Handler) emitKind(kind domain.NavigationKind) {
	h.emit(pagination.Activation{Kind: kind, Raw: h.labels.For(kind)})
}

func (h *Handler) emit(a pagination.Activation) {
	h.mu.Lock()
	deliver := h.deliver
	h.mu.Unlock()

	if deliver != nil {
		deliver(a)
	}
}

// ResetFocus clears the focus, for example after the strip was re-rendered
func (h *Handler) ResetFocus() {
	h.focus = -1
}

func (h *Handler) moveFocus(delta, count int) {
	if count == 0 {
		h.focus = -1
		return
	}
	if h.focus < 0 || h.focus >= count {
		if delta > 0 {
			h.focus = 0
		} else {
			h.focus = count - 1
		}
		return
	}
	h.focus = (h.focus + delta + count) % count
}
