package input

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagestrip/internal/domain"
	"pagestrip/internal/ui/logic"
	"pagestrip/internal/ui/services/pagination"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newAttached(t *testing.T) (*Handler, *[]pagination.Activation) {
	t.Helper()
	h := New(DefaultKeyMap(), domain.DefaultLabels())
	var got []pagination.Activation
	h.Attach(func(a pagination.Activation) {
		got = append(got, a)
	})
	return h, &got
}

func TestNavigationKeys(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		kind domain.NavigationKind
		raw  string
	}{
		{msg: tea.KeyMsg{Type: tea.KeyHome}, kind: domain.KindStart, raw: "<<"},
		{msg: runes("g"), kind: domain.KindStart, raw: "<<"},
		{msg: tea.KeyMsg{Type: tea.KeyLeft}, kind: domain.KindPrev, raw: "<"},
		{msg: runes("h"), kind: domain.KindPrev, raw: "<"},
		{msg: tea.KeyMsg{Type: tea.KeyRight}, kind: domain.KindNext, raw: ">"},
		{msg: runes("l"), kind: domain.KindNext, raw: ">"},
		{msg: tea.KeyMsg{Type: tea.KeyEnd}, kind: domain.KindEnd, raw: ">>"},
		{msg: runes("G"), kind: domain.KindEnd, raw: ">>"},
	}

	for _, tt := range tests {
		h, got := newAttached(t)
		consumed, _ := h.HandleKey(tt.msg, nil)
		require.True(t, consumed, tt.msg.String())
		require.Len(t, *got, 1)
		assert.Equal(t, tt.kind, (*got)[0].Kind)
		assert.Equal(t, tt.raw, (*got)[0].Raw)
	}
}

func TestUnboundKeyIsNotConsumed(t *testing.T) {
	h, got := newAttached(t)
	consumed, _ := h.HandleKey(runes("z"), nil)
	assert.False(t, consumed)
	assert.Empty(t, *got)
}

func TestDetachedHandlerDeliversNothing(t *testing.T) {
	h, got := newAttached(t)
	h.Detach()
	assert.False(t, h.Attached())

	consumed, _ := h.HandleKey(runes("l"), nil)
	assert.True(t, consumed)
	assert.Empty(t, *got)
}

func TestFocusAndActivate(t *testing.T) {
	h, got := newAttached(t)
	buttons, err := logic.ComputeWindow(4, 10, 7)
	require.NoError(t, err)

	// Enter without focus does nothing
	consumed, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, buttons)
	assert.False(t, consumed)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, buttons)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, buttons)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, buttons)
	assert.Equal(t, 2, h.Focus())

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, buttons)
	require.Len(t, *got, 1)
	assert.Equal(t, domain.KindOther, (*got)[0].Kind)
	assert.Equal(t, "4", (*got)[0].Raw)
	assert.Equal(t, buttons[2], (*got)[0].Target)

	// Focus wraps around in both directions
	h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, buttons)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, buttons)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab}, buttons)
	assert.Equal(t, len(buttons)-1, h.Focus())
	h.HandleKey(tea.KeyMsg{Type: tea.KeyTab}, buttons)
	assert.Equal(t, 0, h.Focus())

	h.ResetFocus()
	assert.Equal(t, -1, h.Focus())
}

func TestGoToMode(t *testing.T) {
	h, got := newAttached(t)

	consumed, _ := h.HandleKey(runes("1"), nil)
	require.True(t, consumed)
	assert.Equal(t, ModeGoTo, h.Mode())
	assert.Equal(t, "1", h.Input())

	h.HandleKey(runes("2"), nil)
	assert.Equal(t, "12", h.Input())

	// Navigation keys do not navigate while typing
	h.HandleKey(tea.KeyMsg{Type: tea.KeyRight}, nil)
	assert.Empty(t, *got)

	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, nil)
	assert.Equal(t, ModeNormal, h.Mode())
	assert.Empty(t, h.Input())
	require.Len(t, *got, 1)
	assert.Equal(t, domain.KindOther, (*got)[0].Kind)
	assert.Equal(t, "12", (*got)[0].Raw)
}

func TestGoToCancel(t *testing.T) {
	h, got := newAttached(t)

	h.HandleKey(runes(":"), nil)
	assert.Equal(t, ModeGoTo, h.Mode())
	assert.Empty(t, h.Input())

	h.HandleKey(runes("7"), nil)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, nil)
	assert.Equal(t, ModeNormal, h.Mode())
	assert.Empty(t, *got)

	// Empty input submits nothing
	h.HandleKey(runes(":"), nil)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, nil)
	assert.Empty(t, *got)
}

func TestGoToCancelFollowsKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	keys.Cancel = key.NewBinding(key.WithKeys("ctrl+g"))
	h := New(keys, domain.DefaultLabels())
	var got []pagination.Activation
	h.Attach(func(a pagination.Activation) { got = append(got, a) })

	h.HandleKey(runes("5"), nil)
	h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, nil)
	assert.Equal(t, ModeGoTo, h.Mode(), "esc is no longer bound to cancel")

	h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlG}, nil)
	assert.Equal(t, ModeNormal, h.Mode())
	assert.Empty(t, got)
}

func TestHandleClick(t *testing.T) {
	h, got := newAttached(t)
	buttons, err := logic.ComputeWindow(1, 10, 7)
	require.NoError(t, err)

	assert.False(t, h.HandleClick(domain.Button{}, false))
	assert.True(t, h.HandleClick(buttons[6], true))
	require.Len(t, *got, 1)
	assert.Equal(t, domain.KindEnd, (*got)[0].Kind)
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()
	assert.NotEmpty(t, keys.ShortHelp())
	assert.Len(t, keys.FullHelp(), 3)
}
