package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pagestrip/internal/domain"
)

// buttonGap separates adjacent buttons
const buttonGap = " "

// Zone is the column range [Start, End) a button occupies in a rendered strip
type Zone struct {
	Start int
	End   int
}

// Strip is a rendered row of buttons with their hit zones
type Strip struct {
	Line    string
	Buttons []domain.Button
	Zones   []Zone
}

// ButtonAt returns the button under column x
func (s Strip) ButtonAt(x int) (domain.Button, bool) {
	for i, z := range s.Zones {
		if x >= z.Start && x < z.End {
			return s.Buttons[i], true
		}
	}
	return domain.Button{}, false
}

// StripRenderer paints button descriptors
type StripRenderer struct {
	styles *Styles
}

// NewStripRenderer creates a strip renderer
func NewStripRenderer(styles *Styles) *StripRenderer {
	return &StripRenderer{styles: styles}
}

// Render paints buttons in order. focus is the index of the focused button, or -1.
func (r *StripRenderer) Render(buttons []domain.Button, focus int) Strip {
	strip := Strip{
		Buttons: buttons,
		Zones:   make([]Zone, 0, len(buttons)),
	}

	var line strings.Builder
	col := 0
	for i, b := range buttons {
		if i > 0 {
			line.WriteString(buttonGap)
			col += lipgloss.Width(buttonGap)
		}
		cell := r.styleFor(b, i == focus).Render(b.Label)
		width := lipgloss.Width(cell)
		strip.Zones = append(strip.Zones, Zone{Start: col, End: col + width})
		line.WriteString(cell)
		col += width
	}
	strip.Line = line.String()
	return strip
}

func (r *StripRenderer) styleFor(b domain.Button, focused bool) lipgloss.Style {
	var style lipgloss.Style
	switch {
	case b.Current:
		style = r.styles.CurrentButton
	case b.Numeric():
		style = r.styles.Button
	default:
		style = r.styles.NavButton
	}
	if focused {
		style = style.Background(r.styles.FocusedButton.GetBackground())
	}
	return style
}
