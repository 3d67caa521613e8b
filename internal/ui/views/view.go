package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pagestrip/internal/domain"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Buttons       []domain.Button
	Focus         int
	CurrentPage   int
	TotalPages    int
	Items         []string
	FirstItem     int
	StatusMessage string
	StatusIsError bool
	Input         string // page number being typed
	Enabled       bool
	HelpView      string
}

// Frame is a rendered screen plus what is needed to hit-test mouse clicks
type Frame struct {
	Content string
	Strip   Strip
	StripX  int // screen column of the first strip cell
	StripY  int // screen row of the strip
}

// ButtonAt returns the button under a screen position
func (f Frame) ButtonAt(x, y int) (domain.Button, bool) {
	if y != f.StripY {
		return domain.Button{}, false
	}
	return f.Strip.ButtonAt(x - f.StripX)
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	strip  *StripRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{
		styles: styles,
		strip:  NewStripRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) Frame {
	var header strings.Builder

	// Title with page position on the right
	title := r.styles.Title.Render("pagestrip")
	position := r.styles.Dim.Render(fmt.Sprintf("page %d of %d", state.CurrentPage, state.TotalPages))
	if !state.Enabled {
		position = r.styles.Dim.Render("input disabled") + "  " + position
	}
	header.WriteString(r.alignRight(title, position, state.Width))
	header.WriteString("\n")

	headerContent := header.String()
	strip := r.strip.Render(state.Buttons, state.Focus)

	var body strings.Builder
	body.WriteString("\n")
	if state.Input != "" {
		body.WriteString(r.styles.Input.Render("Go to page: " + state.Input))
	}
	body.WriteString("\n")

	if len(state.Items) == 0 {
		body.WriteString(r.styles.Dim.Render("Nothing loaded."))
		body.WriteString("\n")
	}
	for i, item := range state.Items {
		body.WriteString(r.styles.Item.Render(fmt.Sprintf("%4d  %s", state.FirstItem+i, item)))
		body.WriteString("\n")
	}

	if state.StatusMessage != "" {
		body.WriteString("\n")
		style := r.styles.Status
		if state.StatusIsError {
			style = r.styles.StatusError
		}
		body.WriteString(style.Render(state.StatusMessage))
		body.WriteString("\n")
	}

	content := headerContent + strip.Line + "\n" + body.String()

	// Push the help line to the bottom of the screen
	if state.HelpView != "" {
		currentLines := lipgloss.Height(content)
		availableLines := state.Height - r.styles.Main.GetVerticalPadding()
		if padding := availableLines - currentLines - 1; padding > 0 {
			content += strings.Repeat("\n", padding)
		}
		content += r.styles.Help.Render(state.HelpView)
	}

	return Frame{
		Content: r.styles.Main.Render(content),
		Strip:   strip,
		StripX:  r.styles.Main.GetPaddingLeft(),
		StripY:  r.styles.Main.GetPaddingTop() + lipgloss.Height(headerContent) - 1,
	}
}

func (r *Renderer) alignRight(left, right string, width int) string {
	if width <= 0 {
		width = 80 // Default terminal width
	}
	available := width - r.styles.Main.GetHorizontalPadding()
	padding := available - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + right
}
