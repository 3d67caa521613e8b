package logic

import (
	"fmt"
	"strconv"
	"strings"

	"pagestrip/internal/domain"
)

// DefaultWindowSize is used when no window size is given
const DefaultWindowSize = 7

// navPairSlots is the number of slots one navigational pair occupies
const navPairSlots = 2

// Position classifies where a window sits within the page range
type Position int

const (
	PositionSingle   Position = iota // one page, no navigation
	PositionLeading                  // starts at page 1, trailing pair only
	PositionMiddle                   // both navigational pairs
	PositionTrailing                 // reaches the last page, leading pair only
)

func (p Position) String() string {
	switch p {
	case PositionSingle:
		return "single"
	case PositionLeading:
		return "leading"
	case PositionMiddle:
		return "middle"
	case PositionTrailing:
		return "trailing"
	}
	return fmt.Sprintf("Position(%d)", int(p))
}

// Layout describes a computed window before it is turned into buttons
type Layout struct {
	Position  Position
	FirstPage int // first numeric page, inclusive
	LastPage  int // last numeric page, inclusive
}

// Contains reports whether page has a numeric button in the layout
func (l Layout) Contains(page int) bool {
	return page >= l.FirstPage && page <= l.LastPage
}

// numericSpan returns the slots left for numeric buttons once the given number of
// navigational pairs is placed, never less than one
func numericSpan(windowSize, pairs int) int {
	span := windowSize - pairs*navPairSlots
	if span < 1 {
		return 1
	}
	return span
}

// ComputeLayout classifies the window that starts at startIndex
func ComputeLayout(startIndex, totalPages, windowSize int) (Layout, error) {
	if totalPages < 1 {
		return Layout{}, fmt.Errorf("%w: total pages must be at least 1, got %d", domain.ErrInvalidPageInput, totalPages)
	}
	if totalPages == 1 {
		return Layout{Position: PositionSingle, FirstPage: 1, LastPage: 1}, nil
	}
	if windowSize < 0 {
		return Layout{}, fmt.Errorf("%w: window size must not be negative, got %d", domain.ErrInvalidPageInput, windowSize)
	}
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	if startIndex < 1 || startIndex > totalPages {
		return Layout{}, fmt.Errorf("%w: start index %d outside 1..%d", domain.ErrInvalidPageInput, startIndex, totalPages)
	}

	span := numericSpan(windowSize, 1)
	switch {
	case startIndex == 1:
		return Layout{
			Position:  PositionLeading,
			FirstPage: startIndex,
			LastPage:  clampPage(startIndex+span-1, totalPages),
		}, nil
	case startIndex+span >= totalPages:
		return Layout{
			Position:  PositionTrailing,
			FirstPage: startIndex,
			LastPage:  totalPages,
		}, nil
	default:
		// Both pairs are shown, so they take four slots between them
		reduced := numericSpan(windowSize, 2)
		return Layout{
			Position:  PositionMiddle,
			FirstPage: startIndex,
			LastPage:  clampPage(startIndex+reduced-1, totalPages),
		}, nil
	}
}

// ComputeWindow returns the buttons to show for a window starting at startIndex,
// captioned with the default labels
func ComputeWindow(startIndex, totalPages, windowSize int) ([]domain.Button, error) {
	return ComputeLabeledWindow(domain.DefaultLabels(), startIndex, totalPages, windowSize)
}

// ComputeLabeledWindow is ComputeWindow with custom navigational captions
func ComputeLabeledWindow(labels domain.Labels, startIndex, totalPages, windowSize int) ([]domain.Button, error) {
	layout, err := ComputeLayout(startIndex, totalPages, windowSize)
	if err != nil {
		return nil, err
	}

	buttons := make([]domain.Button, 0, layout.LastPage-layout.FirstPage+1+2*navPairSlots)
	if layout.Position == PositionMiddle || layout.Position == PositionTrailing {
		buttons = append(buttons, navButton(labels, domain.KindStart), navButton(labels, domain.KindPrev))
	}
	for page := layout.FirstPage; page <= layout.LastPage; page++ {
		buttons = append(buttons, domain.Button{
			Label:   strconv.Itoa(page),
			Kind:    domain.KindOther,
			Page:    page,
			HasPage: true,
		})
	}
	if layout.Position == PositionLeading || layout.Position == PositionMiddle {
		buttons = append(buttons, navButton(labels, domain.KindNext), navButton(labels, domain.KindEnd))
	}
	return buttons, nil
}

// MarkCurrent flags the numeric button for page, if it is visible
func MarkCurrent(buttons []domain.Button, page int) {
	for i := range buttons {
		buttons[i].Current = buttons[i].Numeric() && buttons[i].Page == page
	}
}

// AnchorWindow returns the start index that keeps page visible. The current start
// index is kept when page is already on screen.
func AnchorWindow(startIndex, page, totalPages, windowSize int) int {
	if totalPages <= 1 || page <= 1 {
		return 1
	}
	page = clampPage(page, totalPages)
	if startIndex < 1 || startIndex > totalPages {
		startIndex = 1
	}

	layout, err := ComputeLayout(startIndex, totalPages, windowSize)
	if err != nil {
		return 1
	}
	if layout.Contains(page) {
		return startIndex
	}

	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	candidate := page
	if page > layout.LastPage {
		// Place page at the end of a middle window
		candidate = page - numericSpan(windowSize, 2) + 1
	}
	if candidate < 1 {
		candidate = 1
	}
	// A window starting at page always shows page, so this terminates
	for candidate < page {
		l, err := ComputeLayout(candidate, totalPages, windowSize)
		if err == nil && l.Contains(page) {
			break
		}
		candidate++
	}
	return candidate
}

// ParsePage converts a page label to an integer. Like the browser widget it
// reads an optional sign and the leading digits, so "7" and " 7px" are both 7;
// a label without leading digits is rejected.
func ParsePage(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, fmt.Errorf("%w: %q is not a page number", domain.ErrInvalidPageInput, raw)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrInvalidPageInput, raw, err)
	}
	return n, nil
}

// ParseWindowArgs coerces textual window arguments. An empty size selects the default.
func ParseWindowArgs(start, total, size string) (int, int, int, error) {
	totalPages, err := ParsePage(total)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("total pages: %w", err)
	}
	startIndex, err := ParsePage(start)
	if err != nil {
		if totalPages > 1 {
			return 0, 0, 0, fmt.Errorf("start index: %w", err)
		}
		// A single page renders regardless of the start index
		startIndex = 1
	}
	windowSize := 0
	if strings.TrimSpace(size) != "" {
		if windowSize, err = ParsePage(size); err != nil {
			return 0, 0, 0, fmt.Errorf("window size: %w", err)
		}
	}
	return startIndex, totalPages, windowSize, nil
}

func navButton(labels domain.Labels, kind domain.NavigationKind) domain.Button {
	return domain.Button{Label: labels.For(kind), Kind: kind}
}

func clampPage(page, totalPages int) int {
	if page > totalPages {
		return totalPages
	}
	return page
}
