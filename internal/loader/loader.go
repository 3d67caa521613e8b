// Package loader serves pages of an in-memory data set in response to navigation
// events. It stands in for the fetch a real consumer would run.
package loader

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"pagestrip/internal/domain"
)

// Page is one loaded slice of the data set
type Page struct {
	Number int
	Items  []string
	First  int // 1-based index of the first item
}

// Loader serves a numbered data set in fixed-size pages. Items are produced per
// page on Load; the data set itself is never held in memory.
type Loader struct {
	mu      sync.RWMutex
	count   int
	perPage int
	current Page
	loads   int
	logger  zerolog.Logger
}

// New creates a loader over count items. perPage below one is treated as one.
func New(count, perPage int, logger zerolog.Logger) *Loader {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Loader{
		count:   count,
		perPage: perPage,
		logger:  logger,
	}
}

// Item returns the caption of the item at a 1-based index
func Item(index int) string {
	return fmt.Sprintf("Item %03d", index)
}

// TotalPages returns the number of pages, at least one
func (l *Loader) TotalPages() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.totalPages()
}

func (l *Loader) totalPages() int {
	if l.count == 0 {
		return 1
	}
	return (l.count-1)/l.perPage + 1
}

// Load makes page the current page and returns it
func (l *Loader) Load(page int) (Page, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := l.totalPages()
	if page < 1 || page > total {
		return Page{}, fmt.Errorf("%w: page %d outside 1..%d", domain.ErrInvalidPageInput, page, total)
	}

	// page is within range, so start is below count and cannot overflow
	start := (page - 1) * l.perPage
	n := l.count - start
	if n > l.perPage {
		n = l.perPage
	}

	items := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		items = append(items, Item(start+i+1))
	}
	l.current = Page{Number: page, Items: items, First: start + 1}
	l.loads++

	l.logger.Info().Int("page", page).Int("items", len(items)).Msg("Page loaded")
	return l.current, nil
}

// Handle loads the page a navigation event points at. Navigations that stay on
// the loaded page are skipped.
func (l *Loader) Handle(event domain.Event) error {
	l.mu.RLock()
	loaded := l.current.Number
	l.mu.RUnlock()

	if event.Value == loaded {
		return nil
	}
	_, err := l.Load(event.Value)
	return err
}

// Current returns the last loaded page
func (l *Loader) Current() Page {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Loads returns how many times a page was loaded
func (l *Loader) Loads() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loads
}
