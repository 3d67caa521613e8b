package logic

import (
	"fmt"

	"pagestrip/internal/domain"
)

// Resolve returns the page selected by an activation of the given kind.
//
// Start and end always snap to the first and last page. Prev and next step by one
// and stay put at the boundary instead of wrapping. Other parses the activated
// label; labels that are not numbers or fall outside 1..totalPages are rejected.
func Resolve(kind domain.NavigationKind, raw string, previousPage, totalPages int) (int, error) {
	switch kind {
	case domain.KindEnd:
		return totalPages, nil
	case domain.KindNext:
		if previousPage >= totalPages {
			return totalPages, nil
		}
		return previousPage + 1, nil
	case domain.KindStart:
		return 1, nil
	case domain.KindPrev:
		if previousPage > 1 {
			return previousPage - 1, nil
		}
		return previousPage, nil
	case domain.KindOther:
		page, err := ParsePage(raw)
		if err != nil {
			return 0, err
		}
		if page < 1 || page > totalPages {
			return 0, fmt.Errorf("%w: page %d outside 1..%d", domain.ErrInvalidPageInput, page, totalPages)
		}
		return page, nil
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}
