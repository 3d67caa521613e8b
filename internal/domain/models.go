package domain

// Button describes one entry of the rendered page strip
type Button struct {
	Label   string
	Kind    NavigationKind
	Page    int  // target page for numeric buttons
	HasPage bool // false for navigational buttons
	Current bool // numeric button of the current page
}

// Numeric reports whether the button selects an explicit page
func (b Button) Numeric() bool { return b.Kind == KindOther && b.HasPage }

// WindowState is the page window owned by a pagination controller
type WindowState struct {
	StartIndex  int
	TotalPages  int
	WindowSize  int
	CurrentPage int
}

// Labels holds the captions of the navigational buttons
type Labels struct {
	First string
	Prev  string
	Next  string
	Last  string
}

// DefaultLabels returns the standard captions <<, <, > and >>
func DefaultLabels() Labels {
	return Labels{
		First: "<<",
		Prev:  "<",
		Next:  ">",
		Last:  ">>",
	}
}

// For returns the caption for a navigational kind, or "" for numeric buttons
func (l Labels) For(kind NavigationKind) string {
	switch kind {
	case KindStart:
		return l.First
	case KindPrev:
		return l.Prev
	case KindNext:
		return l.Next
	case KindEnd:
		return l.Last
	}
	return ""
}
