// Package geometry resolves where a character of a text input sits on
// screen, so a suggestion popup can be anchored under it.
//
// Coordinates are terminal cells: Top is a row and Left a column. Relative
// coordinates are measured from the input's own top-left corner; absolute
// coordinates are measured from the top-left of the screen. The two must not
// be mixed.
package geometry

// Coordinates is a cell position.
type Coordinates struct {
	Top  int
	Left int
}

// Add returns c offset by o.
func (c Coordinates) Add(o Coordinates) Coordinates {
	return Coordinates{Top: c.Top + o.Top, Left: c.Left + o.Left}
}

// CaretBox is the raw measurement of a character cell inside an input:
// its top-left corner and the height of its line.
type CaretBox struct {
	Top    int
	Left   int
	Height int
}

// Row returns the screen row the cell is drawn on, its last line.
func (c CaretBox) Row() int {
	return c.Top + c.Height - 1
}

// Surface is a measurable text input.
type Surface interface {
	// Multiline reports whether the input accepts more than one line
	Multiline() bool
	// DisableWordBreak turns off any style that breaks long words, which
	// corrupts caret measurement on single-line inputs
	DisableWordBreak()
	// CaretBox measures the cell of the character at a rune index
	CaretBox(index int) CaretBox
	// ScrollOffset returns how far the content is scrolled
	ScrollOffset() (top, left int)
	// Origin returns the input's top-left corner on screen
	Origin() Coordinates
}

// Relative returns the bottom-left corner of the character at index,
// relative to the input. A nil surface yields the zero coordinate.
func Relative(s Surface, index int, adjustForScroll bool) Coordinates {
	if s == nil {
		return Coordinates{}
	}

	single := !s.Multiline()
	if single {
		s.DisableWordBreak()
	}

	box := s.CaretBox(index)

	// An autosizing single-line input can still wrap the last character onto
	// a phantom second line. Walk back to the last index on the first line.
	for single && box.Top > box.Height && index > 0 {
		index--
		box = s.CaretBox(index)
	}

	var scrollTop, scrollLeft int
	if adjustForScroll {
		scrollTop, scrollLeft = s.ScrollOffset()
	}

	return Coordinates{
		Top:  box.Top + box.Height - scrollTop,
		Left: box.Left - scrollLeft,
	}
}

// Absolute returns the bottom-left corner of the character at index on
// screen. A nil surface yields the zero coordinate.
func Absolute(s Surface, index int) Coordinates {
	if s == nil {
		return Coordinates{}
	}
	return Relative(s, index, true).Add(s.Origin())
}
