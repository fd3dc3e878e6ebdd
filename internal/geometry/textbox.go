package geometry

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// TextBox is a Surface for a text input drawn on a terminal.
//
// Multi-line boxes wrap at Width and start a new row at each newline.
// Single-line boxes keep everything on one row unless WordBreak or Autosize
// is set, in which case they wrap at Width like a multi-line box would.
type TextBox struct {
	Value     string
	Width     int
	Multi     bool
	WordBreak bool
	Autosize  bool

	PadTop  int
	PadLeft int

	ScrollTop  int
	ScrollLeft int

	// X and Y place the box on screen
	X int
	Y int
}

var _ Surface = (*TextBox)(nil)

// Multiline implements Surface.
func (b *TextBox) Multiline() bool {
	return b.Multi
}

// DisableWordBreak implements Surface. It has no effect on multi-line boxes.
func (b *TextBox) DisableWordBreak() {
	if !b.Multi {
		b.WordBreak = false
	}
}

// CaretBox implements Surface. The index is clamped to the text, and the
// index one past the last rune is the cell where the next rune would go.
func (b *TextBox) CaretBox(index int) CaretBox {
	cells := b.Cells()
	index = min(max(index, 0), len(cells)-1)
	return cells[index]
}

// ScrollOffset implements Surface.
func (b *TextBox) ScrollOffset() (int, int) {
	return b.ScrollTop, b.ScrollLeft
}

// Origin implements Surface.
func (b *TextBox) Origin() Coordinates {
	return Coordinates{Top: b.Y, Left: b.X}
}

// Cells lays out the text and returns the cell of every rune, plus one
// trailing entry for the caret after the last rune.
//
// The first row's line box starts at the top edge and spans PadTop, so its
// Top never exceeds its Height. Later rows are one cell high.
func (b *TextBox) Cells() []CaretBox {
	runes := []rune(b.Value)
	cells := make([]CaretBox, 0, len(runes)+1)
	wrap := b.wraps()

	row, col := 0, 0
	place := func(width int) {
		if wrap && width > 0 && col+width > b.Width && col > 0 {
			row++
			col = 0
		}
		box := CaretBox{Top: b.PadTop + row, Left: b.PadLeft + col, Height: 1}
		if row == 0 {
			box.Top, box.Height = 0, b.PadTop+1
		}
		cells = append(cells, box)
	}

	for _, r := range runes {
		if r == '\n' && b.Multi {
			place(0)
			row++
			col = 0
			continue
		}
		w := runewidth.RuneWidth(r)
		place(w)
		col += w
	}
	place(1)

	return cells
}

// Rows splits the text into the rows it occupies on screen. Newlines are
// dropped from multi-line output.
func (b *TextBox) Rows() []string {
	runes := []rune(b.Value)
	cells := b.Cells()
	rows := []string{""}
	for i, r := range runes {
		row := cells[i].Row() - b.PadTop
		for len(rows) <= row {
			rows = append(rows, "")
		}
		if r == '\n' && b.Multi {
			continue
		}
		rows[row] += string(r)
	}
	last := cells[len(runes)].Row() - b.PadTop
	for len(rows) <= last {
		rows = append(rows, "")
	}
	return rows
}

func (b *TextBox) wraps() bool {
	if b.Width <= 0 {
		return false
	}
	return b.Multi || b.WordBreak || b.Autosize
}

// PrevBoundary returns the rune offset of the grapheme cluster boundary
// before caret, so that emoji and combining marks move as one unit.
func PrevBoundary(text string, caret int) int {
	prev := 0
	for _, pos := range boundaries(text) {
		if pos >= caret {
			break
		}
		prev = pos
	}
	return prev
}

// NextBoundary returns the rune offset of the grapheme cluster boundary
// after caret, or the text length when caret is at the end.
func NextBoundary(text string, caret int) int {
	bounds := boundaries(text)
	for _, pos := range bounds {
		if pos > caret {
			return pos
		}
	}
	return bounds[len(bounds)-1]
}

func boundaries(text string) []int {
	out := []int{0}
	pos := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		pos += len(g.Runes())
		out = append(out, pos)
	}
	return out
}
