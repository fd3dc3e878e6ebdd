package autocomplete

import (
	"github.com/NikitaCOEUR/inlinecomplete/internal/geometry"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// Buffer is an in-memory Host for headless use. It holds the text and caret
// and records the last popup request.
type Buffer struct {
	Text  string
	Caret int
	// Box lays out Text when set. Its Value is kept in sync with Text.
	Box *geometry.TextBox

	Shown  bool
	Event  trigger.Event
	Placed geometry.Coordinates
	// Commits counts the splices applied to Text
	Commits int
}

var _ Host = (*Buffer)(nil)

// Value implements Host.
func (b *Buffer) Value() (string, int) {
	return b.Text, b.Caret
}

// Surface implements Host. A nil Box yields a nil Surface, not a typed nil.
func (b *Buffer) Surface() geometry.Surface {
	if b.Box == nil {
		return nil
	}
	b.Box.Value = b.Text
	return b.Box
}

// ShowSuggestions implements Host.
func (b *Buffer) ShowSuggestions(ev trigger.Event) {
	b.Shown = true
	b.Event = ev
}

// PlaceSuggestions implements Host.
func (b *Buffer) PlaceSuggestions(at geometry.Coordinates) {
	b.Placed = at
}

// HideSuggestions implements Host.
func (b *Buffer) HideSuggestions() {
	b.Shown = false
	b.Event = trigger.Event{}
	b.Placed = geometry.Coordinates{}
}

// Commit implements Host.
func (b *Buffer) Commit(text string, caret int) {
	b.Text, b.Caret = text, caret
	if b.Box != nil {
		b.Box.Value = text
	}
	b.Commits++
}
