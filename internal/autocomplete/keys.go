package autocomplete

// KeyEscape is the key name that dismisses an open popup.
const KeyEscape = "esc"

// KeyEvent is a key press travelling through a handler chain.
type KeyEvent struct {
	Key        string
	suppressed bool
}

// Suppress stops the event from reaching the remaining handlers.
func (e *KeyEvent) Suppress() {
	e.suppressed = true
}

// Suppressed reports whether a handler consumed the event.
func (e *KeyEvent) Suppressed() bool {
	return e.suppressed
}

// Handler reacts to a key event.
type Handler func(ev *KeyEvent)

// Chain combines handlers into one. The last handler runs first, and no
// further handler runs once the event is suppressed. Nil handlers are skipped.
func Chain(handlers ...Handler) Handler {
	return func(ev *KeyEvent) {
		for i := len(handlers) - 1; i >= 0; i-- {
			if ev.Suppressed() {
				return
			}
			if handlers[i] != nil {
				handlers[i](ev)
			}
		}
	}
}

// HandleKey is the controller's own key handler: Escape closes an open popup
// and consumes the key.
func (c *Controller) HandleKey(ev *KeyEvent) {
	if ev.Key == KeyEscape && c.IsOpen() {
		c.Dismiss()
		ev.Suppress()
	}
}
