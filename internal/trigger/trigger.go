// Package trigger detects whether the text left of a caret forms an active
// autocomplete query.
package trigger

import (
	"unicode"
)

// Trigger is a character that starts a suggestion query when typed at the
// start of the text or after whitespace.
type Trigger struct {
	Char rune
	// MultiWord queries may contain spaces and end only at a period or newline.
	// Single-word queries end at the first space or newline.
	MultiWord bool
}

// String returns the trigger character.
func (t Trigger) String() string {
	return string(t.Char)
}

// Event is the result of a successful match.
type Event struct {
	Trigger Trigger
	Query   string
}

var (
	singleWordTerminators = map[rune]bool{' ': true, '\n': true}
	multiWordTerminators  = map[rune]bool{'.': true, '\n': true}
)

// Match scans backward from caret until it finds the nearest eligible trigger
// character or a boundary. The caret is a rune offset into text.
//
// A trigger character only counts when it is the first rune of text or is
// preceded by whitespace, and the query after it does not start with
// whitespace. A rejected trigger cannot match further left.
func Match(triggers []Trigger, text string, caret int) (Event, bool) {
	if len(triggers) == 0 || caret <= 0 {
		return Event{}, false
	}

	runes := []rune(text)
	if caret > len(runes) {
		caret = len(runes)
	}

	candidates := make([]Trigger, len(triggers))
	copy(candidates, triggers)

	// query is built in reverse, then flipped on return
	var reversed []rune

	for i := caret - 1; i >= 0 && len(candidates) > 0; i-- {
		char := runes[i]

		if singleWordTerminators[char] {
			candidates = filter(candidates, func(t Trigger) bool { return t.MultiWord })
		}
		if multiWordTerminators[char] {
			candidates = filter(candidates, func(t Trigger) bool { return !t.MultiWord })
		}

		for _, t := range matching(candidates, char) {
			startOK := i == 0 || unicode.IsSpace(runes[i-1])
			queryOK := len(reversed) == 0 || !unicode.IsSpace(reversed[len(reversed)-1])
			if startOK && queryOK {
				return Event{Trigger: t, Query: reverse(reversed)}, true
			}

			rejected := t
			candidates = filter(candidates, func(c Trigger) bool { return c != rejected })
		}

		reversed = append(reversed, char)
	}

	return Event{}, false
}

func matching(candidates []Trigger, char rune) []Trigger {
	var out []Trigger
	for _, t := range candidates {
		if t.Char == char {
			out = append(out, t)
		}
	}
	return out
}

func filter(candidates []Trigger, keep func(Trigger) bool) []Trigger {
	out := candidates[:0:0]
	for _, t := range candidates {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func reverse(r []rune) string {
	out := make([]rune, len(r))
	for i, c := range r {
		out[len(r)-1-i] = c
	}
	return string(out)
}
