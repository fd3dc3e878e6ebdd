package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	caretStyle    = lipgloss.NewStyle().Reverse(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	keyHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// canvas is a grid of rendered cells that grows on write. A wide rune takes
// its cell and leaves an empty placeholder in the next one.
type canvas [][]string

func (c *canvas) put(top, left int, s string, style lipgloss.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		c.set(top, left, style.Render(string(r)))
		for i := 1; i < w; i++ {
			c.set(top, left+i, "")
		}
		left += w
	}
	return left
}

func (c *canvas) set(top, left int, cell string) {
	if top < 0 || left < 0 {
		return
	}
	for len(*c) <= top {
		*c = append(*c, nil)
	}
	row := (*c)[top]
	for len(row) <= left {
		row = append(row, " ")
	}
	row[left] = cell
	(*c)[top] = row
}

func (c canvas) String() string {
	lines := make([]string, len(c))
	for i, row := range c {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var c canvas
	c.put(0, 0, "inlinecomplete demo", titleStyle)

	box := m.box
	box.Value = m.text
	cells := box.Cells()
	rows := len(box.Rows())

	// frame
	right := boxLeft + box.Width + 1
	if box.Width <= 0 {
		right = boxLeft + runewidth.StringWidth(m.text) + 2
	}
	bottom := boxTop + rows
	c.put(boxTop-1, 0, "┌"+strings.Repeat("─", right-1)+"┐", borderStyle)
	for row := boxTop; row < bottom; row++ {
		c.put(row, 0, "│", borderStyle)
		c.put(row, right, "│", borderStyle)
	}
	c.put(bottom, 0, "└"+strings.Repeat("─", right-1)+"┘", borderStyle)

	// text
	for i, r := range []rune(m.text) {
		if r == '\n' {
			continue
		}
		cell := cells[i]
		c.put(boxTop+cell.Row(), boxLeft+cell.Left, string(r), defaultStyle())
	}

	// caret
	caret := cells[min(m.caret, len(cells)-1)]
	under := " "
	if runes := []rune(m.text); m.caret < len(runes) && runes[m.caret] != '\n' {
		under = string(runes[m.caret])
	}
	c.put(boxTop+caret.Row(), boxLeft+caret.Left, under, caretStyle)

	// popup
	if m.open && len(m.items) > 0 {
		m.drawPopup(&c)
	}

	return c.String() + "\n" + m.statusLine() + "\n" + m.help.View(m.keys)
}

func (m *Model) drawPopup(c *canvas) {
	width := 0
	for _, s := range m.items {
		width = max(width, runewidth.StringWidth(label(s)))
	}

	for i, s := range m.items {
		style := itemStyle
		if i == m.selected {
			style = selectedStyle
		}
		text := label(s)
		pad := strings.Repeat(" ", width-runewidth.StringWidth(text))

		left := c.put(m.at.Top+i, m.at.Left, " "+suggestion.ValueOf(s), style)
		if key := suggestion.KeyOf(s); key != suggestion.ValueOf(s) {
			left = c.put(m.at.Top+i, left, " "+key, keyHintStyle)
		}
		c.put(m.at.Top+i, left, pad+" ", style)
	}
}

// label is the text a popup row shows for s
func label(s suggestion.Suggestion) string {
	if key := suggestion.KeyOf(s); key != suggestion.ValueOf(s) {
		return suggestion.ValueOf(s) + " " + key
	}
	return suggestion.ValueOf(s)
}

func (m *Model) statusLine() string {
	state := m.ctrl.State()
	line := statusStyle.Render(fmt.Sprintf("%s  caret %d", state.Phase, m.caret))
	if m.open {
		line += statusStyle.Render(fmt.Sprintf("  %s%q at top %d, left %d", m.event.Trigger, m.event.Query, m.at.Top, m.at.Left))
		if m.source != "" {
			line += statusStyle.Render("  via " + m.source)
		}
	}
	if m.status != "" {
		line += "  " + warnStyle.Render(m.status)
	}
	return line
}

func defaultStyle() lipgloss.Style {
	return lipgloss.NewStyle()
}
