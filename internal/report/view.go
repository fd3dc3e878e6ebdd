package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/inlinecomplete/internal/suggestion"
	"github.com/NikitaCOEUR/inlinecomplete/internal/timing"
	"github.com/NikitaCOEUR/inlinecomplete/internal/trigger"
)

// CaretMarker is drawn into the text at the caret position
const CaretMarker = "│"

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	layoutStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)
)

// Render renders the match data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderMatch(data))

	if data.Matched {
		b.WriteString("\n\n")
		b.WriteString(renderLayout(data))
		b.WriteString("\n\n")
		b.WriteString(renderSuggestions(data))
	}

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("✏️  Text: ") + valueStyle.Render(WithCaret(data.Text, data.Caret)) + "\n")

	configPath := data.ConfigPath
	if configPath == "" {
		configPath = "built-in defaults"
	}
	b.WriteString(titleStyle.Render("📝 Config: ") + subtleStyle.Render(configPath) + "\n")
	b.WriteString(titleStyle.Render("🎯 Triggers: ") + valueStyle.Render(FormatTriggers(data.Triggers)))
	if data.Version != "" {
		b.WriteString("\n" + titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	}
	return b.String()
}

func renderMatch(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔍 Match:") + "\n")

	if !data.Matched {
		b.WriteString("   " + errorStyle.Render("✗ No active query at caret ") + valueStyle.Render(fmt.Sprintf("%d", data.Caret)))
		return b.String()
	}

	mode := "single word"
	if data.Event.Trigger.MultiWord {
		mode = "multi word"
	}

	b.WriteString("   " + successStyle.Render("✓ Suggestions open") + "\n")
	b.WriteString("   " + keyStyle.Render("Trigger: ") + valueStyle.Render(data.Event.Trigger.String()) + subtleStyle.Render(" ("+mode+")") + "\n")
	b.WriteString("   " + keyStyle.Render("Query: ") + valueStyle.Render(fmt.Sprintf("%q", data.Event.Query)) + "\n")
	b.WriteString("   " + keyStyle.Render("Replace: ") + valueStyle.Render(fmt.Sprintf("[%d, %d)", data.Anchor, data.Caret)) + "\n")
	b.WriteString("   " + keyStyle.Render("Popup (relative): ") + valueStyle.Render(formatCoordinates(data.Relative.Top, data.Relative.Left)) + "\n")
	b.WriteString("   " + keyStyle.Render("Popup (absolute): ") + valueStyle.Render(formatCoordinates(data.Absolute.Top, data.Absolute.Left)))

	return b.String()
}

// renderLayout draws the laid out text with a marker on the row the popup
// opens at
func renderLayout(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📐 Layout:") + "\n")

	var lines []string
	for i, row := range data.Rows {
		lines = append(lines, row)
		if i+1 == data.Relative.Top {
			lines = append(lines, strings.Repeat(" ", max(data.Relative.Left, 0))+warningStyle.Render("└ popup"))
		}
	}
	if data.Relative.Top > len(data.Rows) || data.Relative.Top <= 0 {
		lines = append(lines, strings.Repeat(" ", max(data.Relative.Left, 0))+warningStyle.Render("└ popup"))
	}

	b.WriteString(indent(layoutStyle.Render(strings.Join(lines, "\n")), "   "))
	return b.String()
}

func renderSuggestions(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💡 Suggestions:") + "\n")

	if len(data.Suggestions) == 0 {
		b.WriteString("   " + subtleStyle.Render("No suggestions for this query"))
		return b.String()
	}

	for i, s := range data.Suggestions {
		line := fmt.Sprintf("   %d. %s", i+1, valueStyle.Render(suggestion.ValueOf(s)))
		if key := suggestion.KeyOf(s); key != suggestion.ValueOf(s) {
			line += " " + subtleStyle.Render("("+key+")")
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Source: ") + subtleStyle.Render(data.Source) +
		keyStyle.Render("  Took: ") + subtleStyle.Render(timing.Summary(data.Elapsed, data.Timings)))
	return b.String()
}

// RenderApply renders the result of a splice
func RenderApply(data *ApplyData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("✂️  Apply:") + "\n")
	b.WriteString("   " + keyStyle.Render("Before: ") + valueStyle.Render(data.Before) + "\n")
	b.WriteString("   " + keyStyle.Render("Range: ") + valueStyle.Render(fmt.Sprintf("[%d, %d)", data.Range.Start, data.Range.End)) + "\n")
	b.WriteString("   " + keyStyle.Render("Replacement: ") + valueStyle.Render(fmt.Sprintf("%q", data.Replacement)) + "\n")
	b.WriteString("   " + keyStyle.Render("After: ") + successStyle.Render(WithCaret(data.After, data.Caret)) + "\n")
	b.WriteString("   " + keyStyle.Render("Caret: ") + valueStyle.Render(fmt.Sprintf("%d", data.Caret)))
	return b.String()
}

// WithCaret inserts CaretMarker into text at a rune offset, clamped to the text
func WithCaret(text string, caret int) string {
	runes := []rune(text)
	caret = min(max(caret, 0), len(runes))
	return string(runes[:caret]) + CaretMarker + string(runes[caret:])
}

// FormatTriggers lists triggers as "@ : #…", marking multi-word ones with an ellipsis
func FormatTriggers(triggers []trigger.Trigger) string {
	if len(triggers) == 0 {
		return "none"
	}
	parts := make([]string, len(triggers))
	for i, t := range triggers {
		parts[i] = t.String()
		if t.MultiWord {
			parts[i] += "…"
		}
	}
	return strings.Join(parts, " ")
}

func formatCoordinates(top, left int) string {
	return fmt.Sprintf("top %d, left %d", top, left)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
