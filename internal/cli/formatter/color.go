package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/orgchart/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorBgDark = lipgloss.Color("#3c3836")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Board highlight styles.
var (
	// StyleValid marks a container the current drag may drop into.
	StyleValid = lipgloss.NewStyle().Foreground(ColorGreen).Background(ColorBgDark).Bold(true)
	// StyleSortTarget marks the sibling a ministry will be inserted before.
	StyleSortTarget = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	// StyleDragging marks the node being dragged.
	StyleDragging = lipgloss.NewStyle().Foreground(ColorPurple).Italic(true)
	StyleTag      = lipgloss.NewStyle().Foreground(ColorBlue)
)

// KindStyle returns the style used for a node's label.
func KindStyle(kind domain.Kind) lipgloss.Style {
	switch kind {
	case domain.KindGroup:
		return StyleBold
	case domain.KindMinistry:
		return StyleFg
	case domain.KindTag:
		return StyleTag
	case domain.KindSink, domain.KindDeletionRecord:
		return StyleRed
	default:
		return StyleDim
	}
}

// KindGlyph returns the single-cell glyph drawn before a node's label.
func KindGlyph(kind domain.Kind) string {
	switch kind {
	case domain.KindGroup:
		return "▾"
	case domain.KindMinistry:
		return "•"
	case domain.KindSink:
		return "✖"
	default:
		return " "
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
