package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// colorStyles maps core.Color to lipgloss styles. Tile colours are bold.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorGray:          fg("245"),
	core.ColorWhite:         fg("7").Bold(true),
	core.ColorYellow:        fg("3").Bold(true),
	core.ColorBrightYellow:  fg("11").Bold(true),
	core.ColorOrange:        fg("208").Bold(true),
	core.ColorRed:           fg("1").Bold(true),
	core.ColorBrightRed:     fg("9").Bold(true),
	core.ColorMagenta:       fg("5").Bold(true),
	core.ColorBrightMagenta: fg("13").Bold(true),
	core.ColorBlue:          fg("4").Bold(true),
	core.ColorBrightBlue:    fg("12").Bold(true),
	core.ColorCyan:          fg("6").Bold(true),
	core.ColorBrightCyan:    fg("14").Bold(true),
	core.ColorGreen:         fg("2").Bold(true),
	core.ColorBrightGreen:   fg("10").Bold(true),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same colour share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(styleFor(color).Render(run.String()))
		}
	}
	return sb.String()
}
