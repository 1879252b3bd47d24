package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-neural/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Blank cells carry no style, so a run of them costs no escape codes, and
// trailing blanks on a row are not sent at all. Most of the playfield is sky,
// which keeps frames small over SSH.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		end := rowEnd(s, y)
		for x := 0; x < end; {
			color := cellColor(s.GetCell(x, y))

			var run strings.Builder
			for x < end {
				cell := s.GetCell(x, y)
				if cellColor(cell) != color {
					break
				}
				run.WriteRune(cellRune(cell))
				x++
			}

			if color == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			style, ok := colorStyles[color]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// rowEnd returns the column after the last non-blank cell of row y.
func rowEnd(s *core.Screen, y int) int {
	end := s.Width()
	for end > 0 && blank(s.GetCell(end-1, y)) {
		end--
	}
	return end
}

func blank(c core.Cell) bool {
	return c.Rune == ' ' || c.Rune == 0
}

// cellColor folds every blank cell into the default color.
func cellColor(c core.Cell) core.Color {
	if blank(c) {
		return core.ColorDefault
	}
	return c.Color
}

func cellRune(c core.Cell) rune {
	if c.Rune == 0 {
		return ' '
	}
	return c.Rune
}
