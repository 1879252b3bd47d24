package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-neural/internal/registry"
)

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuItemStyle   = lipgloss.NewStyle()
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	menuDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the mode picker.
type MenuModel struct {
	modes  []registry.Info
	cursor int
	width  int
	height int
}

// NewMenuModel lists every registered mode.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		modes:  registry.List(),
		width:  width,
		height: height,
	}
}

// Resize updates the menu dimensions.
func (m *MenuModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Up moves the cursor up.
func (m *MenuModel) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the cursor down.
func (m *MenuModel) Down() {
	if m.cursor < len(m.modes)-1 {
		m.cursor++
	}
}

// Current returns the mode under the cursor.
func (m MenuModel) Current() (registry.Mode, bool) {
	if len(m.modes) == 0 {
		return 0, false
	}
	return m.modes[m.cursor].Mode, true
}

// View renders the menu with a best-score column and the help footer.
func (m MenuModel) View(best func(id string) int, footer string) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("F L A P P Y   N E U R A L"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, info := range m.modes {
		line := fmt.Sprintf(" %d  %-20s", int(info.Mode), info.Title)
		if best != nil {
			line += fmt.Sprintf(" best %3d ", best(info.ID))
		}

		style := menuItemStyle
		if i == m.cursor {
			style = menuActiveStyle
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
		b.WriteString(centerText(menuDescStyle.Render(info.Description), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(footer, m.width))
	b.WriteString("\n")

	return b.String()
}

// centerText centers text within given width. ANSI styling is ignored
// when measuring.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
