package logging

import "github.com/charmbracelet/lipgloss"

// Basic ANSI palette, so output looks the same on 16-colour terminals.
var (
	colorBlue       = lipgloss.Color("4")
	colorBrightBlue = lipgloss.Color("12")
	colorYellow     = lipgloss.Color("3")
	colorRed        = lipgloss.Color("1")
	colorBrightRed  = lipgloss.Color("9")
	colorGutter     = lipgloss.Color("8")
)

type levelStyle struct {
	label lipgloss.Style
	msg   lipgloss.Style
}

type palette struct {
	levels [len(levelNames)]levelStyle
	gutter lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	var p palette
	p.levels[LevelInfo] = levelStyle{
		label: r.NewStyle().Bold(true).Foreground(colorBrightBlue),
		msg:   r.NewStyle().Foreground(colorBlue),
	}
	p.levels[LevelWarn] = levelStyle{
		label: r.NewStyle().Bold(true).Foreground(colorYellow),
		msg:   r.NewStyle().Foreground(colorYellow),
	}
	p.levels[LevelError] = levelStyle{
		label: r.NewStyle().Bold(true).Foreground(colorBrightRed),
		msg:   r.NewStyle().Foreground(colorRed),
	}
	p.levels[LevelFatal] = levelStyle{
		label: r.NewStyle().Bold(true).Foreground(colorBrightRed),
		msg:   r.NewStyle().Bold(true).Foreground(colorRed),
	}
	p.gutter = r.NewStyle().Foreground(colorGutter)
	return p
}
