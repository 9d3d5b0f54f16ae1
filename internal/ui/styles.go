package ui

import (
	"github.com/charmbracelet/lipgloss"

	"checkreg/checkreg/internal/config"
	"checkreg/checkreg/internal/grid"
)

func getDefaultColors() map[grid.Kind]lipgloss.Color {
	return map[grid.Kind]lipgloss.Color{
		grid.KindText: lipgloss.Color("#87CEEB"), // Sky blue for text
		grid.KindInt:  lipgloss.Color("#90EE90"), // Light green for integers
	}
}

func getDefaultDimColors() map[grid.Kind]lipgloss.Color {
	return map[grid.Kind]lipgloss.Color{
		grid.KindText: lipgloss.Color("#4682B4"), // Steel blue (dimmer)
		grid.KindInt:  lipgloss.Color("#6B8E23"), // Olive drab (dimmer)
	}
}

func applyConfigColors(cfg config.ColorConfig, defaultColors, defaultDimColors map[grid.Kind]lipgloss.Color) (map[grid.Kind]lipgloss.Color, map[grid.Kind]lipgloss.Color) {
	colors := make(map[grid.Kind]lipgloss.Color)
	dimColors := make(map[grid.Kind]lipgloss.Color)

	for k, v := range defaultColors {
		colors[k] = v
	}
	for k, v := range defaultDimColors {
		dimColors[k] = v
	}

	// A configured color is used for both row shades.
	if cfg.Text != "" {
		colors[grid.KindText] = lipgloss.Color(cfg.Text)
		dimColors[grid.KindText] = lipgloss.Color(cfg.Text)
	}
	if cfg.Int != "" {
		colors[grid.KindInt] = lipgloss.Color(cfg.Int)
		dimColors[grid.KindInt] = lipgloss.Color(cfg.Int)
	}

	return colors, dimColors
}

type styleConfig struct {
	baseStyle     lipgloss.Style
	headerStyle   lipgloss.Style
	activeHeader  lipgloss.Style
	selectedStyle lipgloss.Style
	statusRows    lipgloss.Style
	statusDetail  lipgloss.Style
	hintStyle     lipgloss.Style
	errorStyle    lipgloss.Style
	typeColors    map[grid.Kind]lipgloss.Color
	dimTypeColors map[grid.Kind]lipgloss.Color
}

func createTableStyles(renderer *lipgloss.Renderer, typeColors, dimTypeColors map[grid.Kind]lipgloss.Color) styleConfig {
	baseStyle := renderer.NewStyle().Padding(0, 1)
	headerStyle := baseStyle.Foreground(lipgloss.Color("252")).Bold(true)
	errorStyle := renderer.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF6B6B")).
		Padding(0, 1)

	return styleConfig{
		baseStyle:     baseStyle,
		headerStyle:   headerStyle,
		activeHeader:  headerStyle.Underline(true),
		selectedStyle: baseStyle.Foreground(lipgloss.Color("#01BE85")).Background(lipgloss.Color("#00432F")),
		statusRows:    renderer.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238")),
		statusDetail:  renderer.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("245")),
		hintStyle:     renderer.NewStyle().Foreground(lipgloss.Color("#FFD866")),
		errorStyle:    errorStyle,
		typeColors:    typeColors,
		dimTypeColors: dimTypeColors,
	}
}
