package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/photocopy/internal/config"
)

// Catppuccin Mocha palette. Mutable so config can override.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorTeal   = lipgloss.Color("#94e2d5")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorDim    = lipgloss.Color("#3a4055")
	ColorBright = lipgloss.Color("#cdd6f4")
)

// Pre-built styles, rebuilt by rebuildStyles() after color changes.
var (
	styleHeader         lipgloss.Style
	styleHeaderLabel    lipgloss.Style
	styleDivider        lipgloss.Style
	styleCopied         lipgloss.Style
	styleExisted        lipgloss.Style
	styleFailed         lipgloss.Style
	styleFileDir        lipgloss.Style
	styleInFlight       lipgloss.Style
	styleKeybindKey     lipgloss.Style
	styleKeybindLabel   lipgloss.Style
	styleTabActive      lipgloss.Style
	styleTabInactive    lipgloss.Style
	styleCounter        lipgloss.Style
	styleSparkline      lipgloss.Style
	styleRate           lipgloss.Style
	styleProgressFilled lipgloss.Style
	styleProgressEmpty  lipgloss.Style
	styleStatus         lipgloss.Style
	styleSavePrompt     lipgloss.Style
	styleSaveInput      lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles reconstructs all lipgloss styles from the current color vars.
func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleHeaderLabel = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	styleDivider = lipgloss.NewStyle().Foreground(ColorDim)
	styleCopied = lipgloss.NewStyle().Foreground(ColorGreen)
	styleExisted = lipgloss.NewStyle().Foreground(ColorBlue)
	styleFailed = lipgloss.NewStyle().Foreground(ColorRed)
	styleFileDir = lipgloss.NewStyle().Foreground(ColorMuted)
	styleInFlight = lipgloss.NewStyle().Foreground(ColorTeal)
	styleKeybindKey = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true)
	styleKeybindLabel = lipgloss.NewStyle().Foreground(ColorMuted)
	styleTabActive = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorBright)
	styleTabInactive = lipgloss.NewStyle().Foreground(ColorMuted)
	styleCounter = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleSparkline = lipgloss.NewStyle().Foreground(ColorBlue)
	styleRate = lipgloss.NewStyle().Foreground(ColorTeal)
	styleProgressFilled = lipgloss.NewStyle().Foreground(ColorGreen)
	styleProgressEmpty = lipgloss.NewStyle().Foreground(ColorDim)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
	styleSavePrompt = lipgloss.NewStyle().Foreground(ColorMuted)
	styleSaveInput = lipgloss.NewStyle().Foreground(ColorBright)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	set := func(dst *lipgloss.Color, v *string) {
		if v != nil {
			*dst = lipgloss.Color(*v)
		}
	}
	set(&ColorGreen, tc.Green)
	set(&ColorBlue, tc.Blue)
	set(&ColorYellow, tc.Yellow)
	set(&ColorRed, tc.Red)
	set(&ColorTeal, tc.Teal)
	set(&ColorMauve, tc.Mauve)
	set(&ColorMuted, tc.Muted)
	set(&ColorDim, tc.Dim)
	set(&ColorBright, tc.Bright)
	rebuildStyles()
}
