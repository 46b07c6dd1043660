package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape codes used by plain fmt output.
type Theme struct {
	Name string
	// Accent highlights paths and environment details.
	Accent string
	// Success marks written artifacts.
	Success string
	// Warning highlights configuration values.
	Warning string
	Reset   string
}

var (
	// DarkTheme is the default 256-color theme.
	DarkTheme = Theme{
		Name:    "dark",
		Accent:  "\033[38;5;39m",  // Bright blue
		Success: "\033[38;5;82m",  // Bright green
		Warning: "\033[38;5;220m", // Yellow
		Reset:   "\033[0m",
	}

	// NoColorTheme disables all color output.
	NoColorTheme = Theme{Name: "none"}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Palette holds lipgloss colors for styled report output. The wide and narrow
// entries match the plot series colors.
type Palette struct {
	Title  lipgloss.TerminalColor
	Label  lipgloss.TerminalColor
	Value  lipgloss.TerminalColor
	Wide   lipgloss.TerminalColor
	Narrow lipgloss.TerminalColor
	Exact  lipgloss.TerminalColor
	Dim    lipgloss.TerminalColor
}

var (
	// DarkPalette is the default report palette.
	DarkPalette = Palette{
		Title:  lipgloss.Color("#FF8C00"),
		Label:  lipgloss.Color("#E0E0E0"),
		Value:  lipgloss.Color("#FFB347"),
		Wide:   lipgloss.Color("#4488FF"),
		Narrow: lipgloss.Color("#9ece6a"),
		Exact:  lipgloss.Color("#FF4444"),
		Dim:    lipgloss.Color("#666666"),
	}

	// NoColorPalette renders with the terminal's default colors.
	NoColorPalette = Palette{
		Title:  lipgloss.NoColor{},
		Label:  lipgloss.NoColor{},
		Value:  lipgloss.NoColor{},
		Wide:   lipgloss.NoColor{},
		Narrow: lipgloss.NoColor{},
		Exact:  lipgloss.NoColor{},
		Dim:    lipgloss.NoColor{},
	}
)

// GetCurrentPalette returns the palette matching the active theme.
func GetCurrentPalette() Palette {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorPalette
	}
	return DarkPalette
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// InitTheme selects the theme from the --no-color flag and the NO_COLOR
// environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set || noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}

// ColorGreen returns the success color code.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color code.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorCyan returns the accent color code.
func ColorCyan() string { return GetCurrentTheme().Accent }

// ColorReset returns the reset code.
func ColorReset() string { return GetCurrentTheme().Reset }
