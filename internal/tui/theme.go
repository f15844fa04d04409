package tui

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ResolveTheme loads a theme with the following precedence:
//  1. NO_COLOR env var set → returns NoColorTheme (industry standard)
//  2. WHENQ_THEME env var → parse a custom colors.yaml file
//  3. User theme from ~/.config/whenq/theme/colors.yaml
//  4. Default whenq theme
func ResolveTheme() Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return NoColorTheme()
	}

	if path := os.Getenv("WHENQ_THEME"); path != "" {
		if theme, err := LoadThemeFromFile(path); err == nil {
			return theme
		}
		// Fall through on error
	}

	if theme, err := LoadUserTheme(); err == nil {
		return theme
	}

	return DefaultTheme()
}

// NoColorTheme returns a theme with empty colors (honors NO_COLOR standard).
// Lipgloss treats empty strings as "no color", resulting in plain text output.
func NoColorTheme() Theme {
	empty := lipgloss.AdaptiveColor{Light: "", Dark: ""}
	return Theme{
		Primary:    empty,
		Secondary:  empty,
		Success:    empty,
		Warning:    empty,
		Error:      empty,
		Muted:      empty,
		Foreground: empty,
		Border:     empty,
	}
}

// LoadUserTheme attempts to load a theme from the user's whenq config.
// The theme directory can be a symlink to another theme system.
func LoadUserTheme() (Theme, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Theme{}, err
	}
	path := filepath.Join(home, ".config", "whenq", "theme", "colors.yaml")
	return LoadThemeFromFile(path)
}

// themeFile is the on-disk YAML shape. Every key is optional; missing or
// malformed colors fall back to the default theme.
type themeFile struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
	Error     string `yaml:"error"`
	Muted     string `yaml:"muted"`
	Border    string `yaml:"border"`
}

// LoadThemeFromFile parses a colors.yaml file and returns a Theme.
func LoadThemeFromFile(path string) (Theme, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path from trusted config
	if err != nil {
		return Theme{}, err
	}

	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Theme{}, err
	}

	theme := DefaultTheme()
	apply := func(dst *lipgloss.AdaptiveColor, hex string) {
		if isValidHexColor(hex) {
			// User theme files target one palette, so both variants get it.
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
	apply(&theme.Primary, f.Primary)
	apply(&theme.Secondary, f.Secondary)
	apply(&theme.Success, f.Success)
	apply(&theme.Warning, f.Warning)
	apply(&theme.Error, f.Error)
	apply(&theme.Muted, f.Muted)
	apply(&theme.Border, f.Border)
	return theme, nil
}

// isValidHexColor checks if a string is a valid hex color (#RGB or #RRGGBB).
func isValidHexColor(s string) bool {
	if len(s) == 0 || s[0] != '#' {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	for _, c := range hex {
		isDigit := c >= '0' && c <= '9'
		isLower := c >= 'a' && c <= 'f'
		isUpper := c >= 'A' && c <= 'F'
		if !isDigit && !isLower && !isUpper {
			return false
		}
	}
	return true
}
