package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (soft purple #A78BFA): Highlights, model ids, interactive elements
// - Muted (gray): Secondary info, counts, hints
// - No colored success/error/warning - use unicode symbols only

const defaultAccentColor = "#A78BFA"

var (
	// Accent style for model ids, URLs, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info, hints, counts
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)
)

// accentColor holds the configured accent color, if any.
var accentColor = defaultAccentColor

// ConfigureTheme applies the configured accent color to the shared styles.
// "none", "off", or "default" disable the accent entirely.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		if isAccentDisabled(accent) {
			accentColor = ""
			Accent = lipgloss.NewStyle()
			AccentBold = lipgloss.NewStyle().Bold(true)
		}
		return
	}

	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// AccentColor returns the active accent color and whether one is set.
func AccentColor() (string, bool) {
	if accentColor == "" {
		return "", false
	}
	return accentColor, true
}

func isAccentDisabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none", "off", "default":
		return true
	}
	return false
}

// normalizeAccentColor validates an accent color value.
// Accepts ANSI color codes ("0" to "255") and hex colors ("#RGB" or "#RRGGBB").
func normalizeAccentColor(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || isAccentDisabled(value) {
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3:
			if !isHex(hex) {
				return "", false
			}
			// Expand #abc to #aabbcc
			var sb strings.Builder
			sb.WriteByte('#')
			for i := 0; i < 3; i++ {
				sb.WriteByte(hex[i])
				sb.WriteByte(hex[i])
			}
			return strings.ToLower(sb.String()), true
		case 6:
			if !isHex(hex) {
				return "", false
			}
			return strings.ToLower(value), true
		default:
			return "", false
		}
	}

	if code, err := strconv.Atoi(value); err == nil && code >= 0 && code <= 255 {
		return strconv.Itoa(code), true
	}

	return "", false
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
