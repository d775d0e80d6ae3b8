package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleLocation = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true)

	styleYouSee = lipgloss.NewStyle().
			Bold(true)

	styleMenu = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindLocation
	kindYouSee
	kindMenu
	kindCombat
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Location:"):
		return kindLocation
	case strings.HasPrefix(line, "You see:"),
		strings.HasPrefix(line, "Possible interactions:"):
		return kindYouSee
	case isMenuLine(line):
		return kindMenu
	case strings.HasPrefix(line, "-- Combat"),
		strings.Contains(line, "damage!"),
		strings.HasPrefix(line, "You defeated"),
		strings.HasPrefix(line, "You were defeated"),
		strings.HasPrefix(line, "Level Up!"):
		return kindCombat
	case strings.HasPrefix(line, "Invalid choice"),
		strings.HasPrefix(line, "Error:"):
		return kindError
	default:
		return kindNarrative
	}
}

// isMenuLine reports whether a line looks like a numbered menu option,
// e.g. "1. Move" or "0. Cancel".
func isMenuLine(line string) bool {
	if len(line) < 3 {
		return false
	}
	return line[0] >= '0' && line[0] <= '9' && line[1] == '.' && line[2] == ' '
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindLocation:
		return styleLocation.Render(line)
	case kindYouSee:
		return styleYouSee.Render(line)
	case kindMenu:
		return styleMenu.Render(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
