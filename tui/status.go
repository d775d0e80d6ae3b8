package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
)

// renderStatusBar produces a full-width inverted status line showing the
// current location, health and experience, and the turn count. During
// combat the enemy and round replace the location.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	var left string
	if state.InCombat(s) {
		enemy := m.defs.Enemies[s.Combat.EnemyID]
		left = fmt.Sprintf(" COMBAT: %s | Round %d", enemy.Name, s.Combat.Round+1)
	} else {
		name := s.Player.Location
		if loc, ok := m.defs.Locations[name]; ok {
			name = loc.Name
		}
		left = " " + name
	}

	hp := s.Player.Health
	right := fmt.Sprintf("HP: %d/%d | XP: %d | T:%d ",
		hp.Current, hp.Maximum, s.Player.Experience, s.TurnCount)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
