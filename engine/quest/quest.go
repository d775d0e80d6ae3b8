// Package quest implements threshold-objective quest tracking.
package quest

import (
	"fmt"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// UpdateObjective sets one objective's current value and recomputes
// completion for the objective and its quest. An objective completes when
// current >= target; the quest completes when every objective has.
//
// With monotone set, updates that would lower an objective's current value
// are ignored, so a completed objective can never uncomplete. Without it
// the value is applied as given and progress can regress.
//
// Out-of-range quest IDs or indices are a no-op. Returns true if the quest
// transitioned to completed on this call.
func UpdateObjective(s *types.State, defs *state.Defs, questID string, index, value int, monotone bool) bool {
	def, ok := defs.Quests[questID]
	if !ok {
		return false
	}
	qs, ok := s.Quests[questID]
	if !ok || index < 0 || index >= len(qs.Objectives) {
		return false
	}

	obj := &qs.Objectives[index]
	if monotone && value < obj.Current {
		return false
	}
	obj.Current = value
	obj.Completed = obj.Current >= def.Objectives[index].Target

	wasCompleted := qs.Completed
	qs.Completed = true
	for _, o := range qs.Objectives {
		if !o.Completed {
			qs.Completed = false
			break
		}
	}
	s.Quests[questID] = qs

	return qs.Completed && !wasCompleted
}

// IsCompleted reports whether a quest has all objectives met.
func IsCompleted(s *types.State, questID string) bool {
	return s.Quests[questID].Completed
}

// Describe renders a quest's progress for the status screen.
func Describe(s *types.State, defs *state.Defs, questID string) []string {
	def, ok := defs.Quests[questID]
	if !ok {
		return nil
	}
	qs := s.Quests[questID]

	status := "in progress"
	if qs.Completed {
		status = "completed"
	}
	lines := []string{fmt.Sprintf("%s (%s)", def.Name, status), def.Description}

	for i, objDef := range def.Objectives {
		mark := "[ ]"
		current := 0
		if i < len(qs.Objectives) {
			current = qs.Objectives[i].Current
			if qs.Objectives[i].Completed {
				mark = "[x]"
			}
		}
		lines = append(lines, fmt.Sprintf("  %s %s (%d/%d)", mark, objDef.Description, current, objDef.Target))
	}
	return lines
}
