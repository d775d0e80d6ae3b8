// Package rules implements the condition predicates that gate location
// interactions, item use variants, and event handlers.
package rules

import (
	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// EvalCondition evaluates a single condition against the current state.
// Unknown condition types evaluate to false.
func EvalCondition(c types.Condition, s *types.State) bool {
	switch c.Type {
	case "has_item":
		item, _ := c.Params["item"].(string)
		return state.HasItem(s, item)

	case "flag_set":
		flag, _ := c.Params["flag"].(string)
		return state.GetFlag(s, flag)

	case "flag_not":
		flag, _ := c.Params["flag"].(string)
		return !state.GetFlag(s, flag)

	case "in_location":
		loc, _ := c.Params["location"].(string)
		return s.Player.Location == loc

	case "counter_gte":
		counter, _ := c.Params["counter"].(string)
		value := toInt(c.Params["value"])
		return state.GetCounter(s, counter) >= value

	case "enemy_alive":
		enemy, _ := c.Params["enemy"].(string)
		return state.EnemyAlive(s, enemy)

	case "health_depleted":
		return s.Player.Health.Current == 0

	default:
		return false
	}
}

// EvalAllConditions returns true if all conditions pass (AND logic).
// An empty condition list is vacuously true.
func EvalAllConditions(conditions []types.Condition, s *types.State) bool {
	for _, c := range conditions {
		if !EvalCondition(c, s) {
			return false
		}
	}
	return true
}

// toInt converts an any value to int, handling float64 from JSON.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case int64:
		return int(n)
	default:
		return 0
	}
}
