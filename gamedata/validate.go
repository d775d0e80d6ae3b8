package gamedata

import (
	"fmt"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// Validate checks the assembled definitions for dangling references and
// nonsensical values. Content errors are caught here, at startup, rather
// than surfacing mid-game.
func Validate(defs *state.Defs) error {
	if defs.Game.Title == "" {
		return fmt.Errorf("game: title is required")
	}
	if _, ok := defs.Locations[defs.Game.Start]; !ok {
		return fmt.Errorf("game: start location %q is not defined", defs.Game.Start)
	}

	for id, loc := range defs.Locations {
		for _, itemID := range loc.Items {
			if _, ok := defs.Items[itemID]; !ok {
				return fmt.Errorf("location %q: unknown item %q", id, itemID)
			}
		}
		for _, interaction := range loc.Interactions {
			if interaction.Key == "" {
				return fmt.Errorf("location %q: interaction with empty key", id)
			}
			where := fmt.Sprintf("location %q interaction %q", id, interaction.Key)
			if err := validateConditions(defs, where, interaction.Conditions); err != nil {
				return err
			}
			if err := validateEffects(defs, where, interaction.Effects); err != nil {
				return err
			}
		}
	}

	for id, item := range defs.Items {
		if item.Name == "" {
			return fmt.Errorf("item %q: name is required", id)
		}
		if item.Usable && len(item.Use) == 0 {
			return fmt.Errorf("item %q: usable but has no use variants", id)
		}
		for i, variant := range item.Use {
			where := fmt.Sprintf("item %q use variant %d", id, i)
			if err := validateConditions(defs, where, variant.Conditions); err != nil {
				return err
			}
			if err := validateEffects(defs, where, variant.Effects); err != nil {
				return err
			}
		}
	}

	for id, enemy := range defs.Enemies {
		if enemy.Health <= 0 || enemy.Attack <= 0 {
			return fmt.Errorf("enemy %q: health and attack must be positive", id)
		}
		if enemy.Defense < 0 || enemy.VictoryXP < 0 {
			return fmt.Errorf("enemy %q: defense and victory_xp must be non-negative", id)
		}
		if enemy.DefeatFlag == "" {
			return fmt.Errorf("enemy %q: defeat_flag is required", id)
		}
	}

	for id, q := range defs.Quests {
		if len(q.Objectives) == 0 {
			return fmt.Errorf("quest %q: at least one objective is required", id)
		}
		for i, obj := range q.Objectives {
			if obj.Target <= 0 {
				return fmt.Errorf("quest %q objective %d: target must be positive", id, i)
			}
		}
	}

	for i, handler := range defs.Handlers {
		if handler.EventType == "" {
			return fmt.Errorf("handler %d: event is required", i)
		}
		where := fmt.Sprintf("handler %d (%s)", i, handler.EventType)
		if err := validateConditions(defs, where, handler.Conditions); err != nil {
			return err
		}
		if err := validateEffects(defs, where, handler.Effects); err != nil {
			return err
		}
	}

	return nil
}

// validateEffects cross-checks effect references against the definitions.
func validateEffects(defs *state.Defs, where string, effs []types.Effect) error {
	for _, eff := range effs {
		switch eff.Type {
		case "give_item", "remove_item":
			item, _ := eff.Params["item"].(string)
			if _, ok := defs.Items[item]; !ok {
				return fmt.Errorf("%s: %s references unknown item %q", where, eff.Type, item)
			}
		case "start_combat":
			enemy, _ := eff.Params["enemy"].(string)
			if _, ok := defs.Enemies[enemy]; !ok {
				return fmt.Errorf("%s: start_combat references unknown enemy %q", where, enemy)
			}
		case "move_player":
			loc, _ := eff.Params["location"].(string)
			if _, ok := defs.Locations[loc]; !ok {
				return fmt.Errorf("%s: move_player references unknown location %q", where, loc)
			}
		case "update_objective":
			questID, _ := eff.Params["quest"].(string)
			q, ok := defs.Quests[questID]
			if !ok {
				return fmt.Errorf("%s: update_objective references unknown quest %q", where, questID)
			}
			index := toInt(eff.Params["index"])
			if index < 0 || index >= len(q.Objectives) {
				return fmt.Errorf("%s: update_objective index %d out of range for quest %q", where, index, questID)
			}
		}
	}
	return nil
}

// validateConditions cross-checks condition references.
func validateConditions(defs *state.Defs, where string, conds []types.Condition) error {
	for _, c := range conds {
		switch c.Type {
		case "has_item":
			item, _ := c.Params["item"].(string)
			if _, ok := defs.Items[item]; !ok {
				return fmt.Errorf("%s: has_item references unknown item %q", where, item)
			}
		case "in_location":
			loc, _ := c.Params["location"].(string)
			if _, ok := defs.Locations[loc]; !ok {
				return fmt.Errorf("%s: in_location references unknown location %q", where, loc)
			}
		case "enemy_alive":
			enemy, _ := c.Params["enemy"].(string)
			if _, ok := defs.Enemies[enemy]; !ok {
				return fmt.Errorf("%s: enemy_alive references unknown enemy %q", where, enemy)
			}
		}
	}
	return nil
}

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
