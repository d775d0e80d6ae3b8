// Package effects implements centralized state mutation via the Apply
// function. Every effect type is one atomic operation. No logic in effects.
package effects

import (
	"strings"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/quest"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// Context carries engine policy the dispatcher needs but the state does not
// hold, plus values for template interpolation.
type Context struct {
	MonotoneObjectives bool
}

// Apply applies a list of effects to the game state, mutating it.
// Returns events emitted and output text collected.
func Apply(s *types.State, defs *state.Defs, effects []types.Effect, ctx Context) ([]types.Event, []string) {
	var events []types.Event
	var output []string

	for _, eff := range effects {
		switch eff.Type {
		case "say":
			text, _ := eff.Params["text"].(string)
			output = append(output, interpolate(text, s))

		case "give_item":
			item, _ := eff.Params["item"].(string)
			// Transfer from the current location when the item is there;
			// otherwise the item is granted directly (handler rewards).
			if !state.TakeItem(s, s.Player.Location, item) {
				s.Player.Inventory = append(s.Player.Inventory, item)
			}
			events = append(events, types.Event{
				Type: "item_taken",
				Data: map[string]any{"item": item},
			})

		case "remove_item":
			item, _ := eff.Params["item"].(string)
			state.DropItem(s, s.Player.Location, item)
			events = append(events, types.Event{
				Type: "item_dropped",
				Data: map[string]any{"item": item},
			})

		case "set_flag":
			flag, _ := eff.Params["flag"].(string)
			if state.SetFlag(s, flag) {
				events = append(events, types.Event{
					Type: "flag_changed",
					Data: map[string]any{"flag": flag},
				})
			}

		case "inc_counter":
			counter, _ := eff.Params["counter"].(string)
			s.Counters[counter] += toInt(eff.Params["amount"])

		case "set_counter":
			counter, _ := eff.Params["counter"].(string)
			s.Counters[counter] = toInt(eff.Params["value"])

		case "gain_xp":
			amount := toInt(eff.Params["amount"])
			if amount > 0 {
				state.GainExperience(s, amount)
				events = append(events, types.Event{
					Type: "experience_gained",
					Data: map[string]any{"amount": amount},
				})
			}

		case "move_player":
			location, _ := eff.Params["location"].(string)
			s.Player.Location = location
			events = append(events, types.Event{
				Type: "location_entered",
				Data: map[string]any{"location": location},
			})

		case "damage":
			target, _ := eff.Params["target"].(string)
			amount := toInt(eff.Params["amount"])
			evts, out := applyDamage(s, defs, target, amount)
			events = append(events, evts...)
			output = append(output, out...)

		case "heal":
			target, _ := eff.Params["target"].(string)
			amount := toInt(eff.Params["amount"])
			events = append(events, applyHeal(s, defs, target, amount)...)

		case "start_combat":
			enemyID, _ := eff.Params["enemy"].(string)
			s.Combat = types.CombatState{
				Active:  true,
				EnemyID: enemyID,
				Proxy:   newCombatProxy(s.Player.Name),
			}
			s.Mode = types.ModeCombat
			events = append(events, types.Event{
				Type: "combat_started",
				Data: map[string]any{"enemy": enemyID},
			})

		case "end_combat":
			s.Combat = types.CombatState{}
			s.Mode = types.ModeMain
			events = append(events, types.Event{Type: "combat_ended", Data: map[string]any{}})

		case "update_objective":
			questID, _ := eff.Params["quest"].(string)
			index := toInt(eff.Params["index"])
			value := toInt(eff.Params["value"])
			if quest.UpdateObjective(s, defs, questID, index, value, ctx.MonotoneObjectives) {
				events = append(events, types.Event{
					Type: "quest_completed",
					Data: map[string]any{"quest": questID},
				})
			}

		case "stop":
			return events, output

		default:
			// Unknown effect type — ignore silently.
		}
	}

	return events, output
}

// newCombatProxy builds the transient combat stand-in for the player.
// Stats reset each encounter; only the name carries over.
func newCombatProxy(name string) types.CombatProxy {
	return types.CombatProxy{
		Name:      name,
		Health:    100,
		Attack:    15,
		Defense:   5,
		Level:     1,
		Abilities: []string{"Quick Attack", "Defensive Stance"},
	}
}

// applyDamage routes a damage effect to its target: the overworld player,
// the combat proxy, or an enemy. Combatants mitigate with defense and floor
// at zero; a negative amount is a no-op on combatants and a reported
// validation error on the overworld player.
func applyDamage(s *types.State, defs *state.Defs, target string, amount int) ([]types.Event, []string) {
	switch target {
	case "player":
		if err := state.DamagePlayer(s, amount); err != nil {
			return nil, []string{"Error: " + err.Error()}
		}
		return []types.Event{{
			Type: "entity_damaged",
			Data: map[string]any{"target": target, "amount": amount, "remaining": s.Player.Health.Current},
		}}, nil

	case "proxy":
		s.Combat.Proxy.Health = mitigated(s.Combat.Proxy.Health, amount, s.Combat.Proxy.Defense)
		events := []types.Event{{
			Type: "entity_damaged",
			Data: map[string]any{"target": target, "amount": amount, "remaining": s.Combat.Proxy.Health},
		}}
		if s.Combat.Proxy.Health == 0 {
			events = append(events, types.Event{Type: "proxy_defeated", Data: map[string]any{}})
		}
		return events, nil

	default:
		def, ok := defs.Enemies[target]
		if !ok {
			return nil, nil
		}
		es := s.Enemies[target]
		es.Health = mitigated(es.Health, amount, def.Defense)
		if es.Health == 0 {
			es.Alive = false
		}
		s.Enemies[target] = es
		events := []types.Event{{
			Type: "entity_damaged",
			Data: map[string]any{"target": target, "amount": amount, "remaining": es.Health},
		}}
		if es.Health == 0 {
			events = append(events, types.Event{
				Type: "enemy_defeated",
				Data: map[string]any{"enemy": target},
			})
		}
		return events, nil
	}
}

// mitigated reduces health by max(0, amount - defense), floored at zero.
// Defense can fully absorb small hits but never overheals.
func mitigated(health, amount, defense int) int {
	if amount < 0 {
		amount = 0
	}
	dealt := amount - defense
	if dealt < 0 {
		dealt = 0
	}
	health -= dealt
	if health < 0 {
		health = 0
	}
	return health
}

// applyHeal restores health on the target, clamped to its maximum.
func applyHeal(s *types.State, defs *state.Defs, target string, amount int) []types.Event {
	if amount < 0 {
		amount = 0
	}
	var remaining int
	switch target {
	case "player":
		state.ModifyStat(&s.Player.Health, amount)
		remaining = s.Player.Health.Current
	case "proxy":
		s.Combat.Proxy.Health += amount
		remaining = s.Combat.Proxy.Health
	default:
		def, ok := defs.Enemies[target]
		if !ok {
			return nil
		}
		es := s.Enemies[target]
		es.Health += amount
		if es.Health > def.Health {
			es.Health = def.Health
		}
		s.Enemies[target] = es
		remaining = es.Health
	}
	return []types.Event{{
		Type: "entity_healed",
		Data: map[string]any{"target": target, "amount": amount, "current": remaining},
	}}
}

// interpolate replaces template variables in narrative text.
func interpolate(text string, s *types.State) string {
	r := strings.NewReplacer(
		"{player.name}", s.Player.Name,
		"{player.location}", s.Player.Location,
	)
	return r.Replace(text)
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
