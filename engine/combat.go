package engine

import (
	"fmt"

	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// CombatAction is a player choice within an encounter round.
type CombatAction int

const (
	ActionAttack CombatAction = iota
	ActionEMP
)

// Combatant is the capability set shared by both sides of an encounter:
// a name, a health reading, liveness, and a damage roll. Damage application
// goes through the effects dispatcher, not through the combatant itself.
type Combatant interface {
	Name() string
	Health() int
	Alive() bool
	DamageRoll(rng *RNG) int
}

// proxyCombatant is the player's side of an encounter, backed by the
// transient combat proxy in state. Its roll spreads attack by ±2.
type proxyCombatant struct {
	s *types.State
}

func (p proxyCombatant) Name() string   { return p.s.Combat.Proxy.Name }
func (p proxyCombatant) Health() int    { return p.s.Combat.Proxy.Health }
func (p proxyCombatant) Alive() bool    { return p.s.Combat.Proxy.Health > 0 }
func (p proxyCombatant) DamageRoll(rng *RNG) int {
	return p.s.Combat.Proxy.Attack + rng.Offset(2)
}

// enemyCombatant is the enemy's side, a view over its definition and
// runtime health. Its roll spreads attack by ±1.
type enemyCombatant struct {
	s   *types.State
	def types.EnemyDef
}

func (e enemyCombatant) Name() string { return e.def.Name }
func (e enemyCombatant) Health() int  { return e.s.Enemies[e.def.ID].Health }
func (e enemyCombatant) Alive() bool  { return e.s.Enemies[e.def.ID].Health > 0 }
func (e enemyCombatant) DamageRoll(rng *RNG) int {
	return e.def.Attack + rng.Offset(1)
}

// GainProxyExperience accrues experience on a combat proxy, applying one
// level-up when experience reaches level×100: level +1, +10 health,
// +5 attack, +3 defense, experience reset to 0 (excess is discarded).
// Returns report lines when a level-up happened.
func GainProxyExperience(p *types.CombatProxy, xp int) []string {
	if xp <= 0 {
		return nil
	}
	p.Experience += xp
	if p.Experience < p.Level*100 {
		return nil
	}
	p.Level++
	p.Health += 10
	p.Attack += 5
	p.Defense += 3
	p.Experience = 0
	return []string{
		fmt.Sprintf("Level Up! Now level %d", p.Level),
		"Health +10",
		"Attack +5",
		"Defense +3",
	}
}

// combatOptions are the choices offered each encounter round.
func (e *Engine) combatOptions() []string {
	enemy := e.Defs.Enemies[e.State.Combat.EnemyID]
	return []string{
		fmt.Sprintf("-- Combat: %s --", enemy.Name),
		"1. Attack",
		"2. Use EMP (if available)",
	}
}

// empAvailable reports whether the EMP option applies: the player carries
// an EMP-class item and the enemy is robotic.
func (e *Engine) empAvailable(enemy types.EnemyDef) bool {
	if enemy.Type != "Robot" {
		return false
	}
	for _, id := range e.State.Player.Inventory {
		if item, ok := e.Defs.Items[id]; ok && item.CombatUse == "emp" {
			return true
		}
	}
	return false
}

// combatRound advances an active encounter by one full round: the player's
// action, then the enemy's retaliation unless a terminal transition fired
// first.
func (e *Engine) combatRound(action CombatAction) types.Result {
	var result types.Result
	s := e.State

	enemyDef := e.Defs.Enemies[s.Combat.EnemyID]
	player := proxyCombatant{s}
	enemy := enemyCombatant{s, enemyDef}

	// Player turn.
	roll := player.DamageRoll(e.RNG)
	if action == ActionEMP {
		if e.empAvailable(enemyDef) {
			roll *= e.Config.EMPMultiplier
			result.Output = append(result.Output, "EMP deployed successfully!")
		} else {
			result.Output = append(result.Output, "The EMP device is no use here.")
		}
	}
	result.Output = append(result.Output, fmt.Sprintf("You deal %d damage!", roll))

	hit := e.apply([]types.Effect{
		{Type: "damage", Params: map[string]any{"target": enemyDef.ID, "amount": roll}},
	}, &result)

	if hasEvent(hit, "enemy_defeated") {
		result.Output = append(result.Output, fmt.Sprintf("You defeated %s!", enemy.Name()))
		result.Output = append(result.Output, GainProxyExperience(&s.Combat.Proxy, enemyDef.VictoryXP)...)
		e.recordCombatOutcome("player_won")
		victory := []types.Effect{
			{Type: "set_flag", Params: map[string]any{"flag": enemyDef.DefeatFlag}},
			{Type: "gain_xp", Params: map[string]any{"amount": enemyDef.VictoryXP}},
			{Type: "end_combat"},
		}
		e.apply(victory, &result)
		return result
	}

	// Enemy turn.
	retaliation := enemy.DamageRoll(e.RNG)
	result.Output = append(result.Output, fmt.Sprintf("%s deals %d damage!", enemy.Name(), retaliation))

	counter := e.apply([]types.Effect{
		{Type: "damage", Params: map[string]any{"target": "proxy", "amount": retaliation}},
	}, &result)

	if hasEvent(counter, "proxy_defeated") && e.Config.ExitOnPlayerDeath {
		result.Output = append(result.Output, "You were defeated! But you manage to escape...")
		e.recordCombatOutcome("player_lost")
		loss := []types.Effect{
			{Type: "damage", Params: map[string]any{"target": "player", "amount": e.Config.LossPenalty}},
			{Type: "end_combat"},
		}
		e.apply(loss, &result)
		return result
	}

	s.Combat.Round++
	result.Output = append(result.Output,
		fmt.Sprintf("Your Health: %d", player.Health()),
		fmt.Sprintf("%s's Health: %d", enemy.Name(), enemy.Health()))

	return result
}

// hasEvent reports whether an event of the given type was emitted.
func hasEvent(events []types.Event, eventType string) bool {
	for _, evt := range events {
		if evt.Type == eventType {
			return true
		}
	}
	return false
}

// parseCombatChoice maps numeric combat input to an action.
func parseCombatChoice(input string) (CombatAction, bool) {
	switch input {
	case "1":
		return ActionAttack, true
	case "2":
		return ActionEMP, true
	default:
		return 0, false
	}
}

// stepCombat handles one Step while an encounter is active. Only combat
// choices are accepted; everything else re-prompts, so a driver loop runs
// the encounter to a terminal state before any other command can execute.
func (e *Engine) stepCombat(input string) types.Result {
	action, ok := parseCombatChoice(input)
	if !ok {
		return types.Result{Output: append(
			[]string{"Invalid choice. You're in the middle of a fight!"},
			e.combatOptions()...)}
	}
	return e.combatRound(action)
}
