package engine

import (
	"fmt"
	"testing"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

func combatDefs() *state.Defs {
	return &state.Defs{
		Game: types.GameDef{
			Title: "Test Station", Version: "0.0.0", Author: "test",
			Start: "bay",
		},
		Locations: map[string]types.LocationDef{
			"bay": {ID: "bay", Name: "Bay", Description: "A test bay."},
		},
		Order: []string{"bay"},
		Items: map[string]types.ItemDef{
			"emp_charge": {
				ID: "emp_charge", Name: "EMP Charge",
				Description: "A single-use electromagnetic pulse charge.",
				Pickable:    true, CombatUse: "emp",
			},
		},
		Enemies: map[string]types.EnemyDef{
			"drone": {
				ID: "drone", Name: "Patrol Drone", Type: "Robot",
				Health: 50, Attack: 10, Defense: 3,
				VictoryXP: 50, DefeatFlag: "drone_defeated",
			},
			"brute": {
				ID: "brute", Name: "Mutant Brute", Type: "Organic",
				Health: 60, Attack: 12, Defense: 2,
				VictoryXP: 60, DefeatFlag: "brute_defeated",
			},
		},
		Quests: map[string]types.QuestDef{},
	}
}

func combatEngine(t *testing.T, seed int64, enemyID string) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = seed
	eng, err := New(combatDefs(), "Tester", cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var result types.Result
	eng.apply([]types.Effect{
		{Type: "start_combat", Params: map[string]any{"enemy": enemyID}},
	}, &result)
	if !state.InCombat(eng.State) {
		t.Fatal("combat should be active")
	}
	return eng
}

func TestGainProxyExperience_LevelUp(t *testing.T) {
	p := types.CombatProxy{Name: "Tester", Health: 100, Attack: 15, Defense: 5, Level: 1}

	lines := GainProxyExperience(&p, 150)

	if p.Level != 2 {
		t.Errorf("expected level 2, got %d", p.Level)
	}
	if p.Health != 110 || p.Attack != 20 || p.Defense != 8 {
		t.Errorf("unexpected stats after level-up: health=%d attack=%d defense=%d",
			p.Health, p.Attack, p.Defense)
	}
	// Excess experience is discarded, not banked.
	if p.Experience != 0 {
		t.Errorf("experience should reset to 0, got %d", p.Experience)
	}
	if len(lines) == 0 || lines[0] != "Level Up! Now level 2" {
		t.Errorf("unexpected level-up output: %v", lines)
	}
}

func TestGainProxyExperience_BelowThreshold(t *testing.T) {
	p := types.CombatProxy{Name: "Tester", Health: 100, Attack: 15, Defense: 5, Level: 1}

	lines := GainProxyExperience(&p, 50)

	if p.Level != 1 || p.Experience != 50 {
		t.Errorf("expected level 1 with 50 xp, got level %d with %d xp", p.Level, p.Experience)
	}
	if lines != nil {
		t.Errorf("no output expected below the threshold, got %v", lines)
	}
}

func TestGainProxyExperience_IgnoresNonPositive(t *testing.T) {
	p := types.CombatProxy{Name: "Tester", Level: 1, Experience: 40}
	GainProxyExperience(&p, 0)
	GainProxyExperience(&p, -10)
	if p.Experience != 40 {
		t.Errorf("non-positive xp should be ignored, got %d", p.Experience)
	}
}

func TestCombat_Deterministic(t *testing.T) {
	run := func() []string {
		eng := combatEngine(t, 99, "drone")
		var output []string
		for i := 0; i < 50 && state.InCombat(eng.State); i++ {
			result := eng.Step("1")
			output = append(output, result.Output...)
		}
		return output
	}

	first := run()
	second := run()

	if len(first) != len(second) {
		t.Fatalf("output length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("line %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestCombat_PlayerAlwaysBeatsDrone(t *testing.T) {
	// Proxy 15±2 attack against defense 3 always lands; drone 10±1 against
	// defense 5 chips slowly. Any seed must end in victory.
	for seed := int64(1); seed <= 20; seed++ {
		eng := combatEngine(t, seed, "drone")
		for i := 0; i < 50 && state.InCombat(eng.State); i++ {
			eng.Step("1")
		}
		if state.InCombat(eng.State) {
			t.Fatalf("seed %d: combat did not terminate", seed)
		}
		if !state.GetFlag(eng.State, "drone_defeated") {
			t.Fatalf("seed %d: defeat flag not set", seed)
		}
	}
}

func TestCombat_VictoryRewards(t *testing.T) {
	eng := combatEngine(t, 42, "drone")

	// One hit left.
	eng.State.Enemies["drone"] = types.EnemyState{Health: 1, Alive: true}

	result := eng.Step("1")

	if state.InCombat(eng.State) {
		t.Fatal("combat should have ended")
	}
	if !state.GetFlag(eng.State, "drone_defeated") {
		t.Error("defeat flag not set")
	}
	if eng.State.Player.Experience != 50 {
		t.Errorf("expected 50 xp on the player, got %d", eng.State.Player.Experience)
	}
	if !containsLine(result.Output, "You defeated Patrol Drone!") {
		t.Errorf("missing victory line in %v", result.Output)
	}
	// Overworld health untouched by a clean win.
	if eng.State.Player.Health.Current != 100 {
		t.Errorf("overworld health should be untouched, got %d", eng.State.Player.Health.Current)
	}
}

func TestCombat_EMPDoublesRoll(t *testing.T) {
	attack := combatEngine(t, 42, "drone")
	emp := combatEngine(t, 42, "drone")
	emp.State.Player.Inventory = append(emp.State.Player.Inventory, "emp_charge")

	normal := dealtDamage(t, attack.Step("1").Output)
	boosted := dealtDamage(t, emp.Step("2").Output)

	if boosted != normal*2 {
		t.Errorf("EMP should double the roll: normal=%d boosted=%d", normal, boosted)
	}
}

func TestCombat_EMPWithoutDevice(t *testing.T) {
	eng := combatEngine(t, 42, "drone")

	result := eng.Step("2")

	if !containsLine(result.Output, "The EMP device is no use here.") {
		t.Errorf("missing fallback line in %v", result.Output)
	}
	// The round still resolves as a normal attack.
	if eng.State.Enemies["drone"].Health >= 50 {
		t.Error("attack should still have landed")
	}
}

func TestCombat_EMPUselessAgainstOrganic(t *testing.T) {
	eng := combatEngine(t, 42, "brute")
	eng.State.Player.Inventory = append(eng.State.Player.Inventory, "emp_charge")

	result := eng.Step("2")

	if !containsLine(result.Output, "The EMP device is no use here.") {
		t.Errorf("missing fallback line in %v", result.Output)
	}
}

func TestCombat_InvalidChoiceKeepsEncounter(t *testing.T) {
	eng := combatEngine(t, 42, "drone")
	before := eng.State.Enemies["drone"].Health

	result := eng.Step("5")

	if !containsLine(result.Output, "Invalid choice. You're in the middle of a fight!") {
		t.Errorf("missing re-prompt in %v", result.Output)
	}
	if !state.InCombat(eng.State) {
		t.Error("encounter should still be active")
	}
	if eng.State.Enemies["drone"].Health != before {
		t.Error("no round should have run")
	}
	if eng.State.Combat.Round != 0 {
		t.Errorf("round should not advance, got %d", eng.State.Combat.Round)
	}
}

func TestCombat_LossExit(t *testing.T) {
	eng := combatEngine(t, 42, "brute")

	// Force the loss branch: the proxy dies to the next hit and cannot
	// kill the enemy first.
	eng.State.Combat.Proxy.Health = 1
	eng.State.Combat.Proxy.Attack = 0
	eng.State.Combat.Proxy.Defense = 0

	result := eng.Step("1")

	if state.InCombat(eng.State) {
		t.Fatal("encounter should have ended on player defeat")
	}
	if !containsLine(result.Output, "You were defeated! But you manage to escape...") {
		t.Errorf("missing defeat line in %v", result.Output)
	}
	// The escape penalty lands on the overworld player.
	if got := eng.State.Player.Health.Current; got != 50 {
		t.Errorf("expected overworld health 50 after escape penalty, got %d", got)
	}
	if state.GameOver(eng.State) {
		t.Error("escaping a lost fight should not end the game")
	}
}

func TestCombat_LossExitDisabled(t *testing.T) {
	eng := combatEngine(t, 42, "brute")
	eng.Config.ExitOnPlayerDeath = false

	eng.State.Combat.Proxy.Health = 1
	eng.State.Combat.Proxy.Attack = 0
	eng.State.Combat.Proxy.Defense = 0

	result := eng.Step("1")

	if !state.InCombat(eng.State) {
		t.Fatal("encounter should continue when the loss exit is disabled")
	}
	if containsLine(result.Output, "You were defeated! But you manage to escape...") {
		t.Errorf("defeat line should not appear in %v", result.Output)
	}
	if eng.State.Combat.Proxy.Health != 0 {
		t.Errorf("proxy health should floor at 0, got %d", eng.State.Combat.Proxy.Health)
	}
}

func TestCombat_ProxyStatsResetEachEncounter(t *testing.T) {
	eng := combatEngine(t, 42, "drone")
	eng.State.Enemies["drone"] = types.EnemyState{Health: 1, Alive: true}
	eng.Step("1")
	if state.InCombat(eng.State) {
		t.Fatal("first encounter should have ended")
	}

	var result types.Result
	eng.apply([]types.Effect{
		{Type: "start_combat", Params: map[string]any{"enemy": "brute"}},
	}, &result)

	p := eng.State.Combat.Proxy
	if p.Health != 100 || p.Attack != 15 || p.Defense != 5 || p.Level != 1 || p.Experience != 0 {
		t.Errorf("proxy should reset each encounter, got %+v", p)
	}
}

func containsLine(lines []string, want string) bool {
	for _, line := range lines {
		if line == want {
			return true
		}
	}
	return false
}

// dealtDamage extracts N from the "You deal N damage!" line.
func dealtDamage(t *testing.T, lines []string) int {
	t.Helper()
	for _, line := range lines {
		var n int
		if _, err := fmt.Sscanf(line, "You deal %d damage!", &n); err == nil {
			return n
		}
	}
	t.Fatalf("no damage line in %v", lines)
	return 0
}
