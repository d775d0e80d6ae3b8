package engine

import (
	"testing"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/quest"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/gamedata"
)

func gameEngine(t *testing.T, seed int64) *Engine {
	t.Helper()
	defs, err := gamedata.Load()
	if err != nil {
		t.Fatalf("load game data: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Seed = seed
	eng, err := New(defs, "Ripley", cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return eng
}

func TestNew_RejectsEmptyName(t *testing.T) {
	defs, err := gamedata.Load()
	if err != nil {
		t.Fatalf("load game data: %v", err)
	}
	for _, name := range []string{"", "   ", "\t"} {
		if _, err := New(defs, name, DefaultConfig()); err != ErrEmptyName {
			t.Errorf("name %q: expected ErrEmptyName, got %v", name, err)
		}
	}
}

func TestStep_EmptyInput(t *testing.T) {
	eng := gameEngine(t, 42)
	result := eng.Step("")
	if !containsLine(result.Output, "Choose an option.") {
		t.Errorf("unexpected output: %v", result.Output)
	}
}

func TestStep_InvalidChoiceReprompts(t *testing.T) {
	eng := gameEngine(t, 42)

	for _, input := range []string{"banana", "99", "-1"} {
		result := eng.Step(input)
		if !containsLine(result.Output, "Invalid choice.") {
			t.Errorf("input %q: expected invalid-choice line, got %v", input, result.Output)
		}
		if eng.State.Mode != "main" {
			t.Errorf("input %q: mode should stay main, got %s", input, eng.State.Mode)
		}
	}
}

func TestStep_CancelSubmenu(t *testing.T) {
	eng := gameEngine(t, 42)

	eng.Step("1")
	if eng.State.Mode != "move" {
		t.Fatalf("expected move mode, got %s", eng.State.Mode)
	}

	result := eng.Step("0")
	if !containsLine(result.Output, "Never mind.") {
		t.Errorf("unexpected cancel output: %v", result.Output)
	}
	if eng.State.Mode != "main" {
		t.Errorf("cancel should return to main mode, got %s", eng.State.Mode)
	}
	if eng.State.Player.Location != "maintenance_bay" {
		t.Errorf("cancel should not move the player, got %s", eng.State.Player.Location)
	}
}

func TestPickup_TransfersOwnership(t *testing.T) {
	eng := gameEngine(t, 42)

	eng.Step("3")
	result := eng.Step("1")

	if !containsLine(result.Output, "Picked up Datapad.") {
		t.Errorf("unexpected pickup output: %v", result.Output)
	}
	if !state.HasItem(eng.State, "datapad") {
		t.Error("datapad should be in inventory")
	}
	if len(state.ItemsAt(eng.State, "maintenance_bay")) != 0 {
		t.Error("datapad should no longer be at the location")
	}
	if state.GetCounter(eng.State, "items_collected") != 1 {
		t.Error("items_collected counter should be 1")
	}

	// The location is now empty: the pickup menu refuses to open.
	result = eng.Step("3")
	if !containsLine(result.Output, "There are no items to pick up here.") {
		t.Errorf("expected empty-pickup guard, got %v", result.Output)
	}
}

func TestUse_FlagIsSetOnce(t *testing.T) {
	eng := gameEngine(t, 42)

	eng.Step("3")
	eng.Step("1") // pick up datapad
	eng.Step("4")
	eng.Step("1") // read it

	if !state.GetFlag(eng.State, "read_classified_info") {
		t.Fatal("flag should be set after reading the datapad")
	}
	first := eng.State.Quests["escape_europa"].Objectives[0]
	if !first.Completed || first.Current != 1 {
		t.Fatalf("first objective should be complete, got %+v", first)
	}

	// Reading again keeps the flag and the objective as they are.
	eng.Step("4")
	eng.Step("1")

	if !state.GetFlag(eng.State, "read_classified_info") {
		t.Error("flag must never clear")
	}
	first = eng.State.Quests["escape_europa"].Objectives[0]
	if !first.Completed || first.Current != 1 {
		t.Errorf("objective should be unchanged, got %+v", first)
	}
}

func TestInteract_FailedConditions(t *testing.T) {
	eng := gameEngine(t, 42)

	eng.Step("1")
	eng.Step("4") // move to airlock
	eng.Step("2")
	result := eng.Step("2") // activate airlock without clearance

	if !containsLine(result.Output, "The airlock controls refuse your command. Security locks are still engaged.") {
		t.Errorf("expected fail response, got %v", result.Output)
	}
	if state.GetFlag(eng.State, "airlock_escaped") {
		t.Error("failed interaction must not apply effects")
	}
}

func TestQuit_EndsGame(t *testing.T) {
	eng := gameEngine(t, 42)

	result := eng.Step("7")
	if !containsLine(result.Output, "Goodbye.") {
		t.Errorf("unexpected quit output: %v", result.Output)
	}
	if !state.GameOver(eng.State) {
		t.Fatal("quit should end the game")
	}

	// Gameplay input is blocked afterwards.
	result = eng.Step("1")
	if !containsLine(result.Output, "Game over.") {
		t.Errorf("expected game-over line, got %v", result.Output)
	}
	if eng.State.Mode != "main" {
		t.Errorf("mode should not change after the game ends, got %s", eng.State.Mode)
	}
}

func TestAmbush_TriggersAfterKeycardUse(t *testing.T) {
	eng := gameEngine(t, 42)

	eng.Step("1")
	eng.Step("2") // terminal room
	eng.Step("3")
	eng.Step("1") // pick up keycard
	eng.Step("4")
	result := eng.Step("1") // use keycard: grants access, patrol notices

	if !state.GetFlag(eng.State, "terminal_access_granted") {
		t.Fatal("keycard should grant terminal access")
	}
	if !containsLine(result.Output, "A Security Bot has detected your presence!") {
		t.Errorf("expected ambush line, got %v", result.Output)
	}
	if !state.InCombat(eng.State) {
		t.Error("ambush should start an encounter")
	}
	if eng.State.Combat.EnemyID != "security_bot" {
		t.Errorf("unexpected ambush enemy: %s", eng.State.Combat.EnemyID)
	}
}

func TestGame_WinPlaythrough(t *testing.T) {
	eng := gameEngine(t, 42)

	script := []string{
		"3", "1", // pick up the datapad
		"4", "1", // read it
		"1", "2", // move to the terminal room
		"2", "1", // hack the terminal: combat starts
	}
	for _, input := range script {
		eng.Step(input)
	}

	if !state.InCombat(eng.State) {
		t.Fatal("hacking the terminal should start combat")
	}
	for i := 0; i < 50 && state.InCombat(eng.State); i++ {
		eng.Step("1")
	}
	if state.InCombat(eng.State) {
		t.Fatal("encounter did not terminate")
	}
	if !state.GetFlag(eng.State, "security_defeated") {
		t.Fatal("security bot should be defeated")
	}

	endgame := []string{
		"1", "4", // move to the airlock
		"3", "1", // pick up the spacesuit
		"4", "2", // put it on: the escape triggers
	}
	for _, input := range endgame {
		eng.Step(input)
	}

	if !state.GetFlag(eng.State, "game_won") {
		t.Fatal("game should be won")
	}
	if !state.GameOver(eng.State) {
		t.Fatal("a won game is over")
	}
	if !quest.IsCompleted(eng.State, "escape_europa") {
		t.Error("escape quest should be complete")
	}
	for i, obj := range eng.State.Quests["escape_europa"].Objectives {
		if !obj.Completed {
			t.Errorf("objective %d incomplete: %+v", i, obj)
		}
	}
	if got := eng.State.Player.Experience; got != 90 {
		t.Errorf("expected 90 experience, got %d", got)
	}

	result := eng.Step("6")
	if !containsLine(result.Output, "You have escaped Europa. The game is over.") {
		t.Errorf("expected victory game-over line, got %v", result.Output)
	}
}

func TestOptions_MainMenu(t *testing.T) {
	eng := gameEngine(t, 42)
	lines := eng.Options()
	if len(lines) != 8 || lines[0] != "Options:" {
		t.Fatalf("unexpected main menu: %v", lines)
	}
	if lines[7] != "7. Quit" {
		t.Errorf("unexpected last option: %s", lines[7])
	}
}

func TestOptions_CombatMenu(t *testing.T) {
	eng := gameEngine(t, 42)
	eng.Step("1")
	eng.Step("2") // terminal room
	eng.Step("2")
	eng.Step("1") // hack terminal

	lines := eng.Options()
	if len(lines) != 3 || lines[0] != "-- Combat: Security Bot --" {
		t.Fatalf("unexpected combat menu: %v", lines)
	}
}

func TestStatusReport_ShowsQuestProgress(t *testing.T) {
	eng := gameEngine(t, 42)
	eng.Step("3")
	eng.Step("1")
	eng.Step("4")
	eng.Step("1") // read the datapad

	report := eng.StatusReport()
	if !containsLine(report, "Name: Ripley") {
		t.Errorf("missing name in %v", report)
	}
	if !containsLine(report, "Health: 100/100") {
		t.Errorf("missing health in %v", report)
	}
	if !containsLine(report, "  [x] Access classified data (1/1)") {
		t.Errorf("missing completed objective in %v", report)
	}
}

func TestDescribeLocation_ListsItemsAndInteractions(t *testing.T) {
	eng := gameEngine(t, 42)

	lines := eng.DescribeLocation()
	if lines[0] != "Location: Maintenance Bay" {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !containsLine(lines, "You see:") {
		t.Errorf("missing item section in %v", lines)
	}
	if !containsLine(lines, "- examine workbench") {
		t.Errorf("missing interaction in %v", lines)
	}
}
