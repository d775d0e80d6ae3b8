// Package engine provides the Step() orchestrator that advances the game
// one player input at a time: a menu-mode state machine that dispatches to
// movement, interactions, item handling, and the combat encounter loop,
// with all state mutation funneled through effects and events.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/effects"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/events"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/quest"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/rules"
	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// ErrEmptyName is the fatal construction-time validation error.
var ErrEmptyName = errors.New("player name cannot be empty")

// Engine holds the game definitions and mutable state.
type Engine struct {
	Defs   *state.Defs
	State  *types.State
	RNG    *RNG
	Config Config

	tracer        trace.Tracer
	ctx           context.Context
	combatSpan    trace.Span
	combatOutcome string
	combatRounds  int
}

// New creates an engine for the named player. An empty (or all-blank) name
// is a validation error propagated to the caller.
func New(defs *state.Defs, playerName string, cfg Config) (*Engine, error) {
	name := strings.TrimSpace(playerName)
	if name == "" {
		return nil, ErrEmptyName
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := state.NewState(defs, name)
	s.RNGSeed = seed

	return &Engine{
		Defs:   defs,
		State:  s,
		RNG:    NewRNG(seed),
		Config: cfg,
		tracer: noop.NewTracerProvider().Tracer("spacedystopia/engine"),
		ctx:    context.Background(),
	}, nil
}

// SetTracer wires a tracer for per-encounter spans. Without it the engine
// uses a noop tracer.
func (e *Engine) SetTracer(ctx context.Context, tracer trace.Tracer) {
	e.ctx = ctx
	e.tracer = tracer
}

// Step processes one line of player input and returns the result.
func (e *Engine) Step(input string) types.Result {
	var result types.Result
	input = strings.TrimSpace(input)

	// Terminal states block all gameplay input.
	if state.GameOver(e.State) {
		result.Output = append(result.Output, e.gameOverLine())
		return result
	}

	e.State.CommandLog = append(e.State.CommandLog, input)

	if input == "" {
		result.Output = append(result.Output, "Choose an option.")
		return result
	}

	if state.InCombat(e.State) {
		result = e.stepCombat(input)
	} else {
		switch e.State.Mode {
		case types.ModeMove:
			result = e.stepMove(input)
		case types.ModeInteract:
			result = e.stepInteract(input)
		case types.ModePickup:
			result = e.stepPickup(input)
		case types.ModeUse:
			result = e.stepUse(input)
		default:
			result = e.stepMain(input)
		}
	}

	// Ambient triggers (patrol ambush, airlock escape) run after every
	// resolved action outside combat.
	if !state.InCombat(e.State) && !state.GameOver(e.State) {
		turnEffs := events.Dispatch(
			[]types.Event{{Type: "turn_ended", Data: map[string]any{}}},
			e.State, e.Defs)
		if len(turnEffs) > 0 {
			e.apply(turnEffs, &result)
		}
	}

	e.State.TurnCount++
	return result
}

// apply runs effects through the dispatcher, dispatches the resulting
// events through handlers (single pass), and applies handler effects.
// Everything is accumulated into result; the first-phase events are
// returned so callers can branch on them.
func (e *Engine) apply(effs []types.Effect, result *types.Result) []types.Event {
	ctx := effects.Context{MonotoneObjectives: e.Config.MonotoneObjectives}

	evts, output := effects.Apply(e.State, e.Defs, effs, ctx)
	result.Effects = append(result.Effects, effs...)
	result.Events = append(result.Events, evts...)
	result.Output = append(result.Output, output...)
	e.observe(evts)

	handlerEffs := events.Dispatch(evts, e.State, e.Defs)
	if len(handlerEffs) > 0 {
		evts2, output2 := effects.Apply(e.State, e.Defs, handlerEffs, ctx)
		result.Effects = append(result.Effects, handlerEffs...)
		result.Events = append(result.Events, evts2...)
		result.Output = append(result.Output, output2...)
		e.observe(evts2)
	}

	return evts
}

// observe maintains the per-encounter telemetry span.
func (e *Engine) observe(evts []types.Event) {
	for _, evt := range evts {
		switch evt.Type {
		case "combat_started":
			enemy, _ := evt.Data["enemy"].(string)
			_, e.combatSpan = e.tracer.Start(e.ctx, "encounter",
				trace.WithAttributes(attribute.String("combat.enemy", enemy)))
			e.combatOutcome = ""
			e.combatRounds = 0
		case "combat_ended":
			if e.combatSpan != nil {
				e.combatSpan.SetAttributes(
					attribute.String("combat.outcome", e.combatOutcome),
					attribute.Int("combat.rounds", e.combatRounds),
				)
				e.combatSpan.End()
				e.combatSpan = nil
			}
		}
	}
}

// recordCombatOutcome captures the terminal state and round count before
// end_combat clears them.
func (e *Engine) recordCombatOutcome(outcome string) {
	e.combatOutcome = outcome
	e.combatRounds = e.State.Combat.Round + 1
}

func (e *Engine) stepMain(input string) types.Result {
	var result types.Result
	s := e.State

	choice, ok := parseChoice(input)
	if !ok {
		result.Output = append(result.Output, "Invalid choice.")
		return result
	}

	switch choice {
	case 1:
		s.Mode = types.ModeMove
	case 2:
		if len(e.currentLocation().Interactions) == 0 {
			result.Output = append(result.Output, "No interactions available here.")
			return result
		}
		s.Mode = types.ModeInteract
	case 3:
		if len(state.ItemsAt(s, s.Player.Location)) == 0 {
			result.Output = append(result.Output, "There are no items to pick up here.")
			return result
		}
		s.Mode = types.ModePickup
	case 4:
		if len(s.Player.Inventory) == 0 {
			result.Output = append(result.Output, "You are carrying nothing.")
			return result
		}
		s.Mode = types.ModeUse
	case 5:
		result.Output = append(result.Output, e.describeInventory()...)
	case 6:
		result.Output = append(result.Output, e.StatusReport()...)
	case 7:
		e.apply([]types.Effect{{Type: "set_flag", Params: map[string]any{"flag": "quit"}}}, &result)
		result.Output = append(result.Output, "Goodbye.")
	default:
		result.Output = append(result.Output, "Invalid choice.")
	}

	return result
}

func (e *Engine) stepMove(input string) types.Result {
	var result types.Result
	s := e.State
	s.Mode = types.ModeMain

	choice, ok := parseChoice(input)
	if !ok || choice < 0 || choice > len(e.Defs.Order) {
		result.Output = append(result.Output, "Invalid choice.")
		return result
	}
	if choice == 0 {
		result.Output = append(result.Output, "Never mind.")
		return result
	}

	target := e.Defs.Order[choice-1]
	effs := []types.Effect{
		{Type: "move_player", Params: map[string]any{"location": target}},
		{Type: "inc_counter", Params: map[string]any{"counter": "steps", "amount": 1}},
	}
	e.apply(effs, &result)
	result.Output = append(result.Output, e.DescribeLocation()...)
	return result
}

func (e *Engine) stepInteract(input string) types.Result {
	var result types.Result
	s := e.State
	s.Mode = types.ModeMain

	interactions := e.currentLocation().Interactions
	choice, ok := parseChoice(input)
	if !ok || choice < 0 || choice > len(interactions) {
		result.Output = append(result.Output, "Invalid choice.")
		return result
	}
	if choice == 0 {
		result.Output = append(result.Output, "Never mind.")
		return result
	}

	interaction := interactions[choice-1]
	if !rules.EvalAllConditions(interaction.Conditions, s) {
		fail := interaction.FailResponse
		if fail == "" {
			fail = "Nothing interesting happens."
		}
		result.Output = append(result.Output, fail)
		return result
	}

	result.Output = append(result.Output, interaction.Response)
	if len(interaction.Effects) > 0 {
		e.apply(interaction.Effects, &result)
	}
	return result
}

func (e *Engine) stepPickup(input string) types.Result {
	var result types.Result
	s := e.State
	s.Mode = types.ModeMain

	items := state.ItemsAt(s, s.Player.Location)
	choice, ok := parseChoice(input)
	if !ok || choice < 0 || choice > len(items) {
		result.Output = append(result.Output, "Invalid choice.")
		return result
	}
	if choice == 0 {
		result.Output = append(result.Output, "Never mind.")
		return result
	}

	itemID := items[choice-1]
	item := e.Defs.Items[itemID]
	if !item.Pickable {
		result.Output = append(result.Output, "This item cannot be picked up.")
		return result
	}

	effs := []types.Effect{
		{Type: "give_item", Params: map[string]any{"item": itemID}},
		{Type: "inc_counter", Params: map[string]any{"counter": "items_collected", "amount": 1}},
		{Type: "gain_xp", Params: map[string]any{"amount": 5}},
	}
	e.apply(effs, &result)
	result.Output = append(result.Output, fmt.Sprintf("Picked up %s.", item.Name))
	return result
}

func (e *Engine) stepUse(input string) types.Result {
	var result types.Result
	s := e.State
	s.Mode = types.ModeMain

	inventory := s.Player.Inventory
	choice, ok := parseChoice(input)
	if !ok || choice < 0 || choice > len(inventory) {
		result.Output = append(result.Output, "Invalid choice.")
		return result
	}
	if choice == 0 {
		result.Output = append(result.Output, "Never mind.")
		return result
	}

	item := e.Defs.Items[inventory[choice-1]]
	if !item.Usable {
		result.Output = append(result.Output, fmt.Sprintf("You can't use the %s.", item.Name))
		return result
	}

	for _, variant := range item.Use {
		if rules.EvalAllConditions(variant.Conditions, s) {
			e.apply(variant.Effects, &result)
			return result
		}
	}
	result.Output = append(result.Output, "Nothing happens.")
	return result
}

// Options returns the menu lines for the current input mode. Surfaces print
// these before each prompt.
func (e *Engine) Options() []string {
	s := e.State

	if state.InCombat(s) {
		return e.combatOptions()
	}

	switch s.Mode {
	case types.ModeMove:
		lines := []string{"Available locations:"}
		for i, id := range e.Defs.Order {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, e.Defs.Locations[id].Name))
		}
		return append(lines, "0. Cancel")

	case types.ModeInteract:
		lines := []string{"Available interactions:"}
		for i, interaction := range e.currentLocation().Interactions {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, interaction.Key))
		}
		return append(lines, "0. Cancel")

	case types.ModePickup:
		lines := []string{"Available items to pick up:"}
		for i, id := range state.ItemsAt(s, s.Player.Location) {
			item := e.Defs.Items[id]
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, item.Name, item.Description))
		}
		return append(lines, "0. Cancel")

	case types.ModeUse:
		lines := []string{"Use which item?"}
		for i, id := range s.Player.Inventory {
			item := e.Defs.Items[id]
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item.Name))
		}
		return append(lines, "0. Cancel")

	default:
		return []string{
			"Options:",
			"1. Move to another location",
			"2. Interact with environment",
			"3. Pick up item",
			"4. Use item",
			"5. Check inventory",
			"6. Check status",
			"7. Quit",
		}
	}
}

// DescribeLocation produces the standard location description output:
// name, narrative text, visible items, and possible interactions.
func (e *Engine) DescribeLocation() []string {
	s := e.State
	loc := e.currentLocation()

	output := []string{"Location: " + loc.Name, loc.Description}

	items := state.ItemsAt(s, s.Player.Location)
	if len(items) > 0 {
		output = append(output, "You see:")
		for _, id := range items {
			item := e.Defs.Items[id]
			output = append(output, fmt.Sprintf("- %s: %s", item.Name, item.Description))
		}
	}

	if len(loc.Interactions) > 0 {
		output = append(output, "Possible interactions:")
		for _, interaction := range loc.Interactions {
			output = append(output, "- "+interaction.Key)
		}
	}

	return output
}

// StatusReport renders the player's stats, progress counters, quest flags,
// and quest progress. Also used for the end-of-game summary.
func (e *Engine) StatusReport() []string {
	s := e.State
	output := []string{
		"Name: " + s.Player.Name,
		fmt.Sprintf("%s: %d/%d", s.Player.Health.Name, s.Player.Health.Current, s.Player.Health.Maximum),
		fmt.Sprintf("%s: %d/%d", s.Player.Energy.Name, s.Player.Energy.Current, s.Player.Energy.Maximum),
		fmt.Sprintf("Experience: %d", s.Player.Experience),
		fmt.Sprintf("Total steps taken: %d", state.GetCounter(s, "steps")),
		fmt.Sprintf("Items collected: %d", state.GetCounter(s, "items_collected")),
	}

	questIDs := make([]string, 0, len(e.Defs.Quests))
	for id := range e.Defs.Quests {
		questIDs = append(questIDs, id)
	}
	sort.Strings(questIDs)
	for _, id := range questIDs {
		output = append(output, "")
		output = append(output, quest.Describe(s, e.Defs, id)...)
	}

	if len(s.Player.Flags) > 0 {
		flags := make([]string, 0, len(s.Player.Flags))
		for f := range s.Player.Flags {
			flags = append(flags, f)
		}
		sort.Strings(flags)
		output = append(output, "", "Flags: "+strings.Join(flags, ", "))
	}

	return output
}

func (e *Engine) describeInventory() []string {
	s := e.State
	if len(s.Player.Inventory) == 0 {
		return []string{"Inventory:", "Empty"}
	}
	output := []string{"Inventory:"}
	for _, id := range s.Player.Inventory {
		item := e.Defs.Items[id]
		line := fmt.Sprintf("- %s: %s", item.Name, item.Description)
		if item.Usable && item.UseDescription != "" {
			line += " (" + item.UseDescription + ")"
		}
		output = append(output, line)
	}
	return output
}

func (e *Engine) currentLocation() types.LocationDef {
	return e.Defs.Locations[e.State.Player.Location]
}

func (e *Engine) gameOverLine() string {
	switch {
	case state.GetFlag(e.State, "game_won"):
		return "You have escaped Europa. The game is over."
	case state.GetFlag(e.State, "game_over"):
		return "You were defeated. Game over."
	default:
		return "Game over."
	}
}

// parseChoice parses a numeric menu selection. Non-numeric input is an
// invalid choice, never an error.
func parseChoice(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return n, true
}
