// Package types defines the shared data structures for Space Dystopia.
// This package contains only type definitions — no logic, no methods.
package types

// Stat is a bounded numeric value with a current/maximum pair.
// Invariant: 0 <= Current <= Maximum (enforced by state.ModifyStat).
type Stat struct {
	Name    string `json:"name"`
	Current int    `json:"current"`
	Maximum int    `json:"maximum"`
}

// Effect is a single atomic state mutation instruction.
type Effect struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// Event is emitted after effects are applied.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Effects []Effect
	Events  []Event
	Output  []string
}

// Condition is a predicate evaluated against the current state.
type Condition struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// GameDef holds game metadata.
type GameDef struct {
	Title   string `json:"title"`
	Version string `json:"version"`
	Author  string `json:"author"`
	Intro   string `json:"intro"`
	Start   string `json:"start"` // starting location ID
}

// UseVariant is one condition-gated effect list for an item. Using an item
// runs the effects of the first variant whose conditions all pass.
type UseVariant struct {
	Conditions []Condition `json:"conditions,omitempty"`
	Effects    []Effect    `json:"effects"`
}

// ItemDef is the base definition of an item. Use effects are explicit
// descriptors interpreted by the effects dispatcher, never closures.
type ItemDef struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Usable         bool         `json:"usable"`
	Pickable       bool         `json:"pickable"`
	UseDescription string       `json:"use_description,omitempty"`
	CombatUse      string       `json:"combat_use,omitempty"` // e.g. "emp"
	Use            []UseVariant `json:"use,omitempty"`
}

// InteractionDef is one named interaction at a location. The response is
// printed when the conditions pass; otherwise FailResponse (or a generic
// line) is printed and the effects are skipped.
type InteractionDef struct {
	Key          string      `json:"key"`
	Response     string      `json:"response"`
	Conditions   []Condition `json:"conditions,omitempty"`
	Effects      []Effect    `json:"effects,omitempty"`
	FailResponse string      `json:"fail_response,omitempty"`
}

// LocationDef is the base definition of a station location. Items lists the
// item IDs initially present; runtime ownership lives in State.LocationItems.
type LocationDef struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Items        []string         `json:"items,omitempty"`
	Interactions []InteractionDef `json:"interactions,omitempty"`
}

// EnemyDef is the base definition of a combat enemy.
type EnemyDef struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       string   `json:"type"` // e.g. "Robot"
	Health     int      `json:"health"`
	Attack     int      `json:"attack"`
	Defense    int      `json:"defense"`
	Drops      []string `json:"drops,omitempty"` // reserved for future loot logic
	VictoryXP  int      `json:"victory_xp"`
	DefeatFlag string   `json:"defeat_flag"` // set on the player when defeated
}

// ObjectiveDef is a single integer-threshold sub-goal of a quest.
type ObjectiveDef struct {
	Description string `json:"description"`
	Target      int    `json:"target"`
}

// QuestDef is a named goal with one or more threshold objectives.
type QuestDef struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Objectives  []ObjectiveDef `json:"objectives"`
}

// EventHandler is a rule triggered by an event rather than a player command.
type EventHandler struct {
	EventType  string      `json:"event"`
	Conditions []Condition `json:"conditions,omitempty"`
	Effects    []Effect    `json:"effects"`
}

// PlayerState holds the overworld player's runtime state.
type PlayerState struct {
	Name       string
	Location   string
	Inventory  []string
	Health     Stat
	Energy     Stat
	Experience int
	Flags      map[string]bool // quest flags: set once, never cleared
}

// ObjectiveState is the runtime progress of one quest objective.
type ObjectiveState struct {
	Current   int
	Completed bool
}

// QuestState is the runtime progress of one quest. Completed is the AND
// over all objectives, recomputed on every objective update.
type QuestState struct {
	Objectives []ObjectiveState
	Completed  bool
}

// EnemyState holds runtime overrides for an enemy. Attack and defense come
// from the base definition; only health and liveness change at runtime.
type EnemyState struct {
	Health int
	Alive  bool
}

// CombatProxy is the transient combat-only stand-in for the player. Its
// stats are not shared with the overworld player; they reset each encounter.
type CombatProxy struct {
	Name       string
	Health     int
	Attack     int
	Defense    int
	Level      int
	Experience int
	Abilities  []string
}

// CombatState tracks an active encounter.
type CombatState struct {
	Active  bool
	EnemyID string
	Round   int
	Proxy   CombatProxy
}

// Menu modes for the engine's input state machine.
const (
	ModeMain     = "main"
	ModeMove     = "move"
	ModeInteract = "interact"
	ModePickup   = "pickup"
	ModeUse      = "use"
	ModeCombat   = "combat"
)

// State is the complete mutable game state.
type State struct {
	Player        PlayerState
	Enemies       map[string]EnemyState
	LocationItems map[string][]string // location ID → item IDs currently there
	Quests        map[string]QuestState
	Counters      map[string]int
	Mode          string
	Combat        CombatState
	TurnCount     int
	RNGSeed       int64
	CommandLog    []string
}
