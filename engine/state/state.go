// Package state manages the mutable game state: construction from
// definitions, flag and counter access, inventory and item ownership,
// and bounded stat arithmetic.
package state

import (
	"errors"

	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// Defs holds the immutable game definitions loaded from embedded data.
type Defs struct {
	Game      types.GameDef
	Locations map[string]types.LocationDef
	Order     []string // location IDs in presentation order
	Items     map[string]types.ItemDef
	Enemies   map[string]types.EnemyDef
	Quests    map[string]types.QuestDef
	Handlers  []types.EventHandler
}

// ErrNegativeDamage is reported when a caller tries to damage the overworld
// player with a negative amount. The call leaves state unchanged.
var ErrNegativeDamage = errors.New("damage cannot be negative")

// NewState creates a fresh game state from definitions. Item ownership
// starts at each location's base item list; enemies start at full health.
func NewState(defs *Defs, playerName string) *types.State {
	locItems := make(map[string][]string, len(defs.Locations))
	for id, loc := range defs.Locations {
		locItems[id] = append([]string{}, loc.Items...)
	}

	enemies := make(map[string]types.EnemyState, len(defs.Enemies))
	for id, def := range defs.Enemies {
		enemies[id] = types.EnemyState{Health: def.Health, Alive: true}
	}

	quests := make(map[string]types.QuestState, len(defs.Quests))
	for id, def := range defs.Quests {
		quests[id] = types.QuestState{
			Objectives: make([]types.ObjectiveState, len(def.Objectives)),
		}
	}

	return &types.State{
		Player: types.PlayerState{
			Name:      playerName,
			Location:  defs.Game.Start,
			Inventory: []string{},
			Health:    types.Stat{Name: "Health", Current: 100, Maximum: 100},
			Energy:    types.Stat{Name: "Energy", Current: 100, Maximum: 100},
			Flags:     map[string]bool{},
		},
		Enemies:       enemies,
		LocationItems: locItems,
		Quests:        quests,
		Counters:      map[string]int{},
		Mode:          types.ModeMain,
		CommandLog:    []string{},
	}
}

// GetFlag returns the value of a quest flag. Unset flags return false.
func GetFlag(s *types.State, name string) bool {
	return s.Player.Flags[name]
}

// SetFlag marks a quest flag as achieved. Flags are set-once: there is no
// way to clear one. Returns true if the flag was newly set.
func SetFlag(s *types.State, name string) bool {
	if s.Player.Flags[name] {
		return false
	}
	s.Player.Flags[name] = true
	return true
}

// GetCounter returns the value of a counter. Unset counters return 0.
func GetCounter(s *types.State, name string) int {
	return s.Counters[name]
}

// HasItem returns true if the player has the given item in inventory.
func HasItem(s *types.State, itemID string) bool {
	for _, id := range s.Player.Inventory {
		if id == itemID {
			return true
		}
	}
	return false
}

// ItemsAt returns the item IDs currently at a location.
func ItemsAt(s *types.State, locationID string) []string {
	return s.LocationItems[locationID]
}

// TakeItem transfers an item from a location to the player's inventory.
// Ownership is exclusive: the item is removed from the location list before
// being appended to the inventory. Returns false if the item is not there.
func TakeItem(s *types.State, locationID, itemID string) bool {
	items := s.LocationItems[locationID]
	for i, id := range items {
		if id == itemID {
			s.LocationItems[locationID] = append(items[:i], items[i+1:]...)
			s.Player.Inventory = append(s.Player.Inventory, itemID)
			return true
		}
	}
	return false
}

// DropItem removes an item from the inventory and places it at a location.
func DropItem(s *types.State, locationID, itemID string) bool {
	for i, id := range s.Player.Inventory {
		if id == itemID {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			s.LocationItems[locationID] = append(s.LocationItems[locationID], itemID)
			return true
		}
	}
	return false
}

// ModifyStat adjusts a stat by delta, clamping the result into
// [0, Maximum]. The invariant 0 <= Current <= Maximum holds before and
// after every call.
func ModifyStat(st *types.Stat, delta int) {
	st.Current += delta
	if st.Current > st.Maximum {
		st.Current = st.Maximum
	}
	if st.Current < 0 {
		st.Current = 0
	}
}

// RaiseStatMaximum grows a stat's ceiling by delta and fills the stat to
// the new maximum.
func RaiseStatMaximum(st *types.Stat, delta int) {
	st.Maximum += delta
	st.Current = st.Maximum
}

// DamagePlayer applies direct damage to the overworld player's health.
// Negative damage is a validation error: the call is a no-op and the error
// is returned for reporting at the boundary.
func DamagePlayer(s *types.State, amount int) error {
	if amount < 0 {
		return ErrNegativeDamage
	}
	ModifyStat(&s.Player.Health, -amount)
	return nil
}

// GainExperience accrues experience on the overworld player. Non-positive
// amounts are ignored. The overworld player does not level up; leveling is
// a combat-proxy behavior.
func GainExperience(s *types.State, amount int) {
	if amount > 0 {
		s.Player.Experience += amount
	}
}

// EnemyAlive reports whether an enemy is still alive.
// An enemy is alive iff its health is above zero.
func EnemyAlive(s *types.State, enemyID string) bool {
	es, ok := s.Enemies[enemyID]
	return ok && es.Health > 0
}

// GameOver reports whether gameplay input should be blocked: the player
// has won, lost, or asked to quit.
func GameOver(s *types.State) bool {
	return GetFlag(s, "game_won") || GetFlag(s, "game_over") || GetFlag(s, "quit")
}

// InCombat reports whether a combat encounter is active.
func InCombat(s *types.State) bool {
	return s.Combat.Active
}
