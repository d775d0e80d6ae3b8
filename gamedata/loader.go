package gamedata

import (
	"encoding/json"
	"fmt"

	"github.com/Ayush-Kadali/Space-Dystopia/engine/state"
	"github.com/Ayush-Kadali/Space-Dystopia/types"
)

// load reads and unmarshals one JSON file from the embedded filesystem.
func load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	return result, nil
}

// Load assembles the full game definitions from the embedded content and
// validates them. The location array's order is the presentation order for
// the movement menu.
func Load() (*state.Defs, error) {
	game, err := load[types.GameDef]("game.json")
	if err != nil {
		return nil, err
	}
	locations, err := load[[]types.LocationDef]("locations.json")
	if err != nil {
		return nil, err
	}
	items, err := load[[]types.ItemDef]("items.json")
	if err != nil {
		return nil, err
	}
	enemies, err := load[[]types.EnemyDef]("enemies.json")
	if err != nil {
		return nil, err
	}
	quests, err := load[[]types.QuestDef]("quests.json")
	if err != nil {
		return nil, err
	}
	handlers, err := load[[]types.EventHandler]("handlers.json")
	if err != nil {
		return nil, err
	}

	defs := &state.Defs{
		Game:      game,
		Locations: make(map[string]types.LocationDef, len(locations)),
		Order:     make([]string, 0, len(locations)),
		Items:     make(map[string]types.ItemDef, len(items)),
		Enemies:   make(map[string]types.EnemyDef, len(enemies)),
		Quests:    make(map[string]types.QuestDef, len(quests)),
		Handlers:  handlers,
	}

	for _, loc := range locations {
		if _, dup := defs.Locations[loc.ID]; dup {
			return nil, fmt.Errorf("duplicate location ID %q", loc.ID)
		}
		defs.Locations[loc.ID] = loc
		defs.Order = append(defs.Order, loc.ID)
	}
	for _, item := range items {
		if _, dup := defs.Items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate item ID %q", item.ID)
		}
		defs.Items[item.ID] = item
	}
	for _, enemy := range enemies {
		if _, dup := defs.Enemies[enemy.ID]; dup {
			return nil, fmt.Errorf("duplicate enemy ID %q", enemy.ID)
		}
		defs.Enemies[enemy.ID] = enemy
	}
	for _, q := range quests {
		if _, dup := defs.Quests[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quest ID %q", q.ID)
		}
		defs.Quests[q.ID] = q
	}

	if err := Validate(defs); err != nil {
		return nil, err
	}

	return defs, nil
}
