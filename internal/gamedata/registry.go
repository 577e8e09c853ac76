package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/deckbound/internal/rng"
)

// =============================================================================
// CardRegistry
// =============================================================================

// CardRegistry holds card definitions keyed by id. It is not modified after
// construction.
type CardRegistry struct {
	cards map[string]*CardDef
	all   []CardDef
}

// NewCardRegistry validates the definitions and builds a registry.
func NewCardRegistry(cards []CardDef) (*CardRegistry, error) {
	registry := &CardRegistry{
		cards: make(map[string]*CardDef, len(cards)),
		all:   cards,
	}
	for i := range cards {
		if err := ValidateCard(&cards[i]); err != nil {
			return nil, err
		}
		if _, dup := registry.cards[cards[i].ID]; dup {
			return nil, fmt.Errorf("%w: card %s", ErrDuplicateID, cards[i].ID)
		}
		registry.cards[cards[i].ID] = &cards[i]
	}
	return registry, nil
}

// LoadCardRegistry loads and creates a registry from the embedded cards.json.
func LoadCardRegistry() (*CardRegistry, error) {
	cards, err := LoadCards()
	if err != nil {
		return nil, err
	}
	if len(cards) == 0 {
		return nil, errors.New("no cards loaded from cards.json")
	}
	return NewCardRegistry(cards)
}

// MustLoadCardRegistry loads a registry, panicking on error.
func MustLoadCardRegistry() *CardRegistry {
	registry, err := LoadCardRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the card definition with the given ID, or nil if not found.
func (r *CardRegistry) GetByID(id string) *CardDef {
	return r.cards[id]
}

// ByRarity returns every definition of the given rarity in file order.
func (r *CardRegistry) ByRarity(rarity Rarity) []*CardDef {
	var out []*CardDef
	for i := range r.all {
		if r.all[i].Rarity == rarity {
			out = append(out, &r.all[i])
		}
	}
	return out
}

// All returns all card definitions.
func (r *CardRegistry) All() []CardDef {
	return r.all
}

// Count returns the number of cards in the registry.
func (r *CardRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds enemy definitions and encounter formations.
type EnemyRegistry struct {
	enemies    map[string]*EnemyDef
	all        []EnemyDef
	formations []Formation
}

// NewEnemyRegistry validates the definitions and formations and builds a registry.
func NewEnemyRegistry(enemies []EnemyDef, formations []Formation) (*EnemyRegistry, error) {
	registry := &EnemyRegistry{
		enemies:    make(map[string]*EnemyDef, len(enemies)),
		all:        enemies,
		formations: formations,
	}
	for i := range enemies {
		if err := ValidateEnemy(&enemies[i]); err != nil {
			return nil, err
		}
		if _, dup := registry.enemies[enemies[i].ID]; dup {
			return nil, fmt.Errorf("%w: enemy %s", ErrDuplicateID, enemies[i].ID)
		}
		registry.enemies[enemies[i].ID] = &enemies[i]
	}
	for i, f := range formations {
		if len(f.Enemies) == 0 || f.Weight < 0 {
			return nil, fmt.Errorf("%w: formation %d", ErrInvalidFormation, i)
		}
		for _, id := range f.Enemies {
			if registry.enemies[id] == nil {
				return nil, fmt.Errorf("%w: formation %d: unknown enemy %q", ErrInvalidFormation, i, id)
			}
		}
	}
	return registry, nil
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.yaml.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	file, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(file.Enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.yaml")
	}
	return NewEnemyRegistry(file.Enemies, file.Formations)
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnFormation selects an encounter using weighted probability.
// Formations with a higher weight are more likely to be selected.
// Returns nil when no formations are registered.
func (r *EnemyRegistry) SpawnFormation(src rng.Source) []string {
	if len(r.formations) == 0 {
		return nil
	}
	items := make([][]string, len(r.formations))
	weights := make([]int, len(r.formations))
	for i, f := range r.formations {
		items[i] = f.Enemies
		weights[i] = f.Weight
	}
	return rng.WeightedChoice(src, items, weights)
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.enemies[id]
}

// ByTier returns every definition of the given tier in file order.
func (r *EnemyRegistry) ByTier(tier Tier) []*EnemyDef {
	var out []*EnemyDef
	for i := range r.all {
		if r.all[i].Tier == tier {
			out = append(out, &r.all[i])
		}
	}
	return out
}

// Formations returns the registered encounter formations.
func (r *EnemyRegistry) Formations() []Formation {
	return r.formations
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.all
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// ClassRegistry
// =============================================================================

// ClassRegistry holds playable class definitions.
type ClassRegistry struct {
	classes map[string]*ClassDef
	all     []ClassDef
}

// NewClassRegistry validates classes against the card registry and builds a registry.
func NewClassRegistry(classes []ClassDef, cards *CardRegistry) (*ClassRegistry, error) {
	registry := &ClassRegistry{
		classes: make(map[string]*ClassDef, len(classes)),
		all:     classes,
	}
	for i := range classes {
		if err := ValidateClass(&classes[i], cards); err != nil {
			return nil, err
		}
		if _, dup := registry.classes[classes[i].ID]; dup {
			return nil, fmt.Errorf("%w: class %s", ErrDuplicateID, classes[i].ID)
		}
		registry.classes[classes[i].ID] = &classes[i]
	}
	return registry, nil
}

// LoadClassRegistry loads classes from the embedded classes.json.
func LoadClassRegistry(cards *CardRegistry) (*ClassRegistry, error) {
	classes, err := LoadClasses()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		return nil, errors.New("no classes loaded from classes.json")
	}
	return NewClassRegistry(classes, cards)
}

// GetByID returns the class definition with the given ID, or nil if not found.
func (r *ClassRegistry) GetByID(id string) *ClassDef {
	return r.classes[id]
}

// All returns all class definitions.
func (r *ClassRegistry) All() []ClassDef {
	return r.all
}

// =============================================================================
// Registries
// =============================================================================

// Registries bundles every definition table the game needs.
type Registries struct {
	Cards   *CardRegistry
	Enemies *EnemyRegistry
	Classes *ClassRegistry
}

// LoadRegistries loads all embedded definitions.
func LoadRegistries() (*Registries, error) {
	cards, err := LoadCardRegistry()
	if err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	enemies, err := LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("enemies: %w", err)
	}
	classes, err := LoadClassRegistry(cards)
	if err != nil {
		return nil, fmt.Errorf("classes: %w", err)
	}
	return &Registries{Cards: cards, Enemies: enemies, Classes: classes}, nil
}
