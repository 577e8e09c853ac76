package entity

import (
	"github.com/samdwyer/deckbound/internal/gamedata"
)

// Player is the run-level state of the adventurer. It outlives any single
// combat: HP and deck changes persist between encounters.
type Player struct {
	Name         string
	ClassID      string
	HP, MaxHP    int
	MaxEnergy    int
	CardsPerDraw int
	Deck         []*Card
}

// NewPlayer creates a player from a class definition, instantiating the
// starter deck from cards.
func NewPlayer(class *gamedata.ClassDef, cards *gamedata.CardRegistry) *Player {
	p := &Player{
		Name:         class.Name,
		ClassID:      class.ID,
		HP:           class.HP,
		MaxHP:        class.HP,
		MaxEnergy:    class.Energy,
		CardsPerDraw: class.CardsPerDraw,
		Deck:         make([]*Card, 0, class.DeckSize()),
	}
	for _, entry := range class.StarterDeck {
		def := cards.GetByID(entry.CardID)
		if def == nil {
			continue
		}
		for i := 0; i < entry.Count; i++ {
			p.Deck = append(p.Deck, NewCard(def, entry.Upgraded))
		}
	}
	return p
}

// IsAlive returns true if the player has HP remaining.
func (p *Player) IsAlive() bool { return p.HP > 0 }

// Heal restores HP up to MaxHP and returns the amount healed.
func (p *Player) Heal(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.MaxHP-p.HP)
	p.HP += actual
	return actual
}

// LoseHP reduces HP down to zero and returns the amount lost.
func (p *Player) LoseHP(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, p.HP)
	p.HP -= actual
	return actual
}

// AddCard appends a new instance of def to the run deck.
func (p *Player) AddCard(def *gamedata.CardDef, upgraded bool) *Card {
	c := NewCard(def, upgraded)
	p.Deck = append(p.Deck, c)
	return c
}

// RemoveCard removes the instance with the given id from the run deck.
// Returns false if no such card exists.
func (p *Player) RemoveCard(instanceID string) bool {
	for i, c := range p.Deck {
		if c.InstanceID == instanceID {
			p.Deck = append(p.Deck[:i], p.Deck[i+1:]...)
			return true
		}
	}
	return false
}
