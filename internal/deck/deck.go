// Package deck manages the four card piles of a single combat.
package deck

import (
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/event"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/rng"
)

// Manager owns the draw pile, hand, discard pile and exhaust pile.
// Every card instance is in exactly one pile. The draw and discard piles
// are stacks: the last element is on top.
type Manager struct {
	src      rng.Source
	observer event.Observer

	drawPile    []*entity.Card
	hand        []*entity.Card
	discardPile []*entity.Card
	exhaustPile []*entity.Card
}

// NewManager creates an empty manager. A nil observer discards events.
func NewManager(src rng.Source, observer event.Observer) *Manager {
	if observer == nil {
		observer = event.Discard
	}
	return &Manager{src: src, observer: observer}
}

// InitCombat shuffles a copy of deck into the draw pile and empties the
// other piles. The deck slice itself is not modified.
func (m *Manager) InitCombat(deck []*entity.Card) {
	m.drawPile = rng.Shuffle(m.src, deck)
	m.hand = nil
	m.discardPile = nil
	m.exhaustPile = nil
}

// Draw moves up to n cards from the draw pile into the hand, reshuffling
// the discard pile when the draw pile runs out. It stops early when both
// are empty and returns the cards actually drawn.
func (m *Manager) Draw(n int) []*entity.Card {
	var drawn []*entity.Card
	for i := 0; i < n; i++ {
		if len(m.drawPile) == 0 {
			m.ReshuffleDiscard()
			if len(m.drawPile) == 0 {
				break
			}
		}
		top := len(m.drawPile) - 1
		card := m.drawPile[top]
		m.drawPile = m.drawPile[:top]
		m.hand = append(m.hand, card)
		drawn = append(drawn, card)
		m.notify(event.CardDrawn, card)
	}
	return drawn
}

// DiscardFromHand moves a card from the hand to the discard pile.
// Returns nil if the card is not in hand.
func (m *Manager) DiscardFromHand(instanceID string) *entity.Card {
	card := m.RemoveFromHand(instanceID)
	if card == nil {
		return nil
	}
	m.discardPile = append(m.discardPile, card)
	m.notify(event.CardDiscarded, card)
	return card
}

// ExhaustFromHand moves a card from the hand to the exhaust pile.
// Returns nil if the card is not in hand.
func (m *Manager) ExhaustFromHand(instanceID string) *entity.Card {
	card := m.RemoveFromHand(instanceID)
	if card == nil {
		return nil
	}
	m.exhaustPile = append(m.exhaustPile, card)
	m.notify(event.CardExhausted, card)
	return card
}

// RemoveFromHand takes a card out of the hand without putting it in any
// pile. Played powers leave the combat this way.
func (m *Manager) RemoveFromHand(instanceID string) *entity.Card {
	idx := m.indexInHand(instanceID)
	if idx < 0 {
		return nil
	}
	card := m.hand[idx]
	m.hand = append(m.hand[:idx], m.hand[idx+1:]...)
	return card
}

// DiscardHand empties the hand from the back. Ethereal cards are exhausted.
// The first Retain card found stays in hand and ends the pass, so any cards
// in front of it are kept as well.
func (m *Manager) DiscardHand() {
	for len(m.hand) > 0 {
		top := len(m.hand) - 1
		card := m.hand[top]
		switch {
		case card.Has(gamedata.Ethereal):
			m.hand = m.hand[:top]
			m.exhaustPile = append(m.exhaustPile, card)
			m.notify(event.CardExhausted, card)
		case card.Has(gamedata.Retain):
			return
		default:
			m.hand = m.hand[:top]
			m.discardPile = append(m.discardPile, card)
			m.notify(event.CardDiscarded, card)
		}
	}
}

// ReshuffleDiscard shuffles the discard pile together with whatever is left
// of the draw pile into a new draw pile.
func (m *Manager) ReshuffleDiscard() {
	merged := make([]*entity.Card, 0, len(m.discardPile)+len(m.drawPile))
	merged = append(merged, m.discardPile...)
	merged = append(merged, m.drawPile...)
	m.drawPile = rng.Shuffle(m.src, merged)
	m.discardPile = nil
}

// FindInHand returns the card with the given instance id, or nil.
func (m *Manager) FindInHand(instanceID string) *entity.Card {
	if idx := m.indexInHand(instanceID); idx >= 0 {
		return m.hand[idx]
	}
	return nil
}

// Hand returns a copy of the hand in draw order.
func (m *Manager) Hand() []*entity.Card { return clone(m.hand) }

// DrawPile returns a copy of the draw pile, top last.
func (m *Manager) DrawPile() []*entity.Card { return clone(m.drawPile) }

// DiscardPile returns a copy of the discard pile, top last.
func (m *Manager) DiscardPile() []*entity.Card { return clone(m.discardPile) }

// ExhaustPile returns a copy of the exhaust pile.
func (m *Manager) ExhaustPile() []*entity.Card { return clone(m.exhaustPile) }

// HandSize returns the number of cards in hand.
func (m *Manager) HandSize() int { return len(m.hand) }

// DrawSize returns the number of cards in the draw pile.
func (m *Manager) DrawSize() int { return len(m.drawPile) }

// DiscardSize returns the number of cards in the discard pile.
func (m *Manager) DiscardSize() int { return len(m.discardPile) }

// ExhaustSize returns the number of cards in the exhaust pile.
func (m *Manager) ExhaustSize() int { return len(m.exhaustPile) }

// Total returns the number of cards across all four piles.
func (m *Manager) Total() int {
	return len(m.drawPile) + len(m.hand) + len(m.discardPile) + len(m.exhaustPile)
}

func (m *Manager) indexInHand(instanceID string) int {
	for i, c := range m.hand {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func (m *Manager) notify(t event.Type, card *entity.Card) {
	m.observer.Notify(event.Event{Type: t, Data: card})
}

func clone(cards []*entity.Card) []*entity.Card {
	out := make([]*entity.Card, len(cards))
	copy(out, cards)
	return out
}
