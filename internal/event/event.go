// Package event carries combat notifications from the engine to whoever is
// listening. Dispatch is synchronous and single-threaded: observers run in
// the order the corresponding state change happened.
package event

import "slices"

// Type enumerates observable combat events.
type Type int

const (
	CardDrawn Type = iota
	CardDiscarded
	CardExhausted
	CardPlayed
	CardPlayComplete
	BlockGained
	CombatStarted
	CombatWon
	CombatLost
	PlayerTurnStart
	PlayerTurnEnd
	EnemyTurnStart
	EnemyTurnEnd
	EnemyDied
	PlayerDamaged
	StatusNegated
)

var typeNames = [...]string{
	CardDrawn:        "card_drawn",
	CardDiscarded:    "card_discarded",
	CardExhausted:    "card_exhausted",
	CardPlayed:       "card_played",
	CardPlayComplete: "card_play_complete",
	BlockGained:      "block_gained",
	CombatStarted:    "combat_started",
	CombatWon:        "combat_won",
	CombatLost:       "combat_lost",
	PlayerTurnStart:  "player_turn_start",
	PlayerTurnEnd:    "player_turn_end",
	EnemyTurnStart:   "enemy_turn_start",
	EnemyTurnEnd:     "enemy_turn_end",
	EnemyDied:        "enemy_died",
	PlayerDamaged:    "player_damaged",
	StatusNegated:    "status_negated",
}

// String returns the event name.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// Event is a single notification. Data holds the payload for the type:
// *entity.Card for pile events, combat.PlayedPayload for CardPlayed, and
// the payload structs of package game for everything the engine emits.
type Event struct {
	Type Type
	Data any
}

// Observer receives events. Implementations must not call back into the
// engine that emitted the event.
type Observer interface {
	Notify(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev Event)

// Notify calls f(ev).
func (f ObserverFunc) Notify(ev Event) { f(ev) }

// Discard is an observer that drops everything.
var Discard Observer = ObserverFunc(func(Event) {})

// Bus fans events out to every subscriber in subscription order.
type Bus struct {
	subscribers []subscription
	nextID      int
}

type subscription struct {
	id       int
	types    map[Type]bool // nil means all types
	observer Observer
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers an observer for the given types, or for every type
// when none are given. The returned function unsubscribes.
func (b *Bus) Subscribe(o Observer, types ...Type) func() {
	sub := subscription{id: b.nextID, observer: o}
	b.nextID++
	if len(types) > 0 {
		sub.types = make(map[Type]bool, len(types))
		for _, t := range types {
			sub.types[t] = true
		}
	}
	b.subscribers = append(b.subscribers, sub)

	id := sub.id
	return func() { b.unsubscribe(id) }
}

func (b *Bus) unsubscribe(id int) {
	for i, s := range b.subscribers {
		if s.id == id {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			return
		}
	}
}

// Notify delivers ev to every matching subscriber. The subscriber list is
// fixed when dispatch starts, so observers may subscribe or unsubscribe from
// inside Notify.
func (b *Bus) Notify(ev Event) {
	for _, s := range slices.Clone(b.subscribers) {
		if s.types == nil || s.types[ev.Type] {
			s.observer.Notify(ev)
		}
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	return len(b.subscribers)
}

// Recorder keeps every event it sees, in order.
type Recorder struct {
	Events []Event
}

// Notify appends ev.
func (r *Recorder) Notify(ev Event) {
	r.Events = append(r.Events, ev)
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t Type) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent event of type t.
func (r *Recorder) Last(t Type) (Event, bool) {
	for i := len(r.Events) - 1; i >= 0; i-- {
		if r.Events[i].Type == t {
			return r.Events[i], true
		}
	}
	return Event{}, false
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	out := make([]Type, len(r.Events))
	for i, ev := range r.Events {
		out[i] = ev.Type
	}
	return out
}

// Reset drops every recorded event.
func (r *Recorder) Reset() {
	r.Events = nil
}
