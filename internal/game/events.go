package game

import (
	"github.com/samdwyer/deckbound/internal/combat"
	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/status"
)

// Payloads carried in event.Event.Data by the engine. Pile events carry the
// *entity.Card and CardPlayed carries combat.PlayedPayload.

// CombatStarted is sent once all enemies have their first intent and the
// first player turn has begun.
type CombatStarted struct {
	Enemies entity.Roster
}

// TurnInfo accompanies turn boundaries and combat outcomes. Energy and
// Hand are only set for PlayerTurnStart.
type TurnInfo struct {
	Turn   int
	Energy int
	Hand   []entity.Card
}

// PlayComplete is sent after a card's results have been applied and the
// card has left the hand, unless the play ended the combat.
type PlayComplete struct {
	Card    *entity.Card
	Results []combat.Result
	Energy  int
	Hand    []entity.Card
}

// BlockGained reports block added by a card.
type BlockGained struct {
	Value int
	Total int
}

// PlayerDamaged reports one enemy hit against the player.
type PlayerDamaged struct {
	Source      string // Enemy instance id
	Damage      int
	Blocked     int
	HPLoss      int
	RemainingHP int
}

// EnemyDied is sent once per enemy when its HP first reaches zero.
type EnemyDied struct {
	Enemy *entity.Enemy
}

// StatusNegated reports a debuff blocked by an artifact charge.
type StatusNegated struct {
	Source            string
	Status            status.Status
	Value             int
	ArtifactRemaining int
}
