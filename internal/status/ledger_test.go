package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStacks(t *testing.T) {
	l := NewLedger()
	l.Apply(Strength, 2)
	l.Apply(Strength, 3)
	assert.Equal(t, 5, l.Get(Strength))
	assert.True(t, l.Has(Strength))
}

func TestGetMissing(t *testing.T) {
	l := NewLedger()
	assert.Equal(t, 0, l.Get(Weak))
	assert.False(t, l.Has(Weak))
}

func TestHasRequiresPositive(t *testing.T) {
	l := NewLedger()
	l.Apply(Strength, -1)
	assert.Equal(t, -1, l.Get(Strength))
	assert.False(t, l.Has(Strength))
}

func TestTickSparesPermanent(t *testing.T) {
	l := NewLedger()
	for _, s := range []Status{Strength, Dexterity, Thorns, Ritual, Metallicize, Barricade, PlatedArmor, Artifact} {
		l.Apply(s, 3)
	}
	l.TickTurnEnd()
	l.TickTurnEnd()
	for _, e := range l.All() {
		assert.Equal(t, 3, e.Value, "%s should not decay", e.Status)
		assert.True(t, e.Permanent)
	}
	assert.Equal(t, 8, l.Len())
}

func TestTickRemovesAfterExactTicks(t *testing.T) {
	l := NewLedger()
	l.Apply(Vulnerable, 2)

	l.TickTurnEnd()
	assert.Equal(t, 1, l.Get(Vulnerable))

	l.TickTurnEnd()
	assert.Equal(t, 0, l.Get(Vulnerable))
	assert.Equal(t, 0, l.Len(), "entry should be deleted at zero")
}

func TestTickLeavesNegativeNonPermanent(t *testing.T) {
	l := NewLedger()
	l.Apply(Weak, -2)
	l.TickTurnEnd()
	assert.Equal(t, -2, l.Get(Weak))
}

func TestStartOfTurnRitual(t *testing.T) {
	l := NewLedger()
	l.Apply(Ritual, 2)

	actions := l.StartOfTurn()
	require.Len(t, actions, 1)
	assert.Equal(t, Action{Kind: ActionApplyStatus, Status: Strength, Value: 2}, actions[0])
	assert.Equal(t, 2, l.Get(Ritual), "ritual is not decremented")
	assert.Equal(t, 0, l.Get(Strength), "ledger does not apply its own actions")
}

func TestStartOfTurnPoison(t *testing.T) {
	l := NewLedger()
	l.Apply(Poison, 3)

	actions := l.StartOfTurn()
	require.Len(t, actions, 1)
	assert.Equal(t, Action{Kind: ActionDamage, Value: 3}, actions[0])
	assert.Equal(t, 2, l.Get(Poison))
}

func TestStartOfTurnPoisonRemovedAtZero(t *testing.T) {
	l := NewLedger()
	l.Apply(Poison, 1)
	l.StartOfTurn()
	assert.Equal(t, 0, l.Len())
}

func TestStartOfTurnOrder(t *testing.T) {
	l := NewLedger()
	l.Apply(Poison, 1)
	l.Apply(Ritual, 1)

	actions := l.StartOfTurn()
	require.Len(t, actions, 2)
	assert.Equal(t, ActionApplyStatus, actions[0].Kind)
	assert.Equal(t, ActionDamage, actions[1].Kind)
}

func TestEndOfTurnRegen(t *testing.T) {
	l := NewLedger()
	l.Apply(Regen, 4)

	actions := l.EndOfTurn()
	require.Len(t, actions, 1)
	assert.Equal(t, Action{Kind: ActionHeal, Value: 4}, actions[0])
	assert.Equal(t, 3, l.Get(Regen))
}

func TestEndOfTurnMetallicizeAndBurn(t *testing.T) {
	l := NewLedger()
	l.Apply(Metallicize, 3)
	l.Apply(Burn, 2)

	actions := l.EndOfTurn()
	require.Len(t, actions, 2)
	assert.Equal(t, Action{Kind: ActionBlock, Value: 3}, actions[0])
	assert.Equal(t, Action{Kind: ActionDamage, Value: 2}, actions[1])
	assert.Equal(t, 3, l.Get(Metallicize))
	assert.Equal(t, 1, l.Get(Burn))
}

func TestConsume(t *testing.T) {
	l := NewLedger()
	assert.False(t, l.Consume(Artifact))

	l.Apply(Artifact, 2)
	assert.True(t, l.Consume(Artifact))
	assert.Equal(t, 1, l.Get(Artifact))
	assert.True(t, l.Consume(Artifact))
	assert.Equal(t, 0, l.Len())
}

func TestRemoveAndClear(t *testing.T) {
	l := NewLedger()
	l.Apply(Weak, 1)
	l.Apply(Frail, 1)

	l.Remove(Weak)
	assert.False(t, l.Has(Weak))
	assert.True(t, l.Has(Frail))

	l.Clear()
	assert.Equal(t, 0, l.Len())
}

func TestAllOrdered(t *testing.T) {
	l := NewLedger()
	l.Apply(Poison, 1)
	l.Apply(Strength, 1)
	l.Apply(Vulnerable, 1)

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, Strength, all[0].Status)
	assert.Equal(t, Vulnerable, all[1].Status)
	assert.Equal(t, Poison, all[2].Status)
}

func TestStatusTable(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		permanent bool
		debuff    bool
	}{
		{"strength", Strength, true, false},
		{"artifact", Artifact, true, false},
		{"plated_armor", PlatedArmor, true, false},
		{"vulnerable", Vulnerable, false, true},
		{"draw_reduction", DrawReduction, false, true},
		{"regen", Regen, false, false},
		{"confused", Confused, false, true},
	}

	for _, tt := range tests {
		s, ok := Parse(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.status, s)
		assert.Equal(t, tt.name, s.String())
		assert.Equal(t, tt.permanent, s.Permanent(), tt.name)
		assert.Equal(t, tt.debuff, s.Debuff(), tt.name)
	}
}

func TestParseUnknown(t *testing.T) {
	_, ok := Parse("sleepy")
	assert.False(t, ok)
	_, ok = Parse("none")
	assert.False(t, ok)

	var s Status
	assert.Error(t, s.UnmarshalText([]byte("sleepy")))
	require.NoError(t, s.UnmarshalText([]byte("weak")))
	assert.Equal(t, Weak, s)
}
