package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/deckbound/internal/entity"
	"github.com/samdwyer/deckbound/internal/event"
	"github.com/samdwyer/deckbound/internal/gamedata"
	"github.com/samdwyer/deckbound/internal/status"
)

func newTestEnemy(hp, block int) *entity.Enemy {
	return &entity.Enemy{InstanceID: "dummy-1", Name: "Dummy", HP: hp, MaxHP: hp, Block: block, Status: status.NewLedger()}
}

func damageCard(value, times int, target gamedata.Target) *entity.Card {
	return &entity.Card{
		InstanceID: "card-1",
		Type:       gamedata.CardAttack,
		EnergyCost: 1,
		Effects:    []gamedata.Effect{{Kind: gamedata.EffectDamage, Value: value, Times: times, Target: target}},
	}
}

func TestCanPlay(t *testing.T) {
	r := NewEffectResolver(nil)

	tests := []struct {
		name   string
		card   *entity.Card
		energy int
		want   bool
	}{
		{"affordable", &entity.Card{EnergyCost: 1}, 3, true},
		{"exact", &entity.Card{EnergyCost: 3}, 3, true},
		{"too expensive", &entity.Card{EnergyCost: 2}, 1, false},
		{"unplayable", &entity.Card{EnergyCost: 0, Keywords: gamedata.Unplayable}, 3, false},
		{"nil", nil, 3, false},
	}
	for _, tt := range tests {
		if got := r.CanPlay(tt.card, Pool{Energy: tt.energy}); got != tt.want {
			t.Errorf("%s: CanPlay = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveDamageWithStrengthVulnerableAndBlock(t *testing.T) {
	rec := &event.Recorder{}
	r := NewEffectResolver(rec)
	ledger := status.NewLedger()
	ledger.Apply(status.Strength, 2)
	target := newTestEnemy(20, 5)
	target.Status.Apply(status.Vulnerable, 1)

	card := damageCard(6, 0, gamedata.TargetSingleEnemy)
	res := r.Resolve(card, Pool{Energy: 3}, target, ledger)

	assert.Equal(t, 1, res.EnergyCost)
	require.Len(t, res.Results, 1)
	hit := res.Results[0].Hits
	require.Len(t, hit, 1)
	assert.Equal(t, 12, hit[0].Damage)
	assert.Equal(t, 5, hit[0].Blocked)
	assert.Equal(t, 7, hit[0].HPLoss)
	assert.Equal(t, 13, hit[0].TargetHP)
	assert.Equal(t, 7, res.Results[0].Total)
	assert.Equal(t, 0, target.Block)
	assert.Equal(t, 13, target.HP)

	require.Equal(t, 1, rec.Count(event.CardPlayed))
	payload, ok := rec.Events[0].Data.(PlayedPayload)
	require.True(t, ok)
	assert.Same(t, card, payload.Card)
	assert.Equal(t, res.Results, payload.Results)
}

func TestResolveDamageModifiers(t *testing.T) {
	tests := []struct {
		name     string
		effect   gamedata.Effect
		strength int
		weak     bool
		block    int
		want     int
	}{
		{"plain", gamedata.Effect{Value: 6}, 0, false, 0, 6},
		{"strength", gamedata.Effect{Value: 6}, 3, false, 0, 9},
		{"weak floors", gamedata.Effect{Value: 6}, 1, true, 0, 5},
		{"block scaling", gamedata.Effect{Value: 0, Scaling: []gamedata.Scaling{{Stat: gamedata.StatBlock, Multiplier: 1}}}, 0, false, 11, 11},
		{"strength scaling", gamedata.Effect{Value: 14, Scaling: []gamedata.Scaling{{Stat: gamedata.StatStrength, Multiplier: 2}}}, 2, false, 0, 20},
		{"negative strength", gamedata.Effect{Value: 1}, -3, true, 0, -2},
	}

	for _, tt := range tests {
		ledger := status.NewLedger()
		if tt.strength != 0 {
			ledger.Apply(status.Strength, tt.strength)
		}
		if tt.weak {
			ledger.Apply(status.Weak, 1)
		}
		tt.effect.Kind = gamedata.EffectDamage
		if got := BaseDamage(tt.effect, Pool{Block: tt.block}, ledger); got != tt.want {
			t.Errorf("%s: BaseDamage = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestResolveMultiHit(t *testing.T) {
	r := NewEffectResolver(nil)
	target := newTestEnemy(20, 3)

	res := r.Resolve(damageCard(5, 2, gamedata.TargetSingleEnemy), Pool{Energy: 1}, target, status.NewLedger())
	hits := res.Results[0].Hits
	require.Len(t, hits, 2)
	assert.Equal(t, Hit{Damage: 5, Blocked: 3, HPLoss: 2, TargetHP: 18}, hits[0])
	assert.Equal(t, Hit{Damage: 5, Blocked: 0, HPLoss: 5, TargetHP: 13}, hits[1])
	assert.Equal(t, 7, res.Results[0].Total)
}

func TestResolveAllEnemiesLeavesTargetUntouched(t *testing.T) {
	r := NewEffectResolver(nil)
	target := newTestEnemy(20, 4)
	target.Status.Apply(status.Vulnerable, 2)

	res := r.Resolve(damageCard(8, 0, gamedata.TargetAllEnemies), Pool{Energy: 1}, target, status.NewLedger())
	hits := res.Results[0].Hits
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{Damage: 8, HPLoss: 8}, hits[0])
	assert.Equal(t, 20, target.HP)
	assert.Equal(t, 4, target.Block)
}

func TestResolveWithoutTarget(t *testing.T) {
	r := NewEffectResolver(nil)
	res := r.Resolve(damageCard(6, 0, gamedata.TargetSingleEnemy), Pool{Energy: 1}, nil, status.NewLedger())
	assert.Equal(t, []Hit{{Damage: 6, HPLoss: 6}}, res.Results[0].Hits)
}

func TestResolveBlock(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		dexterity int
		frail     bool
		want      int
	}{
		{"plain", 5, 0, false, 5},
		{"dexterity", 5, 2, false, 7},
		{"frail floors", 5, 0, true, 3},
		{"dexterity then frail", 5, 2, true, 5},
		{"clamped", 2, -5, false, 0},
	}

	for _, tt := range tests {
		ledger := status.NewLedger()
		if tt.dexterity != 0 {
			ledger.Apply(status.Dexterity, tt.dexterity)
		}
		if tt.frail {
			ledger.Apply(status.Frail, 1)
		}
		card := &entity.Card{Effects: []gamedata.Effect{{Kind: gamedata.EffectBlock, Value: tt.value}}}
		res := NewEffectResolver(nil).Resolve(card, Pool{Energy: 3}, nil, ledger)
		if got := res.Results[0].Value; got != tt.want {
			t.Errorf("%s: block = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestResolvePassthroughEffects(t *testing.T) {
	card := &entity.Card{
		EnergyCost: 0,
		Effects: []gamedata.Effect{
			{Kind: gamedata.EffectApplyStatus, Status: status.Vulnerable, Value: 2, Target: gamedata.TargetSingleEnemy},
			{Kind: gamedata.EffectDraw, Value: 2},
			{Kind: gamedata.EffectGainEnergy, Value: 1},
			{Kind: gamedata.EffectHeal, Value: 4},
			{Kind: gamedata.EffectLoseHP, Value: 3},
			{Kind: gamedata.EffectOther, Name: "double_strength"},
		},
	}
	target := newTestEnemy(10, 0)

	res := NewEffectResolver(nil).Resolve(card, Pool{}, target, status.NewLedger())
	require.Len(t, res.Results, 6)
	assert.Equal(t, gamedata.EffectApplyStatus, res.Results[0].Kind)
	assert.Equal(t, status.Vulnerable, res.Results[0].Status)
	assert.Equal(t, gamedata.TargetSingleEnemy, res.Results[0].Target)
	assert.False(t, target.Status.Has(status.Vulnerable), "status is applied by the engine")
	assert.Equal(t, 2, res.Results[1].Value)
	assert.Equal(t, gamedata.EffectGainEnergy, res.Results[2].Kind)
	assert.Equal(t, gamedata.EffectHeal, res.Results[3].Kind)
	assert.Equal(t, gamedata.EffectLoseHP, res.Results[4].Kind)
	assert.Equal(t, "double_strength", res.Results[5].Name)
}

func TestPreviewDamage(t *testing.T) {
	r := NewEffectResolver(nil)
	ledger := status.NewLedger()
	ledger.Apply(status.Strength, 1)
	target := newTestEnemy(30, 10)
	target.Status.Apply(status.Vulnerable, 1)

	got := r.PreviewDamage(damageCard(5, 2, gamedata.TargetSingleEnemy), Pool{}, target, ledger)
	assert.Equal(t, 18, got)
	assert.Equal(t, 30, target.HP, "preview does not mutate")
	assert.Equal(t, 12, r.PreviewDamage(damageCard(5, 2, gamedata.TargetSingleEnemy), Pool{}, nil, ledger))
}

func TestIncomingDamage(t *testing.T) {
	weak := status.NewLedger()
	weak.Apply(status.Weak, 1)
	vulnerable := status.NewLedger()
	vulnerable.Apply(status.Vulnerable, 1)
	none := status.NewLedger()

	tests := []struct {
		name               string
		value              int
		attacker, defender *status.Ledger
		want               int
	}{
		{"plain", 10, none, none, 10},
		{"weak attacker", 10, weak, none, 7},
		{"vulnerable defender", 10, none, vulnerable, 15},
		{"weak then vulnerable", 10, weak, vulnerable, 10},
		{"nil ledgers", 9, nil, nil, 9},
	}
	for _, tt := range tests {
		if got := IncomingDamage(tt.value, tt.attacker, tt.defender); got != tt.want {
			t.Errorf("%s: IncomingDamage = %d, want %d", tt.name, got, tt.want)
		}
	}
}
