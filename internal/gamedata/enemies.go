package gamedata

// Tier is the enemy category. It affects presentation, not combat rules.
type Tier string

const (
	TierNormal Tier = "normal"
	TierElite  Tier = "elite"
	TierBoss   Tier = "boss"
)

// Intent is the telegraphed kind of an enemy action.
type Intent string

const (
	IntentAttack       Intent = "attack"
	IntentDefend       Intent = "defend"
	IntentBuff         Intent = "buff"
	IntentDebuff       Intent = "debuff"
	IntentAttackDefend Intent = "attack_defend"
	IntentAttackDebuff Intent = "attack_debuff"
	IntentUnknown      Intent = "unknown"
)

// ConditionType gates whether an action may be selected.
type ConditionType string

const (
	// ConditionNotConsecutive forbids repeating ActionID back to back.
	ConditionNotConsecutive ConditionType = "not_consecutive"
	// ConditionHPBelowPercent requires hp/maxHp*100 < Value.
	ConditionHPBelowPercent ConditionType = "hp_below_percent"
	// ConditionFirstTurn requires the enemy not to have acted yet.
	ConditionFirstTurn ConditionType = "first_turn"
)

// Condition is one selection requirement on an action.
type Condition struct {
	Type     ConditionType `yaml:"type"`
	ActionID string        `yaml:"actionId"`
	Value    int           `yaml:"value"`
}

// TriggerType decides when a phase becomes active.
type TriggerType string

const (
	TriggerStart          TriggerType = "start"
	TriggerHPBelowPercent TriggerType = "hp_below_percent"
)

// Trigger is the activation condition of a phase.
type Trigger struct {
	Type  TriggerType `yaml:"type"`
	Value int         `yaml:"value"`
}

// Action is one entry of an enemy behavior pattern.
type Action struct {
	ID         string      `yaml:"id"`
	Intent     Intent      `yaml:"intent"`
	Weight     int         `yaml:"weight"`
	Effects    []Effect    `yaml:"effects"`
	Conditions []Condition `yaml:"conditions"`
}

// IntendedDamage returns the total damage the action telegraphs before any
// strength or status modifiers.
func (a *Action) IntendedDamage() int {
	total := 0
	for _, e := range a.Effects {
		if e.Kind == EffectDamage {
			total += e.Value * e.Hits()
		}
	}
	return total
}

// Behavior is a flat, phase-less pattern.
type Behavior struct {
	Pattern []Action `yaml:"pattern"`
}

// Phase is a pattern that becomes active once its trigger holds.
type Phase struct {
	Name    string   `yaml:"name"`
	Trigger Trigger  `yaml:"trigger"`
	Pattern []Action `yaml:"pattern"`
}

// HPRange bounds the rolled maximum HP of an enemy.
type HPRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// EnemyDef defines an enemy type loaded from YAML.
type EnemyDef struct {
	ID       string    `yaml:"id"`
	Name     string    `yaml:"name"`
	Tier     Tier      `yaml:"tier"`
	HP       HPRange   `yaml:"hp"`
	Behavior *Behavior `yaml:"behavior"`
	Phases   []Phase   `yaml:"phases"`
}

// HasPhases reports whether the enemy switches patterns by phase.
func (e *EnemyDef) HasPhases() bool {
	return len(e.Phases) > 0
}

// Formation is a weighted group of enemies fought together.
type Formation struct {
	Enemies []string `yaml:"enemies"`
	Weight  int      `yaml:"weight"`
}

// EnemiesFile represents the structure of enemies.yaml.
type EnemiesFile struct {
	Enemies    []EnemyDef  `yaml:"enemies"`
	Formations []Formation `yaml:"formations"`
}

// LoadEnemies loads enemy definitions and formations from the embedded enemies.yaml file.
func LoadEnemies() (EnemiesFile, error) {
	return Load[EnemiesFile]("enemies.yaml")
}
