package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/deckbound/internal/status"
)

var (
	ErrDuplicateID      = errors.New("duplicate definition id")
	ErrInvalidCard      = errors.New("invalid card definition")
	ErrInvalidEnemy     = errors.New("invalid enemy definition")
	ErrInvalidClass     = errors.New("invalid class definition")
	ErrInvalidFormation = errors.New("invalid formation")
)

// ValidateEffect checks that an effect carries the fields its kind needs.
func ValidateEffect(e Effect) error {
	switch e.Kind {
	case EffectApplyStatus:
		if e.Status == status.None {
			return errors.New("apply_status without status")
		}
	case EffectDamage:
		if e.Times < 0 {
			return fmt.Errorf("negative times %d", e.Times)
		}
	case EffectOther:
		if e.Name == "" {
			return errors.New("effect without type")
		}
	}
	return nil
}

// ValidateCard checks a single card definition.
func ValidateCard(c *CardDef) error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidCard)
	}
	switch c.Type {
	case CardAttack, CardSkill, CardPower, CardCurse, CardStatus:
	default:
		return fmt.Errorf("%w: %s: unknown type %q", ErrInvalidCard, c.ID, c.Type)
	}
	if c.EnergyCost < 0 {
		return fmt.Errorf("%w: %s: negative energy cost", ErrInvalidCard, c.ID)
	}
	for i, e := range c.Effects {
		if err := ValidateEffect(e); err != nil {
			return fmt.Errorf("%w: %s: effect %d: %v", ErrInvalidCard, c.ID, i, err)
		}
	}
	if c.Upgraded != nil {
		for i, e := range c.Upgraded.Effects {
			if err := ValidateEffect(e); err != nil {
				return fmt.Errorf("%w: %s: upgraded effect %d: %v", ErrInvalidCard, c.ID, i, err)
			}
		}
	}
	return nil
}

// ValidateEnemy checks a single enemy definition.
func ValidateEnemy(e *EnemyDef) error {
	if e.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEnemy)
	}
	if e.HP.Min <= 0 || e.HP.Max < e.HP.Min {
		return fmt.Errorf("%w: %s: bad hp range %d-%d", ErrInvalidEnemy, e.ID, e.HP.Min, e.HP.Max)
	}

	switch {
	case e.HasPhases():
		for i, p := range e.Phases {
			switch p.Trigger.Type {
			case TriggerStart, TriggerHPBelowPercent:
			default:
				return fmt.Errorf("%w: %s: phase %d: unknown trigger %q", ErrInvalidEnemy, e.ID, i, p.Trigger.Type)
			}
			if err := validatePattern(p.Pattern); err != nil {
				return fmt.Errorf("%w: %s: phase %d: %v", ErrInvalidEnemy, e.ID, i, err)
			}
		}
	case e.Behavior != nil:
		if err := validatePattern(e.Behavior.Pattern); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidEnemy, e.ID, err)
		}
	default:
		return fmt.Errorf("%w: %s: no behavior or phases", ErrInvalidEnemy, e.ID)
	}
	return nil
}

func validatePattern(pattern []Action) error {
	if len(pattern) == 0 {
		return errors.New("empty pattern")
	}
	for _, a := range pattern {
		if a.ID == "" {
			return errors.New("action without id")
		}
		if a.Weight < 0 {
			return fmt.Errorf("action %s: negative weight", a.ID)
		}
		for _, c := range a.Conditions {
			switch c.Type {
			case ConditionNotConsecutive, ConditionHPBelowPercent, ConditionFirstTurn:
			default:
				return fmt.Errorf("action %s: unknown condition %q", a.ID, c.Type)
			}
		}
		for i, e := range a.Effects {
			if err := ValidateEffect(e); err != nil {
				return fmt.Errorf("action %s: effect %d: %v", a.ID, i, err)
			}
		}
	}
	return nil
}

// ValidateClass checks a class against the card registry it draws from.
func ValidateClass(c *ClassDef, cards *CardRegistry) error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidClass)
	}
	if c.HP <= 0 || c.Energy < 0 || c.CardsPerDraw < 0 {
		return fmt.Errorf("%w: %s: bad stats", ErrInvalidClass, c.ID)
	}
	for _, entry := range c.StarterDeck {
		if cards.GetByID(entry.CardID) == nil {
			return fmt.Errorf("%w: %s: unknown card %q", ErrInvalidClass, c.ID, entry.CardID)
		}
	}
	return nil
}
