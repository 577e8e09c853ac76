package status

import "sort"

// ActionKind is the kind of effect a turn-boundary tick asks the owner to apply.
type ActionKind int

const (
	ActionApplyStatus ActionKind = iota
	ActionDamage
	ActionHeal
	ActionBlock
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionApplyStatus:
		return "apply_status"
	case ActionDamage:
		return "damage"
	case ActionHeal:
		return "heal"
	case ActionBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Action is emitted by StartOfTurn and EndOfTurn. The ledger never applies
// these itself; the owner of the ledger does.
type Action struct {
	Kind   ActionKind
	Value  int
	Status Status // ActionApplyStatus only
}

// Entry is one stacked status.
type Entry struct {
	Status    Status
	Value     int
	Permanent bool
}

// Ledger maps statuses to stack values for a single entity.
type Ledger struct {
	entries map[Status]*Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Status]*Entry)}
}

// Apply adds amount to an existing stack or creates a new one.
// Permanence is fixed from the status table when the entry is created.
func (l *Ledger) Apply(s Status, amount int) {
	if e, ok := l.entries[s]; ok {
		e.Value += amount
		return
	}
	l.entries[s] = &Entry{Status: s, Value: amount, Permanent: s.Permanent()}
}

// Get returns the current stack value, or 0 if absent.
func (l *Ledger) Get(s Status) int {
	if e, ok := l.entries[s]; ok {
		return e.Value
	}
	return 0
}

// Has reports whether the stack value is positive.
func (l *Ledger) Has(s Status) bool {
	return l.Get(s) > 0
}

// Remove deletes a status entirely.
func (l *Ledger) Remove(s Status) {
	delete(l.entries, s)
}

// Clear removes every status.
func (l *Ledger) Clear() {
	clear(l.entries)
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Consume decrements a stack by one, deleting it at zero.
// Returns false if the status was not active.
func (l *Ledger) Consume(s Status) bool {
	if !l.Has(s) {
		return false
	}
	l.decrement(s)
	return true
}

// All returns a copy of every entry ordered by status.
func (l *Ledger) All() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// StartOfTurn processes ritual and poison.
// Poison is decremented here, separately from TickTurnEnd.
func (l *Ledger) StartOfTurn() []Action {
	var actions []Action
	if ritual := l.Get(Ritual); ritual > 0 {
		actions = append(actions, Action{Kind: ActionApplyStatus, Status: Strength, Value: ritual})
	}
	if poison := l.Get(Poison); poison > 0 {
		actions = append(actions, Action{Kind: ActionDamage, Value: poison})
		l.decrement(Poison)
	}
	return actions
}

// EndOfTurn processes regen, metallicize and burn.
func (l *Ledger) EndOfTurn() []Action {
	var actions []Action
	if regen := l.Get(Regen); regen > 0 {
		actions = append(actions, Action{Kind: ActionHeal, Value: regen})
		l.decrement(Regen)
	}
	if metallicize := l.Get(Metallicize); metallicize > 0 {
		actions = append(actions, Action{Kind: ActionBlock, Value: metallicize})
	}
	if burn := l.Get(Burn); burn > 0 {
		actions = append(actions, Action{Kind: ActionDamage, Value: burn})
		l.decrement(Burn)
	}
	return actions
}

// TickTurnEnd decrements every positive non-permanent stack by one and
// removes stacks that reach zero.
func (l *Ledger) TickTurnEnd() {
	for s, e := range l.entries {
		if e.Permanent || e.Value <= 0 {
			continue
		}
		e.Value--
		if e.Value <= 0 {
			delete(l.entries, s)
		}
	}
}

func (l *Ledger) decrement(s Status) {
	e, ok := l.entries[s]
	if !ok {
		return
	}
	e.Value--
	if e.Value <= 0 {
		delete(l.entries, s)
	}
}
