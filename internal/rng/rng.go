// Package rng provides the deterministic random source used by combat.
package rng

// Source produces uniformly distributed floats in [0, 1).
// Everything else in this package is derived from Next, so a test fake
// only needs to script the values it returns.
type Source interface {
	Next() float64
}

// Seeded is a Mulberry32 generator. The same seed always yields the same
// sequence of values.
type Seeded struct {
	state uint32
}

// NewSeeded creates a generator from a seed. Only the low 32 bits are used.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{state: uint32(seed)}
}

// Next returns the next float in [0, 1).
func (s *Seeded) Next() float64 {
	s.state += 0x6D2B79F5
	t := (s.state ^ (s.state >> 15)) * (1 | s.state)
	t = (t + (t^(t>>7))*(61|t)) ^ t
	return float64(t^(t>>14)) / 4294967296
}

// NextInt returns an integer in [min, max] inclusive.
func (s *Seeded) NextInt(min, max int) int {
	return IntBetween(s, min, max)
}

// NextFloat returns a float in [min, max).
func (s *Seeded) NextFloat(min, max float64) float64 {
	return s.Next()*(max-min) + min
}

// IntBetween returns floor(Next() * (max-min+1)) + min.
func IntBetween(src Source, min, max int) int {
	return int(src.Next()*float64(max-min+1)) + min
}

// Shuffle returns a shuffled copy of items using Fisher-Yates from the end.
// The input slice is not modified.
func Shuffle[T any](src Source, items []T) []T {
	result := make([]T, len(items))
	copy(result, items)
	for i := len(result) - 1; i > 0; i-- {
		j := int(src.Next() * float64(i+1))
		result[i], result[j] = result[j], result[i]
	}
	return result
}

// WeightedChoice picks an item with probability proportional to its weight.
// The roll is scanned in slice order; if rounding leaves part of the roll
// unconsumed the last item is returned. An empty slice yields the zero value.
func WeightedChoice[T any](src Source, items []T, weights []int) T {
	var zero T
	if len(items) == 0 {
		return zero
	}

	total := 0
	for _, w := range weights {
		total += w
	}

	roll := src.Next() * float64(total)
	for i := range items {
		if i < len(weights) {
			roll -= float64(weights[i])
		}
		if roll <= 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}
