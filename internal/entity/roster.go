package entity

// Roster is the ordered list of enemies in one combat. Order is the enemy
// turn order.
type Roster []*Enemy

// Alive returns the living enemies in roster order.
func (r Roster) Alive() []*Enemy {
	var out []*Enemy
	for _, e := range r {
		if e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// AliveCount returns the number of living enemies.
func (r Roster) AliveCount() int {
	n := 0
	for _, e := range r {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// FirstAlive returns the first living enemy, or nil.
func (r Roster) FirstAlive() *Enemy {
	for _, e := range r {
		if e.IsAlive() {
			return e
		}
	}
	return nil
}

// AllDead reports whether every enemy has zero HP. An empty roster counts
// as all dead.
func (r Roster) AllDead() bool {
	return r.AliveCount() == 0
}

// ByInstanceID returns the enemy with the given instance id, or nil.
func (r Roster) ByInstanceID(id string) *Enemy {
	for _, e := range r {
		if e.InstanceID == id {
			return e
		}
	}
	return nil
}
