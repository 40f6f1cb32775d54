package model

import "time"

// Roster is a finished team produced by one build attempt.
type Roster struct {
	ID         int64
	Seed       uint64
	Attempt    int
	Creatures  []*Creature
	Strategies []string
	Unresolved int // requirement groups still open after the last creature
	CreatedAt  time.Time
}

// Size returns the number of creatures.
func (r *Roster) Size() int {
	return len(r.Creatures)
}
