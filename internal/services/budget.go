package services

import "sync"

// Budget tracks the running narrative-generation spend for the process
// lifetime against a fixed ceiling. Spend only ever increases; the total
// resets only when the process restarts.
type Budget struct {
	mu      sync.Mutex
	ceiling float64
	spent   float64
}

// NewBudget creates a budget with the given ceiling in dollars.
func NewBudget(ceiling float64) *Budget {
	return &Budget{ceiling: ceiling}
}

// Remaining returns the spend still permitted under the ceiling.
func (b *Budget) Remaining() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ceiling - b.spent
}

// Charge adds cost to the running total. Non-positive costs are ignored so
// a failed narrative call never moves the total.
func (b *Budget) Charge(cost float64) {
	if cost <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.spent += cost
}

// Spent returns the running total charged so far.
func (b *Budget) Spent() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spent
}
