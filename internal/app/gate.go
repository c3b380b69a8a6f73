package app

import (
	"fmt"
	"sync"
)

// DeleteConfirmations is how many consecutive confirmations a hotel delete needs.
const DeleteConfirmations = 3

var deletePrompts = [...]string{
	"Are you sure you want to delete this hotel?",
	"This will remove all rooms, bookings and employees. Continue?",
	"Last chance: the hotel cannot be restored. Delete it?",
}

// ConfirmationGate is a counter 0..n-1. Each Confirm advances it; the nth
// confirmation fires and resets. Any decline resets to zero.
type ConfirmationGate struct {
	mu   sync.Mutex
	n    int
	step int
}

func NewConfirmationGate(n int) *ConfirmationGate {
	if n < 1 {
		n = 1
	}
	return &ConfirmationGate{n: n}
}

// Confirm records one confirmation and reports whether the action should fire now.
func (g *ConfirmationGate) Confirm() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.step++
	if g.step >= g.n {
		g.step = 0
		return true
	}
	return false
}

func (g *ConfirmationGate) Reset() {
	g.mu.Lock()
	g.step = 0
	g.mu.Unlock()
}

func (g *ConfirmationGate) Step() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.step
}

func (g *ConfirmationGate) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n - g.step
}

// Prompt is the question shown for the next confirmation.
func (g *ConfirmationGate) Prompt() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.n == DeleteConfirmations {
		return deletePrompts[g.step]
	}
	return fmt.Sprintf("Confirm (%d of %d)?", g.step+1, g.n)
}
