package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// State of a Board: Idle until first loaded, Loading while fetching, then
// Populated or Degraded when at least one source fell back to empty.
type State int

const (
	Idle State = iota
	Loading
	Populated
	Degraded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Degraded:
		return "degraded"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Board is the dashboard view state of one viewer.
type Board struct {
	agg      *Aggregator
	viewerID string

	mu      sync.Mutex
	state   State
	summary Summary
}

func NewBoard(agg *Aggregator, viewerID string) *Board {
	return &Board{agg: agg, viewerID: viewerID, state: Idle}
}

func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Summary returns the last committed summary.
func (b *Board) Summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.summary
}

// Load refreshes the board. When ctx ends while fetching, nothing is
// committed: the board returns to the state it had before Load.
func (b *Board) Load(ctx context.Context) (Summary, error) {
	b.mu.Lock()
	prev := b.state
	b.state = Loading
	b.mu.Unlock()

	summary, err := b.agg.Aggregate(ctx, b.viewerID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = prev
		return Summary{}, err
	}
	b.state = summary.State
	b.summary = summary
	return summary, nil
}
