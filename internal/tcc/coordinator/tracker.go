package coordinator

import (
	"sync"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

// stateTracker keeps the coordinator's advisory view of every transaction it handled.
type stateTracker struct {
	mu     sync.Mutex
	states map[model.TxID]model.TaskState
}

func newStateTracker() *stateTracker {
	return &stateTracker{states: make(map[model.TxID]model.TaskState)}
}

func (t *stateTracker) set(id model.TxID, state model.TaskState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[id] = state
}

func (t *stateTracker) get(id model.TxID) (model.TaskState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.states[id]
	return s, ok
}

func (t *stateTracker) counts() map[model.TaskState]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[model.TaskState]int)
	for _, s := range t.states {
		out[s]++
	}
	return out
}
