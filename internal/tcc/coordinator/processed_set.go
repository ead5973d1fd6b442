package coordinator

import (
	"sync"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

// ProcessedSet remembers every transaction id the poller has handled during the
// process lifetime. It only grows until Reset.
type ProcessedSet struct {
	mu  sync.Mutex
	ids map[model.TxID]struct{}
}

func NewProcessedSet() *ProcessedSet {
	return &ProcessedSet{ids: make(map[model.TxID]struct{})}
}

// MarkIfNew inserts id and reports whether it was absent.
func (s *ProcessedSet) MarkIfNew(id model.TxID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *ProcessedSet) Contains(id model.TxID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *ProcessedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *ProcessedSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = make(map[model.TxID]struct{})
}
