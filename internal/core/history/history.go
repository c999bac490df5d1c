package history

import (
	"errors"
	"sync"
	"time"

	"github.com/zeusync/inspect/internal/core/observability/log"
	"github.com/zeusync/inspect/internal/core/serialization"
)

var (
	// ErrEmpty is returned by Undo when nothing was recorded.
	ErrEmpty = errors.New("history is empty")
	// ErrNoSnapshot is returned by Revert for a slot that was never recorded.
	ErrNoSnapshot = errors.New("no snapshot for slot")
)

// Entry describes one recorded value.
type Entry struct {
	Path  string
	Hash  uint64
	Value any
	At    time.Time
}

type record struct {
	slot serialization.Slot
	Entry
}

// Stack records deep copies of slot values so edits can be rolled back.
// Snapshots of game object and resource references keep pointing at the
// originals.
type Stack struct {
	mu      sync.Mutex
	records []record
	counts  map[uint64]int // Path.Hash -> live records
	limit   int
	log     log.Log
}

// NewStack creates a stack keeping at most limit records; zero means unbounded.
func NewStack(limit int, logger log.Log) *Stack {
	return &Stack{
		counts: make(map[uint64]int),
		limit:  limit,
		log:    logger.With(log.String("component", "history")),
	}
}

// Snapshot records the current value of slot.
func (s *Stack) Snapshot(slot serialization.Slot) error {
	value, err := serialization.GetValueCopy[any](slot)
	if err != nil {
		return err
	}

	path := slot.Path()
	r := record{
		slot: slot,
		Entry: Entry{
			Path:  path.String(),
			Hash:  path.Hash(),
			Value: value,
			At:    time.Now(),
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, r)
	s.counts[r.Hash]++
	if s.limit > 0 && len(s.records) > s.limit {
		s.drop(0)
	}

	s.log.Debug("snapshot recorded",
		log.String("path", r.Path),
		log.Uint64("hash", r.Hash),
		log.Int("depth", len(s.records)),
	)
	return nil
}

// Undo restores the most recent snapshot and removes it. It returns the path
// of the restored slot.
func (s *Stack) Undo() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return "", ErrEmpty
	}
	last := len(s.records) - 1
	r := s.records[last]
	if err := serialization.SetValue(r.slot, r.Value); err != nil {
		return "", err
	}
	s.drop(last)
	return r.Path, nil
}

// Revert restores the most recent snapshot taken at slot's path and discards
// every snapshot of that path.
func (s *Stack) Revert(slot serialization.Slot) error {
	hash := slot.Path().Hash()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.counts[hash] == 0 {
		return ErrNoSnapshot
	}

	for idx := len(s.records) - 1; idx >= 0; idx-- {
		if s.records[idx].Hash != hash {
			continue
		}
		if err := serialization.SetValue(slot, s.records[idx].Value); err != nil {
			return err
		}
		break
	}

	kept := s.records[:0]
	for _, r := range s.records {
		if r.Hash != hash {
			kept = append(kept, r)
		}
	}
	clear(s.records[len(kept):])
	s.records = kept
	delete(s.counts, hash)

	s.log.Debug("slot reverted", log.String("path", slot.Path().String()))
	return nil
}

// Len returns the number of recorded snapshots.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Entries returns the recorded snapshots, oldest first.
func (s *Stack) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.records))
	for i, r := range s.records {
		out[i] = r.Entry
	}
	return out
}

func (s *Stack) drop(idx int) {
	hash := s.records[idx].Hash
	if s.counts[hash]--; s.counts[hash] <= 0 {
		delete(s.counts, hash)
	}
	s.records = append(s.records[:idx], s.records[idx+1:]...)
}
