package recognition

import (
	"sort"
	"sync"
)

// Store holds recognitions in memory, keyed by id. Records are append-only;
// Put replaces by id but nothing in the service ever rewrites an existing
// recognition. All methods are safe for concurrent callers and list methods
// return point-in-time snapshots.
type Store struct {
	mu           sync.RWMutex
	recognitions map[string]Recognition
}

func NewStore() *Store {
	return &Store{recognitions: map[string]Recognition{}}
}

func (s *Store) Put(rec Recognition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recognitions[rec.ID] = rec
}

func (s *Store) ByID(id string) (Recognition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.recognitions[id]
	return rec, ok
}

func (s *Store) All() []Recognition {
	return s.snapshot(func(Recognition) bool { return true })
}

func (s *Store) ByRecipient(recipientID string) []Recognition {
	return s.snapshot(func(r Recognition) bool { return r.RecipientID == recipientID })
}

func (s *Store) BySender(senderID string) []Recognition {
	return s.snapshot(func(r Recognition) bool { return r.SenderID == senderID })
}

func (s *Store) snapshot(keep func(Recognition) bool) []Recognition {
	s.mu.RLock()
	out := make([]Recognition, 0, len(s.recognitions))
	for _, rec := range s.recognitions {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
