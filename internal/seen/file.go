package seen

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"sync"
)

// FileStore keeps seen ids in memory and mirrors them into a JSON array on
// disk. The whole file is rewritten on every insert; cycle volume is bounded
// by the fetch limit, so the O(n) write stays cheap. If the write fails the
// in-memory set remains authoritative for the rest of the process lifetime.
type FileStore struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}
}

// NewFileStore loads the persisted set from path. A missing or corrupt file
// starts an empty set.
func NewFileStore(path string) *FileStore {
	ids := make(map[string]struct{})
	if raw, err := os.ReadFile(path); err == nil {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, id := range list {
				ids[id] = struct{}{}
			}
		} else {
			slog.Warn("seen ids file is corrupt, starting empty", "path", path, "error", err)
		}
	}
	return &FileStore{path: path, ids: ids}
}

func (s *FileStore) IsSeen(_ context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

func (s *FileStore) MarkSeen(_ context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.flush()
}

// flush rewrites the full set to disk. Caller holds the lock.
func (s *FileStore) flush() {
	list := make([]string, 0, len(s.ids))
	for id := range s.ids {
		list = append(list, id)
	}
	sort.Strings(list)

	raw, err := json.Marshal(list)
	if err != nil {
		slog.Error("marshal seen ids", "error", err)
		return
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		slog.Error("persist seen ids", "path", s.path, "error", err)
	}
}

// Len reports the number of recorded ids.
func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
