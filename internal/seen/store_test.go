package seen

import (
	"path/filepath"
	"testing"
)

func TestNewFallsBackToFileWhenRedisUnreachable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")

	store := New("redis://127.0.0.1:1/0", path)

	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected *FileStore fallback, got %T", store)
	}
}

func TestNewUsesFileWhenRedisUnconfigured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen_ids.json")

	store := New("", path)

	if _, ok := store.(*FileStore); !ok {
		t.Fatalf("expected *FileStore, got %T", store)
	}
}
