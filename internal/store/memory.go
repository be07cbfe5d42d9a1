package store

import (
	"context"
	"sync"

	"github.com/mgpai22/lyrico/internal/lyric"
)

// MemoryStore keeps the active document in process memory. Get returns the
// stored pointer; callers that want isolation clone it.
type MemoryStore struct {
	mu       sync.RWMutex
	doc      *lyric.Document
	saveName string
}

func NewMemoryStore(saveName string) *MemoryStore {
	return &MemoryStore{doc: &lyric.Document{}, saveName: saveName}
}

func (s *MemoryStore) Get(ctx context.Context) (*lyric.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, nil
}

// Set replaces the document wholesale; the last writer wins.
func (s *MemoryStore) Set(ctx context.Context, doc *lyric.Document) error {
	if doc == nil {
		doc = &lyric.Document{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	return nil
}

func (s *MemoryStore) SaveName(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveName, nil
}

func (s *MemoryStore) SetSaveName(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveName = name
	return nil
}

func (s *MemoryStore) Close() error { return nil }
