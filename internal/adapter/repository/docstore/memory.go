package docstore

import (
	"context"
	"sync"
)

// MemoryBackend keeps documents in process memory. It backs tests and
// throwaway environments.
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(_ context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (b *MemoryBackend) Save(_ context.Context, docs map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, data := range docs {
		stored := make([]byte, len(data))
		copy(stored, data)
		b.docs[key] = stored
	}
	return nil
}

func (b *MemoryBackend) Ping(context.Context) error { return nil }

func (b *MemoryBackend) Close() error { return nil }

// Snapshot copies the current documents, so a test can diff store state
// before and after an operation that must be a no-op.
func (b *MemoryBackend) Snapshot() map[string][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string][]byte, len(b.docs))
	for key, data := range b.docs {
		copied := make([]byte, len(data))
		copy(copied, data)
		out[key] = copied
	}
	return out
}
