package docstore

import "context"

// Backend stores named JSON documents. Implementations must make Save atomic
// across all documents in one call: either every document is persisted or
// none is.
type Backend interface {
	// Load returns the document bytes for a key, or nil when the document
	// does not exist yet.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save persists every document in the map atomically.
	Save(ctx context.Context, docs map[string][]byte) error

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
