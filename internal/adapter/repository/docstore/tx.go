package docstore

import (
	"context"
	"errors"
	"sync"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

var (
	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("docstore: transaction already committed or rolled back")

	// ErrInvalidTx is returned when a repository receives a transaction that
	// did not come from this store's manager.
	ErrInvalidTx = errors.New("docstore: transaction is not a docstore transaction")
)

// Tx stages document reads and writes. Reads see the transaction's own staged
// writes; Commit persists all staged documents in one backend call, and a
// transaction that staged nothing commits as a no-op without touching the
// backend.
type Tx struct {
	backend Backend

	mu     sync.Mutex
	reads  map[string][]byte
	writes map[string][]byte
	done   bool
}

func (t *Tx) get(ctx context.Context, key string) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil, ErrTxDone
	}
	if data, ok := t.writes[key]; ok {
		return data, nil
	}
	if data, ok := t.reads[key]; ok {
		return data, nil
	}

	data, err := t.backend.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	t.reads[key] = data
	return data, nil
}

func (t *Tx) put(key string, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return ErrTxDone
	}
	t.writes[key] = data
	return nil
}

// Commit persists every staged write atomically.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return ErrTxDone
	}
	t.done = true

	if len(t.writes) == 0 {
		return nil
	}
	return t.backend.Save(ctx, t.writes)
}

// Rollback discards the staged writes. Rolling back a finished transaction is
// a no-op, so it is safe to defer unconditionally.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true
	t.writes = nil
	return nil
}

// TxManager begins document-store transactions.
type TxManager struct {
	backend Backend
}

func NewTxManager(backend Backend) *TxManager {
	return &TxManager{backend: backend}
}

func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		backend: m.backend,
		reads:   make(map[string][]byte),
		writes:  make(map[string][]byte),
	}, nil
}

// txFrom unwraps the store's own transaction type.
func txFrom(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, ErrInvalidTx
	}
	return t, nil
}
