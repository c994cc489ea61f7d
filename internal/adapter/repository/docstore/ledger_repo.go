package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// LedgerRepo persists the ledger document. Entries across all entities share
// one document; reads filter by entity id.
type LedgerRepo struct {
	backend Backend
}

func NewLedgerRepo(backend Backend) *LedgerRepo {
	return &LedgerRepo{backend: backend}
}

func (r *LedgerRepo) ListByEntity(ctx context.Context, entityID string) ([]*domain.LedgerEntry, error) {
	data, err := r.backend.Load(ctx, KeyLedger)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyLedger, err)
	}
	entries, err := decodeLedger(data)
	if err != nil {
		return nil, err
	}
	return filterLedger(entries, entityID), nil
}

func (r *LedgerRepo) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.LedgerEntry, error) {
	entries, _, err := r.loadTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return filterLedger(entries, entityID), nil
}

func (r *LedgerRepo) Append(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	entries, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return r.store(t, entries)
}

func (r *LedgerRepo) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	entries, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	for i, existing := range entries {
		if existing.ID == entry.ID {
			entries[i] = entry
			return r.store(t, entries)
		}
	}
	return domain.ErrLedgerEntryNotFound
}

func (r *LedgerRepo) loadTx(ctx context.Context, tx usecase.Transaction) ([]*domain.LedgerEntry, *Tx, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, nil, err
	}
	data, err := t.get(ctx, KeyLedger)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", KeyLedger, err)
	}
	entries, err := decodeLedger(data)
	if err != nil {
		return nil, nil, err
	}
	return entries, t, nil
}

func (r *LedgerRepo) store(t *Tx, entries []*domain.LedgerEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyLedger, err)
	}
	return t.put(KeyLedger, data)
}

func decodeLedger(data []byte) ([]*domain.LedgerEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []*domain.LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyLedger, err)
	}
	return entries, nil
}

func filterLedger(entries []*domain.LedgerEntry, entityID string) []*domain.LedgerEntry {
	out := make([]*domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out
}
