package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// AuditRepo persists the append-only audit document.
type AuditRepo struct {
	backend Backend
}

func NewAuditRepo(backend Backend) *AuditRepo {
	return &AuditRepo{backend: backend}
}

func (r *AuditRepo) ListByEntity(ctx context.Context, entityID string) ([]*domain.AuditEntry, error) {
	data, err := r.backend.Load(ctx, KeyAudit)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyAudit, err)
	}
	entries, err := decodeAudit(data)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.AuditEntry, 0, len(entries))
	for _, e := range entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *AuditRepo) Append(ctx context.Context, tx usecase.Transaction, entry *domain.AuditEntry) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}
	data, err := t.get(ctx, KeyAudit)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyAudit, err)
	}
	entries, err := decodeAudit(data)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	out, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyAudit, err)
	}
	return t.put(KeyAudit, out)
}

func decodeAudit(data []byte) ([]*domain.AuditEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []*domain.AuditEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyAudit, err)
	}
	return entries, nil
}
