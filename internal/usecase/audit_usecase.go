package usecase

import (
	"context"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// AuditUsecase is the read side over the audit trail.
type AuditUsecase struct {
	auditRepo AuditRepository
}

func NewAuditUsecase(auditRepo AuditRepository) *AuditUsecase {
	return &AuditUsecase{auditRepo: auditRepo}
}

// List returns the entity's audit entries, newest first.
func (u *AuditUsecase) List(ctx context.Context, entityID string) ([]*domain.AuditEntry, error) {
	entries, err := u.auditRepo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
