package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
)

// EntityUsecase manages the tenant catalog and its policies.
type EntityUsecase struct {
	entityRepo EntityRepository
	policyRepo PolicyRepository
	txManager  TransactionManager
}

func NewEntityUsecase(entityRepo EntityRepository, policyRepo PolicyRepository, txManager TransactionManager) *EntityUsecase {
	return &EntityUsecase{
		entityRepo: entityRepo,
		policyRepo: policyRepo,
		txManager:  txManager,
	}
}

// List returns every onboarded entity.
func (u *EntityUsecase) List(ctx context.Context) ([]*domain.Entity, error) {
	entities, err := u.entityRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w", err)
	}
	return entities, nil
}

// Get returns one entity by id.
func (u *EntityUsecase) Get(ctx context.Context, id string) (*domain.Entity, error) {
	return u.entityRepo.GetByID(ctx, id)
}

// Policy returns the entity's investment policy.
func (u *EntityUsecase) Policy(ctx context.Context, entityID string) (*domain.Policy, error) {
	return u.policyRepo.GetByEntity(ctx, entityID)
}

// Seed onboards an entity with its policy if it is not already present. It is
// safe to call on every startup.
func (u *EntityUsecase) Seed(ctx context.Context, entityID, legalName string, policy *domain.Policy) error {
	_, err := u.entityRepo.GetByID(ctx, entityID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrEntityNotFound) {
		return fmt.Errorf("load entity: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	entity := &domain.Entity{
		ID:        entityID,
		LegalName: legalName,
		CreatedAt: time.Now().UTC(),
	}
	if err := u.entityRepo.Save(ctx, tx, entity); err != nil {
		return fmt.Errorf("save entity: %w", err)
	}
	if err := u.policyRepo.Save(ctx, tx, entityID, policy); err != nil {
		return fmt.Errorf("save policy: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
