package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// PolicyRepo persists per-entity policies as one keyed document.
type PolicyRepo struct {
	backend Backend
}

func NewPolicyRepo(backend Backend) *PolicyRepo {
	return &PolicyRepo{backend: backend}
}

func (r *PolicyRepo) GetByEntity(ctx context.Context, entityID string) (*domain.Policy, error) {
	data, err := r.backend.Load(ctx, KeyPolicies)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyPolicies, err)
	}
	policies, err := decodePolicies(data)
	if err != nil {
		return nil, err
	}
	policy, ok := policies[entityID]
	if !ok {
		return nil, domain.ErrPolicyNotFound
	}
	return policy, nil
}

func (r *PolicyRepo) Save(ctx context.Context, tx usecase.Transaction, entityID string, policy *domain.Policy) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}
	data, err := t.get(ctx, KeyPolicies)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyPolicies, err)
	}
	policies, err := decodePolicies(data)
	if err != nil {
		return err
	}

	policies[entityID] = policy
	out, err := json.Marshal(policies)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyPolicies, err)
	}
	return t.put(KeyPolicies, out)
}

func decodePolicies(data []byte) (map[string]*domain.Policy, error) {
	if len(data) == 0 {
		return map[string]*domain.Policy{}, nil
	}
	var policies map[string]*domain.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyPolicies, err)
	}
	if policies == nil {
		policies = map[string]*domain.Policy{}
	}
	return policies, nil
}
