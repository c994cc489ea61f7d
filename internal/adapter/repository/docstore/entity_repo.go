package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// EntityRepo persists the tenant catalog document.
type EntityRepo struct {
	backend Backend
}

func NewEntityRepo(backend Backend) *EntityRepo {
	return &EntityRepo{backend: backend}
}

func (r *EntityRepo) List(ctx context.Context) ([]*domain.Entity, error) {
	data, err := r.backend.Load(ctx, KeyEntities)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyEntities, err)
	}
	return decodeEntities(data)
}

func (r *EntityRepo) GetByID(ctx context.Context, id string) (*domain.Entity, error) {
	entities, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range entities {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrEntityNotFound
}

func (r *EntityRepo) Save(ctx context.Context, tx usecase.Transaction, entity *domain.Entity) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}
	data, err := t.get(ctx, KeyEntities)
	if err != nil {
		return fmt.Errorf("load %s: %w", KeyEntities, err)
	}
	entities, err := decodeEntities(data)
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range entities {
		if existing.ID == entity.ID {
			entities[i] = entity
			replaced = true
			break
		}
	}
	if !replaced {
		entities = append(entities, entity)
	}

	out, err := json.Marshal(entities)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyEntities, err)
	}
	return t.put(KeyEntities, out)
}

func decodeEntities(data []byte) ([]*domain.Entity, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entities []*domain.Entity
	if err := json.Unmarshal(data, &entities); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyEntities, err)
	}
	return entities, nil
}
