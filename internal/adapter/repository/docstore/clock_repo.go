package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// ClockRepo persists the virtual clock document.
type ClockRepo struct {
	backend Backend
}

func NewClockRepo(backend Backend) *ClockRepo {
	return &ClockRepo{backend: backend}
}

func (r *ClockRepo) Get(ctx context.Context) (*domain.Clock, error) {
	data, err := r.backend.Load(ctx, KeyClock)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyClock, err)
	}
	return decodeClock(data)
}

func (r *ClockRepo) GetTx(ctx context.Context, tx usecase.Transaction) (*domain.Clock, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, err
	}
	data, err := t.get(ctx, KeyClock)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyClock, err)
	}
	return decodeClock(data)
}

func (r *ClockRepo) Save(_ context.Context, tx usecase.Transaction, clock *domain.Clock) error {
	t, err := txFrom(tx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(clock)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyClock, err)
	}
	return t.put(KeyClock, data)
}

func decodeClock(data []byte) (*domain.Clock, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var clock domain.Clock
	if err := json.Unmarshal(data, &clock); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyClock, err)
	}
	return &clock, nil
}
