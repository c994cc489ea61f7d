package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// PortfolioRepo persists the holdings document.
type PortfolioRepo struct {
	backend Backend
}

func NewPortfolioRepo(backend Backend) *PortfolioRepo {
	return &PortfolioRepo{backend: backend}
}

func (r *PortfolioRepo) ListByEntity(ctx context.Context, entityID string) ([]*domain.Holding, error) {
	data, err := r.backend.Load(ctx, KeyPortfolio)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyPortfolio, err)
	}
	holdings, err := decodeHoldings(data)
	if err != nil {
		return nil, err
	}
	return filterHoldings(holdings, entityID), nil
}

func (r *PortfolioRepo) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Holding, error) {
	holdings, _, err := r.loadTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return filterHoldings(holdings, entityID), nil
}

func (r *PortfolioRepo) Append(ctx context.Context, tx usecase.Transaction, holding *domain.Holding) error {
	holdings, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	holdings = append(holdings, holding)
	return r.store(t, holdings)
}

func (r *PortfolioRepo) Remove(ctx context.Context, tx usecase.Transaction, id string) error {
	holdings, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	for i, h := range holdings {
		if h.ID == id {
			holdings = append(holdings[:i], holdings[i+1:]...)
			return r.store(t, holdings)
		}
	}
	return domain.ErrHoldingNotFound
}

func (r *PortfolioRepo) loadTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Holding, *Tx, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, nil, err
	}
	data, err := t.get(ctx, KeyPortfolio)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", KeyPortfolio, err)
	}
	holdings, err := decodeHoldings(data)
	if err != nil {
		return nil, nil, err
	}
	return holdings, t, nil
}

func (r *PortfolioRepo) store(t *Tx, holdings []*domain.Holding) error {
	data, err := json.Marshal(holdings)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyPortfolio, err)
	}
	return t.put(KeyPortfolio, data)
}

func decodeHoldings(data []byte) ([]*domain.Holding, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var holdings []*domain.Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyPortfolio, err)
	}
	return holdings, nil
}

func filterHoldings(holdings []*domain.Holding, entityID string) []*domain.Holding {
	out := make([]*domain.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.EntityID == entityID {
			out = append(out, h)
		}
	}
	return out
}
