package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/domain"
	"github.com/gk-gaurav-gk/treasury-blossom-sub000/internal/usecase"
)

// OrderRepo persists the orders document.
type OrderRepo struct {
	backend Backend
}

func NewOrderRepo(backend Backend) *OrderRepo {
	return &OrderRepo{backend: backend}
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	data, err := r.backend.Load(ctx, KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyOrders, err)
	}
	orders, err := decodeOrders(data)
	if err != nil {
		return nil, err
	}
	return findOrder(orders, id)
}

func (r *OrderRepo) GetByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	orders, _, err := r.loadTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return findOrder(orders, id)
}

func (r *OrderRepo) ListByEntity(ctx context.Context, entityID string) ([]*domain.Order, error) {
	data, err := r.backend.Load(ctx, KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", KeyOrders, err)
	}
	orders, err := decodeOrders(data)
	if err != nil {
		return nil, err
	}
	return filterOrders(orders, entityID), nil
}

func (r *OrderRepo) ListByEntityTx(ctx context.Context, tx usecase.Transaction, entityID string) ([]*domain.Order, error) {
	orders, _, err := r.loadTx(ctx, tx)
	if err != nil {
		return nil, err
	}
	return filterOrders(orders, entityID), nil
}

func (r *OrderRepo) Append(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	orders, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	orders = append(orders, order)
	return r.store(t, orders)
}

func (r *OrderRepo) Update(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	orders, t, err := r.loadTx(ctx, tx)
	if err != nil {
		return err
	}
	for i, existing := range orders {
		if existing.ID == order.ID {
			orders[i] = order
			return r.store(t, orders)
		}
	}
	return domain.ErrOrderNotFound
}

func (r *OrderRepo) loadTx(ctx context.Context, tx usecase.Transaction) ([]*domain.Order, *Tx, error) {
	t, err := txFrom(tx)
	if err != nil {
		return nil, nil, err
	}
	data, err := t.get(ctx, KeyOrders)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", KeyOrders, err)
	}
	orders, err := decodeOrders(data)
	if err != nil {
		return nil, nil, err
	}
	return orders, t, nil
}

func (r *OrderRepo) store(t *Tx, orders []*domain.Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyOrders, err)
	}
	return t.put(KeyOrders, data)
}

func decodeOrders(data []byte) ([]*domain.Order, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var orders []*domain.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyOrders, err)
	}
	return orders, nil
}

func findOrder(orders []*domain.Order, id string) (*domain.Order, error) {
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func filterOrders(orders []*domain.Order, entityID string) []*domain.Order {
	out := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.EntityID == entityID {
			out = append(out, o)
		}
	}
	return out
}
