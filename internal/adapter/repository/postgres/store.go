// Package postgres backs the document store with a PostgreSQL documents
// table, one row per store key.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StoreBackend implements docstore.Backend on a documents table. Save writes
// every document inside one database transaction.
type StoreBackend struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

func NewStoreBackend(pool *pgxpool.Pool, retrier *Retrier) *StoreBackend {
	return &StoreBackend{pool: pool, retrier: retrier}
}

func (b *StoreBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE key = $1`, key,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", key, err)
	}
	return data, nil
}

func (b *StoreBackend) Save(ctx context.Context, docs map[string][]byte) error {
	return b.retrier.Retry(ctx, func() error {
		tx, err := b.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		defer tx.Rollback(ctx)

		for key, data := range docs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO documents (key, data, updated_at)
				 VALUES ($1, $2, now())
				 ON CONFLICT (key)
				 DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
				key, data,
			); err != nil {
				return fmt.Errorf("upsert document %s: %w", key, err)
			}
		}
		return tx.Commit(ctx)
	})
}

func (b *StoreBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}

func (b *StoreBackend) Close() error {
	b.pool.Close()
	return nil
}
